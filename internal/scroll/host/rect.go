package host

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Top returns the top edge.
func (r Rect) Top() float64 {
	if r.Height < 0 {
		return r.Y + r.Height
	}
	return r.Y
}

// Left returns the left edge.
func (r Rect) Left() float64 {
	if r.Width < 0 {
		return r.X + r.Width
	}
	return r.X
}

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Top() + abs(r.Height)
}

// Right returns the right edge.
func (r Rect) Right() float64 {
	return r.Left() + abs(r.Width)
}

// Start returns the leading edge on axis.
func (r Rect) Start(axis Axis) float64 {
	if axis == AxisX {
		return r.Left()
	}
	return r.Top()
}

// Size returns the extent on axis.
func (r Rect) Size(axis Axis) float64 {
	if axis == AxisX {
		return abs(r.Width)
	}
	return abs(r.Height)
}

// Translate returns r moved by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
