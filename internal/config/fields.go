package config

import (
	"math"
	"time"
)

// field binds a dotted setting path to a Config member.
type field struct {
	path string
	set  func(c *Config, v any) error
}

var fields = []field{
	boolField("scroll.smoothWheel", func(c *Config) *bool { return &c.Scroll.SmoothWheel }),
	boolField("scroll.syncTouch", func(c *Config) *bool { return &c.Scroll.SyncTouch }),
	floatField("scroll.syncTouchLerp", func(c *Config) *float64 { return &c.Scroll.SyncTouchLerp }),
	floatField("scroll.touchInertiaMultiplier", func(c *Config) *float64 { return &c.Scroll.TouchInertiaMultiplier }),
	durationField("scroll.duration", func(c *Config) *time.Duration { return &c.Scroll.Duration }),
	stringField("scroll.easing", func(c *Config) *string { return &c.Scroll.Easing }),
	floatField("scroll.lerp", func(c *Config) *float64 { return &c.Scroll.Lerp }),
	floatField("scroll.springFrequency", func(c *Config) *float64 { return &c.Scroll.SpringFrequency }),
	floatField("scroll.springDamping", func(c *Config) *float64 { return &c.Scroll.SpringDamping }),
	boolField("scroll.infinite", func(c *Config) *bool { return &c.Scroll.Infinite }),
	stringField("scroll.orientation", func(c *Config) *string { return &c.Scroll.Orientation }),
	stringField("scroll.gestureOrientation", func(c *Config) *string { return &c.Scroll.GestureOrientation }),
	floatField("scroll.touchMultiplier", func(c *Config) *float64 { return &c.Scroll.TouchMultiplier }),
	floatField("scroll.wheelMultiplier", func(c *Config) *float64 { return &c.Scroll.WheelMultiplier }),
	floatField("scroll.lineHeight", func(c *Config) *float64 { return &c.Scroll.LineHeight }),
	boolField("scroll.autoResize", func(c *Config) *bool { return &c.Scroll.AutoResize }),
	durationField("scroll.resizeDebounce", func(c *Config) *time.Duration { return &c.Scroll.ResizeDebounce }),

	boolField("snap.enabled", func(c *Config) *bool { return &c.Snap.Enabled }),
	stringField("snap.type", func(c *Config) *string { return &c.Snap.Type }),
	floatField("snap.lerp", func(c *Config) *float64 { return &c.Snap.Lerp }),
	durationField("snap.duration", func(c *Config) *time.Duration { return &c.Snap.Duration }),
	stringField("snap.easing", func(c *Config) *string { return &c.Snap.Easing }),
	floatField("snap.velocityThreshold", func(c *Config) *float64 { return &c.Snap.VelocityThreshold }),
	durationField("snap.debounce", func(c *Config) *time.Duration { return &c.Snap.Debounce }),

	stringField("log.level", func(c *Config) *string { return &c.Log.Level }),
	stringField("log.file", func(c *Config) *string { return &c.Log.File }),
}

var fieldIndex = func() map[string]field {
	m := make(map[string]field, len(fields))
	for _, f := range fields {
		m[f.path] = f
	}
	return m
}()

// Paths returns every setting path in declaration order.
func Paths() []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.path
	}
	return out
}

func boolField(path string, ptr func(*Config) *bool) field {
	return field{path: path, set: func(c *Config, v any) error {
		b, ok := v.(bool)
		if !ok {
			return ErrInvalidType
		}
		*ptr(c) = b
		return nil
	}}
}

func floatField(path string, ptr func(*Config) *float64) field {
	return field{path: path, set: func(c *Config, v any) error {
		f, ok := toFloat(v)
		if !ok {
			return ErrInvalidType
		}
		*ptr(c) = f
		return nil
	}}
}

func stringField(path string, ptr func(*Config) *string) field {
	return field{path: path, set: func(c *Config, v any) error {
		s, ok := v.(string)
		if !ok {
			return ErrInvalidType
		}
		*ptr(c) = s
		return nil
	}}
}

// durationField accepts duration strings and numbers of seconds.
func durationField(path string, ptr func(*Config) *time.Duration) field {
	return field{path: path, set: func(c *Config, v any) error {
		switch v := v.(type) {
		case time.Duration:
			*ptr(c) = v
		case string:
			d, err := time.ParseDuration(v)
			if err != nil {
				return ErrInvalidType
			}
			*ptr(c) = d
		default:
			f, ok := toFloat(v)
			if !ok {
				return ErrInvalidType
			}
			*ptr(c) = time.Duration(math.Round(f * float64(time.Second)))
		}
		return nil
	}}
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
