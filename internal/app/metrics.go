package app

import (
	"math"
	"sync/atomic"
	"time"
)

// Metrics counts frames and input for the debug status line. Input
// counters are written from the polling goroutine.
type Metrics struct {
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMinNs   atomic.Int64
	frameMaxNs   atomic.Int64
	lastFrameNs  atomic.Int64

	inputCount   atomic.Uint64
	inputDropped atomic.Uint64

	reloads      atomic.Uint64
	reloadFailed atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	m.frameMinNs.Store(math.MaxInt64)
	return m
}

// RecordFrame records the time one frame took to advance and draw.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)

	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordInput records a terminal event handed to the loop.
func (m *Metrics) RecordInput() {
	m.inputCount.Add(1)
}

// RecordInputDropped records a terminal event dropped on a full queue.
func (m *Metrics) RecordInputDropped() {
	m.inputDropped.Add(1)
}

// RecordReload records a config reload attempt.
func (m *Metrics) RecordReload(err error) {
	if err != nil {
		m.reloadFailed.Add(1)
		return
	}
	m.reloads.Add(1)
}

// Snapshot returns a point-in-time copy.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frames := m.frameCount.Load()

	var avg int64
	if frames > 0 {
		avg = m.frameTotalNs.Load() / int64(frames)
	}
	minNs := m.frameMinNs.Load()
	if minNs == math.MaxInt64 {
		minNs = 0
	}

	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		FrameCount:     frames,
		AvgFrameTimeNs: avg,
		MinFrameTimeNs: minNs,
		MaxFrameTimeNs: m.frameMaxNs.Load(),
		LastFrameNs:    m.lastFrameNs.Load(),
		InputCount:     m.inputCount.Load(),
		InputDropped:   m.inputDropped.Load(),
		Reloads:        m.reloads.Load(),
		ReloadFailures: m.reloadFailed.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	FrameCount     uint64
	AvgFrameTimeNs int64
	MinFrameTimeNs int64
	MaxFrameTimeNs int64
	LastFrameNs    int64
	InputCount     uint64
	InputDropped   uint64
	Reloads        uint64
	ReloadFailures uint64
}

// AvgFrameTime returns the mean frame cost.
func (s MetricsSnapshot) AvgFrameTime() time.Duration {
	return time.Duration(s.AvgFrameTimeNs)
}

// MaxFrameTime returns the slowest frame.
func (s MetricsSnapshot) MaxFrameTime() time.Duration {
	return time.Duration(s.MaxFrameTimeNs)
}
