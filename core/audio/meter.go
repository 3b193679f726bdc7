package audio

import (
	"math"
	"sync"
)

// Meter is a measurement tap over the playback render path. The device
// backend feeds it every rendered block, so observations happen at the device
// period cadence regardless of how chunks were scheduled.
//
// The tap only reads rendered samples; it never alters or delays the audio it
// observes.
type Meter struct {
	mu    sync.Mutex
	level float64

	// smoothing is the exponential decay factor applied per observation.
	smoothing float64
}

func NewMeter() *Meter {
	return &Meter{smoothing: 0.6}
}

// Observe folds one rendered block into the smoothed level.
func (m *Meter) Observe(samples []float32) {
	if len(samples) == 0 {
		return
	}

	sum := 0.0
	for _, sample := range samples {
		sum += float64(sample) * float64(sample)
	}
	rms := math.Sqrt(sum / float64(len(samples)))

	m.mu.Lock()
	m.level = m.level*m.smoothing + rms*(1-m.smoothing)
	if m.level > 1 {
		m.level = 1
	}
	m.mu.Unlock()
}

// Level returns the current smoothed magnitude in [0, 1]; 0 is silence.
func (m *Meter) Level() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}

// Reset drops the level back to silence, used when playback is flushed.
func (m *Meter) Reset() {
	m.mu.Lock()
	m.level = 0
	m.mu.Unlock()
}
