package audio

import (
	"sync"
	"time"
)

// Schedule is the ordered queue of decoded PCM chunks awaiting output, plus
// the cursor tracking the next scheduled start on the device clock.
//
// Chunks arrive at irregular wall-clock intervals relative to their playback
// duration; scheduling every chunk at max(device time, cursor) and advancing
// the cursor by the chunk's duration is what guarantees gapless
// concatenation.
//
// The device clock is advanced exclusively by Render, which runs on the
// device's real-time thread. Everything else only reads it.
//
// There is no backpressure toward the producer: if chunks arrive faster than
// they drain the queue grows without bound.
// TODO: Revisit a bounded queue once the transport can be told to slow down.
type Schedule struct {
	mu sync.Mutex

	queue  []scheduledChunk
	cursor int64 // next scheduled start, in samples, never moves backward
	clock  int64 // current device time, in samples

	sampleRate int
}

type scheduledChunk struct {
	start   int64
	samples []float32
}

func NewSchedule(sampleRate int) *Schedule {
	if sampleRate <= 0 {
		sampleRate = OutputSampleRate
	}
	return &Schedule{sampleRate: sampleRate}
}

// Add decodes a little-endian 16-bit PCM chunk into normalized float32
// samples and schedules it at max(device time, cursor). Never blocks on the
// device; empty chunks are ignored.
func (s *Schedule) Add(pcm []byte) {
	samples := DecodeS16(pcm)
	if len(samples) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.cursor
	if s.clock > start {
		start = s.clock
	}
	s.queue = append(s.queue, scheduledChunk{start: start, samples: samples})
	s.cursor = start + int64(len(samples))
}

// Render fills out with the next len(out) samples relative to the device
// clock and advances the clock. Unscheduled stretches render as silence.
func (s *Schedule) Render(out []float32) {
	for i := range out {
		out[i] = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	windowStart := s.clock
	windowEnd := windowStart + int64(len(out))

	consumed := 0
	for _, chunk := range s.queue {
		if chunk.start >= windowEnd {
			break
		}

		chunkEnd := chunk.start + int64(len(chunk.samples))
		if chunkEnd <= windowStart {
			consumed++
			continue
		}

		from := int64(0)
		if chunk.start < windowStart {
			from = windowStart - chunk.start
		}
		to := chunkEnd
		if to > windowEnd {
			to = windowEnd
		}
		copy(out[chunk.start+from-windowStart:], chunk.samples[from:to-chunk.start])

		if chunkEnd <= windowEnd {
			consumed++
		}
	}
	if consumed > 0 {
		s.queue = s.queue[consumed:]
	}

	s.clock = windowEnd
}

// Flush discards all queued chunks and resets the cursor to the current
// device time. Safe to call at any time, including with an empty queue.
func (s *Schedule) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue = nil
	s.cursor = s.clock
}

// Cursor returns the next scheduled start time in samples.
func (s *Schedule) Cursor() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// DeviceTime returns the current device clock in samples.
func (s *Schedule) DeviceTime() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock
}

// Buffered returns the total duration still scheduled ahead of the device
// clock.
func (s *Schedule) Buffered() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.cursor - s.clock
	if pending <= 0 {
		return 0
	}
	return time.Duration(float64(pending) / float64(s.sampleRate) * float64(time.Second))
}
