package audio

import "testing"

func pcmOfSamples(n int) []byte {
	pcm := make([]byte, n*2)
	for i := range n {
		pcm[2*i] = 0x00
		pcm[2*i+1] = 0x10 // 4096 -> 0.125
	}
	return pcm
}

func TestScheduleConcatenatesChunksWithoutGapsOrOverlap(t *testing.T) {
	schedule := NewSchedule(OutputSampleRate)

	chunkSizes := []int{480, 120, 960, 1, 240}
	total := 0
	previousEnd := int64(0)
	for _, size := range chunkSizes {
		before := schedule.Cursor()
		schedule.Add(pcmOfSamples(size))
		after := schedule.Cursor()

		if before != previousEnd {
			t.Fatalf("expected chunk to be scheduled at previous end %d, got %d", previousEnd, before)
		}
		if after != before+int64(size) {
			t.Fatalf("expected cursor to advance by %d, got %d", size, after-before)
		}
		previousEnd = after
		total += size
	}

	if got := schedule.Cursor(); got != int64(total) {
		t.Fatalf("expected total scheduled duration of %d samples, got %d", total, got)
	}
}

func TestScheduleRendersQueuedAudioThenSilence(t *testing.T) {
	schedule := NewSchedule(OutputSampleRate)
	schedule.Add(pcmOfSamples(64))

	out := make([]float32, 48)
	schedule.Render(out)
	for i, sample := range out {
		if sample == 0 {
			t.Fatalf("expected scheduled audio at sample %d, got silence", i)
		}
	}

	schedule.Render(out)
	for i, sample := range out[16:] {
		if sample != 0 {
			t.Fatalf("expected silence after queue drained at sample %d, got %f", i+16, sample)
		}
	}

	if got := schedule.DeviceTime(); got != 96 {
		t.Fatalf("expected device clock at 96 samples, got %d", got)
	}
}

func TestScheduleLateChunkStartsAtDeviceTimeNotInThePast(t *testing.T) {
	schedule := NewSchedule(OutputSampleRate)
	schedule.Add(pcmOfSamples(16))

	// Let the device clock run past the scheduled audio.
	out := make([]float32, 480)
	schedule.Render(out)

	before := schedule.Cursor()
	schedule.Add(pcmOfSamples(16))

	if before >= schedule.Cursor() {
		t.Fatalf("expected cursor to advance for late chunk")
	}
	if start := schedule.Cursor() - 16; start != 480 {
		t.Fatalf("expected late chunk to start at device time 480, got %d", start)
	}
}

func TestScheduleFlushResetsToFreshState(t *testing.T) {
	flushed := NewSchedule(OutputSampleRate)
	flushed.Add(pcmOfSamples(480))
	flushed.Add(pcmOfSamples(480))
	flushed.Flush()

	if got := flushed.Buffered(); got != 0 {
		t.Fatalf("expected no buffered audio after flush, got %v", got)
	}
	if flushed.Cursor() != flushed.DeviceTime() {
		t.Fatalf("expected cursor reset to device time, got cursor=%d clock=%d", flushed.Cursor(), flushed.DeviceTime())
	}

	// Adding after a flush behaves like a freshly constructed schedule.
	fresh := NewSchedule(OutputSampleRate)
	fresh.Add(pcmOfSamples(240))
	flushed.Add(pcmOfSamples(240))

	if got, want := flushed.Cursor()-flushed.DeviceTime(), fresh.Cursor()-fresh.DeviceTime(); got != want {
		t.Fatalf("expected flushed schedule to queue like a fresh one, got %d pending want %d", got, want)
	}

	freshOut := make([]float32, 240)
	flushedOut := make([]float32, 240)
	fresh.Render(freshOut)
	flushed.Render(flushedOut)
	for i := range freshOut {
		if freshOut[i] != flushedOut[i] {
			t.Fatalf("expected identical render after flush at sample %d: %f != %f", i, freshOut[i], flushedOut[i])
		}
	}
}

func TestScheduleFlushOnEmptyQueueIsANoop(t *testing.T) {
	schedule := NewSchedule(OutputSampleRate)
	schedule.Flush()

	if schedule.Cursor() != 0 || schedule.DeviceTime() != 0 {
		t.Fatalf("expected empty flush to leave clock untouched")
	}
}

func TestScheduleBufferedReportsPendingDuration(t *testing.T) {
	schedule := NewSchedule(OutputSampleRate)
	schedule.Add(pcmOfSamples(OutputSampleRate / 2))

	if got := schedule.Buffered().Milliseconds(); got != 500 {
		t.Fatalf("expected 500ms buffered, got %dms", got)
	}
}
