package miniaudio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
	"github.com/avelinek/lira-core/core/audio"
)

type playbackClient struct {
	audioContext *malgo.AllocatedContext
	device       *malgo.Device
	config       malgo.DeviceConfig

	schedule *audio.Schedule
	meter    *audio.Meter
	scratch  []float32

	mu sync.Mutex
}

func (c *playbackClient) Init(audioContext *malgo.AllocatedContext) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sampleRate := uint32(audio.OutputSampleRate)
	channels := 1
	format := malgo.FormatS16
	bytesPerFrame := malgo.SampleSizeInBytes(format) * channels

	c.config = malgo.DefaultDeviceConfig(malgo.Playback)
	c.config.SampleRate = sampleRate
	c.config.Playback.Format = format
	c.config.Playback.Channels = uint32(channels)
	c.config.Alsa.NoMMap = 1
	c.config.PeriodSizeInFrames = sampleRate / 10 // ~100ms of audio
	c.config.Periods = 4

	c.audioContext = audioContext
	c.schedule = audio.NewSchedule(audio.OutputSampleRate)
	c.meter = audio.NewMeter()

	var err error
	if c.device, err = malgo.InitDevice(
		c.audioContext.Context,
		c.config,
		malgo.DeviceCallbacks{Data: c.processAudio(bytesPerFrame)},
	); err != nil {
		return err
	}

	return nil
}

func (c *playbackClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	if err := c.device.Start(); err != nil {
		return fmt.Errorf("failed to start playback device: %w", err)
	}

	return nil
}

func (c *playbackClient) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	if err := c.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop playback device: %w", err)
	}

	c.ClearBuffer()
	return nil
}

// SendAudio queues a raw PCM chunk for gapless playback. The chunk is
// scheduled relative to the device clock and the call never blocks on the
// device.
func (c *playbackClient) SendAudio(chunk []byte) error {
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	} else if !c.device.IsStarted() {
		return fmt.Errorf("device not started")
	}

	c.schedule.Add(chunk)
	return nil
}

// ClearBuffer discards all queued audio and rebases the schedule cursor onto
// the current device time. Safe to call at any time, including when nothing
// is queued.
func (c *playbackClient) ClearBuffer() {
	if c.schedule == nil {
		return
	}
	c.schedule.Flush()
	c.meter.Reset()
}

// Volume reports the smoothed output magnitude in [0, 1].
func (c *playbackClient) Volume() float64 {
	if c.meter == nil {
		return 0
	}
	return c.meter.Level()
}

// Buffered reports how much scheduled audio is still ahead of the device
// clock.
func (c *playbackClient) Buffered() time.Duration {
	if c.schedule == nil {
		return 0
	}
	return c.schedule.Buffered()
}

func (c *playbackClient) Uninit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	c.device.Uninit()
	c.device = nil

	return nil
}

func (c *playbackClient) processAudio(bytesPerFrame int) malgo.DataProc {
	return func(pOutput, _ []byte, frameCount uint32) {
		need := int(frameCount) * bytesPerFrame / 2
		if cap(c.scratch) < need {
			c.scratch = make([]float32, need)
		}
		block := c.scratch[:need]

		c.schedule.Render(block)
		audio.EncodeS16Into(pOutput, block)
		c.meter.Observe(block)
	}
}
