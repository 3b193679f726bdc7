package portaudio

import (
	"bytes"
	"context"
	"encoding/binary"
	"log"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/avelinek/lira-core/core/audio"
)

// Client is the portaudio-backed device layer. Capture uses a blocking read
// stream; playback runs a writer loop that drains the shared schedule one
// device period at a time, so chunk scheduling semantics are identical to the
// miniaudio client.
type Client struct {
	bufferSize int

	inStream  *portaudio.Stream
	outStream *portaudio.Stream

	in  []int16
	out []int16

	schedule *audio.Schedule
	meter    *audio.Meter
	scratch  []float32

	closeOnce sync.Once
	done      chan struct{}
}

func NewClient(bufferSize int) (*Client, error) {
	err := portaudio.Initialize()
	if err != nil {
		log.Fatalf("Failed to initialize PortAudio: %v", err)
		return nil, err
	}

	in := make([]int16, bufferSize)
	out := make([]int16, bufferSize)
	inStream, err := portaudio.OpenDefaultStream(1, 0, audio.InputSampleRate, bufferSize, in)
	if err != nil {
		log.Fatalf("Failed to open PortAudio capture stream: %v", err)
	}
	outStream, err := portaudio.OpenDefaultStream(0, 1, audio.OutputSampleRate, bufferSize, out)
	if err != nil {
		log.Fatalf("Failed to open PortAudio playback stream: %v", err)
	}

	client := &Client{
		bufferSize: bufferSize,
		inStream:   inStream,
		outStream:  outStream,
		in:         in,
		out:        out,
		schedule:   audio.NewSchedule(audio.OutputSampleRate),
		meter:      audio.NewMeter(),
		scratch:    make([]float32, bufferSize),
		done:       make(chan struct{}),
	}

	if err := outStream.Start(); err != nil {
		log.Fatalf("Failed to start PortAudio playback stream: %v", err)
	}
	go client.playbackLoop()

	return client, nil
}

func (c *Client) playbackLoop() {
	for {
		select {
		case <-c.done:
			return
		default:
			c.schedule.Render(c.scratch)
			c.meter.Observe(c.scratch)
			for i, sample := range c.scratch {
				if sample > 1 {
					sample = 1
				} else if sample < -1 {
					sample = -1
				}
				c.out[i] = int16(sample * 32767)
			}
			if err := c.outStream.Write(); err != nil {
				log.Printf("Failed to write to PortAudio stream: %v", err)
			}
		}
	}
}

func (c *Client) StartCapture(ctx context.Context, onAudio func(audio []byte)) error {
	log.Println("Starting microphone capture. Speak now...")
	if err := c.inStream.Start(); err != nil {
		log.Fatalf("Failed to start PortAudio stream: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.done:
			return nil
		default:
			if err := c.inStream.Read(); err != nil {
				log.Printf("Failed to read from PortAudio stream: %v", err)
			}

			audioBuffer := bytes.Buffer{}
			binary.Write(&audioBuffer, binary.LittleEndian, c.in)
			onAudio(audioBuffer.Bytes())
		}
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.inStream.Close()
		c.outStream.Close()
		portaudio.Terminate()
	})
}

func (c *Client) SendAudio(chunk []byte) error {
	c.schedule.Add(chunk)
	return nil
}

func (c *Client) ClearBuffer() {
	c.schedule.Flush()
	c.meter.Reset()
}

func (c *Client) Volume() float64 {
	return c.meter.Level()
}

func (c *Client) Buffered() time.Duration {
	return c.schedule.Buffered()
}

func (c *Client) InputEncodingInfo() audio.EncodingInfo {
	return audio.GetInputEncodingInfo()
}

func (c *Client) OutputEncodingInfo() audio.EncodingInfo {
	return audio.GetOutputEncodingInfo()
}
