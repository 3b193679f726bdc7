package audio

import "time"

const (
	// InputSampleRate is the fixed rate of captured microphone audio.
	InputSampleRate = 16000
	// OutputSampleRate is the fixed rate of assistant speech audio.
	OutputSampleRate = 24000

	DefaultFormat = "linear16"
)

func GetInputEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: InputSampleRate, Format: EncodingLinear16}
}

func GetOutputEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: OutputSampleRate, Format: EncodingLinear16}
}

type EncodingInfo struct {
	SampleRate int
	Format     encodingFormat
}

func (e EncodingInfo) IsZero() bool {
	return e.SampleRate == 0 || e.Format.Name() == ""
}

// Duration returns the playback duration of a raw chunk in this encoding.
func (e EncodingInfo) Duration(chunk []byte) time.Duration {
	if e.IsZero() || len(chunk) == 0 {
		return 0
	}
	samples := len(chunk) / e.Format.ByteSize()
	return time.Duration(float64(samples) / float64(e.SampleRate) * float64(time.Second))
}

// Samples returns how many samples fit into the given duration.
func (e EncodingInfo) Samples(duration time.Duration) int {
	if e.IsZero() {
		return 0
	}
	return int(float64(duration) / float64(time.Second) * float64(e.SampleRate))
}

func (e EncodingInfo) SilenceValue() byte {
	switch e.Format {
	case EncodingALaw:
		return 0x55
	case EncodingMulaw:
		return 0xFF
	case EncodingLinear16:
		return 0
	}

	return 0
}

type encodingFormat string

func (e encodingFormat) Name() string {
	return string(e)
}

func (e encodingFormat) ByteSize() int {
	switch e {
	case EncodingMulaw, EncodingALaw:
		return 1
	case EncodingLinear16:
		return 2
	}
	return -1
}

const (
	EncodingMulaw    encodingFormat = "mulaw"
	EncodingALaw     encodingFormat = "alaw"
	EncodingLinear16 encodingFormat = "linear16"
)
