package audio

// DecodeS16 converts little-endian 16-bit signed PCM into normalized float32
// samples in [-1, 1). A trailing odd byte is dropped.
func DecodeS16(pcm []byte) []float32 {
	samples := make([]float32, len(pcm)/2)
	for i := range samples {
		sample := int16(uint16(pcm[2*i]) | uint16(pcm[2*i+1])<<8)
		samples[i] = float32(sample) / 32768.0
	}
	return samples
}

// EncodeS16 converts normalized float32 samples back into little-endian
// 16-bit signed PCM, clamping out-of-range values.
func EncodeS16(samples []float32) []byte {
	pcm := make([]byte, len(samples)*2)
	EncodeS16Into(pcm, samples)
	return pcm
}

// EncodeS16Into is the allocation-free variant of [EncodeS16] used on the
// device render path. out must hold at least len(samples)*2 bytes.
func EncodeS16Into(out []byte, samples []float32) {
	for i, sample := range samples {
		if sample > 1 {
			sample = 1
		} else if sample < -1 {
			sample = -1
		}
		value := int16(sample * 32767)
		out[2*i] = byte(uint16(value))
		out[2*i+1] = byte(uint16(value) >> 8)
	}
}
