package sbc

// Quality selects one of the predefined bitpool levels.
type Quality uint8

// Quality levels.
const (
	QualityLow Quality = iota
	QualityMiddle
	QualityHigh
)

// Predefined bitpool values for block length 16, 8 subbands and loudness allocation.
var bitpoolPresets = map[Quality]struct{ mono44, mono48, joint44, joint48 uint8 }{
	QualityLow:    {mono44: 15, mono48: 15, joint44: 29, joint48: 29},
	QualityMiddle: {mono44: 19, mono48: 18, joint44: 35, joint48: 33},
	QualityHigh:   {mono44: 31, mono48: 29, joint44: 53, joint48: 51},
}

// RecommendedBitpool returns the predefined bitpool for a single-flag channel mode and
// frequency. Mono and dual channel take the per-channel value, stereo modes the joint
// stereo value. Frequencies other than 48 kHz use the 44.1 kHz column.
func RecommendedBitpool(q Quality, channelMode, frequency uint8) uint8 {
	preset, ok := bitpoolPresets[q]
	if !ok {
		preset = bitpoolPresets[QualityHigh]
	}
	if channelMode == ChannelModeMono || channelMode == ChannelModeDualChannel {
		if frequency == SamplingFreq48000 {
			return preset.mono48
		}
		return preset.mono44
	}
	if frequency == SamplingFreq48000 {
		return preset.joint48
	}
	return preset.joint44
}
