package aac

import (
	"errors"
	"fmt"

	"github.com/ugparu/a2dp/utils/bits"
)

// MPEG-4 audio object types reachable from an A2DP AAC configuration.
const (
	AotAacMain     = 1
	AotAacLc       = 2
	AotAacLtp      = 4
	AotAacScalable = 6
)

// AudioSpecificConfigLength is the length of an AudioSpecificConfig without escape values.
const AudioSpecificConfigLength = 2

var sampleRateTable = []uint{
	96000, 88200, 64000, 48000, 44100, 32000,
	24000, 22050, 16000, 12000, 11025, 8000, 7350,
}

// object_type:5 sample_rate_index:4 channel_config:4 (frame_length, depends_on_core, extension: 0)
var (
	ascObjectType      = bits.Field{Offset: 0, Width: 5}
	ascSampleRateIndex = bits.Field{Offset: 5, Width: 4}
	ascChannelConfig   = bits.Field{Offset: 9, Width: 4}
)

// MPEG4AudioConfig is the part of an MPEG-4 AudioSpecificConfig an A2DP configuration determines.
type MPEG4AudioConfig struct {
	ObjectType      uint
	SampleRateIndex uint
	ChannelConfig   uint
	SampleRate      uint
}

// Complete fills SampleRate from SampleRateIndex.
func (config *MPEG4AudioConfig) Complete() {
	if config.SampleRateIndex < uint(len(sampleRateTable)) {
		config.SampleRate = sampleRateTable[config.SampleRateIndex]
	}
}

// ParseMPEG4AudioConfigBytes decodes a two byte AudioSpecificConfig.
func ParseMPEG4AudioConfigBytes(data []byte) (config MPEG4AudioConfig, err error) {
	if len(data) < AudioSpecificConfigLength {
		return config, fmt.Errorf("aacparser: insufficient data for MPEG4 audio config, need %d bytes, got %d",
			AudioSpecificConfigLength, len(data))
	}
	config.ObjectType = uint(ascObjectType.Get(data))
	config.SampleRateIndex = uint(ascSampleRateIndex.Get(data))
	config.ChannelConfig = uint(ascChannelConfig.Get(data))
	if config.ObjectType == uint(ascObjectType.Mask()) || config.SampleRateIndex == uint(ascSampleRateIndex.Mask()) {
		return config, errors.New("aacparser: escaped MPEG4 audio config values are not supported")
	}
	config.Complete()
	return
}

// Bytes encodes the config as a two byte AudioSpecificConfig.
func (config MPEG4AudioConfig) Bytes() ([]byte, error) {
	if config.ObjectType == 0 || config.ObjectType >= uint(ascObjectType.Mask()) {
		return nil, fmt.Errorf("aacparser: invalid object type: %d", config.ObjectType)
	}
	if config.SampleRateIndex >= uint(len(sampleRateTable)) {
		return nil, fmt.Errorf("aacparser: invalid sample rate index: %d", config.SampleRateIndex)
	}
	b := make([]byte, AudioSpecificConfigLength)
	ascObjectType.Put(b, uint32(config.ObjectType))
	ascSampleRateIndex.Put(b, uint32(config.SampleRateIndex))
	ascChannelConfig.Put(b, uint32(config.ChannelConfig))
	return b, nil
}

var objectTypes = map[uint8]uint{
	ObjectTypeMPEG2AACLC:  AotAacLc,
	ObjectTypeMPEG4AACLC:  AotAacLc,
	ObjectTypeMPEG4AACLTP: AotAacLtp,
	ObjectTypeMPEG4AACSCA: AotAacScalable,
}

// MPEG4AudioConfig derives the AudioSpecificConfig of a configuration, which must select
// exactly one object type, one sampling frequency and one channels value.
func (caps Capabilities) MPEG4AudioConfig() (config MPEG4AudioConfig, err error) {
	aot, ok := objectTypes[caps.ObjectType]
	if !ok {
		return config, fmt.Errorf("aacparser: object type %#02x is not a single known flag", caps.ObjectType)
	}
	rates := caps.SampleRates()
	if len(rates) != 1 {
		return config, fmt.Errorf("aacparser: frequency %#03x does not select one sampling frequency", caps.Frequency)
	}
	modes := caps.ChannelModes()
	if len(modes) != 1 {
		return config, fmt.Errorf("aacparser: channels %#x does not select one channel mode", caps.Channels)
	}
	config.ObjectType = aot
	config.ChannelConfig = uint(modes[0].Count()) //nolint:gosec // 1 or 2
	for i, rate := range sampleRateTable {
		if rate == rates[0] {
			config.SampleRateIndex = uint(i) //nolint:gosec // small table index
		}
	}
	config.Complete()
	return
}
