package a2dp

// ChannelMode represents a codec channel mode independent of its per-codec flag value.
type ChannelMode uint8

// Constants representing channel modes announced by A2DP codecs.
const (
	ChannelMono = ChannelMode(iota + 1)
	ChannelDual
	ChannelStereo
	ChannelJointStereo
	ChannelTWS
)

// String returns the human-readable string representation of a ChannelMode.
func (ch ChannelMode) String() string {
	switch ch {
	case ChannelMono:
		return "mono"
	case ChannelDual:
		return "dual-channel"
	case ChannelStereo:
		return "stereo"
	case ChannelJointStereo:
		return "joint-stereo"
	case ChannelTWS:
		return "tws"
	}
	return "?"
}

// Count returns the number of audio channels carried in the ChannelMode.
func (ch ChannelMode) Count() int {
	switch ch {
	case ChannelMono:
		return 1
	case ChannelDual, ChannelStereo, ChannelJointStereo, ChannelTWS:
		return 2 //nolint:mnd
	}
	return 0
}
