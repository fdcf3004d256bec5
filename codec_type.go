package a2dp

// CodecType identifies a codec including vendor codecs.
//
// Standard codecs keep their 8-bit CodecID. Vendor codecs use a 16-bit extension whose
// low byte is CodecVendor, so the two ranges never collide.
type CodecType uint16

// Codec types.
const (
	SBC        = CodecType(CodecSBC)
	MPEG12     = CodecType(CodecMPEG12)
	MPEG24     = CodecType(CodecMPEG24)
	ATRAC      = CodecType(CodecATRAC)
	MPEGD      = CodecType(CodecMPEGD)
	APTX       = CodecType(0x4fff)
	APTXAD     = CodecType(0xadff)
	APTXHD     = CodecType(0x24ff)
	APTXLL     = CodecType(0xa2ff)
	APTXTWS    = CodecType(0x25ff)
	FastStream = CodecType(0xa1ff)
	LDAC       = CodecType(0x2dff)
	LHDC       = CodecType(0x4cff)
	LHDCv1     = CodecType(0x48ff)
	LLAC       = CodecType(0x44ff)
	SamsungHD  = CodecType(0x52ff)
	SamsungSC  = CodecType(0x53ff)
)

// String returns the human-readable string representation of a CodecType.
func (ct CodecType) String() string {
	switch ct {
	case SBC:
		return "SBC"
	case MPEG12:
		return "MP3"
	case MPEG24:
		return "AAC"
	case ATRAC:
		return "ATRAC"
	case MPEGD:
		return "USAC"
	case APTX:
		return "aptX"
	case APTXAD:
		return "aptX-AD"
	case APTXHD:
		return "aptX-HD"
	case APTXLL:
		return "aptX-LL"
	case APTXTWS:
		return "aptX-TWS"
	case FastStream:
		return "FastStream"
	case LDAC:
		return "LDAC"
	case LHDC:
		return "LHDC"
	case LHDCv1:
		return "LHDC-v1"
	case LLAC:
		return "LLAC"
	case SamsungHD:
		return "Samsung-HD"
	case SamsungSC:
		return "Samsung-SC"
	}
	return "UNKNOWN"
}

// CodecID returns the 8-bit media codec type the codec is announced with.
func (ct CodecType) CodecID() CodecID {
	return CodecID(ct & 0xff) //nolint:mnd
}

// IsVendor returns true if the CodecType represents a vendor specific codec.
func (ct CodecType) IsVendor() bool {
	return ct.CodecID() == CodecVendor
}
