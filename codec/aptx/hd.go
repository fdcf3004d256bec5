package aptx

import (
	"fmt"

	"github.com/ugparu/a2dp"
	"github.com/ugparu/a2dp/codec/vendor"
	"github.com/ugparu/a2dp/utils"
)

// HDSize is the length of the aptX-HD codec information element.
const HDSize = Size + 4

// HDCapabilities is the aptX-HD codec information element: the aptX element followed by
// four reserved bytes.
type HDCapabilities struct {
	Capabilities
	RFA [4]byte
}

// NewHD returns aptX-HD capabilities with the aptX-HD vendor codec identifier.
func NewHD(frequency, channelMode uint8) HDCapabilities {
	return HDCapabilities{
		Capabilities: Capabilities{Info: vendor.APTXHD, Frequency: frequency, ChannelMode: channelMode},
	}
}

// ParseHD decodes an aptX-HD codec information element.
func ParseHD(data []byte) (caps HDCapabilities, err error) {
	if len(data) != HDSize {
		return caps, utils.MalformedInputError{Codec: "aptX-HD", Want: HDSize, Got: len(data)}
	}
	caps.Capabilities = decode(data)
	copy(caps.RFA[:], data[Size:])
	return
}

// Bytes encodes the element.
func (caps HDCapabilities) Bytes() []byte {
	b := make([]byte, HDSize)
	caps.put(b)
	copy(b[Size:], caps.RFA[:])
	return b
}

func (HDCapabilities) Type() a2dp.CodecType {
	return a2dp.APTXHD
}

func (caps HDCapabilities) String() string {
	return fmt.Sprintf("APTX_HD_CAPABILITIES codec=%v freq=%v mode=%v",
		caps.Info, caps.SampleRates(), caps.ChannelModes())
}
