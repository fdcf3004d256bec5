package caps

import (
	"fmt"

	"github.com/ugparu/a2dp"
)

// Raw is a codec information element of an unassigned media codec type, kept as opaque bytes.
type Raw struct {
	Codec a2dp.CodecID
	Info  []byte
}

// Type returns the media codec type the element was announced with.
func (r Raw) Type() a2dp.CodecType {
	return a2dp.CodecType(r.Codec)
}

// Bytes returns the element as received.
func (r Raw) Bytes() []byte {
	return append([]byte(nil), r.Info...)
}

func (r Raw) String() string {
	return fmt.Sprintf("RAW_CAPABILITIES codec=%#02x info=%x", uint8(r.Codec), r.Info)
}
