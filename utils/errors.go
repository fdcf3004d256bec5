package utils

import "fmt"

// MalformedInputError represents an error indicating that a capability element has the wrong length.
type MalformedInputError struct {
	Codec string // codec whose record was being decoded
	Want  int    // expected length in bytes
	Got   int    // length of the supplied buffer
}

// Error returns the error message for MalformedInputError.
func (e MalformedInputError) Error() string {
	return fmt.Sprintf("malformed %s element: need %d bytes, got %d", e.Codec, e.Want, e.Got)
}

// VendorMediaCodec is the media codec type of vendor specific elements.
const VendorMediaCodec = 0xff

// UnsupportedCodecError represents an error indicating that a capability element belongs to
// no known codec: either its media codec type is unassigned, or it is a vendor element whose
// identifier matches no known vendor codec. The element is usable only as opaque bytes.
type UnsupportedCodecError struct {
	MediaCodec uint8  // media codec type of the element
	VendorID   uint32 // set for vendor elements only
	CodecID    uint16 // set for vendor elements only
}

// Error returns the error message for UnsupportedCodecError.
func (e UnsupportedCodecError) Error() string {
	if e.MediaCodec != VendorMediaCodec {
		return fmt.Sprintf("unsupported media codec type %#02x", e.MediaCodec)
	}
	return fmt.Sprintf("unsupported vendor codec: vendor=%#08x codec=%#04x", e.VendorID, e.CodecID)
}
