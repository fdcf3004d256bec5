// Package caps decodes codec information elements of any supported codec.
package caps

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ugparu/a2dp"
	"github.com/ugparu/a2dp/codec/aac"
	"github.com/ugparu/a2dp/codec/aptx"
	"github.com/ugparu/a2dp/codec/aptxll"
	"github.com/ugparu/a2dp/codec/atrac"
	"github.com/ugparu/a2dp/codec/faststream"
	"github.com/ugparu/a2dp/codec/ldac"
	"github.com/ugparu/a2dp/codec/mpeg"
	"github.com/ugparu/a2dp/codec/sbc"
	"github.com/ugparu/a2dp/codec/usac"
	"github.com/ugparu/a2dp/codec/vendor"
	"github.com/ugparu/a2dp/utils"
	"github.com/ugparu/a2dp/utils/logger"
)

const logObj = "caps"

// ErrUnknownCodec is returned for a media codec type with no assigned meaning.
var ErrUnknownCodec = errors.New("unknown codec")

type parseFunc func([]byte) (a2dp.Capabilities, error)

func parser[T a2dp.Capabilities](fn func([]byte) (T, error)) parseFunc {
	return func(data []byte) (a2dp.Capabilities, error) {
		c, err := fn(data)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

var parsers = map[a2dp.CodecType]parseFunc{
	a2dp.SBC:        parser(sbc.Parse),
	a2dp.MPEG12:     parser(mpeg.Parse),
	a2dp.MPEG24:     parser(aac.Parse),
	a2dp.ATRAC:      parser(atrac.Parse),
	a2dp.MPEGD:      parser(usac.Parse),
	a2dp.APTX:       parser(aptx.Parse),
	a2dp.APTXTWS:    parser(aptx.Parse),
	a2dp.APTXHD:     parser(aptx.ParseHD),
	a2dp.APTXLL:     parser(aptxll.Parse),
	a2dp.FastStream: parser(faststream.Parse),
	a2dp.LDAC:       parser(ldac.Parse),
}

// Codecs returns the codec types with a known element layout, in ascending order.
func Codecs() []a2dp.CodecType {
	types := make([]a2dp.CodecType, 0, len(parsers))
	for ct := range parsers {
		types = append(types, ct)
	}
	slices.Sort(types)
	return types
}

// Parse decodes the codec information element of the given media codec type.
//
// Vendor elements are dispatched on their vendor codec identifier. Vendor codecs known only
// by identifier decode to an opaque vendor.Capabilities. An identifier matching no known codec
// also decodes to an opaque vendor.Capabilities, returned together with an
// utils.UnsupportedCodecError. An unassigned media codec type decodes to a Raw record and an
// error matching both ErrUnknownCodec and utils.UnsupportedCodecError.
func Parse(id a2dp.CodecID, data []byte) (a2dp.Capabilities, error) {
	ct := a2dp.CodecType(id)
	switch id {
	case a2dp.CodecSBC, a2dp.CodecMPEG12, a2dp.CodecMPEG24, a2dp.CodecATRAC, a2dp.CodecMPEGD:
	case a2dp.CodecVendor:
		vid, err := vendor.Decode(data)
		if err != nil {
			logger.Debugf(logObj, "malformed vendor element %x: %v", data, err)
			return nil, fmt.Errorf("caps: %w", err)
		}
		var ok bool
		if ct, ok = vid.Type(); !ok {
			logger.Debugf(logObj, "unsupported vendor codec %v", vid)
			opaque, _ := vendor.Parse(data)
			return opaque, fmt.Errorf("caps: %w", utils.UnsupportedCodecError{
				MediaCodec: utils.VendorMediaCodec, VendorID: vid.VendorID, CodecID: vid.CodecID,
			})
		}
	default:
		logger.Debugf(logObj, "unassigned media codec type %#02x", uint8(id))
		raw := Raw{Codec: id, Info: append([]byte(nil), data...)}
		return raw, fmt.Errorf("caps: %w: %w", ErrUnknownCodec, utils.UnsupportedCodecError{MediaCodec: uint8(id)})
	}

	parse, ok := parsers[ct]
	if !ok {
		return vendor.Parse(data)
	}
	c, err := parse(data)
	if err != nil {
		logger.Debugf(logObj, "malformed %v element %x: %v", ct, data, err)
		return nil, fmt.Errorf("caps: %w", err)
	}
	return c, nil
}

// MediaCodecHeaderSize is the length of the media type and media codec type preceding the
// codec information element in the AVDTP Media Codec service capability.
const MediaCodecHeaderSize = 2

// ParseMediaCodec decodes the payload of an AVDTP Media Codec service capability:
// the media type in the upper nibble of the first byte, the media codec type, and the codec
// information element.
func ParseMediaCodec(data []byte) (a2dp.MediaType, a2dp.Capabilities, error) {
	if len(data) < MediaCodecHeaderSize {
		return 0, nil, fmt.Errorf("caps: %w",
			utils.MalformedInputError{Codec: "media codec", Want: MediaCodecHeaderSize, Got: len(data)})
	}
	mt := a2dp.MediaType(data[0] >> 4) //nolint:mnd
	c, err := Parse(a2dp.CodecID(data[1]), data[MediaCodecHeaderSize:])
	return mt, c, err
}

// MarshalMediaCodec encodes c as the payload of an AVDTP Media Codec service capability.
func MarshalMediaCodec(mt a2dp.MediaType, c a2dp.Capabilities) []byte {
	info := c.Bytes()
	b := make([]byte, MediaCodecHeaderSize, MediaCodecHeaderSize+len(info))
	b[0] = byte(mt) << 4 //nolint:mnd
	b[1] = byte(c.Type().CodecID())
	return append(b, info...)
}
