// Package endian provides the byte order helper for the curve payload
// codec.
//
// It joins the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into one EndianEngine so the codec can both read fixed
// offsets and append to a growing buffer through a single value. Curve
// payloads are little-endian on the wire.
package endian

import "encoding/binary"

// EndianEngine is the combined read/append byte order interface. It is
// satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Little returns the little-endian engine used for curve payloads.
func Little() EndianEngine {
	return binary.LittleEndian
}
