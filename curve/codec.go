package curve

import (
	"fmt"
	"math"

	"github.com/fitkit/fitkit/compress"
	"github.com/fitkit/fitkit/endian"
	"github.com/fitkit/fitkit/format"
)

// Payload layout, all multi-byte fields little-endian:
//
//	offset  size  field
//	0       4     magic "FKC1"
//	4       1     compression type
//	5       1     mode string length
//	6       m     mode string
//	6+m     4     point count
//	10+m    ...   body: count x-values then count y-values, float64 bits
//
// The body alone is compressed; the header stays readable without a
// codec so callers can route payloads by mode.
const (
	payloadMagic   = uint32(0x464B4331) // "FKC1"
	maxModeLen     = 255
	maxPointCount  = 1 << 24
	headerFixedLen = 10
)

var payloadEngine = endian.Little()

// Encode serializes the curve with the chosen body compression.
//
// Returns:
//   - []byte: The payload, owned by the caller
//   - error: Unsupported compression, oversized mode string, or a codec
//     failure
func Encode(c *Curve, compression format.CompressionType) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("curve must not be nil")
	}
	if len(c.Xs) != len(c.Ys) {
		return nil, fmt.Errorf("curve has %d x-values but %d y-values", len(c.Xs), len(c.Ys))
	}
	if len(c.Xs) > maxPointCount {
		return nil, fmt.Errorf("curve has %d points, limit is %d", len(c.Xs), maxPointCount)
	}
	mode := string(c.Mode)
	if len(mode) > maxModeLen {
		return nil, fmt.Errorf("mode string exceeds %d bytes", maxModeLen)
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	body := make([]byte, 0, len(c.Xs)*16)
	for _, x := range c.Xs {
		body = payloadEngine.AppendUint64(body, math.Float64bits(x))
	}
	for _, y := range c.Ys {
		body = payloadEngine.AppendUint64(body, math.Float64bits(y))
	}

	packed, err := codec.Compress(body)
	if err != nil {
		return nil, fmt.Errorf("compress curve body: %w", err)
	}

	buf := make([]byte, 0, headerFixedLen+len(mode)+len(packed))
	buf = payloadEngine.AppendUint32(buf, payloadMagic)
	buf = append(buf, byte(compression))
	buf = append(buf, byte(len(mode)))
	buf = append(buf, mode...)
	buf = payloadEngine.AppendUint32(buf, uint32(len(c.Xs))) //nolint:gosec // bounded by maxPointCount
	buf = append(buf, packed...)

	return buf, nil
}

// Decode parses a payload produced by Encode.
//
// Returns:
//   - *Curve: The restored curve
//   - error: Malformed header, unknown compression, or a corrupted body
func Decode(data []byte) (*Curve, error) {
	if len(data) < headerFixedLen {
		return nil, fmt.Errorf("payload too short: %d bytes", len(data))
	}
	if payloadEngine.Uint32(data[0:4]) != payloadMagic {
		return nil, fmt.Errorf("bad payload magic")
	}

	compression := format.CompressionType(data[4])
	modeLen := int(data[5])
	if len(data) < headerFixedLen+modeLen {
		return nil, fmt.Errorf("payload truncated inside mode string")
	}
	mode := format.Mode(data[6 : 6+modeLen])

	countOff := 6 + modeLen
	count := int(payloadEngine.Uint32(data[countOff : countOff+4]))
	if count > maxPointCount {
		return nil, fmt.Errorf("point count %d exceeds limit %d", count, maxPointCount)
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	body, err := codec.Decompress(data[countOff+4:])
	if err != nil {
		return nil, fmt.Errorf("decompress curve body: %w", err)
	}
	if len(body) != count*16 {
		return nil, fmt.Errorf("curve body is %d bytes, want %d for %d points", len(body), count*16, count)
	}

	xs := make([]float64, count)
	ys := make([]float64, count)
	for i := range count {
		xs[i] = math.Float64frombits(payloadEngine.Uint64(body[i*8:]))
		ys[i] = math.Float64frombits(payloadEngine.Uint64(body[(count+i)*8:]))
	}

	return &Curve{Mode: mode, Xs: xs, Ys: ys}, nil
}
