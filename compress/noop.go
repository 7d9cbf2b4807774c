package compress

// NoOpCodec passes payloads through unchanged. Used for payloads stored
// inline, where the float64 samples are small enough that compression
// overhead is not worth paying, and as the baseline in benchmarks.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec creates the pass-through codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns the input slice as-is, sharing its backing array.
// Callers that mutate the input afterwards must copy first.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, sharing its backing array.
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
