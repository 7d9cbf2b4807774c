package compress

// ZstdCodec compresses curve payloads with Zstandard, the best ratio of
// the supported algorithms. Chosen for cached and archived payloads where
// space matters more than encode latency.
//
// Two implementations back this type: the cgo build uses valyala/gozstd
// (libzstd bindings), and the pure-Go build falls back to
// klauspost/compress/zstd. Payloads are interchangeable between the two.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new Zstandard codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
