// Package compress provides the compression codecs for sampled-curve
// payloads.
//
// A fitted curve sampled at a few hundred points serializes to a small
// binary payload of float64 pairs; payloads that are cached or shipped to
// a plotting frontend benefit from a cheap compression pass. The package
// exposes one Codec per supported algorithm, keyed by
// format.CompressionType:
//
//   - None: pass-through, for payloads stored inline
//   - Zstd: best ratio, for cached or archived payloads
//   - S2: balanced speed and ratio
//   - LZ4: fastest decompression, for read-heavy callers
//
// Codecs are stateless values safe for concurrent use; encoder and
// decoder instances are pooled internally where the underlying library
// rewards reuse.
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
package compress
