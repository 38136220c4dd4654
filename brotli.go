//go:build !nobrotli

package squash

import (
	"io"

	"github.com/andybalholm/brotli"
)

func init() {
	register(brotliCodec{})
}

// brotliCodec wraps andybalholm's brotli port. The stream carries neither a
// size field nor a checksum, so decompression sizing is purely heuristic.
// The Reader also exposes no completeness query and passes a source io.EOF
// through when it lands on a metablock boundary, so input truncated exactly
// there decodes as a clean prefix rather than an error.
type brotliCodec struct{}

func (brotliCodec) algorithm() Algorithm { return Brotli }

func (brotliCodec) bound(n int) int {
	return n + n>>9 + 1536
}

func (c brotliCodec) compress(src []byte, level Level) ([]byte, error) {
	return compressViaEncoder(c, src, level)
}

func (c brotliCodec) decompress(src []byte) ([]byte, error) {
	return decompressViaDecoder(c, src)
}

func (brotliCodec) newEncoder(sink io.Writer, level Level) (io.WriteCloser, error) {
	// Brotli quality range is 0-11.
	return brotli.NewWriterLevel(sink, level.scale(0, 11)), nil
}

func (brotliCodec) newDecoder(src io.Reader) (io.ReadCloser, error) {
	return nopCloser{brotli.NewReader(src)}, nil
}
