//go:build !nozlib

package squash

import (
	"io"

	"github.com/klauspost/compress/zlib"
)

func init() {
	register(zlibCodec{})
}

// zlibCodec wraps klauspost's zlib (deflate with a zlib container). The
// container carries no decompressed-size field, so one-shot decompression
// goes through the shared growth policy.
type zlibCodec struct{}

func (zlibCodec) algorithm() Algorithm { return Zlib }

// deflateBound: worst case for raw deflate plus the 2-byte header and 4-byte
// checksum of the zlib wrapper.
func (zlibCodec) bound(n int) int {
	return n + n>>12 + n>>14 + n>>25 + 13
}

func (c zlibCodec) compress(src []byte, level Level) ([]byte, error) {
	return compressViaEncoder(c, src, level)
}

func (c zlibCodec) decompress(src []byte) ([]byte, error) {
	return decompressViaDecoder(c, src)
}

func (zlibCodec) newEncoder(sink io.Writer, level Level) (io.WriteCloser, error) {
	return zlib.NewWriterLevel(sink, level.scale(1, 9))
}

func (zlibCodec) newDecoder(src io.Reader) (io.ReadCloser, error) {
	return zlib.NewReader(src)
}
