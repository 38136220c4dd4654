//go:build !nobzip2

package squash

import (
	"io"

	"github.com/dsnet/compress/bzip2"
)

func init() {
	register(bzip2Codec{})
}

// bzip2Codec wraps dsnet's bzip2, the one pure-Go implementation with a
// writer (the standard library only decompresses).
type bzip2Codec struct{}

func (bzip2Codec) algorithm() Algorithm { return Bzip2 }

// Documented bzip2 worst case: about 1% expansion plus constant overhead.
func (bzip2Codec) bound(n int) int {
	return n + n/100 + 600
}

func (c bzip2Codec) compress(src []byte, level Level) ([]byte, error) {
	return compressViaEncoder(c, src, level)
}

func (c bzip2Codec) decompress(src []byte) ([]byte, error) {
	return decompressViaDecoder(c, src)
}

func (bzip2Codec) newEncoder(sink io.Writer, level Level) (io.WriteCloser, error) {
	return bzip2.NewWriter(sink, &bzip2.WriterConfig{Level: level.scale(1, 9)})
}

func (bzip2Codec) newDecoder(src io.Reader) (io.ReadCloser, error) {
	return bzip2.NewReader(src, new(bzip2.ReaderConfig))
}
