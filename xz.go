//go:build !noxz

package squash

import (
	"io"

	"github.com/ulikunitz/xz"
)

func init() {
	register(xzCodec{})
}

// xzCodec wraps ulikunitz's xz (LZMA2 in an xz container). The library has
// no preset levels, so the normalized level maps onto the dictionary
// capacities the xz presets 0-9 would use.
type xzCodec struct{}

var xzDictCaps = [10]int{
	256 << 10, // preset 0
	1 << 20,
	2 << 20,
	4 << 20,
	4 << 20,
	8 << 20,
	8 << 20,
	16 << 20,
	32 << 20,
	64 << 20, // preset 9
}

func (xzCodec) algorithm() Algorithm { return XZ }

// lzma_stream_buffer_bound shape: a third over input plus headers.
func (xzCodec) bound(n int) int {
	return n + n/3 + 128
}

func (c xzCodec) compress(src []byte, level Level) ([]byte, error) {
	return compressViaEncoder(c, src, level)
}

func (c xzCodec) decompress(src []byte) ([]byte, error) {
	return decompressViaDecoder(c, src)
}

func (xzCodec) newEncoder(sink io.Writer, level Level) (io.WriteCloser, error) {
	cfg := xz.WriterConfig{DictCap: xzDictCaps[level.scale(0, 9)]}
	return cfg.NewWriter(sink)
}

func (xzCodec) newDecoder(src io.Reader) (io.ReadCloser, error) {
	// SingleStream makes the reader report end of stream at the first
	// stream footer instead of probing for concatenated streams.
	cfg := xz.ReaderConfig{SingleStream: true}
	r, err := cfg.NewReader(src)
	if err != nil {
		return nil, err
	}
	return nopCloser{r}, nil
}
