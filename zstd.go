//go:build !nozstd

package squash

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

func init() {
	register(zstdCodec{})
}

// zstdCodec wraps klauspost's zstd. Encoder concurrency is pinned to 1 to
// keep the per-context single-writer discipline; zero frames are enabled so
// empty input still round-trips through a decodable frame.
type zstdCodec struct{}

func (zstdCodec) algorithm() Algorithm { return Zstd }

func (zstdCodec) bound(n int) int {
	return n + n>>8 + 512
}

func (zstdCodec) encoderOptions(level Level) []zstd.EOption {
	return []zstd.EOption{
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level.scale(1, 22))),
		zstd.WithEncoderConcurrency(1),
		zstd.WithZeroFrames(true),
	}
}

func (c zstdCodec) compress(src []byte, level Level) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, c.encoderOptions(level)...)
	if err != nil {
		return nil, codecErr(Zstd, "compress init", err)
	}
	out := enc.EncodeAll(src, make([]byte, 0, c.bound(len(src))))
	if err := enc.Close(); err != nil {
		return nil, codecErr(Zstd, "compress finish", err)
	}
	return out, nil
}

func (c zstdCodec) decompress(src []byte) ([]byte, error) {
	// The frame header may carry the exact decompressed size; use it to
	// allocate once, but refuse absurd declarations before touching memory.
	var h zstd.Header
	if err := h.Decode(src); err != nil {
		return nil, codecErr(Zstd, "decompress", err)
	}
	hint := decodeSizeHint(len(src))
	if h.HasFCS {
		if h.FrameContentSize > maxSizeHint {
			return nil, fmt.Errorf("%w: frame declares %d byte content", ErrAllocation, h.FrameContentSize)
		}
		hint = int(h.FrameContentSize)
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, codecErr(Zstd, "decompress init", err)
	}
	defer dec.Close()
	out, err := dec.DecodeAll(src, make([]byte, 0, hint))
	if err != nil {
		return nil, codecErr(Zstd, "decompress", err)
	}
	return out, nil
}

func (c zstdCodec) newEncoder(sink io.Writer, level Level) (io.WriteCloser, error) {
	return zstd.NewWriter(sink, c.encoderOptions(level)...)
}

func (zstdCodec) newDecoder(src io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(src, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}
