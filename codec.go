package squash

import (
	"bytes"
	"io"
)

// codec is the per-algorithm capability set: one-shot compress and
// decompress, plus constructors for the incremental encoder and decoder the
// streaming contexts drive. Adapters never leak codec-specific types across
// this boundary.
type codec interface {
	algorithm() Algorithm

	// bound returns a worst-case compressed size for n input bytes, used to
	// pre-size one-shot output buffers.
	bound(n int) int

	// compress produces the complete compressed representation of src at the
	// already-validated normalized level.
	compress(src []byte, level Level) ([]byte, error)

	// decompress produces the complete original data. Sizing strategy is
	// codec-specific: an exact container hint where one exists, the shared
	// growth policy otherwise.
	decompress(src []byte) ([]byte, error)

	// newEncoder returns the codec's incremental encoder writing its output
	// to sink. Close finalizes the stream.
	newEncoder(sink io.Writer, level Level) (io.WriteCloser, error)

	// newDecoder returns the codec's incremental decoder pulling compressed
	// bytes from src. Read returns io.EOF at end of stream.
	newDecoder(src io.Reader) (io.ReadCloser, error)
}

// compressViaEncoder implements one-shot compression for codecs whose Go
// binding only exposes the incremental encoder. The sink is pre-sized to the
// codec's bound so the single Write/Close pair normally costs one allocation.
func compressViaEncoder(c codec, src []byte, level Level) ([]byte, error) {
	sink := bytes.NewBuffer(make([]byte, 0, c.bound(len(src))))
	enc, err := c.newEncoder(sink, level)
	if err != nil {
		return nil, codecErr(c.algorithm(), "compress init", err)
	}
	if _, err := enc.Write(src); err != nil {
		return nil, codecErr(c.algorithm(), "compress", err)
	}
	if err := enc.Close(); err != nil {
		return nil, codecErr(c.algorithm(), "compress finish", err)
	}
	return sink.Bytes(), nil
}

// decompressViaDecoder implements one-shot decompression for codecs without
// a usable size hint, reading through the bounded growth policy.
func decompressViaDecoder(c codec, src []byte) ([]byte, error) {
	dec, err := c.newDecoder(bytes.NewReader(src))
	if err != nil {
		return nil, codecErr(c.algorithm(), "decompress init", err)
	}
	defer dec.Close()

	out, err := readBounded(dec, decodeSizeHint(len(src)))
	if err != nil {
		if IsBufferTooSmall(err) {
			return nil, err
		}
		return nil, codecErr(c.algorithm(), "decompress", err)
	}
	return out, nil
}

// nopCloser adapts decoders that have no Close of their own.
type nopCloser struct {
	io.Reader
}

func (nopCloser) Close() error { return nil }
