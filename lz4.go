//go:build !nolz4

package squash

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

func init() {
	register(lz4Codec{})
}

// lz4Codec wraps pierrec's lz4 block API in high-compression mode. Raw LZ4
// blocks are not self-delimiting and carry no size field, so both container
// formats here are this package's own:
//
//   - one-shot: a 4-byte little-endian original-size prefix followed by a
//     single HC block; the prefix's top bit marks a stored (uncompressed)
//     body for input the codec cannot shrink
//   - streaming: a sequence of blocks, each with a 2-byte original-size and
//     2-byte compressed-size header, sizes equal marking a stored block, and
//     a zero/zero header as the end-of-stream sentinel
type lz4Codec struct{}

const (
	// lz4MaxStreamBlock is the largest original size a streamed block header
	// can express. Larger writes are chunked into multiple blocks.
	lz4MaxStreamBlock = 0xFFFF

	// lz4StoredFlag marks a stored one-shot body in the size prefix.
	lz4StoredFlag = 1 << 31

	lz4StreamHeaderLen  = 4
	lz4OneShotPrefixLen = 4
)

func (lz4Codec) algorithm() Algorithm { return LZ4 }

func (lz4Codec) bound(n int) int {
	return lz4.CompressBlockBound(n) + lz4OneShotPrefixLen
}

// lz4HCLevel maps the normalized level onto pierrec's HC depth constants.
// Level 1 selects the fast (non-HC) path.
func lz4HCLevel(level Level) lz4.CompressionLevel {
	switch level {
	case MinLevel:
		return lz4.Fast
	default:
		return [...]lz4.CompressionLevel{
			lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5,
			lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
		}[level-2]
	}
}

// lz4CompressBlock compresses one independent block, returning 0 when the
// data is incompressible (the caller stores it raw).
func lz4CompressBlock(src, dst []byte, level Level) (int, error) {
	if lz4HCLevel(level) == lz4.Fast {
		return lz4.CompressBlock(src, dst, nil)
	}
	return lz4.CompressBlockHC(src, dst, lz4HCLevel(level), nil, nil)
}

func (c lz4Codec) compress(src []byte, level Level) ([]byte, error) {
	if len(src) > maxSizeHint {
		return nil, fmt.Errorf("%w: input exceeds lz4 block limit", ErrInvalidArgument)
	}
	out := make([]byte, lz4OneShotPrefixLen, c.bound(len(src)))
	binary.LittleEndian.PutUint32(out, uint32(len(src)))
	if len(src) == 0 {
		return out, nil
	}
	body := out[lz4OneShotPrefixLen:cap(out)]
	n, err := lz4CompressBlock(src, body, level)
	if err != nil {
		return nil, codecErr(LZ4, "compress", err)
	}
	if n == 0 {
		// Incompressible: store raw and flag it in the prefix.
		binary.LittleEndian.PutUint32(out, uint32(len(src))|lz4StoredFlag)
		return append(out, src...), nil
	}
	return out[:lz4OneShotPrefixLen+n], nil
}

func (lz4Codec) decompress(src []byte) ([]byte, error) {
	if len(src) < lz4OneShotPrefixLen {
		return nil, fmt.Errorf("%w: lz4 input shorter than size prefix", ErrCodec)
	}
	prefix := binary.LittleEndian.Uint32(src)
	stored := prefix&lz4StoredFlag != 0
	size := prefix &^ lz4StoredFlag
	if size > maxSizeHint {
		return nil, fmt.Errorf("%w: lz4 prefix declares %d byte content", ErrAllocation, size)
	}
	body := src[lz4OneShotPrefixLen:]
	switch {
	case size == 0:
		if len(body) != 0 {
			return nil, fmt.Errorf("%w: lz4 trailing bytes after empty block", ErrCodec)
		}
		return []byte{}, nil
	case stored:
		if len(body) != int(size) {
			return nil, fmt.Errorf("%w: lz4 stored block size mismatch", ErrCodec)
		}
		return append([]byte(nil), body...), nil
	}
	dst := make([]byte, size)
	n, err := lz4.UncompressBlock(body, dst)
	if err != nil {
		return nil, codecErr(LZ4, "decompress", err)
	}
	if n != int(size) {
		return nil, fmt.Errorf("%w: lz4 decoded %d bytes, prefix declared %d", ErrCodec, n, size)
	}
	return dst, nil
}

func (lz4Codec) newEncoder(sink io.Writer, level Level) (io.WriteCloser, error) {
	return &lz4BlockWriter{sink: sink, level: level}, nil
}

func (lz4Codec) newDecoder(src io.Reader) (io.ReadCloser, error) {
	return &lz4BlockReader{src: src}, nil
}

// lz4BlockWriter emits the streaming block framing described on lz4Codec.
// Each block is compressed independently, so the decoder needs no rolling
// window of its own.
type lz4BlockWriter struct {
	sink    io.Writer
	level   Level
	scratch []byte
	closed  bool
}

func (w *lz4BlockWriter) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		blk := p
		if len(blk) > lz4MaxStreamBlock {
			blk = blk[:lz4MaxStreamBlock]
		}
		if err := w.writeBlock(blk); err != nil {
			return 0, err
		}
		p = p[len(blk):]
	}
	return total, nil
}

func (w *lz4BlockWriter) writeBlock(blk []byte) error {
	if cap(w.scratch) < lz4.CompressBlockBound(len(blk)) {
		w.scratch = make([]byte, lz4.CompressBlockBound(lz4MaxStreamBlock))
	}
	n, err := lz4CompressBlock(blk, w.scratch[:cap(w.scratch)], w.level)
	if err != nil {
		return err
	}
	var hdr [lz4StreamHeaderLen]byte
	binary.LittleEndian.PutUint16(hdr[0:2], uint16(len(blk)))
	body := blk
	if n > 0 && n < len(blk) {
		body = w.scratch[:n]
	}
	// Sizes equal means the block is stored raw.
	binary.LittleEndian.PutUint16(hdr[2:4], uint16(len(body)))
	if _, err := w.sink.Write(hdr[:]); err != nil {
		return err
	}
	_, err = w.sink.Write(body)
	return err
}

func (w *lz4BlockWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	// Zero/zero header is the explicit end-of-stream sentinel.
	var sentinel [lz4StreamHeaderLen]byte
	_, err := w.sink.Write(sentinel[:])
	return err
}

// lz4BlockReader decodes the streaming block framing. Read returns io.EOF
// once the zero/zero sentinel has been consumed.
type lz4BlockReader struct {
	src  io.Reader
	out  []byte
	done bool
}

func (r *lz4BlockReader) Read(p []byte) (int, error) {
	for len(r.out) == 0 {
		if r.done {
			return 0, io.EOF
		}
		if err := r.nextBlock(); err != nil {
			return 0, err
		}
	}
	n := copy(p, r.out)
	r.out = r.out[n:]
	return n, nil
}

func (r *lz4BlockReader) nextBlock() error {
	var hdr [lz4StreamHeaderLen]byte
	if _, err := io.ReadFull(r.src, hdr[:]); err != nil {
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	orig := int(binary.LittleEndian.Uint16(hdr[0:2]))
	comp := int(binary.LittleEndian.Uint16(hdr[2:4]))
	if orig == 0 && comp == 0 {
		r.done = true
		return nil
	}
	if orig == 0 || comp == 0 {
		return fmt.Errorf("lz4 block header with zero size (orig=%d comp=%d)", orig, comp)
	}
	block := make([]byte, comp)
	if _, err := io.ReadFull(r.src, block); err != nil {
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	if comp == orig {
		r.out = block
		return nil
	}
	dst := make([]byte, orig)
	n, err := lz4.UncompressBlock(block, dst)
	if err != nil {
		return err
	}
	if n != orig {
		return fmt.Errorf("lz4 block decoded %d bytes, header declared %d", n, orig)
	}
	r.out = dst
	return nil
}

func (*lz4BlockReader) Close() error { return nil }
