package squash

import (
	"fmt"
	"io"
)

const (
	// minDecodeAlloc is the floor for heuristically sized decompression
	// buffers.
	minDecodeAlloc = 1024

	// maxGrowthRetries bounds how often a decompression buffer may double
	// before the operation fails. This caps worst-case memory blow-up from
	// corrupt or malicious inputs while tolerating legitimate high-ratio
	// expansion (2^10 over the initial estimate).
	maxGrowthRetries = 10

	// maxSizeHint is the largest decompressed size a container hint may
	// declare before the allocation is refused outright.
	maxSizeHint = 1<<31 - 1
)

// decodeSizeHint is the initial output size guess when the container carries
// no decompressed-size field: a 4x expansion estimate with a small floor.
func decodeSizeHint(inputLen int) int {
	h := 4 * inputLen
	if h < minDecodeAlloc {
		h = minDecodeAlloc
	}
	return h
}

// readBounded drains the decoder r into a buffer that starts at hint bytes
// and doubles on exhaustion, up to maxGrowthRetries. Decoder state is
// preserved across growth, so already-decoded bytes are never re-decoded.
// Returns ErrBufferTooSmall once the retry budget is spent.
func readBounded(r io.Reader, hint int) ([]byte, error) {
	if hint < minDecodeAlloc {
		hint = minDecodeAlloc
	}
	buf := make([]byte, hint)
	filled := 0
	for attempt := 0; ; attempt++ {
		for filled < len(buf) {
			n, err := r.Read(buf[filled:])
			filled += n
			if err == io.EOF {
				return buf[:filled], nil
			}
			if err != nil {
				return nil, err
			}
		}

		// Buffer full. Probe one byte to distinguish an exact fit from a
		// stream with more to give.
		var probe [1]byte
		n, err := r.Read(probe[:])
		if n == 0 && err == io.EOF {
			return buf, nil
		}
		if err != nil && err != io.EOF {
			return nil, err
		}
		if n > 0 && err == io.EOF {
			return append(buf, probe[0]), nil
		}
		if attempt+1 >= maxGrowthRetries {
			return nil, fmt.Errorf("%w: output still growing after %d doublings of %d bytes",
				ErrBufferTooSmall, maxGrowthRetries, hint)
		}
		grown := make([]byte, 2*len(buf))
		copy(grown, buf)
		if n > 0 {
			grown[filled] = probe[0]
			filled++
		}
		buf = grown
	}
}
