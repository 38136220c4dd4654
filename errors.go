package squash

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every failure surfaced by this package wraps exactly one
// of these sentinels, so callers can classify with errors.Is regardless of
// which codec produced it.
var (
	// ErrInvalidArgument covers bad levels, unknown or not-compiled-in
	// algorithms, and empty decompression input. These are rejected before
	// any codec call.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAllocation is returned when an output buffer cannot or will not be
	// obtained, e.g. a frame header declaring an absurd decompressed size.
	ErrAllocation = errors.New("output allocation refused")

	// ErrCodec is returned when the native compress/decompress call reports
	// an error or the input is corrupt. No partial result is returned.
	ErrCodec = errors.New("codec failure")

	// ErrBufferTooSmall is returned when the bounded growth policy ran out
	// of retries while sizing a decompression buffer.
	ErrBufferTooSmall = errors.New("destination buffer too small")
)

// IsInvalidArgument reports whether err is a validation failure.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsCodecFailure reports whether err originated in a native codec call.
func IsCodecFailure(err error) bool {
	return errors.Is(err, ErrCodec)
}

// IsBufferTooSmall is a helper to detect growth-policy exhaustion.
func IsBufferTooSmall(err error) bool {
	return errors.Is(err, ErrBufferTooSmall)
}

// IsAllocationFailure reports whether err is a refused allocation.
func IsAllocationFailure(err error) bool {
	return errors.Is(err, ErrAllocation)
}

// codecErr tags a native codec error with the algorithm and operation that
// produced it.
func codecErr(alg Algorithm, op string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", ErrCodec, alg, op, err)
}
