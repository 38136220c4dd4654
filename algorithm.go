package squash

import (
	"fmt"
	"strings"
)

// Algorithm identifies one of the wrapped compression codecs. The set is
// closed: values outside it, and values whose adapter was excluded from the
// build, fail lookup with ErrInvalidArgument.
type Algorithm uint8

const (
	Zlib Algorithm = iota + 1
	Zstd
	Brotli
	LZ4
	Bzip2
	XZ

	maxAlgorithm = XZ
)

func (a Algorithm) String() string {
	switch a {
	case Zlib:
		return "zlib"
	case Zstd:
		return "zstd"
	case Brotli:
		return "brotli"
	case LZ4:
		return "lz4"
	case Bzip2:
		return "bzip2"
	case XZ:
		return "xz"
	default:
		return fmt.Sprintf("algorithm(%d)", uint8(a))
	}
}

// Supported reports whether the algorithm's adapter is compiled into this
// build.
func (a Algorithm) Supported() bool {
	_, err := lookup(a)
	return err == nil
}

// ParseAlgorithm resolves a name to an Algorithm. Names are trimmed and
// matched case-insensitively; common aliases are accepted.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zlib", "deflate":
		return Zlib, nil
	case "zstd", "zstandard":
		return Zstd, nil
	case "brotli", "br":
		return Brotli, nil
	case "lz4":
		return LZ4, nil
	case "bzip2", "bz2":
		return Bzip2, nil
	case "xz", "lzma":
		return XZ, nil
	default:
		return 0, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidArgument, s)
	}
}

// Algorithms returns the algorithms compiled into this build, in enum order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, 0, int(maxAlgorithm))
	for a := Algorithm(1); a <= maxAlgorithm; a++ {
		if a.Supported() {
			out = append(out, a)
		}
	}
	return out
}
