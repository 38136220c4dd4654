package squash

import "fmt"

// registry is the static algorithm table, populated at init time by each
// adapter compiled into the build. Index is the Algorithm value itself.
var registry [maxAlgorithm + 1]codec

func register(c codec) {
	registry[c.algorithm()] = c
}

// lookup resolves an Algorithm to its compiled-in adapter. There is no
// fallback: an unknown or excluded algorithm is an error, never a silent
// substitution.
func lookup(alg Algorithm) (codec, error) {
	if int(alg) < len(registry) {
		if c := registry[alg]; c != nil {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: unsupported algorithm %s", ErrInvalidArgument, alg)
}
