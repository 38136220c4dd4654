package squash

import "fmt"

// Level is the normalized compression level exposed to callers:
// 1 is fastest, 10 is smallest. Each adapter scales it onto the codec's
// native range before any native call is made.
type Level int

const (
	MinLevel     Level = 1
	MaxLevel     Level = 10
	DefaultLevel Level = 3
)

func (l Level) validate() error {
	if l < MinLevel || l > MaxLevel {
		return fmt.Errorf("%w: compression level must be between %d and %d, got %d",
			ErrInvalidArgument, MinLevel, MaxLevel, l)
	}
	return nil
}

// scale maps the normalized range linearly onto a codec's native [lo, hi]
// range. Endpoints map to endpoints, so MinLevel is always the codec's
// fastest setting and MaxLevel its smallest.
func (l Level) scale(lo, hi int) int {
	return lo + int(l-MinLevel)*(hi-lo)/int(MaxLevel-MinLevel)
}
