// Package squash is a unified façade over third-party compression codecs
// (zlib, zstd, brotli, lz4, bzip2, xz), exposing one-shot and streaming
// compress/decompress behind a single algorithm-selectable interface. The
// algorithms themselves come from external libraries; this package supplies
// routing, buffer lifecycle, error translation, and uniform streaming
// semantics.
package squash

import "fmt"

// Compress compresses data with the selected algorithm at a normalized
// level (1 = fastest, 10 = smallest). The returned buffer is owned by the
// caller; no reference is retained.
func Compress(data []byte, alg Algorithm, level Level) ([]byte, error) {
	if err := level.validate(); err != nil {
		return nil, err
	}
	c, err := lookup(alg)
	if err != nil {
		return nil, err
	}
	return c.compress(data, level)
}

// Decompress restores data previously compressed with the same algorithm.
// Empty input is rejected: every supported container is non-empty even for
// empty original data.
func Decompress(data []byte, alg Algorithm) ([]byte, error) {
	c, err := lookup(alg)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidArgument)
	}
	return c.decompress(data)
}

// Compressor binds an algorithm and a default level, mirroring the
// package-level functions for callers that route many payloads through one
// configuration. It holds no mutable state and is safe for concurrent use.
type Compressor struct {
	alg   Algorithm
	level Level
}

// Option configures a Compressor
type Option interface {
	apply(*Compressor)
}

// funcOpt wraps a function as an Option
type funcOpt func(*Compressor)

func (f funcOpt) apply(c *Compressor) {
	f(c)
}

// WithLevel sets the default compression level (default: 3)
func WithLevel(level Level) Option {
	return funcOpt(func(c *Compressor) {
		c.level = level
	})
}

// New creates a Compressor for the algorithm. The algorithm must be
// compiled into this build and the configured level valid.
func New(alg Algorithm, opts ...Option) (*Compressor, error) {
	if _, err := lookup(alg); err != nil {
		return nil, err
	}
	c := &Compressor{alg: alg, level: DefaultLevel}
	for _, opt := range opts {
		opt.apply(c)
	}
	if err := c.level.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Compress compresses data at the configured level.
func (c *Compressor) Compress(data []byte) ([]byte, error) {
	return Compress(data, c.alg, c.level)
}

// Decompress restores data compressed with this Compressor's algorithm.
func (c *Compressor) Decompress(data []byte) ([]byte, error) {
	return Decompress(data, c.alg)
}

// Algorithm returns the bound algorithm.
func (c *Compressor) Algorithm() Algorithm { return c.alg }

// Level returns the configured default level.
func (c *Compressor) Level() Level { return c.level }
