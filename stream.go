package squash

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Stream contexts follow one lifecycle regardless of codec:
//
//	Created -> Writing (repeatable) -> Finished -> Destroyed
//
// Contexts are single-writer: Write/Finish/Destroy on the same context must
// be externally serialized. Independent contexts are safe to use from
// separate goroutines.
type streamState uint8

const (
	stateCreated streamState = iota
	stateWriting
	stateFinished
	stateDestroyed
)

// defaultPumpBuffer is the scratch size the decode pump reads with.
const defaultPumpBuffer = 32 << 10

// StreamWriter is an incremental compression context. Output is produced
// into caller-supplied buffers; whatever does not fit stays buffered inside
// the context and is returned by subsequent Write or Finish calls.
type StreamWriter struct {
	alg    Algorithm
	enc    io.WriteCloser
	sink   bytes.Buffer
	state  streamState
	closed bool  // enc.Close already called
	err    error // terminal encoder error; poisons the context
}

// NewStreamWriter opens a streaming compression context for the algorithm at
// the given normalized level. Level and algorithm are validated before any
// native state is allocated.
func NewStreamWriter(alg Algorithm, level Level) (*StreamWriter, error) {
	if err := level.validate(); err != nil {
		return nil, err
	}
	c, err := lookup(alg)
	if err != nil {
		return nil, err
	}
	w := &StreamWriter{alg: alg}
	enc, err := c.newEncoder(&w.sink, level)
	if err != nil {
		return nil, codecErr(alg, "stream open", err)
	}
	w.enc = enc
	return w, nil
}

// Algorithm returns the codec this context compresses with.
func (w *StreamWriter) Algorithm() Algorithm { return w.alg }

// Write feeds input into the compressor and copies up to cap(dst) produced
// bytes into dst, returning how many were copied. All of input is consumed;
// output that does not fit in dst remains buffered for later calls. Write
// fails once Finish has completed or the context was destroyed, and an
// encoder error poisons the context permanently.
func (w *StreamWriter) Write(input, dst []byte) (int, error) {
	switch w.state {
	case stateDestroyed:
		return 0, fmt.Errorf("%w: write on destroyed stream", ErrInvalidArgument)
	case stateFinished:
		return 0, fmt.Errorf("%w: write after finish", ErrInvalidArgument)
	}
	if w.closed {
		return 0, fmt.Errorf("%w: write after finish", ErrInvalidArgument)
	}
	if w.err != nil {
		return 0, w.err
	}
	w.state = stateWriting
	if len(input) > 0 {
		if _, err := w.enc.Write(input); err != nil {
			w.err = codecErr(w.alg, "stream compress", err)
			return 0, w.err
		}
	}
	return w.drain(dst), nil
}

// Finish signals end-of-stream to the encoder and drains buffered output
// into dst. done reports whether everything has been flushed; callers must
// keep calling Finish (with fresh buffers) until done is true.
func (w *StreamWriter) Finish(dst []byte) (n int, done bool, err error) {
	if w.state == stateDestroyed {
		return 0, false, fmt.Errorf("%w: finish on destroyed stream", ErrInvalidArgument)
	}
	if w.err != nil {
		return 0, false, w.err
	}
	if !w.closed {
		w.closed = true
		if err := w.enc.Close(); err != nil {
			w.err = codecErr(w.alg, "stream finish", err)
			return 0, false, w.err
		}
	}
	n = w.drain(dst)
	if w.sink.Len() == 0 {
		w.state = stateFinished
		return n, true, nil
	}
	return n, false, nil
}

// Destroy releases the native encoder state. Safe to call from any state,
// and safe to call more than once; only the first call does work.
func (w *StreamWriter) Destroy() {
	if w.state == stateDestroyed {
		return
	}
	if !w.closed {
		w.closed = true
		if err := w.enc.Close(); err != nil {
			log.Debug("encoder close during destroy", "algorithm", w.alg.String(), "error", err)
		}
	}
	w.state = stateDestroyed
	w.sink.Reset()
	w.enc = nil
}

func (w *StreamWriter) drain(dst []byte) int {
	n := copy(dst, w.sink.Bytes())
	w.sink.Next(n)
	return n
}

// StreamReader is an incremental decompression context.
//
// Go decompressors pull from an io.Reader, while this contract pushes bytes
// in. The two are bridged by running the decoder on an internal goroutine
// against a condition-variable-gated input queue: Write appends input and
// blocks until the decoder has consumed it and parked again, which makes the
// call externally synchronous and leaves all decoded output buffered here.
type StreamReader struct {
	alg Algorithm

	mu   sync.Mutex
	cond *sync.Cond

	pending []byte       // compressed input not yet consumed by the decoder
	parked  bool         // decoder is blocked waiting for input
	closed  bool         // input side closed (Finish or Destroy)
	out     bytes.Buffer // decoded output not yet handed to the caller
	done    bool         // decoder goroutine has exited
	decErr  error        // terminal decoder error, nil on clean end of stream

	state  streamState
	exited chan struct{}
}

// ReaderOption configures a StreamReader.
type ReaderOption interface {
	apply(*readerConfig)
}

type readerConfig struct {
	pumpBuffer int
}

type readerFuncOpt func(*readerConfig)

func (f readerFuncOpt) apply(c *readerConfig) { f(c) }

// WithPumpBuffer sets the scratch buffer size the internal decode loop reads
// with (default 32 KiB).
func WithPumpBuffer(n int) ReaderOption {
	return readerFuncOpt(func(c *readerConfig) {
		if n > 0 {
			c.pumpBuffer = n
		}
	})
}

// NewStreamReader opens a streaming decompression context for the algorithm.
func NewStreamReader(alg Algorithm, opts ...ReaderOption) (*StreamReader, error) {
	c, err := lookup(alg)
	if err != nil {
		return nil, err
	}
	cfg := readerConfig{pumpBuffer: defaultPumpBuffer}
	for _, o := range opts {
		o.apply(&cfg)
	}
	r := &StreamReader{alg: alg, exited: make(chan struct{})}
	r.cond = sync.NewCond(&r.mu)
	go r.pump(c, cfg.pumpBuffer)
	return r, nil
}

// Algorithm returns the codec this context decompresses with.
func (r *StreamReader) Algorithm() Algorithm { return r.alg }

// pump runs the codec decoder to completion. Decoder construction happens
// here too: several codecs read their stream header inside the constructor,
// which must not block the caller of NewStreamReader.
func (r *StreamReader) pump(c codec, bufSize int) {
	defer close(r.exited)

	dec, err := c.newDecoder(pumpSource{r})
	if err != nil {
		r.finish(err)
		return
	}
	defer dec.Close()

	buf := make([]byte, bufSize)
	for {
		n, err := dec.Read(buf)
		r.mu.Lock()
		if n > 0 {
			r.out.Write(buf[:n])
		}
		r.mu.Unlock()
		if err != nil {
			if err == io.EOF {
				err = nil
			}
			r.finish(err)
			return
		}
	}
}

func (r *StreamReader) finish(err error) {
	r.mu.Lock()
	r.done = true
	r.decErr = err
	r.cond.Broadcast()
	r.mu.Unlock()
}

// pumpSource is the io.Reader the codec decoder pulls compressed bytes from.
type pumpSource struct {
	r *StreamReader
}

func (s pumpSource) Read(p []byte) (int, error) {
	r := s.r
	r.mu.Lock()
	defer r.mu.Unlock()
	for len(r.pending) == 0 && !r.closed {
		r.parked = true
		r.cond.Broadcast()
		r.cond.Wait()
	}
	r.parked = false
	if len(r.pending) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

// Write feeds compressed bytes to the decoder and copies up to cap(dst)
// decoded bytes into dst. The call returns once the decoder has consumed all
// of input; decoded output beyond dst stays buffered. Write fails after the
// stream has finished, and a decoder error poisons the context permanently.
func (r *StreamReader) Write(input, dst []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.state {
	case stateDestroyed:
		return 0, fmt.Errorf("%w: write on destroyed stream", ErrInvalidArgument)
	case stateFinished:
		return 0, fmt.Errorf("%w: write after end of stream", ErrInvalidArgument)
	}
	if r.decErr != nil {
		return 0, codecErr(r.alg, "stream decompress", r.decErr)
	}
	r.state = stateWriting

	if !r.done && len(input) > 0 {
		r.pending = append(r.pending, input...)
		r.cond.Broadcast()
	}
	for !r.done && !(r.parked && len(r.pending) == 0) {
		r.cond.Wait()
	}
	if r.decErr != nil {
		return 0, codecErr(r.alg, "stream decompress", r.decErr)
	}
	n := copy(dst, r.out.Bytes())
	r.out.Next(n)
	if r.done && r.out.Len() == 0 {
		r.state = stateFinished
	}
	return n, nil
}

// Finish closes the input side of the stream and drains decoded output into
// dst. done reports completion; callers repeat Finish until it is true. A
// stream cut off mid-frame surfaces as a codec failure here.
func (r *StreamReader) Finish(dst []byte) (n int, done bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == stateDestroyed {
		return 0, false, fmt.Errorf("%w: finish on destroyed stream", ErrInvalidArgument)
	}
	if !r.closed {
		r.closed = true
		r.cond.Broadcast()
	}
	for !r.done {
		r.cond.Wait()
	}
	if r.decErr != nil {
		return 0, false, codecErr(r.alg, "stream decompress", r.decErr)
	}
	n = copy(dst, r.out.Bytes())
	r.out.Next(n)
	if r.out.Len() == 0 {
		r.state = stateFinished
		return n, true, nil
	}
	return n, false, nil
}

// IsFinished reports whether the decoder reached end of stream and all
// decoded output has been handed to the caller. Query-only.
func (r *StreamReader) IsFinished() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done && r.decErr == nil && r.out.Len() == 0
}

// Destroy releases the decoder. Safe to call from any state and more than
// once. Blocks until the internal goroutine has exited, so no resources
// outlive the call.
func (r *StreamReader) Destroy() {
	r.mu.Lock()
	if r.state == stateDestroyed {
		r.mu.Unlock()
		return
	}
	r.state = stateDestroyed
	r.closed = true
	r.pending = nil
	r.cond.Broadcast()
	r.mu.Unlock()

	<-r.exited
	r.mu.Lock()
	r.out.Reset()
	r.mu.Unlock()
}
