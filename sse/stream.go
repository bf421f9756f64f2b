package sse

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
)

// ErrStreamClosed is returned by Send/SendComment once the stream has
// been closed.
var ErrStreamClosed = errors.New("sse: stream closed")

// StreamConfig configures a Stream. Context and Sink are required;
// QueueSize has a default matching an ordinary interactive connection.
type StreamConfig struct {
	// Context controls the Stream's lifetime: cancellation triggers
	// the same shutdown sequence as an explicit Close.
	Context context.Context
	// Sink receives the raw encoded bytes of every queued message, in
	// order. Typically a buffered net.Conn writer.
	Sink io.Writer
	// QueueSize bounds the number of encoded-but-unsent messages held
	// in memory. Defaults to 64.
	QueueSize int
}

func (c *StreamConfig) validate() error {
	if c.Context == nil {
		return errors.New("sse: missing context")
	}
	if c.Sink == nil {
		return errors.New("sse: missing sink")
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 64
	}
	return nil
}

// Stream serializes concurrent Send/SendComment calls into an ordered
// byte sequence written to a single sink, off the caller's goroutine.
// It is the queue/heartbeat/close-signal machinery an sse.send event
// handler drives; the gateway event vocabulary (sse.start, sse.send,
// sse.comment, sse.close) sits one layer above this.
//
// A Stream is bound to a single connection and must not be reused
// after Close.
type Stream struct {
	cfg         StreamConfig
	closed      atomic.Bool
	wg          sync.WaitGroup
	closeSignal chan struct{}
	queue       chan []byte
	mu          sync.Mutex
	errs        []error
}

// NewStream validates cfg and starts the Stream's background writer
// and context-watcher goroutines.
func NewStream(cfg StreamConfig) (*Stream, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	s := &Stream{
		cfg:         cfg,
		closeSignal: make(chan struct{}),
		queue:       make(chan []byte, cfg.QueueSize),
	}
	s.wg.Add(2)
	go s.watchContext()
	go s.drain()
	return s, nil
}

func (s *Stream) recordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.errs = append(s.errs, err)
	s.mu.Unlock()
}

func (s *Stream) write(b []byte) error {
	_, err := s.cfg.Sink.Write(b)
	return err
}

func (s *Stream) watchContext() {
	defer s.wg.Done()
	select {
	case <-s.closeSignal:
	case <-s.cfg.Context.Done():
	}
	// Record a cancellation whichever way the stream ends, so a Close
	// issued after the context was cancelled still reports it.
	if err := s.cfg.Context.Err(); err != nil {
		s.recordError(err)
	}
	// Close itself waits on this goroutine, so the cancellation path
	// only flips the flag and signals the writer.
	if !s.closed.Swap(true) {
		close(s.closeSignal)
	}
}

func (s *Stream) drain() {
	defer s.wg.Done()
	for {
		select {
		case <-s.closeSignal:
			// Flush whatever is already queued before returning; no
			// further sends are accepted once closed flips true in
			// Close, so this drains a bounded, final backlog.
			for {
				select {
				case msg := <-s.queue:
					s.recordError(s.write(msg))
				default:
					return
				}
			}
		case msg := <-s.queue:
			s.recordError(s.write(msg))
		}
	}
}

// Send encodes msg and enqueues it for delivery. Blocks only if the
// queue is full; returns ErrStreamClosed once the stream has been
// closed, or propagates an Encode error (invalid event name, empty
// message).
func (s *Stream) Send(msg *Message) error {
	if s.closed.Load() {
		return ErrStreamClosed
	}
	encoded, err := Encode(msg)
	if err != nil {
		return err
	}
	select {
	case s.queue <- encoded:
		return nil
	case <-s.closeSignal:
		return ErrStreamClosed
	}
}

// SendComment enqueues a colon-prefixed comment line, used both for
// application-originated sse.comment events and for heartbeat pings.
func (s *Stream) SendComment(comment string) error {
	if s.closed.Load() {
		return ErrStreamClosed
	}
	encoded := EncodeComment(comment)
	select {
	case s.queue <- encoded:
		return nil
	case <-s.closeSignal:
		return ErrStreamClosed
	}
}

// Close signals the background goroutines to stop, waits for the
// queue to drain, and returns any errors recorded along the way.
// Idempotent: subsequent calls return the same accumulated error.
func (s *Stream) Close() error {
	if s.closed.Swap(true) {
		return s.joinedErr()
	}
	close(s.closeSignal)
	s.wg.Wait()
	return s.joinedErr()
}

func (s *Stream) joinedErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return errors.Join(s.errs...)
}
