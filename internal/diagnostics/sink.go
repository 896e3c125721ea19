// Package diagnostics provides a bounded, non-blocking channel of machine
// diagnostic records. The machine publishes from its execution goroutine
// without ever stalling on a slow or absent consumer; when the buffer is
// full the oldest record is dropped and counted.
package diagnostics

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// DefaultCapacity is the record buffer size used by NewSink when the
// caller passes no positive capacity.
const DefaultCapacity = 256

// Level classifies a diagnostic record.
type Level uint8

// Record levels.
const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// String implements the Stringer interface.
func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Record is one diagnostic event emitted by the machine.
type Record struct {
	Time    time.Time
	Level   Level
	Message string
}

// Sink buffers diagnostic records for consumers that drain them at their
// own pace, such as a UI log pane polling at frame rate.
type Sink struct {
	records chan Record
	dropped atomic.Uint64
}

// NewSink returns a sink buffering up to capacity records.
func NewSink(capacity int) *Sink {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Sink{
		records: make(chan Record, capacity),
	}
}

// Publish adds a record to the buffer without blocking. If the buffer is
// full the oldest record is evicted and counted as dropped.
func (s *Sink) Publish(level Level, message string) {
	rec := Record{
		Time:    time.Now(),
		Level:   level,
		Message: message,
	}

	select {
	case s.records <- rec:
		return
	default:
	}

	// buffer full, evict the oldest record to make room
	select {
	case <-s.records:
		s.dropped.Add(1)
	default:
	}
	select {
	case s.records <- rec:
	default:
		s.dropped.Add(1)
	}
}

// Records returns the receive side of the buffer.
func (s *Sink) Records() <-chan Record {
	return s.records
}

// Drain returns all currently buffered records without blocking.
func (s *Sink) Drain() []Record {
	var recs []Record
	for {
		select {
		case rec := <-s.records:
			recs = append(recs, rec)
		default:
			return recs
		}
	}
}

// Dropped returns the number of records lost to buffer overflow.
func (s *Sink) Dropped() uint64 {
	return s.dropped.Load()
}

// Forward copies records into the logger until the context is cancelled.
// It is used in headless mode where no UI drains the sink.
func (s *Sink) Forward(ctx context.Context, logger *log.Logger) {
	for {
		select {
		case <-ctx.Done():
			return

		case rec := <-s.records:
			switch rec.Level {
			case LevelError:
				logger.Error(rec.Message)
			case LevelWarn:
				logger.Warn(rec.Message)
			default:
				logger.Info(rec.Message)
			}
		}
	}
}
