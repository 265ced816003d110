package diag

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Sink receives structured diagnostics from the render pipeline.
// Source identifies the emitting component ("skin", "view", "fb", ...).
// Nothing reported through a Sink is fatal; callers carry on after reporting.
type Sink interface {
	Logf(source string, format string, args ...interface{})
	Errorf(source string, format string, args ...interface{})
}

type NoopSink struct{}

func (NoopSink) Logf(source, format string, args ...interface{})   {}
func (NoopSink) Errorf(source, format string, args ...interface{}) {}

// WriterSink writes timestamped lines to a single io.Writer.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink { return &WriterSink{w: w} }

func (s *WriterSink) Logf(source string, format string, args ...interface{}) {
	s.write("LOG", source, format, args...)
}

func (s *WriterSink) Errorf(source string, format string, args ...interface{}) {
	s.write("ERROR", source, format, args...)
}

func (s *WriterSink) write(severity, source, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	s.mu.Lock()
	_, _ = io.WriteString(s.w, timestamp+" ["+severity+"] "+source+": "+msg+"\n")
	s.mu.Unlock()
}
