package audit

import (
	"fmt"
	"os"
	"time"

	"RoomChat/logger"
	"RoomChat/tools/errs"
	"RoomChat/tools/safe"
)

// Sink records connection-level events. Implementations must never block or
// fail the caller.
type Sink interface {
	Record(event string)
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) Record(string) {}

// FileSink appends timestamped lines to a log file through a buffered channel
// and a single writer goroutine. When the buffer is full the event is dropped.
type FileSink struct {
	ch   chan string
	f    *os.File
	done chan struct{}
}

func NewFileSink(path string, buffer int) (*FileSink, error) {
	if buffer <= 0 {
		buffer = 256
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errs.WrapMsg(err, "open audit log", "path", path)
	}
	s := &FileSink{
		ch:   make(chan string, buffer),
		f:    f,
		done: make(chan struct{}),
	}
	safe.SafeGo(s.loop)
	return s, nil
}

func (s *FileSink) Record(event string) {
	select {
	case s.ch <- event:
	default:
		logger.Warnf("[Audit] buffer full, dropping event")
	}
}

// Close flushes pending events and closes the file.
func (s *FileSink) Close() {
	close(s.ch)
	<-s.done
}

func (s *FileSink) loop() {
	defer close(s.done)
	for event := range s.ch {
		if _, err := fmt.Fprintf(s.f, "[%s] %s\n", time.Now().Format(time.RFC3339), event); err != nil {
			logger.Errorf("[Audit] write failed: %v", err)
		}
	}
	_ = s.f.Close()
}
