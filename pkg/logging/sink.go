package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// StdoutDestination routes trace output to standard output
const StdoutDestination = "__stdout__"

// TraceLevel is the level of an explicit trace destination
const TraceLevel = "trace"

// Sink owns a logger and the file behind it, if any
type Sink struct {
	logger hclog.Logger
	writer *PrefixWriter
	file   *os.File
}

func newSink(name, level string, output io.Writer, file *os.File) *Sink {
	logger, writer := newLogger(name, level, output)
	return &Sink{logger: logger, writer: writer, file: file}
}

// Open returns the sink for a trace destination. An empty destination logs to
// stderr at level; StdoutDestination traces to stdout; anything else is a file
// that is replaced and traced to.
func Open(name, destination, level string, stdout, stderr io.Writer) (*Sink, error) {
	switch destination {
	case "":
		return newSink(name, level, stderr, nil), nil
	case StdoutDestination:
		return newSink(name, TraceLevel, stdout, nil), nil
	}

	file, err := os.Create(destination)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", destination, err)
	}
	return newSink(name, TraceLevel, file, file), nil
}

// Logger returns the sink's logger
func (s *Sink) Logger() hclog.Logger {
	return s.logger
}

// Close flushes pending output and closes the log file. It is safe to call
// more than once.
func (s *Sink) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.writer != nil {
		err = s.writer.Flush()
	}
	if s.file != nil {
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
		s.file = nil
	}
	return err
}
