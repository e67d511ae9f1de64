package logging

import (
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// DefaultLevel is used when no level is configured
const DefaultLevel = "warn"

// jsonPrefix selects JSON output, e.g. "json:debug"
const jsonPrefix = "json:"

// LinePrefix returns the marker put in front of every text log line
func LinePrefix() string {
	if runtime.GOOS == "windows" {
		return "[jruby] "
	}
	return "💎 "
}

// NewLogger creates a new hclog logger with standard settings.
// A level of the form "json:<level>" switches to JSON output.
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	logger, _ := newLogger(name, level, output)
	return logger
}

// newLogger also returns the prefix writer, nil for JSON output.
func newLogger(name string, level string, output io.Writer) (hclog.Logger, *PrefixWriter) {
	if output == nil {
		output = os.Stderr
	}

	jsonFormat := strings.HasPrefix(level, jsonPrefix)
	level = strings.TrimPrefix(level, jsonPrefix)

	// Add prefix for non-JSON output
	var prefixed *PrefixWriter
	if !jsonFormat {
		prefixed = NewPrefixWriter(LinePrefix(), output)
		output = prefixed
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      ParseLevel(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts), prefixed
}

// ParseLevel maps a level name to an hclog level, falling back to warn
func ParseLevel(level string) hclog.Level {
	parsed := hclog.LevelFromString(strings.TrimSpace(level))
	if parsed == hclog.NoLevel {
		return hclog.LevelFromString(DefaultLevel)
	}
	return parsed
}
