package framework

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

const timestampFormat = "2006-01-02 15:04:05.000"

type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

func NullLogger() Logger { return nullLogger{} }

type prefixedLogger struct {
	base   Logger
	prefix string
}

func (p prefixedLogger) Printf(message string, args ...interface{}) {
	p.base.Printf(p.prefix+message, args...)
}

// LoggerWithPrefix returns a Logger that adds a prefix to every message.
func LoggerWithPrefix(base Logger, prefix string) Logger {
	if base == nil {
		return NullLogger()
	}
	return prefixedLogger{base: base, prefix: prefix}
}

type slogLogger struct {
	logger *slog.Logger
}

func (s slogLogger) Printf(message string, args ...interface{}) {
	s.logger.Log(context.Background(), slog.LevelDebug, fmt.Sprintf(message, args...))
}

// NewConsoleLogger returns a Logger for harness-level debug output, rendered with a
// colorized slog handler.
func NewConsoleLogger(w io.Writer, noColor bool) Logger {
	handler := tint.NewHandler(w, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	})
	return slogLogger{logger: slog.New(handler)}
}

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger accumulates messages so they can be shown later, e.g. only if the test
// that produced them fails. It is safe for concurrent use.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append([]CapturedMessage(nil), l.output...)
	l.lock.Unlock()
	return ret
}

func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s\n",
			prefix,
			m.Time.Format(timestampFormat),
			m.Message,
		)
	}
}
