// Package telemetry provides the tracing collaborator that the pipeline
// drivers (pipeline.Decoder, pipeline.Encoder) accept optionally; a nil
// Logger means silent operation. This
// keeps the show_* debug branches out of the hot loop and behind a
// single interface, per Design Notes.
package telemetry

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the tracing interface the pipeline drivers accept. New and
// NewRotating build one over *log.Logger from github.com/charmbracelet/log.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// charmLogger adapts *log.Logger to Logger.
type charmLogger struct {
	l *log.Logger
}

func (c *charmLogger) Debugf(format string, args ...interface{}) { c.l.Debug(sprintf(format, args...)) }
func (c *charmLogger) Infof(format string, args ...interface{})  { c.l.Info(sprintf(format, args...)) }
func (c *charmLogger) Warnf(format string, args ...interface{})  { c.l.Warn(sprintf(format, args...)) }
func (c *charmLogger) Errorf(format string, args ...interface{}) { c.l.Error(sprintf(format, args...)) }

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// New builds a Logger writing to w (stderr if nil) at the given level
// name ("debug", "info", "warn", "error"; anything else defaults to
// "info").
func New(w io.Writer, level string) Logger {
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{ReportTimestamp: true})
	l.SetLevel(parseLevel(level))
	return &charmLogger{l: l}
}

// NewRotating builds a Logger that writes through a rotating file via
// gopkg.in/natefinch/lumberjack.v2, mirroring the teacher's file-log
// roller pattern (cmd/rv).
func NewRotating(path string, maxSizeMB, maxBackups, maxAgeDays int, level string) Logger {
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	return New(lj, level)
}

func parseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
