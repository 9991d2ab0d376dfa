// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"fmt"
	"io"
	"maps"
	"os"
	"sync"
	"time"
)

var _ Logger = (*DefaultLogger)(nil)

// LoggerOptions configures a DefaultLogger.
type LoggerOptions struct {
	// Level sets the minimum log level to output.
	Level LogLevel
	// Format selects the output format. Ignored if Formatter is set.
	Format LogFormat
	// Formatter overrides the formatter derived from Format.
	Formatter Formatter
	// Output defaults to os.Stderr.
	Output io.Writer
	// TimeFormat enables timestamps in text output when non-empty.
	TimeFormat string
	// ShowLevel prefixes text output with the level, e.g. [ERROR].
	ShowLevel bool
}

// DefaultLoggerOptions returns the options used by the CLI when no flags are given.
func DefaultLoggerOptions() LoggerOptions {
	return LoggerOptions{
		Level:     LevelInfo,
		Format:    FormatText,
		Output:    os.Stderr,
		ShowLevel: true,
	}
}

// output is the state a DefaultLogger shares with every logger derived from
// it: one lock around one writer, so lines from children never interleave.
type output struct {
	mu        sync.Mutex
	w         io.Writer
	formatter Formatter
	level     LogLevel
}

func (o *output) write(e LogEntry) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.level == LevelSilent || e.Level < o.level {
		return
	}
	data, err := o.formatter.Format(e)
	if err != nil {
		fmt.Fprintf(o.w, "logging error: %v\n", err)
		return
	}
	_, _ = o.w.Write(data)
}

// DefaultLogger renders entries through a Formatter. Loggers returned by
// WithFields share the parent's writer and level.
type DefaultLogger struct {
	out    *output
	fields map[string]interface{}
}

// NewLogger returns a text logger on stderr, at debug level when verbose.
func NewLogger(verbose bool) *DefaultLogger {
	opts := DefaultLoggerOptions()
	if verbose {
		opts.Level = LevelDebug
	}
	return NewLoggerWithOptions(opts)
}

// NewLoggerWithOptions builds a logger from opts.
func NewLoggerWithOptions(opts LoggerOptions) *DefaultLogger {
	o := &output{w: opts.Output, formatter: opts.Formatter, level: opts.Level}
	if o.w == nil {
		o.w = os.Stderr
	}
	if o.formatter == nil {
		if opts.Format == FormatJSON {
			o.formatter = &JSONFormatter{TimeFormat: opts.TimeFormat}
		} else {
			o.formatter = &TextFormatter{TimeFormat: opts.TimeFormat, ShowLevel: opts.ShowLevel}
		}
	}
	return &DefaultLogger{out: o}
}

// WithFields returns a child logger carrying the union of both field sets.
// Keys in fields win over inherited ones.
func (l *DefaultLogger) WithFields(fields map[string]interface{}) Logger {
	merged := maps.Clone(l.fields)
	if merged == nil {
		merged = make(map[string]interface{}, len(fields))
	}
	maps.Copy(merged, fields)
	return &DefaultLogger{out: l.out, fields: merged}
}

func (l *DefaultLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// SetLevel changes the level of l and every logger derived from it.
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.out.mu.Lock()
	l.out.level = level
	l.out.mu.Unlock()
}

func (l *DefaultLogger) GetLevel() LogLevel {
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	return l.out.level
}

// Silent reports whether debug messages are suppressed.
func (l *DefaultLogger) Silent() bool {
	return l.GetLevel() > LevelDebug
}

func (l *DefaultLogger) logf(level LogLevel, format string, args []interface{}) {
	l.out.write(LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   fmt.Sprintf(format, args...),
		Fields:    l.fields,
	})
}

func (l *DefaultLogger) Debug(format string, args ...interface{}) { l.logf(LevelDebug, format, args) }
func (l *DefaultLogger) Info(format string, args ...interface{})  { l.logf(LevelInfo, format, args) }
func (l *DefaultLogger) Warn(format string, args ...interface{})  { l.logf(LevelWarn, format, args) }
func (l *DefaultLogger) Error(format string, args ...interface{}) { l.logf(LevelError, format, args) }

func (l *DefaultLogger) Debugln(msg string) { l.logf(LevelDebug, "%s", []interface{}{msg}) }
func (l *DefaultLogger) Infoln(msg string)  { l.logf(LevelInfo, "%s", []interface{}{msg}) }
func (l *DefaultLogger) Warnln(msg string)  { l.logf(LevelWarn, "%s", []interface{}{msg}) }
func (l *DefaultLogger) Errorln(msg string) { l.logf(LevelError, "%s", []interface{}{msg}) }
