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

// Package logging provides the leveled logger shared by the walker and the CLI.
//
// Diagnostics always go to stderr by default: stdout carries the digest
// report and must stay machine readable.
package logging

import (
	"fmt"
	"slices"
	"strings"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	// LevelDebug is the most verbose level.
	LevelDebug LogLevel = iota
	// LevelInfo is used for progress messages.
	LevelInfo
	// LevelWarn is used for skipped entries and recoverable problems.
	LevelWarn
	// LevelError is used for per-entry failures.
	LevelError
	// LevelSilent disables all logging output.
	LevelSilent
)

var levelNames = [...]string{
	LevelDebug:  "debug",
	LevelInfo:   "info",
	LevelWarn:   "warn",
	LevelError:  "error",
	LevelSilent: "silent",
}

// ValidLogLevels lists the level names accepted on the command line.
var ValidLogLevels = levelNames[:]

// levelAliases are accepted by LookupLogLevel in addition to levelNames.
var levelAliases = map[string]LogLevel{
	"":        LevelInfo,
	"warning": LevelWarn,
	"none":    LevelSilent,
	"off":     LevelSilent,
}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLogLevel converts a level name to a LogLevel.
// Unknown names fall back to LevelInfo; use LookupLogLevel to reject them.
func ParseLogLevel(s string) LogLevel {
	level, _ := LookupLogLevel(s)
	return level
}

// LookupLogLevel is the strict form of ParseLogLevel. It is
// case-insensitive and treats the empty string as info.
func LookupLogLevel(s string) (LogLevel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if i := slices.Index(levelNames[:], name); i >= 0 {
		return LogLevel(i), nil
	}
	if l, ok := levelAliases[name]; ok {
		return l, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q (supported: %v)", s, ValidLogLevels)
}

// LogFormat selects how log entries are rendered.
type LogFormat int

const (
	// FormatText outputs human-readable text logs.
	FormatText LogFormat = iota
	// FormatJSON outputs one JSON object per line.
	FormatJSON
)

func (f LogFormat) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseLogFormat converts a format name to a LogFormat, defaulting to text.
func ParseLogFormat(s string) LogFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Logger is the logging contract used throughout the module.
type Logger interface {
	// Debug logs a message at debug level with printf-style formatting.
	Debug(format string, args ...interface{})
	// Debugln logs a message at debug level.
	Debugln(msg string)
	// Info logs a message at info level with printf-style formatting.
	Info(format string, args ...interface{})
	// Infoln logs a message at info level.
	Infoln(msg string)
	// Warn logs a message at warn level with printf-style formatting.
	Warn(format string, args ...interface{})
	// Warnln logs a message at warn level.
	Warnln(msg string)
	// Error logs a message at error level with printf-style formatting.
	Error(format string, args ...interface{})
	// Errorln logs a message at error level.
	Errorln(msg string)

	// GetLevel returns the minimum level that is emitted.
	GetLevel() LogLevel
	// Silent reports whether debug output is suppressed.
	Silent() bool

	// WithField returns a new Logger with the given key-value pair added.
	WithField(key string, value interface{}) Logger
	// WithFields returns a new Logger with the given fields added.
	WithFields(fields map[string]interface{}) Logger
}

// Default returns an info-level text logger writing to stderr.
func Default() Logger {
	return NewLogger(false)
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return NewLoggerWithOptions(LoggerOptions{Level: LevelSilent})
}

// EnsureLogger returns l if non-nil, otherwise a default logger.
func EnsureLogger(l Logger) Logger {
	if l == nil {
		return Default()
	}
	return l
}
