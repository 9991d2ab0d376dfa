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
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ Logger = (*ZapLogger)(nil)

// ZapLogger adapts a *zap.Logger to the Logger interface.
type ZapLogger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// NewZapLogger wraps an existing zap logger. A nil logger yields a no-op one.
func NewZapLogger(l *zap.Logger) *ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	l = l.WithOptions(zap.AddCallerSkip(1))
	return &ZapLogger{base: l, sugar: l.Sugar()}
}

// NewZapLoggerWithOptions builds a zap logger writing to stderr. FormatText
// selects zap's console encoder, FormatJSON its production JSON encoder.
// Output, Formatter and ShowLevel are ignored.
func NewZapLoggerWithOptions(opts LoggerOptions) (*ZapLogger, error) {
	if opts.Level == LevelSilent {
		return NewZapLogger(zap.NewNop()), nil
	}

	var cfg zap.Config
	if opts.Format == FormatJSON {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	}
	cfg.Level = zap.NewAtomicLevelAt(toZapLevel(opts.Level))
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Sampling = nil

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return NewZapLogger(l), nil
}

func toZapLevel(l LogLevel) zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Zap returns the underlying zap logger.
func (z *ZapLogger) Zap() *zap.Logger {
	return z.base
}

// Sync flushes buffered entries.
func (z *ZapLogger) Sync() error {
	return z.base.Sync()
}

func (z *ZapLogger) Debug(format string, args ...interface{}) { z.sugar.Debugf(format, args...) }
func (z *ZapLogger) Debugln(msg string)                       { z.sugar.Debug(msg) }
func (z *ZapLogger) Info(format string, args ...interface{})  { z.sugar.Infof(format, args...) }
func (z *ZapLogger) Infoln(msg string)                        { z.sugar.Info(msg) }
func (z *ZapLogger) Warn(format string, args ...interface{})  { z.sugar.Warnf(format, args...) }
func (z *ZapLogger) Warnln(msg string)                        { z.sugar.Warn(msg) }
func (z *ZapLogger) Error(format string, args ...interface{}) { z.sugar.Errorf(format, args...) }
func (z *ZapLogger) Errorln(msg string)                       { z.sugar.Error(msg) }

// GetLevel reports the lowest level the core accepts.
func (z *ZapLogger) GetLevel() LogLevel {
	core := z.base.Core()
	switch {
	case core.Enabled(zapcore.DebugLevel):
		return LevelDebug
	case core.Enabled(zapcore.InfoLevel):
		return LevelInfo
	case core.Enabled(zapcore.WarnLevel):
		return LevelWarn
	case core.Enabled(zapcore.ErrorLevel):
		return LevelError
	default:
		return LevelSilent
	}
}

func (z *ZapLogger) Silent() bool {
	return !z.base.Core().Enabled(zapcore.DebugLevel)
}

func (z *ZapLogger) WithField(key string, value interface{}) Logger {
	return z.WithFields(map[string]interface{}{key: value})
}

func (z *ZapLogger) WithFields(fields map[string]interface{}) Logger {
	zf := make([]zap.Field, 0, len(fields))
	for _, k := range sortedKeys(fields) {
		zf = append(zf, zap.Any(k, fields[k]))
	}
	l := z.base.With(zf...)
	return &ZapLogger{base: l, sugar: l.Sugar()}
}
