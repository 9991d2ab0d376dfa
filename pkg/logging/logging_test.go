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
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"testing"
)

func newBufferLogger(level LogLevel, format LogFormat) (*DefaultLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewLoggerWithOptions(LoggerOptions{
		Level:     level,
		Format:    format,
		Output:    buf,
		ShowLevel: true,
	}), buf
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name           string
		verbose        bool
		expectedSilent bool
		expectedLevel  LogLevel
	}{
		{"verbose mode", true, false, LevelDebug},
		{"default mode", false, true, LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(tt.verbose)
			if logger.Silent() != tt.expectedSilent {
				t.Errorf("Silent() = %v, want %v", logger.Silent(), tt.expectedSilent)
			}
			if logger.GetLevel() != tt.expectedLevel {
				t.Errorf("GetLevel() = %v, want %v", logger.GetLevel(), tt.expectedLevel)
			}
			if logger.out.w != os.Stderr {
				t.Error("NewLogger() should write to os.Stderr")
			}
		})
	}
}

func TestLookupLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{" warning ", LevelWarn, false},
		{"error", LevelError, false},
		{"off", LevelSilent, false},
		{"trace", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := LookupLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LookupLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("LookupLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if ParseLogLevel(tt.in) != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, ParseLogLevel(tt.in), tt.want)
			}
		})
	}
}

func TestParseLogFormat(t *testing.T) {
	for in, want := range map[string]LogFormat{"json": FormatJSON, " JSON ": FormatJSON, "text": FormatText, "xml": FormatText} {
		if got := ParseLogFormat(in); got != want {
			t.Errorf("ParseLogFormat(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDefaultLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatText)

	logger.Debug("debug %d", 1)
	logger.Info("info %d", 2)
	logger.Warn("warn %d", 3)
	logger.Errorln("error 4")

	got := buf.String()
	if strings.Contains(got, "debug 1") || strings.Contains(got, "info 2") {
		t.Errorf("messages below warn were written: %q", got)
	}
	if !strings.Contains(got, "[WARN] warn 3\n") {
		t.Errorf("missing warn line in %q", got)
	}
	if !strings.Contains(got, "[ERROR] error 4\n") {
		t.Errorf("missing error line in %q", got)
	}
}

func TestDefaultLogger_SilentWritesNothing(t *testing.T) {
	logger, buf := newBufferLogger(LevelSilent, FormatText)
	logger.Error("boom")
	if buf.Len() != 0 {
		t.Errorf("silent logger wrote %q", buf.String())
	}

	d := Discard()
	if d.GetLevel() != LevelSilent {
		t.Errorf("Discard().GetLevel() = %v", d.GetLevel())
	}
}

func TestTextFormatter_SortsFields(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)

	logger.WithFields(map[string]interface{}{"path": "a/b", "kind": "regular file", "depth": 2}).Infoln("hashed")

	want := "[INFO] hashed depth=2 kind=regular file path=a/b\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestJSONFormatter(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)

	logger.WithField("path", "x").Error("read failed: %s", "EIO")

	var entry jsonEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry.Level != "error" || entry.Message != "read failed: EIO" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Fields["path"] != "x" {
		t.Errorf("fields = %v", entry.Fields)
	}
	if entry.Timestamp == "" {
		t.Error("JSON entry should carry a timestamp")
	}
}

func TestWithFields_DoesNotMutateParent(t *testing.T) {
	parent, buf := newBufferLogger(LevelInfo, FormatText)
	child := parent.WithField("a", 1)

	parent.Infoln("parent")
	child.WithField("b", 2).Infoln("child")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if lines[0] != "[INFO] parent" {
		t.Errorf("parent line = %q", lines[0])
	}
	if lines[1] != "[INFO] child a=1 b=2" {
		t.Errorf("child line = %q", lines[1])
	}
}

func TestDefaultLogger_ConcurrentWrites(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)
	child := logger.WithField("worker", true)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				logger.Info("line %d", i)
			} else {
				child.Info("line %d", i)
			}
		}(i)
	}
	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 20 {
		t.Errorf("got %d lines, want 20", n)
	}
}

func TestEnsureLogger(t *testing.T) {
	if EnsureLogger(nil) == nil {
		t.Fatal("EnsureLogger(nil) returned nil")
	}
	l := Discard()
	if EnsureLogger(l) != l {
		t.Error("EnsureLogger() should return the given logger")
	}
}

func TestDefaultLogger_SetLevelReachesChildren(t *testing.T) {
	parent, buf := newBufferLogger(LevelError, FormatText)
	child := parent.WithField("k", "v")

	child.Infoln("dropped")
	parent.SetLevel(LevelInfo)
	child.Infoln("kept")

	if got := buf.String(); got != "[INFO] kept k=v\n" {
		t.Errorf("output = %q", got)
	}
	if child.Silent() != true || child.GetLevel() != LevelInfo {
		t.Errorf("child level = %v", child.GetLevel())
	}
}
