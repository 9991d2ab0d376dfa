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
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// LogEntry is a single record handed to a Formatter.
type LogEntry struct {
	Timestamp time.Time
	Level     LogLevel
	Message   string
	Fields    map[string]interface{}
}

// Formatter renders a LogEntry, newline included.
type Formatter interface {
	Format(entry LogEntry) ([]byte, error)
}

// TextFormatter renders "[LEVEL] message key=value ..." lines.
// Fields are sorted by key so output is stable.
type TextFormatter struct {
	// TimeFormat sets the time layout. Empty disables timestamps.
	TimeFormat string
	// ShowLevel controls the [LEVEL] prefix.
	ShowLevel bool
}

func (f *TextFormatter) Format(e LogEntry) ([]byte, error) {
	var b []byte
	if f.TimeFormat != "" {
		b = e.Timestamp.AppendFormat(b, f.TimeFormat)
		b = append(b, ' ')
	}
	if f.ShowLevel {
		b = append(b, '[')
		b = append(b, strings.ToUpper(e.Level.String())...)
		b = append(b, "] "...)
	}
	b = append(b, e.Message...)
	for _, k := range sortedKeys(e.Fields) {
		b = fmt.Appendf(b, " %s=%v", k, e.Fields[k])
	}
	return append(b, '\n'), nil
}

func sortedKeys(fields map[string]interface{}) []string {
	return slices.Sorted(maps.Keys(fields))
}

type jsonEntry struct {
	Timestamp string                 `json:"timestamp,omitempty"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// JSONFormatter renders one JSON object per entry. Fields are nested under
// "fields" so they cannot shadow the fixed keys.
type JSONFormatter struct {
	// TimeFormat defaults to time.RFC3339.
	TimeFormat string
}

func (f *JSONFormatter) Format(e LogEntry) ([]byte, error) {
	layout := f.TimeFormat
	if layout == "" {
		layout = time.RFC3339
	}
	data, err := json.Marshal(jsonEntry{
		Timestamp: e.Timestamp.Format(layout),
		Level:     e.Level.String(),
		Message:   e.Message,
		Fields:    e.Fields,
	})
	if err != nil {
		// An unencodable field value still yields a line.
		data, _ = json.Marshal(jsonEntry{Level: e.Level.String(), Message: e.Message,
			Fields: map[string]interface{}{"format_error": err.Error()}})
	}
	return append(data, '\n'), nil
}
