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

package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/sigstore/treesha1sum/pkg/hashing/digests"
	"github.com/sigstore/treesha1sum/pkg/treewalk"
)

// Record is the JSON form of one entry.
type Record struct {
	Path      string             `json:"path"`
	Kind      treewalk.EntryKind `json:"kind"`
	Digest    string             `json:"digest,omitempty"`
	Algorithm string             `json:"algorithm,omitempty"`
	Target    string             `json:"target,omitempty"`
	Size      int64              `json:"size,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// JSONReporter writes one Record per line.
type JSONReporter struct {
	buf      *bufio.Writer
	enc      *json.Encoder
	encoding digests.Encoding
}

var _ Reporter = (*JSONReporter)(nil)

func newJSONReporter(w io.Writer, encoding digests.Encoding) *JSONReporter {
	buf := bufio.NewWriter(w)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	return &JSONReporter{buf: buf, enc: enc, encoding: encoding}
}

// NewRecord converts e, encoding its digest with encoding.
func NewRecord(e treewalk.Entry, encoding digests.Encoding) (Record, error) {
	rec := Record{
		Path:   e.Path,
		Kind:   e.Kind,
		Target: e.Target,
		Size:   e.Size,
	}

	if e.Hashed() {
		sum, err := e.Digest.Encode(encoding)
		if err != nil {
			return Record{}, fmt.Errorf("encode digest of %s: %w", e.Path, err)
		}
		rec.Digest = sum
		rec.Algorithm = e.Digest.Algorithm()
	}

	switch {
	case e.Err != nil:
		rec.Error = e.Err.Error()
	case e.Failure != treewalk.FailureNone:
		rec.Error = e.Failure.String()
	}
	return rec, nil
}

// Emit writes the record for e.
func (r *JSONReporter) Emit(e treewalk.Entry) error {
	rec, err := NewRecord(e, r.encoding)
	if err != nil {
		return err
	}
	return r.enc.Encode(rec)
}

// Flush writes buffered records to the underlying writer.
func (r *JSONReporter) Flush() error {
	return r.buf.Flush()
}
