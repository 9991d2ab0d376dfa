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

// Package report renders walk entries for humans (sha1sum-style text) or
// machines (JSON lines).
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sigstore/treesha1sum/pkg/hashing/digests"
	"github.com/sigstore/treesha1sum/pkg/treewalk"
)

// Format selects the report layout.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ValidFormats lists the accepted format names.
var ValidFormats = []string{string(FormatText), string(FormatJSON)}

// ParseFormat parses a format name; the empty string selects text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (supported: %v)", s, ValidFormats)
	}
}

// Options configures a Reporter.
type Options struct {
	Format   Format
	Encoding digests.Encoding
	// Color enables ANSI escapes in text output. Ignored for JSON.
	Color bool
}

// Reporter is a treewalk.Sink that buffers output until Flush.
type Reporter interface {
	treewalk.Sink
	Flush() error
}

// New returns the Reporter for opts.Format writing to w.
func New(w io.Writer, opts Options) (Reporter, error) {
	if opts.Encoding == "" {
		opts.Encoding = digests.EncodingHex
	}
	if _, err := digests.ParseEncoding(string(opts.Encoding)); err != nil {
		return nil, err
	}

	switch opts.Format {
	case "", FormatText:
		return &TextReporter{w: bufio.NewWriter(w), encoding: opts.Encoding, colors: newPalette(opts.Color)}, nil
	case FormatJSON:
		return newJSONReporter(w, opts.Encoding), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: %v)", opts.Format, ValidFormats)
	}
}
