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

	"github.com/fatih/color"

	"github.com/sigstore/treesha1sum/pkg/hashing/digests"
	"github.com/sigstore/treesha1sum/pkg/treewalk"
)

// palette colors the bracketed label of non-file entries.
type palette struct {
	failure *color.Color
	symlink *color.Color
	unusual *color.Color
	other   *color.Color
}

// newPalette forces color on or off for this reporter only, regardless of
// the package-wide color.NoColor default.
func newPalette(enabled bool) palette {
	mk := func(attr color.Attribute) *color.Color {
		c := color.New(attr)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		failure: mk(color.FgHiRed),
		symlink: mk(color.FgHiCyan),
		unusual: mk(color.FgHiMagenta),
		other:   mk(color.FgHiYellow),
	}
}

func (p palette) label(e treewalk.Entry) string {
	c := p.other
	switch {
	case e.Failure != treewalk.FailureNone, e.Kind == treewalk.KindNotFound, e.Kind == treewalk.KindNone:
		c = p.failure
	case e.Kind == treewalk.KindSymlink:
		c = p.symlink
	case e.Kind == treewalk.KindUnknown, e.Kind == treewalk.KindImplementationDefined:
		c = p.unusual
	}
	return c.Sprint("[" + e.Label() + "]")
}

// TextReporter writes one line per entry:
//
//	<digest> *<path>
//	[symlink]  <path> -> <target>
//	[<label>]  <path>
type TextReporter struct {
	w        *bufio.Writer
	encoding digests.Encoding
	colors   palette
}

var _ Reporter = (*TextReporter)(nil)

// Emit writes the line for e.
func (r *TextReporter) Emit(e treewalk.Entry) error {
	var err error
	switch {
	case e.Hashed():
		var sum string
		sum, err = e.Digest.Encode(r.encoding)
		if err != nil {
			return fmt.Errorf("encode digest of %s: %w", e.Path, err)
		}
		_, err = fmt.Fprintf(r.w, "%s *%s\n", sum, e.Path)
	case e.Kind == treewalk.KindSymlink && e.Failure == treewalk.FailureNone:
		_, err = fmt.Fprintf(r.w, "%s  %s -> %s\n", r.colors.label(e), e.Path, e.Target)
	default:
		_, err = fmt.Fprintf(r.w, "%s  %s\n", r.colors.label(e), e.Path)
	}
	return err
}

// Flush writes buffered lines to the underlying writer.
func (r *TextReporter) Flush() error {
	return r.w.Flush()
}
