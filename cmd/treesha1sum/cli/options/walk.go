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

package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sigstore/treesha1sum/pkg/hashing/digests"
	hashengines "github.com/sigstore/treesha1sum/pkg/hashing/engines"
	"github.com/sigstore/treesha1sum/pkg/report"
	"github.com/sigstore/treesha1sum/pkg/treewalk"
)

// WalkOptions holds the flags that shape the traversal and its report.
type WalkOptions struct {
	// Algorithm names the hash engine used for regular files.
	Algorithm string
	// Encoding renders digests as hex, multihash or cid.
	Encoding string
	// Format selects text or JSON-lines output.
	Format string
	// ChunkSize is the read size used when streaming files.
	ChunkSize int
	// MaxDepth stops descending below this many directory levels.
	MaxDepth int
	// Sort orders directory children by name.
	Sort bool
	// IgnorePaths lists paths to skip together with their subtrees.
	IgnorePaths []string
	// IgnoreGitPaths skips .git, .gitignore and friends below the root.
	IgnoreGitPaths bool
}

var _ FlagAdder = (*WalkOptions)(nil)

// AddFlags registers the walk flags.
func (o *WalkOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Algorithm, "algorithm", "a", treewalk.DefaultAlgorithm,
		fmt.Sprintf("hash algorithm %v", hashengines.SupportedAlgorithms()))

	cmd.Flags().StringVar(&o.Encoding, "encoding", string(digests.EncodingHex),
		fmt.Sprintf("digest encoding %v", digests.ValidEncodings))

	cmd.Flags().StringVar(&o.Format, "format", string(report.FormatText),
		fmt.Sprintf("report format %v", report.ValidFormats))

	cmd.Flags().IntVar(&o.ChunkSize, "chunk-size", treewalk.DefaultChunkSize,
		"bytes read per chunk while hashing")

	cmd.Flags().IntVar(&o.MaxDepth, "max-depth", 0,
		"do not descend more than this many directory levels (0 = unlimited)")

	cmd.Flags().BoolVar(&o.Sort, "sort", true,
		"visit directory entries in byte-wise name order")

	cmd.Flags().StringSliceVar(&o.IgnorePaths, "ignore-paths", nil,
		"paths to skip, together with everything below them")

	cmd.Flags().BoolVar(&o.IgnoreGitPaths, "ignore-git-paths", false,
		"skip git metadata such as .git and .gitignore")
}

// Validate checks option values before any traversal starts.
func (o *WalkOptions) Validate() error {
	if !hashengines.IsSupported(o.Algorithm) {
		return fmt.Errorf("unsupported algorithm %q (supported: %v)", o.Algorithm, hashengines.SupportedAlgorithms())
	}
	if _, err := digests.ParseEncoding(o.Encoding); err != nil {
		return err
	}
	if _, err := report.ParseFormat(o.Format); err != nil {
		return err
	}
	if o.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", o.ChunkSize)
	}
	if o.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", o.MaxDepth)
	}
	return nil
}

// WalkerOptions converts the flags to treewalk options.
func (o *WalkOptions) WalkerOptions() treewalk.Options {
	return treewalk.Options{
		Algorithm:      o.Algorithm,
		ChunkSize:      o.ChunkSize,
		MaxDepth:       o.MaxDepth,
		Sort:           o.Sort,
		IgnorePaths:    o.IgnorePaths,
		IgnoreGitPaths: o.IgnoreGitPaths,
	}
}

// ReportOptions converts the flags to report options. Color is decided by the caller.
func (o *WalkOptions) ReportOptions(color bool) (report.Options, error) {
	enc, err := digests.ParseEncoding(o.Encoding)
	if err != nil {
		return report.Options{}, err
	}
	format, err := report.ParseFormat(o.Format)
	if err != nil {
		return report.Options{}, err
	}
	return report.Options{Format: format, Encoding: enc, Color: color}, nil
}
