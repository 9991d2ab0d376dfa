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

package treewalk

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sigstore/treesha1sum/pkg/hashing/digests"
)

// EntryKind is the filesystem type of a visited path.
type EntryKind int

const (
	KindRegular EntryKind = iota
	KindDirectory
	KindSymlink
	KindBlockDevice
	KindCharDevice
	KindFIFO
	KindSocket
	KindNotFound
	// KindNone means the path could not be stat'ed for a reason other than
	// non-existence, e.g. a permission error on the parent.
	KindNone
	// KindUnknown is a type the OS reports but Go cannot map (os.ModeIrregular).
	KindUnknown
	KindImplementationDefined
)

var kindLabels = map[EntryKind]string{
	KindRegular:               "regular file",
	KindDirectory:             "directory",
	KindSymlink:               "symlink",
	KindBlockDevice:           "block device",
	KindCharDevice:            "character device",
	KindFIFO:                  "fifo/pipe",
	KindSocket:                "socket",
	KindNotFound:              "not found",
	KindNone:                  "none",
	KindUnknown:               "unknown",
	KindImplementationDefined: "implementation-defined",
}

// String returns the label printed between brackets in text reports.
func (k EntryKind) String() string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return kindLabels[KindImplementationDefined]
}

// MarshalText lets encoders render kinds by label.
func (k EntryKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Failure marks an entry whose normal output could not be produced.
type Failure int

const (
	FailureNone Failure = iota
	// FailureRead is set when a regular file or a symlink could not be read.
	FailureRead
	// FailureList is set when a directory could not be listed.
	FailureList
	// FailureDepthLimit is set on directories that were not descended
	// because of Options.MaxDepth.
	FailureDepthLimit
)

func (f Failure) String() string {
	switch f {
	case FailureRead:
		return "read error"
	case FailureList:
		return "list error"
	case FailureDepthLimit:
		return "depth limit"
	default:
		return ""
	}
}

// Entry is the result of visiting one path.
type Entry struct {
	// Path is cleaned and slash separated.
	Path string
	Kind EntryKind
	// Target is the normalized link target, set for symlinks only.
	Target string
	// Digest is set for regular files that hashed successfully.
	Digest digests.Digest
	// Size is the number of bytes hashed.
	Size    int64
	Depth   int
	Failure Failure
	Err     error
}

// Label is the bracketed tag for entries that are not rendered as a digest.
func (e Entry) Label() string {
	if e.Failure != FailureNone {
		return e.Failure.String()
	}
	return e.Kind.String()
}

// Hashed reports whether the entry carries a digest.
func (e Entry) Hashed() bool {
	return e.Kind == KindRegular && e.Failure == FailureNone && !e.Digest.IsZero()
}

// Classify stats path without following symlinks.
//
// The returned error is the stat error, if any; the kind is always usable.
func Classify(path string) (EntryKind, os.FileInfo, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return KindNotFound, nil, err
		}
		return KindNone, nil, err
	}
	return kindOf(info.Mode()), info, nil
}

func kindOf(mode fs.FileMode) EntryKind {
	switch {
	case mode.IsRegular():
		return KindRegular
	case mode.IsDir():
		return KindDirectory
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	case mode&fs.ModeDevice != 0 && mode&fs.ModeCharDevice != 0:
		return KindCharDevice
	case mode&fs.ModeDevice != 0:
		return KindBlockDevice
	case mode&fs.ModeNamedPipe != 0:
		return KindFIFO
	case mode&fs.ModeSocket != 0:
		return KindSocket
	case mode&fs.ModeIrregular != 0:
		return KindUnknown
	default:
		return KindImplementationDefined
	}
}

// NormalizePath cleans p and converts it to forward slashes.
func NormalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// resolveSymlink reads the link at path and returns its target as a
// normalized absolute path. The target does not have to exist.
func resolveSymlink(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	return NormalizePath(abs), nil
}
