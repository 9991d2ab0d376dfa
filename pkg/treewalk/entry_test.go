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
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryKind_Labels(t *testing.T) {
	tests := map[EntryKind]string{
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
		EntryKind(99):             "implementation-defined",
	}
	for kind, want := range tests {
		assert.Equal(t, want, kind.String())
		text, err := kind.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, want, string(text))
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		mode fs.FileMode
		want EntryKind
	}{
		{0o644, KindRegular},
		{fs.ModeDir | 0o755, KindDirectory},
		{fs.ModeSymlink | 0o777, KindSymlink},
		{fs.ModeDevice, KindBlockDevice},
		{fs.ModeDevice | fs.ModeCharDevice, KindCharDevice},
		{fs.ModeNamedPipe, KindFIFO},
		{fs.ModeSocket, KindSocket},
		{fs.ModeIrregular, KindUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, kindOf(tt.mode), "mode %v", tt.mode)
	}
}

func TestClassify(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	link := filepath.Join(dir, "l")
	require.NoError(t, os.Symlink(dir, link))

	kind, info, err := Classify(file)
	require.NoError(t, err)
	assert.Equal(t, KindRegular, kind)
	assert.Equal(t, int64(1), info.Size())

	kind, _, err = Classify(dir)
	require.NoError(t, err)
	assert.Equal(t, KindDirectory, kind)

	kind, _, err = Classify(link)
	require.NoError(t, err)
	assert.Equal(t, KindSymlink, kind, "symlink to a directory must not be followed")

	kind, info, err = Classify(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, KindNotFound, kind)
	assert.Nil(t, info)
}

func TestClassify_StatFailureIsNone(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Mkdir(locked, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(locked, "f"), nil, 0o644))
	require.NoError(t, os.Chmod(locked, 0o600))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	kind, _, err := Classify(filepath.Join(locked, "f"))
	assert.Error(t, err)
	assert.Equal(t, KindNone, kind)
}

func TestEntry_Label(t *testing.T) {
	assert.Equal(t, "fifo/pipe", Entry{Kind: KindFIFO}.Label())
	assert.Equal(t, "read error", Entry{Kind: KindRegular, Failure: FailureRead}.Label())
	assert.Equal(t, "list error", Entry{Kind: KindDirectory, Failure: FailureList}.Label())
	assert.Equal(t, "depth limit", Entry{Kind: KindDirectory, Failure: FailureDepthLimit}.Label())
	assert.False(t, Entry{Kind: KindRegular}.Hashed())
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"a//b/../c/": "a/c",
		"./x":        "x",
		".":          ".",
		"/tmp//y":    "/tmp/y",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizePath(filepath.FromSlash(in)), in)
	}
}
