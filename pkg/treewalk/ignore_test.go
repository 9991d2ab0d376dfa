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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldIgnore(t *testing.T) {
	tmpDir := t.TempDir()
	sub := filepath.Join(tmpDir, "sub")
	file := filepath.Join(sub, "file.txt")
	sibling := filepath.Join(tmpDir, "subway", "file.txt")

	tests := []struct {
		name   string
		path   string
		ignore []string
		want   bool
	}{
		{"empty list", file, nil, false},
		{"exact match", file, []string{file}, true},
		{"parent directory", file, []string{sub}, true},
		{"prefix is not a parent", sibling, []string{sub}, false},
		{"empty string entry", file, []string{""}, false},
		{"second entry matches", file, []string{filepath.Join(tmpDir, "other"), sub}, true},
		{"child does not ignore parent", sub, []string{file}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldIgnore(tt.path, tt.ignore))
		})
	}
}

func TestShouldIgnore_RelativePaths(t *testing.T) {
	tmpDir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}

	assert.True(t, ShouldIgnore(filepath.Join(tmpDir, "build", "out.o"), []string{"build"}))
	assert.True(t, ShouldIgnore("build/out.o", []string{filepath.Join(tmpDir, "build")}))
	assert.False(t, ShouldIgnore("src/main.go", []string{"build"}))
}

func TestIsGitRelated(t *testing.T) {
	assert.True(t, isGitRelated(filepath.Join("repo", ".git")))
	assert.True(t, isGitRelated(".gitmodules"))
	assert.False(t, isGitRelated(filepath.Join(".git", "config")))
	assert.False(t, isGitRelated("gitignore"))
}
