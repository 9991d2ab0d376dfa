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
	"path/filepath"
	"slices"
	"strings"
)

// GitRelatedPaths are the base names skipped when Options.IgnoreGitPaths is set.
var GitRelatedPaths = []string{
	".git",
	".gitignore",
	".gitattributes",
	".github",
	".gitmodules",
}

func isGitRelated(path string) bool {
	return slices.Contains(GitRelatedPaths, filepath.Base(path))
}

// ShouldIgnore reports whether path equals, or lies under, any of ignorePaths.
// Both sides are made absolute before comparing.
func ShouldIgnore(path string, ignorePaths []string) bool {
	if len(ignorePaths) == 0 {
		return false
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	for _, base := range ignorePaths {
		if base == "" {
			continue
		}

		absBase, err := filepath.Abs(base)
		if err != nil {
			continue
		}

		rel, err := filepath.Rel(absBase, absPath)
		if err != nil {
			continue
		}

		if rel == "." {
			return true
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}

	return false
}
