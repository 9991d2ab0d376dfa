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

import "fmt"

// ExitNotADirectory is the process exit code for a root that is not a directory.
const ExitNotADirectory = 79

// NotADirectoryError is returned by Walk when the root is missing or is not
// a directory. The root's entry has already been emitted.
type NotADirectoryError struct {
	Path string
	Kind EntryKind
}

func (e *NotADirectoryError) Error() string {
	if e.Kind == KindNotFound {
		return fmt.Sprintf("%s: no such file or directory", e.Path)
	}
	return fmt.Sprintf("%s: not a directory (%s)", e.Path, e.Kind)
}

// ExitCode implements the CLI's exit-code contract.
func (e *NotADirectoryError) ExitCode() int {
	return ExitNotADirectory
}

// EntryError is a per-entry failure that did not stop the walk.
type EntryError struct {
	// Op is one of "stat", "read", "readlink", "list".
	Op   string
	Path string
	Err  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}
