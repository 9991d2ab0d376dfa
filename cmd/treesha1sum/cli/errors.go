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

package cli

import (
	"fmt"

	"github.com/sigstore/treesha1sum/pkg/treewalk"
)

const (
	// ExitFailure covers bad arguments, per-entry failures and an unreadable root.
	ExitFailure = 1
	// ExitNotADirectory is returned when the root is missing or not a directory.
	ExitNotADirectory = treewalk.ExitNotADirectory

	usageLine = "Usage: treesha1sum [options] [DIRECTORY]"
	// UsageHint is printed after every argument error.
	UsageHint = "Try 'treesha1sum --help' for more options."
)

// UsageError is an invalid invocation. No traversal has happened.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%v\n%s\n%s", e.Err, usageLine, UsageHint)
}

func (e *UsageError) Unwrap() error { return e.Err }

// ExitCode implements the ExitCoder contract used by main.
func (e *UsageError) ExitCode() int { return ExitFailure }

// ExitError carries the process exit code for a failed walk.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

func (e *ExitError) ExitCode() int { return e.Code }
