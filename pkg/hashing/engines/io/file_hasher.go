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

// Package io hashes file contents by streaming them through a hash engine.
package io

import (
	hashengines "github.com/sigstore/treesha1sum/pkg/hashing/engines"
)

// FileHasher is a HashEngine whose input is a file on disk rather than
// bytes pushed by the caller.
type FileHasher interface {
	hashengines.HashEngine

	// BytesHashed reports how many bytes the last Compute consumed.
	BytesHashed() int64
}

// FileHasherFactory builds a FileHasher for path.
type FileHasherFactory func(path string) (FileHasher, error)

// NewFileHasherFactory returns a factory that pairs every file with a fresh
// engine from engineFactory.
func NewFileHasherFactory(engineFactory hashengines.HashEngineFactory, chunkSize int) FileHasherFactory {
	return func(path string) (FileHasher, error) {
		engine, err := engineFactory()
		if err != nil {
			return nil, err
		}
		return NewSimpleFileHasher(path, engine, chunkSize, "")
	}
}
