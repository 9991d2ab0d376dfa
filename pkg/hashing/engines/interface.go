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

// Package hashengines defines the contract shared by all digest engines.
//
// An engine is a single-stream, single-owner hash state: it is fed bytes
// incrementally, finalized once, and then only ever reports the cached
// digest until it is reset.
package hashengines

import (
	"errors"

	"github.com/sigstore/treesha1sum/pkg/hashing/digests"
)

// ErrFinalized is returned by Update when the engine has already produced
// its digest. Call Reset before feeding new data.
var ErrFinalized = errors.New("hash engine already finalized")

// HashEngine computes a digest and describes the algorithm that produced it.
type HashEngine interface {
	// Compute finalizes the hash computation and returns the resulting digest.
	// Repeated calls return the same digest without reprocessing.
	Compute() (digests.Digest, error)

	// DigestName returns the canonical name of the hash algorithm.
	// This name is transferred to the algorithm field of the Digest returned by Compute.
	DigestName() string

	// DigestSize returns the size in bytes of digests produced by this engine.
	DigestSize() int
}

// Streaming is the incremental half of an engine.
type Streaming interface {
	// Update appends bytes to the data being hashed. Chunk boundaries never
	// influence the result. Returns ErrFinalized after Compute.
	Update(data []byte) error

	// Reset returns the engine to its initial state and optionally seeds it
	// with data.
	Reset(data []byte)
}

// StreamingHashEngine combines HashEngine and Streaming for incremental hashing.
type StreamingHashEngine interface {
	HashEngine
	Streaming
}
