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

// Package memory holds the in-process hash engines: the hand-written SHA-1
// engine and LibraryEngine, which lifts any hash.Hash to the engine contract.
package memory

import (
	"crypto/sha256"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/sigstore/treesha1sum/pkg/hashing/digests"
	hashengines "github.com/sigstore/treesha1sum/pkg/hashing/engines"
)

var _ hashengines.StreamingHashEngine = (*LibraryEngine)(nil)

// NewHashFunc returns a fresh hash.Hash.
type NewHashFunc func() (hash.Hash, error)

// libraryAlgorithms are registered next to sha1 at init.
var libraryAlgorithms = []struct {
	name    string
	size    int
	newHash NewHashFunc
}{
	{"sha256", sha256.Size, func() (hash.Hash, error) { return sha256.New(), nil }},
	{"blake2b", blake2b.Size, func() (hash.Hash, error) { return blake2b.New512(nil) }},
	{"sha3-256", 32, func() (hash.Hash, error) { return sha3.New256(), nil }},
}

func init() {
	for _, a := range libraryAlgorithms {
		hashengines.MustRegister(a.name, func() (hashengines.StreamingHashEngine, error) {
			return NewLibraryEngine(a.name, a.size, a.newHash, nil)
		})
	}
}

// LibraryEngine adds finalize-once semantics on top of a hash.Hash, which
// on its own allows writes after Sum.
type LibraryEngine struct {
	name    string
	size    int
	newHash NewHashFunc
	h       hash.Hash

	sum []byte // non-nil once finalized
}

// NewLibraryEngine builds an engine named name around newHash and hashes
// initialData, if any.
func NewLibraryEngine(name string, size int, newHash NewHashFunc, initialData []byte) (*LibraryEngine, error) {
	h, err := newHash()
	if err != nil {
		return nil, err
	}

	e := &LibraryEngine{name: name, size: size, newHash: newHash, h: h}
	e.write(initialData)
	return e, nil
}

// NewSHA256Engine returns a crypto/sha256 engine.
func NewSHA256Engine(initialData []byte) *LibraryEngine {
	e, _ := NewLibraryEngine("sha256", sha256.Size, libraryAlgorithms[0].newHash, initialData)
	return e
}

// NewBLAKE2 returns an unkeyed BLAKE2b-512 engine.
func NewBLAKE2(initialData []byte) (*LibraryEngine, error) {
	return NewLibraryEngine("blake2b", blake2b.Size, libraryAlgorithms[1].newHash, initialData)
}

// NewSHA3Engine returns a SHA3-256 engine.
func NewSHA3Engine(initialData []byte) *LibraryEngine {
	e, _ := NewLibraryEngine("sha3-256", 32, libraryAlgorithms[2].newHash, initialData)
	return e
}

// hash.Hash.Write never fails.
func (e *LibraryEngine) write(data []byte) {
	if len(data) > 0 {
		_, _ = e.h.Write(data)
	}
}

// Update feeds data to the hash. It fails with ErrFinalized after Compute.
func (e *LibraryEngine) Update(data []byte) error {
	if e.sum != nil {
		return hashengines.ErrFinalized
	}
	e.write(data)
	return nil
}

// Reset starts over with a new hash.Hash and seeds it with data.
func (e *LibraryEngine) Reset(data []byte) {
	if h, err := e.newHash(); err == nil {
		e.h = h
	} else {
		e.h.Reset()
	}
	e.sum = nil
	e.write(data)
}

// Compute finalizes on first use and returns the cached digest afterwards.
func (e *LibraryEngine) Compute() (digests.Digest, error) {
	if e.sum == nil {
		e.sum = e.h.Sum(nil)
	}
	return digests.NewDigest(e.name, e.sum), nil
}

func (e *LibraryEngine) DigestName() string { return e.name }

func (e *LibraryEngine) DigestSize() int { return e.size }
