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

package io

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sigstore/treesha1sum/pkg/hashing/digests"
	hashengines "github.com/sigstore/treesha1sum/pkg/hashing/engines"
)

var _ FileHasher = (*SimpleFileHasher)(nil)

var errEmptyPath = errors.New("file path must be non-empty")

// SimpleFileHasher streams one file through a StreamingHashEngine. Memory
// use is bounded by chunkSize; a chunkSize of 0 reads the file in one go.
type SimpleFileHasher struct {
	path        string
	engine      hashengines.StreamingHashEngine
	chunkSize   int
	name        string // reported algorithm; empty means engine.DigestName()
	bytesHashed int64
}

// NewSimpleFileHasher returns a hasher for path. A non-empty name replaces
// the engine's algorithm name in returned digests.
func NewSimpleFileHasher(path string, engine hashengines.StreamingHashEngine, chunkSize int, name string) (*SimpleFileHasher, error) {
	switch {
	case path == "":
		return nil, errEmptyPath
	case engine == nil:
		return nil, errors.New("hash engine must not be nil")
	case chunkSize < 0:
		return nil, fmt.Errorf("chunk size must be non-negative, got %d", chunkSize)
	}
	return &SimpleFileHasher{path: path, engine: engine, chunkSize: chunkSize, name: name}, nil
}

// SetFile points the next Compute at path.
func (h *SimpleFileHasher) SetFile(path string) error {
	if path == "" {
		return errEmptyPath
	}
	h.path = path
	return nil
}

func (h *SimpleFileHasher) DigestName() string {
	if h.name == "" {
		return h.engine.DigestName()
	}
	return h.name
}

func (h *SimpleFileHasher) DigestSize() int { return h.engine.DigestSize() }

// BytesHashed returns the number of bytes streamed by the last Compute.
func (h *SimpleFileHasher) BytesHashed() int64 { return h.bytesHashed }

// engineWriter feeds writes into a StreamingHashEngine and counts them.
type engineWriter struct {
	engine hashengines.StreamingHashEngine
	n      int64
}

func (w *engineWriter) Write(p []byte) (int, error) {
	if err := w.engine.Update(p); err != nil {
		return 0, err
	}
	w.n += int64(len(p))
	return len(p), nil
}

// Compute hashes the entire file and returns a Digest.
//
// The file is closed before Compute returns on every path. A read error
// aborts the computation: no digest is returned for a partially read file.
func (h *SimpleFileHasher) Compute() (digests.Digest, error) {
	h.engine.Reset(nil)
	w := &engineWriter{engine: h.engine}
	defer func() { h.bytesHashed = w.n }()

	f, err := os.Open(h.path)
	if err != nil {
		return digests.Digest{}, fmt.Errorf("open file %q: %w", h.path, err)
	}
	defer f.Close()

	if err := h.copy(w, f); err != nil {
		return digests.Digest{}, fmt.Errorf("read file %q: %w", h.path, err)
	}

	d, err := h.engine.Compute()
	if err != nil {
		return digests.Digest{}, fmt.Errorf("compute digest: %w", err)
	}
	return digests.NewDigest(h.DigestName(), d.Value()), nil
}

// copy streams r into w in chunkSize reads, or in one Update when chunkSize
// is zero. r is wrapped so *os.File cannot pick its own buffer via WriteTo.
func (h *SimpleFileHasher) copy(w *engineWriter, r io.Reader) error {
	if h.chunkSize == 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	_, err := io.CopyBuffer(w, struct{ io.Reader }{r}, make([]byte, h.chunkSize))
	return err
}
