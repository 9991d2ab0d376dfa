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

package memory

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/sigstore/treesha1sum/pkg/hashing/digests"
	hashengines "github.com/sigstore/treesha1sum/pkg/hashing/engines"
)

const (
	// SHA1Name is the registry name of the SHA-1 engine.
	SHA1Name = "sha1"
	// SHA1Size is the SHA-1 digest length in bytes.
	SHA1Size = 20

	sha1BlockSize = 64
	// sha1LenOffset is where the 64-bit message length starts in the last block.
	sha1LenOffset = sha1BlockSize - 8
	// sha1ReadChunk is the buffer size ReadFrom pulls with.
	sha1ReadChunk = 32 * 1024
)

var sha1IV = [5]uint32{0x67452301, 0xEFCDAB89, 0x98BADCFE, 0x10325476, 0xC3D2E1F0}

func init() {
	hashengines.MustRegister(SHA1Name, func() (hashengines.StreamingHashEngine, error) {
		return NewSHA1Engine(nil), nil
	})
}

var (
	_ hashengines.StreamingHashEngine = (*SHA1Engine)(nil)
	_ io.Writer                       = (*SHA1Engine)(nil)
	_ io.ReaderFrom                   = (*SHA1Engine)(nil)
)

// SHA1Engine is a streaming SHA-1 implementation.
//
// The zero value is not ready for use; construct it with NewSHA1Engine.
// An engine belongs to exactly one hashing session and is not safe for
// concurrent use.
type SHA1Engine struct {
	h    [5]uint32
	buf  [sha1BlockSize]byte
	nbuf int
	// blocks counts the full blocks already folded into h.
	blocks uint64

	finalized bool
	sum       [SHA1Size]byte
}

// NewSHA1Engine returns an engine in its initial state.
// If initialData is non-empty, it is hashed immediately.
func NewSHA1Engine(initialData []byte) *SHA1Engine {
	e := &SHA1Engine{}
	e.Reset(initialData)
	return e
}

// Reset restores the initial vector, empties the pending buffer, zeroes
// the block count and clears the finalized flag. If data is non-empty it is
// fed to the fresh state.
func (e *SHA1Engine) Reset(data []byte) {
	*e = SHA1Engine{h: sha1IV}
	if len(data) > 0 {
		_ = e.Update(data)
	}
}

// Update appends data to the message.
//
// Full 64-byte blocks are compressed as soon as they are complete, so at
// most 63 bytes stay pending between calls.
func (e *SHA1Engine) Update(data []byte) error {
	if e.finalized {
		return hashengines.ErrFinalized
	}

	if e.nbuf > 0 {
		n := copy(e.buf[e.nbuf:], data)
		e.nbuf += n
		data = data[n:]
		if e.nbuf < sha1BlockSize {
			return nil
		}
		sha1Block(&e.h, &e.buf)
		e.blocks++
		e.nbuf = 0
	}

	for len(data) >= sha1BlockSize {
		sha1Block(&e.h, (*[sha1BlockSize]byte)(data[:sha1BlockSize]))
		e.blocks++
		data = data[sha1BlockSize:]
	}

	e.nbuf = copy(e.buf[:], data)
	return nil
}

// Write implements io.Writer on top of Update.
func (e *SHA1Engine) Write(p []byte) (int, error) {
	if err := e.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// ReadFrom pulls r until EOF and hashes everything read.
// Short reads are fine; the chunking of r never affects the digest.
func (e *SHA1Engine) ReadFrom(r io.Reader) (int64, error) {
	if e.finalized {
		return 0, hashengines.ErrFinalized
	}

	var total int64
	chunk := make([]byte, sha1ReadChunk)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			_ = e.Update(chunk[:n])
			total += int64(n)
		}
		if err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}
	}
}

// Finalize pads the message, folds in its bit length and returns the
// digest. Later calls return the stored digest without touching the state.
func (e *SHA1Engine) Finalize() [SHA1Size]byte {
	if e.finalized {
		return e.sum
	}

	bitLen := (e.blocks*sha1BlockSize + uint64(e.nbuf)) * 8

	e.buf[e.nbuf] = 0x80
	clear(e.buf[e.nbuf+1:])

	// No room left for the length: close this block and pad a second one.
	if e.nbuf+1 > sha1LenOffset {
		sha1Block(&e.h, &e.buf)
		clear(e.buf[:sha1LenOffset])
	}

	binary.BigEndian.PutUint32(e.buf[sha1LenOffset:], uint32(bitLen>>32))
	binary.BigEndian.PutUint32(e.buf[sha1LenOffset+4:], uint32(bitLen))
	sha1Block(&e.h, &e.buf)

	for i, v := range e.h {
		binary.BigEndian.PutUint32(e.sum[i*4:], v)
	}

	e.nbuf = 0
	e.finalized = true
	return e.sum
}

// Finalized reports whether the digest has been produced.
func (e *SHA1Engine) Finalized() bool {
	return e.finalized
}

// Sum returns the raw 20-byte digest, finalizing if needed.
func (e *SHA1Engine) Sum() [SHA1Size]byte {
	return e.Finalize()
}

// HexDigest returns the digest as 40 lowercase hex characters.
func (e *SHA1Engine) HexDigest() string {
	sum := e.Finalize()
	return hex.EncodeToString(sum[:])
}

// Compute finalizes the hash and returns a digests.Digest.
func (e *SHA1Engine) Compute() (digests.Digest, error) {
	sum := e.Finalize()
	return digests.NewDigest(SHA1Name, sum[:]), nil
}

// DigestName returns the algorithm identifier.
func (e *SHA1Engine) DigestName() string {
	return SHA1Name
}

// DigestSize returns the byte length of the produced digest.
func (e *SHA1Engine) DigestSize() int {
	return SHA1Size
}
