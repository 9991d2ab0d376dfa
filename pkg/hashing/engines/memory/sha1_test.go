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
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"
	"testing/iotest"

	hashengines "github.com/sigstore/treesha1sum/pkg/hashing/engines"
)

func TestSHA1_ImplementsStreamingHashEngine(t *testing.T) {
	var _ hashengines.StreamingHashEngine = (*SHA1Engine)(nil)
}

func TestSHA1_KnownVectors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"empty", nil, "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"abc", []byte("abc"), "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{
			"448 bit",
			[]byte("abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq"),
			"84983e441c3bd26ebaae4aa1f95129e5e54670f1",
		},
		{
			"896 bit",
			[]byte("abcdefghbcdefghicdefghijdefghijkefghijklfghijklmghijklmnhijklmnoijklmnopjklmnopqklmnopqrlmnopqrsmnopqrstnopqrstu"),
			"a49b2446a02c645bf419f995b67091253a04a259",
		},
		{
			"lazy dog",
			[]byte("the quick brown fox jumps over the lazy dog"),
			"16312751ef9307c3fd1afbcb993cdc80464ba0f1",
		},
		{
			"binary",
			[]byte{0x10, 0x20, 0x30, 0x0A, 0x0B, 0xCC, 0xDD, 0xEE, 0xFF},
			"2cbd0727187241f9a1b366c498c334229f6c913f",
		},
		{"binary prefix", []byte{0x10, 0x20, 0x30}, "b203c5a0c19f15f173698158e08f83ca07638574"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewSHA1Engine(tt.input)
			if got := e.HexDigest(); got != tt.want {
				t.Errorf("HexDigest() = %q, want %q", got, tt.want)
			}

			d, err := e.Compute()
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if d.Hex() != tt.want || d.Algorithm() != "sha1" || d.Size() != SHA1Size {
				t.Errorf("Compute() = %v, want sha1:%s", d, tt.want)
			}
		})
	}
}

func TestSHA1_OneMillionA(t *testing.T) {
	const want = "34aa973cd4c4daa4f61eeb2bdbad27316534016f"

	chunk := []byte(strings.Repeat("a", 200))
	e := NewSHA1Engine(nil)
	for i := 0; i < 1000000/len(chunk); i++ {
		if err := e.Update(chunk); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
	}

	if got := e.HexDigest(); got != want {
		t.Errorf("HexDigest() = %q, want %q", got, want)
	}
}

func TestSHA1_PaddingBoundaries(t *testing.T) {
	for _, n := range []int{1, 54, 55, 56, 57, 62, 63, 64, 65, 119, 120, 121, 127, 128, 129} {
		data := bytes.Repeat([]byte{byte(n)}, n)
		want := sha1.Sum(data)

		if got := NewSHA1Engine(data).Sum(); got != want {
			t.Errorf("len %d: Sum() = %x, want %x", n, got, want)
		}
	}
}

func TestSHA1_ChunkInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	data := make([]byte, 4099)
	rng.Read(data)
	want := sha1.Sum(data)

	for _, chunkSize := range []int{1, 3, 7, 63, 64, 65, 128, 1000, 4099} {
		e := NewSHA1Engine(nil)
		for off := 0; off < len(data); off += chunkSize {
			end := off + chunkSize
			if end > len(data) {
				end = len(data)
			}
			if err := e.Update(data[off:end]); err != nil {
				t.Fatalf("Update() error = %v", err)
			}
		}
		if got := e.Sum(); got != want {
			t.Errorf("chunk %d: Sum() = %x, want %x", chunkSize, got, want)
		}
	}

	// Random chunk sizes, including empty updates.
	e := NewSHA1Engine(nil)
	for off := 0; off < len(data); {
		n := rng.Intn(150)
		if off+n > len(data) {
			n = len(data) - off
		}
		_ = e.Update(data[off : off+n])
		off += n
	}
	if got := e.Sum(); got != want {
		t.Errorf("random chunks: Sum() = %x, want %x", got, want)
	}
}

func TestSHA1_FinalizeIsIdempotent(t *testing.T) {
	e := NewSHA1Engine([]byte("abc"))

	first := e.Finalize()
	second := e.Finalize()
	if first != second {
		t.Errorf("Finalize() not idempotent: %x != %x", first, second)
	}

	d1, _ := e.Compute()
	d2, _ := e.Compute()
	if !d1.Equal(d2) {
		t.Errorf("Compute() not idempotent: %v != %v", d1, d2)
	}
	if !e.Finalized() {
		t.Error("Finalized() = false after Compute()")
	}
}

func TestSHA1_UpdateAfterFinalize(t *testing.T) {
	e := NewSHA1Engine([]byte("abc"))
	before := e.HexDigest()

	if err := e.Update([]byte("more")); !errors.Is(err, hashengines.ErrFinalized) {
		t.Errorf("Update() after finalize error = %v, want ErrFinalized", err)
	}
	if _, err := e.Write([]byte("more")); !errors.Is(err, hashengines.ErrFinalized) {
		t.Errorf("Write() after finalize error = %v, want ErrFinalized", err)
	}
	if _, err := e.ReadFrom(strings.NewReader("more")); !errors.Is(err, hashengines.ErrFinalized) {
		t.Errorf("ReadFrom() after finalize error = %v, want ErrFinalized", err)
	}
	if after := e.HexDigest(); after != before {
		t.Errorf("digest changed after rejected update: %q != %q", after, before)
	}
}

func TestSHA1_ResetReproduces(t *testing.T) {
	const want = "f58cf5e7e10f195e21b553096d092c763ed18b0e"

	e := NewSHA1Engine([]byte("junk that is long enough to fill more than one block of sixty-four bytes"))
	_ = e.HexDigest()

	e.Reset(nil)
	_ = e.Update([]byte("asdf"))
	_ = e.Update([]byte("1234"))
	if got := e.HexDigest(); got != want {
		t.Errorf("HexDigest() after Reset() = %q, want %q", got, want)
	}

	e.Reset([]byte("asdf1234"))
	if got := e.HexDigest(); got != want {
		t.Errorf("HexDigest() after Reset(data) = %q, want %q", got, want)
	}

	if *NewSHA1Engine(nil) != (SHA1Engine{h: sha1IV}) {
		t.Error("fresh engine differs from the initial state")
	}
}

func TestSHA1_ReadFromShortReads(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789abcdef"), 100)
	want := sha1.Sum(data)

	readers := map[string]io.Reader{
		"one byte": iotest.OneByteReader(bytes.NewReader(data)),
		"half":     iotest.HalfReader(bytes.NewReader(data)),
		"data+EOF": iotest.DataErrReader(bytes.NewReader(data)),
	}

	for name, r := range readers {
		t.Run(name, func(t *testing.T) {
			e := NewSHA1Engine(nil)
			n, err := e.ReadFrom(r)
			if err != nil {
				t.Fatalf("ReadFrom() error = %v", err)
			}
			if n != int64(len(data)) {
				t.Errorf("ReadFrom() = %d bytes, want %d", n, len(data))
			}
			if got := e.Sum(); got != want {
				t.Errorf("Sum() = %x, want %x", got, want)
			}
		})
	}
}

func TestSHA1_ReadFromError(t *testing.T) {
	boom := errors.New("boom")
	e := NewSHA1Engine(nil)

	r := io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(boom))
	n, err := e.ReadFrom(r)
	if !errors.Is(err, boom) {
		t.Fatalf("ReadFrom() error = %v, want %v", err, boom)
	}
	if n != int64(len("partial")) {
		t.Errorf("ReadFrom() = %d, want %d", n, len("partial"))
	}
}

func TestSHA1_IOCopy(t *testing.T) {
	e := NewSHA1Engine(nil)
	if _, err := io.Copy(e, strings.NewReader("abc")); err != nil {
		t.Fatalf("io.Copy() error = %v", err)
	}
	want, _ := hex.DecodeString("a9993e364706816aba3e25717850c26c9cd0d89d")
	sum := e.Sum()
	if !bytes.Equal(sum[:], want) {
		t.Errorf("Sum() = %x, want %x", sum, want)
	}
}

func TestSHA1_Registered(t *testing.T) {
	engine, err := hashengines.Create(SHA1Name)
	if err != nil {
		t.Fatalf("Create(%q) error = %v", SHA1Name, err)
	}
	if engine.DigestName() != "sha1" || engine.DigestSize() != 20 {
		t.Errorf("engine = %s/%d, want sha1/20", engine.DigestName(), engine.DigestSize())
	}
}
