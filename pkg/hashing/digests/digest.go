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

// Package digests provides the value type for computed file digests.
//
// A Digest pairs the algorithm name with the raw hash bytes. Fields are
// unexported and copied on the way in and out, so a Digest handed to a
// report sink can never be changed by the engine that produced it.
package digests

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

// Digest represents a computed cryptographic hash digest.
type Digest struct {
	algorithm string
	value     []byte
}

// NewDigest creates a new Digest with the specified algorithm and hash value.
// The value slice is copied.
func NewDigest(algorithm string, value []byte) Digest {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	return Digest{
		algorithm: algorithm,
		value:     valueCopy,
	}
}

// Algorithm returns the name of the hash algorithm used to compute this digest.
func (d Digest) Algorithm() string {
	return d.algorithm
}

// Value returns a copy of the raw digest bytes.
func (d Digest) Value() []byte {
	valueCopy := make([]byte, len(d.value))
	copy(valueCopy, d.value)
	return valueCopy
}

// Hex returns the lowercase hexadecimal encoding of the digest value.
func (d Digest) Hex() string {
	return hex.EncodeToString(d.value)
}

// Size returns the length in bytes of the digest value.
func (d Digest) Size() int {
	return len(d.value)
}

// IsZero reports whether d carries no digest bytes.
func (d Digest) IsZero() bool {
	return len(d.value) == 0
}

// String returns "algorithm:hexvalue" (e.g., "sha1:da39a3ee...").
func (d Digest) String() string {
	return fmt.Sprintf("%s:%s", d.algorithm, d.Hex())
}

// Equal reports whether both digests have the same algorithm and value.
func (d Digest) Equal(other Digest) bool {
	return d.algorithm == other.algorithm && bytes.Equal(d.value, other.value)
}

// multihashCodes maps engine names to their multicodec table entries.
var multihashCodes = map[string]uint64{
	"sha1":     mh.SHA1,
	"sha256":   mh.SHA2_256,
	"sha3-256": mh.SHA3_256,
	"blake2b":  mh.BLAKE2B_MAX,
}

// Multihash wraps the digest value in a self-describing multihash.
//
// Returns an error if the algorithm has no multicodec code.
func (d Digest) Multihash() (mh.Multihash, error) {
	code, ok := multihashCodes[d.algorithm]
	if !ok {
		return nil, fmt.Errorf("no multihash code for algorithm %q", d.algorithm)
	}

	buf, err := mh.Encode(d.value, code)
	if err != nil {
		return nil, fmt.Errorf("encode %s multihash: %w", d.algorithm, err)
	}
	return mh.Multihash(buf), nil
}

// CID returns a CIDv1 with the raw codec addressing the digested content.
func (d Digest) CID() (cid.Cid, error) {
	m, err := d.Multihash()
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, m), nil
}

// Encoding selects the textual rendering of a digest.
type Encoding string

const (
	// EncodingHex is plain lowercase hex, the sha1sum-compatible default.
	EncodingHex Encoding = "hex"
	// EncodingMultihash is a base58btc multihash.
	EncodingMultihash Encoding = "multihash"
	// EncodingCID is a base32 CIDv1 using the raw codec.
	EncodingCID Encoding = "cid"
)

// ValidEncodings lists the accepted encoding names.
var ValidEncodings = []string{string(EncodingHex), string(EncodingMultihash), string(EncodingCID)}

// ParseEncoding parses an encoding name. The empty string selects hex.
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(strings.ToLower(strings.TrimSpace(s))) {
	case "", EncodingHex:
		return EncodingHex, nil
	case EncodingMultihash:
		return EncodingMultihash, nil
	case EncodingCID:
		return EncodingCID, nil
	default:
		return "", fmt.Errorf("unknown digest encoding %q (supported: %v)", s, ValidEncodings)
	}
}

// Encode renders the digest in the given encoding.
func (d Digest) Encode(enc Encoding) (string, error) {
	switch enc {
	case "", EncodingHex:
		return d.Hex(), nil
	case EncodingMultihash:
		m, err := d.Multihash()
		if err != nil {
			return "", err
		}
		return m.B58String(), nil
	case EncodingCID:
		c, err := d.CID()
		if err != nil {
			return "", err
		}
		return c.String(), nil
	default:
		return "", fmt.Errorf("unknown digest encoding %q", enc)
	}
}
