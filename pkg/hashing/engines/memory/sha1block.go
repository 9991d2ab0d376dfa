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
	"math/bits"
)

const (
	sha1K0 = 0x5A827999
	sha1K1 = 0x6ED9EBA1
	sha1K2 = 0x8F1BBCDC
	sha1K3 = 0xCA62C1D6
)

// sha1Block folds one 64-byte block into the accumulators.
//
// The message schedule is kept in a 16-word ring: from step 16 on, each
// word is overwritten in place before it is used.
func sha1Block(h *[5]uint32, p *[sha1BlockSize]byte) {
	var w [16]uint32
	for i := range w {
		w[i] = binary.BigEndian.Uint32(p[i*4:])
	}

	a, b, c, d, e := h[0], h[1], h[2], h[3], h[4]

	for i := 0; i < 80; i++ {
		if i >= 16 {
			x := w[(i-3)&0xf] ^ w[(i-8)&0xf] ^ w[(i-14)&0xf] ^ w[i&0xf]
			w[i&0xf] = bits.RotateLeft32(x, 1)
		}

		var f, k uint32
		switch {
		case i < 20:
			f = (b & (c ^ d)) ^ d
			k = sha1K0
		case i < 40:
			f = b ^ c ^ d
			k = sha1K1
		case i < 60:
			f = (b & c) | (b & d) | (c & d)
			k = sha1K2
		default:
			f = b ^ c ^ d
			k = sha1K3
		}

		t := bits.RotateLeft32(a, 5) + f + e + w[i&0xf] + k
		a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
	h[4] += e
}
