/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sample

import (
	"encoding/binary"
	"io"
	"math/big"

	"github.com/pkg/errors"
	"golang.org/x/crypto/salsa20"
)

const keystreamChunk = 1024

// Keystream is a deterministic stream of pseudo-random bytes produced
// by salsa20 under a 32 byte key. Two keystreams with the same key
// produce identical output.
type Keystream struct {
	key     [32]byte
	counter uint64
	buf     []byte
}

// NewKeystream returns a keystream determined by key.
func NewKeystream(key *[32]byte) *Keystream {
	return &Keystream{key: *key}
}

// Read fills p with the next bytes of the keystream. It never fails.
func (k *Keystream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(k.buf) == 0 {
			k.refill()
		}
		c := copy(p[n:], k.buf)
		k.buf = k.buf[c:]
		n += c
	}

	return n, nil
}

// refill generates the next chunk; every chunk uses its own nonce.
func (k *Keystream) refill() {
	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, k.counter)
	k.counter++

	in := make([]byte, keystreamChunk)
	out := make([]byte, keystreamChunk)
	salsa20.XORKeyStream(out, in, nonce, &k.key)
	k.buf = out
}

// UniformDet samples (deterministic) pseudo-random values from [0, max).
// The values are fully determined by the key.
type UniformDet struct {
	stream  io.Reader
	max     *big.Int
	maxBits int
}

// NewUniformDet returns an instance of the UniformDet sampler.
func NewUniformDet(max *big.Int, key *[32]byte) *UniformDet {
	return &UniformDet{
		stream:  NewKeystream(key),
		max:     max,
		maxBits: new(big.Int).Sub(max, big.NewInt(1)).BitLen(),
	}
}

// Sample returns the next value. Candidates are taken from the
// keystream with the surplus high bits cleared, and rejected if they
// are not smaller than max.
func (u *UniformDet) Sample() (*big.Int, error) {
	if u.max.Cmp(big.NewInt(2)) < 0 {
		return nil, errors.New("upper bound on samples should be at least 2")
	}
	maxBytes := (u.maxBits + 7) / 8
	over := uint(8*maxBytes - u.maxBits)
	b := make([]byte, maxBytes)
	for {
		if _, err := io.ReadFull(u.stream, b); err != nil {
			return nil, err
		}
		b[0] >>= over
		ret := new(big.Int).SetBytes(b)
		if ret.Cmp(u.max) < 0 {
			return ret, nil
		}
	}
}
