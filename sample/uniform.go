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
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// UniformRange samples random values from the interval [min, max).
type UniformRange struct {
	min  *big.Int
	max  *big.Int
	rand io.Reader
}

// NewUniformRange returns an instance of the UniformRange sampler
// reading from crypto/rand. It accepts lower and upper bounds on the
// sampled values.
func NewUniformRange(min, max *big.Int) *UniformRange {
	return NewUniformRangeFrom(nil, min, max)
}

// NewUniformRangeFrom returns an instance of the UniformRange sampler
// that reads its randomness from r.
func NewUniformRangeFrom(r io.Reader, min, max *big.Int) *UniformRange {
	return &UniformRange{
		min:  min,
		max:  max,
		rand: Reader(r),
	}
}

// Sample samples a random value from [min, max).
func (u *UniformRange) Sample() (*big.Int, error) {
	width := new(big.Int).Sub(u.max, u.min)
	if width.Sign() <= 0 {
		return nil, errors.Errorf("empty sampling interval [%v, %v)", u.min, u.max)
	}
	r, err := rand.Int(u.rand, width)
	if err != nil {
		return nil, errors.Wrap(err, "could not sample a random value")
	}

	return r.Add(r, u.min), nil
}

// NewUniform returns an instance of the UniformRange sampler for the
// interval [0, max), reading from crypto/rand.
func NewUniform(max *big.Int) *UniformRange {
	return NewUniformRange(big.NewInt(0), max)
}

// NewUniformFrom returns a sampler for [0, max) reading from r.
func NewUniformFrom(r io.Reader, max *big.Int) *UniformRange {
	return NewUniformRangeFrom(r, big.NewInt(0), max)
}
