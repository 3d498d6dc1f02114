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

package data

import (
	"math/big"
	"strings"

	"github.com/fentec-project/bn256"
	"github.com/fentec-project/fecore"
	"github.com/fentec-project/fecore/sample"
	"github.com/pkg/errors"
)

// Vector wraps a slice of *big.Int elements.
type Vector []*big.Int

// NewVector returns a new Vector instance.
func NewVector(coordinates []*big.Int) Vector {
	return Vector(coordinates)
}

// NewVectorFromInts returns a new Vector with the given int64 coordinates.
func NewVectorFromInts(coordinates ...int64) Vector {
	vec := make(Vector, len(coordinates))
	for i, c := range coordinates {
		vec[i] = big.NewInt(c)
	}

	return vec
}

// NewRandomVector returns a new Vector instance
// with random elements sampled by the provided sample.Sampler.
// Returns an error in case of sampling failure.
func NewRandomVector(len int, sampler sample.Sampler) (Vector, error) {
	vec := make([]*big.Int, len)
	var err error

	for i := 0; i < len; i++ {
		vec[i], err = sampler.Sample()
		if err != nil {
			return nil, err
		}
	}

	return NewVector(vec), nil
}

// NewRandomDetVector returns a new Vector instance
// with (deterministic) random elements sampled by a pseudo-random
// number generator. Elements are sampled from [0, max) and key
// determines the pseudo-random generator.
func NewRandomDetVector(len int, max *big.Int, key *[32]byte) (Vector, error) {
	if max.Cmp(big.NewInt(2)) < 0 {
		return nil, errors.New("upper bound on samples should be at least 2")
	}

	return NewRandomVector(len, sample.NewUniformDet(max, key))
}

// NewConstantVector returns a new Vector instance
// with all elements set to constant c.
func NewConstantVector(len int, c *big.Int) Vector {
	vec := make([]*big.Int, len)
	for i := 0; i < len; i++ {
		vec[i] = new(big.Int).Set(c)
	}

	return vec
}

// Copy creates a new vector with the same values
// of the entries.
func (v Vector) Copy() Vector {
	newVec := make(Vector, len(v))

	for i, c := range v {
		newVec[i] = new(big.Int).Set(c)
	}

	return newVec
}

// Check returns ErrMalformedInput if an element of v is nil.
func (v Vector) Check() error {
	for _, c := range v {
		if c == nil {
			return errors.Wrap(fecore.ErrMalformedInput, "vector contains a nil element")
		}
	}

	return nil
}

// CheckLen returns ErrDimensionMismatch if v does not have l elements.
func (v Vector) CheckLen(l int) error {
	if len(v) != l {
		return errors.Wrapf(fecore.ErrDimensionMismatch, "vector of length %d, expected %d", len(v), l)
	}

	return v.Check()
}

// Mod performs modulo operation on vector's elements.
// The result is returned in a new Vector.
func (v Vector) Mod(modulo *big.Int) Vector {
	newCoords := make([]*big.Int, len(v))

	for i, c := range v {
		newCoords[i] = new(big.Int).Mod(c, modulo)
	}

	return NewVector(newCoords)
}

// CheckBound checks whether the absolute values of all vector elements
// are at most the provided bound.
// It returns error if at least one element's absolute value is > bound.
func (v Vector) CheckBound(bound *big.Int) error {
	if bound == nil {
		return errors.Wrap(fecore.ErrMalformedInput, "bound cannot be nil")
	}
	abs := new(big.Int)
	for _, c := range v {
		abs.Abs(c)
		if abs.Cmp(bound) > 0 {
			return errors.Wrapf(fecore.ErrMalformedInput,
				"all coordinates of a vector should be at most %v in absolute value", bound)
		}
	}

	return nil
}

// Add adds vectors v and other.
// The result is returned in a new Vector.
func (v Vector) Add(other Vector) Vector {
	sum := make([]*big.Int, len(v))

	for i, c := range v {
		sum[i] = new(big.Int).Add(c, other[i])
	}

	return NewVector(sum)
}

// Sub subtracts vectors v and other.
// The result is returned in a new Vector.
func (v Vector) Sub(other Vector) Vector {
	sub := make([]*big.Int, len(v))
	for i, c := range v {
		sub[i] = new(big.Int).Sub(c, other[i])
	}

	return sub
}

// Dot calculates the dot product (inner product) of vectors v and other.
// It returns an error if vectors have different numbers of elements.
func (v Vector) Dot(other Vector) (*big.Int, error) {
	prod := big.NewInt(0)

	if len(v) != len(other) {
		return nil, errors.Wrap(fecore.ErrDimensionMismatch, "vectors should be of same length")
	}

	for i, c := range v {
		prod = prod.Add(prod, new(big.Int).Mul(c, other[i]))
	}

	return prod, nil
}

// MulG1 calculates bn256.G1 * v (also g1^v in multiplicative notation)
// and returns the result (v[0] * bn256.G1, ... , v[n-1] * bn256.G1) in a
// VectorG1 instance. Negative coordinates are reduced modulo bn256.Order.
func (v Vector) MulG1() VectorG1 {
	prod := make(VectorG1, len(v))
	for i := range prod {
		prod[i] = new(bn256.G1).ScalarBaseMult(new(big.Int).Mod(v[i], bn256.Order))
	}

	return prod
}

// MulVecG1 calculates g1 * v (also g1^v in multiplicative notation)
// and returns the result (v[0] * g1[0], ... , v[n-1] * g1[n-1]) in a
// VectorG1 instance.
func (v Vector) MulVecG1(g1 VectorG1) VectorG1 {
	prod := make(VectorG1, len(v))
	for i := range prod {
		prod[i] = new(bn256.G1).ScalarMult(g1[i], new(big.Int).Mod(v[i], bn256.Order))
	}

	return prod
}

// MulG2 calculates bn256.G2 * v (also g2^v in multiplicative notation)
// and returns the result (v[0] * bn256.G2, ... , v[n-1] * bn256.G2) in a
// VectorG2 instance. Negative coordinates are reduced modulo bn256.Order.
func (v Vector) MulG2() VectorG2 {
	prod := make(VectorG2, len(v))
	for i := range prod {
		prod[i] = new(bn256.G2).ScalarBaseMult(new(big.Int).Mod(v[i], bn256.Order))
	}

	return prod
}

// String produces a string representation of a vector.
// It is also used as the canonical input when a vector is hashed.
func (v Vector) String() string {
	var sb strings.Builder
	for _, yi := range v {
		sb.WriteString(" ")
		sb.WriteString(yi.String())
	}
	return sb.String()
}
