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

	"github.com/fentec-project/fecore"
	"github.com/fentec-project/fecore/sample"
	"github.com/pkg/errors"
)

// Matrix2x2 is a 2 x 2 matrix
//
//	| a  b |
//	| c  d |
//
// used for the share matrices of the decentralized scheme and the
// mixing matrix W of the quadratic scheme.
type Matrix2x2 [4]*big.Int

// NewMatrix2x2 returns the matrix with rows (a, b) and (c, d).
func NewMatrix2x2(a, b, c, d *big.Int) Matrix2x2 {
	return Matrix2x2{
		new(big.Int).Set(a), new(big.Int).Set(b),
		new(big.Int).Set(c), new(big.Int).Set(d),
	}
}

// NewZeroMatrix2x2 returns the zero matrix.
func NewZeroMatrix2x2() Matrix2x2 {
	return Matrix2x2{big.NewInt(0), big.NewInt(0), big.NewInt(0), big.NewInt(0)}
}

// NewRandomMatrix2x2 returns a matrix with elements sampled
// by the provided sampler.
func NewRandomMatrix2x2(sampler sample.Sampler) (Matrix2x2, error) {
	v, err := NewRandomVector(4, sampler)
	if err != nil {
		return Matrix2x2{}, err
	}

	return Matrix2x2{v[0], v[1], v[2], v[3]}, nil
}

// NewRandomDetMatrix2x2 returns a matrix with elements from [0, max)
// expanded deterministically from key. Two parties holding the same key
// obtain the same matrix.
func NewRandomDetMatrix2x2(max *big.Int, key *[32]byte) (Matrix2x2, error) {
	v, err := NewRandomDetVector(4, max, key)
	if err != nil {
		return Matrix2x2{}, err
	}

	return Matrix2x2{v[0], v[1], v[2], v[3]}, nil
}

// At returns the element in the i-th row and the j-th column.
func (m Matrix2x2) At(i, j int) *big.Int {
	return m[2*i+j]
}

// Determinant returns ad - bc mod p.
func (m Matrix2x2) Determinant(p *big.Int) *big.Int {
	det := new(big.Int).Mul(m[0], m[3])
	det.Sub(det, new(big.Int).Mul(m[1], m[2]))

	return det.Mod(det, p)
}

// InverseMod returns the inverse of m modulo p, computed as the
// adjugate of m multiplied by the inverse of its determinant.
// It returns ErrSingularMatrix if the determinant is 0 mod p.
func (m Matrix2x2) InverseMod(p *big.Int) (Matrix2x2, error) {
	det := m.Determinant(p)
	detInv := new(big.Int).ModInverse(det, p)
	if det.Sign() == 0 || detInv == nil {
		return Matrix2x2{}, errors.Wrap(fecore.ErrSingularMatrix, "determinant has no inverse")
	}

	adj := Matrix2x2{
		new(big.Int).Set(m[3]), new(big.Int).Neg(m[1]),
		new(big.Int).Neg(m[2]), new(big.Int).Set(m[0]),
	}
	for i := range adj {
		adj[i].Mul(adj[i], detInv)
		adj[i].Mod(adj[i], p)
	}

	return adj, nil
}

// Transpose returns the transpose of m.
func (m Matrix2x2) Transpose() Matrix2x2 {
	return NewMatrix2x2(m[0], m[2], m[1], m[3])
}

// Add returns m + other.
func (m Matrix2x2) Add(other Matrix2x2) Matrix2x2 {
	var res Matrix2x2
	for i := range res {
		res[i] = new(big.Int).Add(m[i], other[i])
	}

	return res
}

// Sub returns m - other.
func (m Matrix2x2) Sub(other Matrix2x2) Matrix2x2 {
	var res Matrix2x2
	for i := range res {
		res[i] = new(big.Int).Sub(m[i], other[i])
	}

	return res
}

// Neg returns -m.
func (m Matrix2x2) Neg() Matrix2x2 {
	var res Matrix2x2
	for i := range res {
		res[i] = new(big.Int).Neg(m[i])
	}

	return res
}

// Mod reduces the elements of m modulo p.
func (m Matrix2x2) Mod(p *big.Int) Matrix2x2 {
	var res Matrix2x2
	for i := range res {
		res[i] = new(big.Int).Mod(m[i], p)
	}

	return res
}

// MulVec returns m * (x, y).
func (m Matrix2x2) MulVec(x, y *big.Int) (*big.Int, *big.Int) {
	r0 := new(big.Int).Mul(m[0], x)
	r0.Add(r0, new(big.Int).Mul(m[1], y))
	r1 := new(big.Int).Mul(m[2], x)
	r1.Add(r1, new(big.Int).Mul(m[3], y))

	return r0, r1
}

// IsZero reports whether all the elements of m are 0.
func (m Matrix2x2) IsZero() bool {
	for _, e := range m {
		if e.Sign() != 0 {
			return false
		}
	}

	return true
}

// Matrix returns m as a general Matrix. It fails with
// fecore.ErrMalformedInput if some element of m is nil.
func (m Matrix2x2) Matrix() (Matrix, error) {
	return NewMatrix(2, 2, m[:])
}
