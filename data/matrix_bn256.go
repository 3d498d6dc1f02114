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

	"github.com/fentec-project/bn256"
	"github.com/fentec-project/fecore"
	"github.com/pkg/errors"
)

// MatrixG1 wraps a slice of VectorG1 elements. It represents a row-major
// order matrix.
//
// The j-th element from the i-th vector of the matrix can be obtained
// as m[i][j].
type MatrixG1 []VectorG1

// Rows returns the number of rows of matrixG1 m.
func (m MatrixG1) Rows() int {
	return len(m)
}

// Cols returns the number of columns of matrixG1 m.
func (m MatrixG1) Cols() int {
	if len(m) != 0 {
		return len(m[0])
	}

	return 0
}

// MatrixG2 wraps a slice of VectorG2 elements. It represents a row-major
// order matrix.
type MatrixG2 []VectorG2

// Rows returns the number of rows of matrixG2 m.
func (m MatrixG2) Rows() int {
	return len(m)
}

// Cols returns the number of columns of matrixG2 m.
func (m MatrixG2) Cols() int {
	if len(m) != 0 {
		return len(m[0])
	}

	return 0
}

// MulMatG1 multiplies matrix m with a matrix of group elements g, i.e.
// if g is t * [bn256.G1] for some matrix t, then the result is
// (m * t) [bn256.G1].
func (m Matrix) MulMatG1(g MatrixG1) (MatrixG1, error) {
	if m.cols != g.Rows() {
		return nil, errors.Wrap(fecore.ErrDimensionMismatch, "cannot multiply matrix by a G1 matrix")
	}

	out := make(MatrixG1, m.rows)
	for i := range out {
		out[i] = make(VectorG1, g.Cols())
		for k := range out[i] {
			out[i][k] = new(bn256.G1).ScalarBaseMult(big.NewInt(0))
			for j := 0; j < m.cols; j++ {
				if len(g[j]) != g.Cols() {
					return nil, errors.Wrap(fecore.ErrDimensionMismatch, "rows of a G1 matrix differ in length")
				}
				s := new(big.Int).Mod(m.At(i, j), bn256.Order)
				out[i][k].Add(out[i][k], new(bn256.G1).ScalarMult(g[j][k], s))
			}
		}
	}

	return out, nil
}

// MulMatG2 multiplies matrix m with a matrix of group elements g, i.e.
// if g is t * [bn256.G2] for some matrix t, then the result is
// (m * t) [bn256.G2].
func (m Matrix) MulMatG2(g MatrixG2) (MatrixG2, error) {
	if m.cols != g.Rows() {
		return nil, errors.Wrap(fecore.ErrDimensionMismatch, "cannot multiply matrix by a G2 matrix")
	}

	out := make(MatrixG2, m.rows)
	for i := range out {
		out[i] = make(VectorG2, g.Cols())
		for k := range out[i] {
			out[i][k] = new(bn256.G2).ScalarBaseMult(big.NewInt(0))
			for j := 0; j < m.cols; j++ {
				if len(g[j]) != g.Cols() {
					return nil, errors.Wrap(fecore.ErrDimensionMismatch, "rows of a G2 matrix differ in length")
				}
				s := new(big.Int).Mod(m.At(i, j), bn256.Order)
				out[i][k].Add(out[i][k], new(bn256.G2).ScalarMult(g[j][k], s))
			}
		}
	}

	return out, nil
}
