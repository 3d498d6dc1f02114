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

// Matrix is a rows x cols matrix of *big.Int elements, stored as a
// flat slice in row-major order. The element in the i-th row and the
// j-th column is elems[i*cols+j].
//
// A matrix optionally carries a modulus. If it does, the results of
// Mul, Add and Sub are reduced by it, otherwise plain integer
// arithmetic is used.
type Matrix struct {
	rows  int
	cols  int
	elems []*big.Int
	mod   *big.Int
}

// NewMatrix returns a rows x cols matrix with the given elements in
// row-major order. It returns ErrDimensionMismatch if the number of
// elements is not rows * cols.
func NewMatrix(rows, cols int, elems []*big.Int) (Matrix, error) {
	if rows < 0 || cols < 0 || len(elems) != rows*cols {
		return Matrix{}, errors.Wrapf(fecore.ErrDimensionMismatch,
			"%d elements given for a %d x %d matrix", len(elems), rows, cols)
	}
	m := Matrix{rows: rows, cols: cols, elems: make([]*big.Int, len(elems))}
	for i, e := range elems {
		if e == nil {
			return Matrix{}, errors.Wrap(fecore.ErrMalformedInput, "matrix element is nil")
		}
		m.elems[i] = new(big.Int).Set(e)
	}

	return m, nil
}

// NewMatrixFromInts returns a rows x cols matrix with the given int64
// elements in row-major order.
func NewMatrixFromInts(rows, cols int, elems ...int64) (Matrix, error) {
	return NewMatrix(rows, cols, NewVectorFromInts(elems...))
}

// NewMatrixFromRows returns a matrix with the given rows.
// It returns an error if not all the rows have the same length.
func NewMatrixFromRows(rows []Vector) (Matrix, error) {
	if len(rows) == 0 {
		return Matrix{}, nil
	}
	cols := len(rows[0])
	elems := make([]*big.Int, 0, len(rows)*cols)
	for _, r := range rows {
		if len(r) != cols {
			return Matrix{}, errors.Wrap(fecore.ErrDimensionMismatch, "all rows should be of the same length")
		}
		elems = append(elems, r...)
	}

	return NewMatrix(len(rows), cols, elems)
}

// NewRandomMatrix returns a new Matrix instance
// with random elements sampled by the provided sample.Sampler.
// Returns an error in case of sampling failure.
func NewRandomMatrix(rows, cols int, sampler sample.Sampler) (Matrix, error) {
	v, err := NewRandomVector(rows*cols, sampler)
	if err != nil {
		return Matrix{}, err
	}

	return Matrix{rows: rows, cols: cols, elems: v}, nil
}

// NewConstantMatrix returns a new Matrix instance
// with all elements set to constant c.
func NewConstantMatrix(rows, cols int, c *big.Int) Matrix {
	return Matrix{rows: rows, cols: cols, elems: NewConstantVector(rows*cols, c)}
}

// WithModulus returns a copy of m with elements reduced modulo p, which
// is also used to reduce the results of further operations.
func (m Matrix) WithModulus(p *big.Int) Matrix {
	res := m.Mod(p)
	res.mod = p

	return res
}

// Modulus returns the modulus of m, or nil if m has none.
func (m Matrix) Modulus() *big.Int {
	return m.mod
}

// Rows returns the number of rows of matrix m.
func (m Matrix) Rows() int {
	return m.rows
}

// Cols returns the number of columns of matrix m.
func (m Matrix) Cols() int {
	return m.cols
}

// CheckDims checks whether dimensions of matrix m match
// the provided rows and cols arguments.
func (m Matrix) CheckDims(rows, cols int) bool {
	return m.rows == rows && m.cols == cols
}

// DimsMatch returns a bool indicating whether matrices
// m and other have the same dimensions.
func (m Matrix) DimsMatch(other Matrix) bool {
	return m.CheckDims(other.rows, other.cols)
}

// At returns the element in the i-th row and the j-th column.
// It panics if the indices are out of range.
func (m Matrix) At(i, j int) *big.Int {
	m.checkIndex(i, j)
	return m.elems[i*m.cols+j]
}

// Set sets the element in the i-th row and the j-th column to a copy
// of v. It panics if the indices are out of range.
func (m Matrix) Set(i, j int, v *big.Int) {
	m.checkIndex(i, j)
	m.elems[i*m.cols+j] = new(big.Int).Set(v)
}

func (m Matrix) checkIndex(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(errors.Errorf("index (%d, %d) out of range for a %d x %d matrix", i, j, m.rows, m.cols))
	}
}

// Row returns a copy of the i-th row of m.
func (m Matrix) Row(i int) Vector {
	return Vector(m.elems[i*m.cols : (i+1)*m.cols]).Copy()
}

// Col returns a copy of the j-th column of m.
func (m Matrix) Col(j int) Vector {
	col := make(Vector, m.rows)
	for i := range col {
		col[i] = new(big.Int).Set(m.At(i, j))
	}

	return col
}

// Elems returns a copy of the elements of m in row-major order.
func (m Matrix) Elems() Vector {
	return Vector(m.elems).Copy()
}

// Copy returns a deep copy of m.
func (m Matrix) Copy() Matrix {
	return Matrix{rows: m.rows, cols: m.cols, elems: Vector(m.elems).Copy(), mod: m.mod}
}

// Transpose transposes matrix m and returns
// the result in a new Matrix.
func (m Matrix) Transpose() Matrix {
	t := Matrix{rows: m.cols, cols: m.rows, elems: make([]*big.Int, len(m.elems)), mod: m.mod}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t.elems[j*m.rows+i] = new(big.Int).Set(m.elems[i*m.cols+j])
		}
	}

	return t
}

// Mod applies the element-wise modulo operation on matrix m.
// The result is returned in a new Matrix.
func (m Matrix) Mod(modulo *big.Int) Matrix {
	return Matrix{rows: m.rows, cols: m.cols, elems: Vector(m.elems).Mod(modulo), mod: m.mod}
}

// reduce reduces the elements of m in place by its modulus, if any.
func (m Matrix) reduce() Matrix {
	if m.mod != nil {
		for _, e := range m.elems {
			e.Mod(e, m.mod)
		}
	}

	return m
}

// Add adds matrices m and other.
// The result is returned in a new Matrix.
// Error is returned if m and other have different dimensions.
func (m Matrix) Add(other Matrix) (Matrix, error) {
	if !m.DimsMatch(other) {
		return Matrix{}, errors.Wrap(fecore.ErrDimensionMismatch, "matrices mismatch in dimensions")
	}
	res := Matrix{rows: m.rows, cols: m.cols, elems: Vector(m.elems).Add(other.elems), mod: m.mod}

	return res.reduce(), nil
}

// Sub subtracts matrix other from m.
// The result is returned in a new Matrix.
// Error is returned if m and other have different dimensions.
func (m Matrix) Sub(other Matrix) (Matrix, error) {
	if !m.DimsMatch(other) {
		return Matrix{}, errors.Wrap(fecore.ErrDimensionMismatch, "matrices mismatch in dimensions")
	}
	res := Matrix{rows: m.rows, cols: m.cols, elems: Vector(m.elems).Sub(other.elems), mod: m.mod}

	return res.reduce(), nil
}

// Mul multiplies matrices m and other. Each element of the product is
// accumulated over plain integers and then reduced by the modulus of m.
// The result is returned in a new Matrix.
// Error is returned if the number of columns of m differs from the
// number of rows of other.
func (m Matrix) Mul(other Matrix) (Matrix, error) {
	if m.cols != other.rows {
		return Matrix{}, errors.Wrapf(fecore.ErrDimensionMismatch,
			"cannot multiply %d x %d and %d x %d matrices", m.rows, m.cols, other.rows, other.cols)
	}

	prod := NewConstantMatrix(m.rows, other.cols, big.NewInt(0))
	prod.mod = m.mod
	tmp := new(big.Int)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			for k := 0; k < other.cols; k++ {
				acc := prod.elems[i*other.cols+k]
				acc.Add(acc, tmp.Mul(m.elems[i*m.cols+j], other.elems[j*other.cols+k]))
			}
		}
	}

	return prod.reduce(), nil
}

// MulVec multiplies matrix m and vector v.
// It returns the resulting vector.
// Error is returned if the number of columns of m differs from the number
// of elements of v.
func (m Matrix) MulVec(v Vector) (Vector, error) {
	if m.cols != len(v) {
		return nil, errors.Wrap(fecore.ErrDimensionMismatch, "cannot multiply matrix by a vector")
	}
	vm := Matrix{rows: len(v), cols: 1, elems: v}
	prod, err := m.Mul(vm)
	if err != nil {
		return nil, err
	}

	return prod.elems, nil
}

// MulXMatY calculates the function x^T * m * y, where x and y are
// vectors.
func (m Matrix) MulXMatY(x, y Vector) (*big.Int, error) {
	t, err := m.MulVec(y)
	if err != nil {
		return nil, err
	}
	v, err := t.Dot(x)
	if err != nil {
		return nil, err
	}
	if m.mod != nil {
		v.Mod(v, m.mod)
	}

	return v, nil
}
