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
	"testing"

	"github.com/fentec-project/bn256"
	"github.com/fentec-project/fecore"
	"github.com/fentec-project/fecore/sample"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix(t *testing.T) {
	rows, cols := 5, 3
	bound := new(big.Int).Exp(big.NewInt(2), big.NewInt(20), big.NewInt(0))
	sampler := sample.NewUniform(bound)

	x, err := NewRandomMatrix(rows, cols, sampler)
	require.NoError(t, err)
	y, err := NewRandomMatrix(rows, cols, sampler)
	require.NoError(t, err)

	add, err := x.Add(y)
	require.NoError(t, err)
	sub, err := x.Sub(y)
	require.NoError(t, err)

	modulo := big.NewInt(int64(104729))
	mod := x.Mod(modulo)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			assert.Equal(t, new(big.Int).Add(x.At(i, j), y.At(i, j)), add.At(i, j), "coordinates should sum correctly")
			assert.Equal(t, new(big.Int).Sub(x.At(i, j), y.At(i, j)), sub.At(i, j), "coordinates should subtract correctly")
			assert.Equal(t, new(big.Int).Mod(x.At(i, j), modulo), mod.At(i, j), "coordinates should mod correctly")
		}
	}
}

func TestNewMatrix_DimensionMismatch(t *testing.T) {
	_, err := NewMatrixFromInts(2, 3, 1, 2, 3, 4, 5)
	assert.True(t, errors.Is(err, fecore.ErrDimensionMismatch))

	_, err = NewMatrixFromRows([]Vector{NewVectorFromInts(1, 2), NewVectorFromInts(1)})
	assert.True(t, errors.Is(err, fecore.ErrDimensionMismatch))
}

func TestMatrix_RowsCols(t *testing.T) {
	m, err := NewRandomMatrix(2, 3, sample.NewUniform(big.NewInt(10)))
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.True(t, m.CheckDims(2, 3))
	assert.False(t, m.CheckDims(3, 2))
}

func TestMatrix_Empty(t *testing.T) {
	var m Matrix
	assert.Equal(t, 0, m.Rows())
	assert.Equal(t, 0, m.Cols())
}

func TestMatrix_RowColTranspose(t *testing.T) {
	m, err := NewMatrixFromInts(2, 3,
		1, 2, 3,
		4, 5, 6)
	require.NoError(t, err)

	assert.Equal(t, NewVectorFromInts(4, 5, 6), m.Row(1))
	assert.Equal(t, NewVectorFromInts(2, 5), m.Col(1))

	tr := m.Transpose()
	assert.True(t, tr.CheckDims(3, 2))
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, m.At(i, j), tr.At(j, i))
		}
	}

	m.Set(0, 0, big.NewInt(7))
	assert.Equal(t, big.NewInt(7), m.At(0, 0))
	assert.Panics(t, func() { m.At(2, 0) })
}

func TestMatrix_Mul(t *testing.T) {
	a, err := NewMatrixFromInts(2, 3,
		1, 2, 3,
		4, 5, 6)
	require.NoError(t, err)
	b, err := NewMatrixFromInts(3, 2,
		7, 8,
		9, 10,
		11, 12)
	require.NoError(t, err)

	prod, err := a.Mul(b)
	require.NoError(t, err)
	expected, err := NewMatrixFromInts(2, 2,
		58, 64,
		139, 154)
	require.NoError(t, err)
	assert.Equal(t, expected.Elems(), prod.Elems())

	_, err = a.Mul(a)
	assert.True(t, errors.Is(err, fecore.ErrDimensionMismatch))
}

func TestMatrix_MulWithModulus(t *testing.T) {
	p := big.NewInt(7)
	a, err := NewMatrixFromInts(2, 2,
		3, 4,
		5, 6)
	require.NoError(t, err)
	a = a.WithModulus(p)
	assert.Equal(t, p, a.Modulus())

	prod, err := a.Mul(a)
	require.NoError(t, err)
	// [[29, 36], [45, 56]] mod 7
	assert.Equal(t, NewVectorFromInts(1, 1, 3, 0).String(), prod.Elems().String())

	v, err := a.MulVec(NewVectorFromInts(1, -1))
	require.NoError(t, err)
	assert.Equal(t, NewVectorFromInts(6, 6), v)
}

func TestMatrix_MulXMatY(t *testing.T) {
	f, err := NewMatrixFromInts(2, 2,
		1, 1,
		1, 1)
	require.NoError(t, err)

	res, err := f.MulXMatY(NewVectorFromInts(0, 1), NewVectorFromInts(1, 2))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(3), res)

	res, err = f.MulXMatY(NewVectorFromInts(-2, 1), NewVectorFromInts(1, 2))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(-3), res)

	_, err = f.MulXMatY(NewVectorFromInts(1), NewVectorFromInts(1, 2))
	assert.True(t, errors.Is(err, fecore.ErrDimensionMismatch))
}

func TestMatrix_MulMatG1G2(t *testing.T) {
	p, err := NewMatrixFromInts(2, 3,
		1, 0, 2,
		0, -1, 1)
	require.NoError(t, err)

	exps, err := NewMatrixFromInts(3, 2,
		1, 2,
		3, 4,
		5, 6)
	require.NoError(t, err)
	g1 := make(MatrixG1, 3)
	g2 := make(MatrixG2, 3)
	for i := range g1 {
		g1[i] = exps.Row(i).MulG1()
		g2[i] = exps.Row(i).MulG2()
	}

	res1, err := p.MulMatG1(g1)
	require.NoError(t, err)
	res2, err := p.MulMatG2(g2)
	require.NoError(t, err)

	expected, err := p.Mul(exps)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			e := new(big.Int).Mod(expected.At(i, j), bn256.Order)
			assert.Equal(t, new(bn256.G1).ScalarBaseMult(e).String(), res1[i][j].String())
			assert.Equal(t, new(bn256.G2).ScalarBaseMult(e).String(), res2[i][j].String())
		}
	}

	_, err = exps.MulMatG1(g1)
	assert.True(t, errors.Is(err, fecore.ErrDimensionMismatch))
}

func TestMatrix2x2_InverseMod(t *testing.T) {
	p := bn256.Order
	m := NewMatrix2x2(big.NewInt(2), big.NewInt(3), big.NewInt(1), big.NewInt(4))
	assert.Equal(t, big.NewInt(5), m.Determinant(p))

	inv, err := m.InverseMod(p)
	require.NoError(t, err)

	mm, err := m.Matrix()
	require.NoError(t, err)
	invm, err := inv.Matrix()
	require.NoError(t, err)
	prod, err := mm.WithModulus(p).Mul(invm)
	require.NoError(t, err)
	assert.Equal(t, NewVectorFromInts(1, 0, 0, 1).String(), prod.Elems().String())

	singular := NewMatrix2x2(big.NewInt(2), big.NewInt(4), big.NewInt(1), big.NewInt(2))
	_, err = singular.InverseMod(p)
	assert.True(t, errors.Is(err, fecore.ErrSingularMatrix))
}

func TestMatrix2x2_Random(t *testing.T) {
	p := bn256.Order
	m, err := NewRandomMatrix2x2(sample.NewUniform(p))
	require.NoError(t, err)
	assert.False(t, m.IsZero())

	// m + (-m) = 0 and m - m = 0
	assert.True(t, m.Add(m.Neg()).IsZero())
	assert.True(t, m.Sub(m).IsZero())
	assert.Equal(t, m.At(0, 1), m.Transpose().At(1, 0))

	x, y := big.NewInt(3), big.NewInt(-5)
	r0, r1 := m.MulVec(x, y)
	mm, err := m.Matrix()
	require.NoError(t, err)
	v, err := mm.MulVec(Vector{x, y})
	require.NoError(t, err)
	assert.Equal(t, v[0], r0)
	assert.Equal(t, v[1], r1)
	assert.Equal(t, m.Mod(p).At(1, 1), m.Add(NewZeroMatrix2x2()).Mod(p).At(1, 1))
}

func TestMatrix2x2_MatrixNil(t *testing.T) {
	_, err := Matrix2x2{}.Matrix()
	assert.True(t, errors.Is(err, fecore.ErrMalformedInput))

	m, err := NewZeroMatrix2x2().Matrix()
	require.NoError(t, err)
	assert.True(t, m.CheckDims(2, 2))
}

func TestNewRandomDetMatrix2x2(t *testing.T) {
	var key1, key2 [32]byte
	key2[0] = 1

	a, err := NewRandomDetMatrix2x2(bn256.Order, &key1)
	require.NoError(t, err)
	b, err := NewRandomDetMatrix2x2(bn256.Order, &key1)
	require.NoError(t, err)
	c, err := NewRandomDetMatrix2x2(bn256.Order, &key2)
	require.NoError(t, err)

	assert.Equal(t, a, b, "same key should give the same matrix")
	assert.NotEqual(t, a, c, "different keys should give different matrices")
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.True(t, a.At(i, j).Cmp(bn256.Order) < 0)
			assert.True(t, a.At(i, j).Sign() >= 0)
		}
	}
}
