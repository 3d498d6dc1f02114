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

package dlog

import (
	"math/big"
	"reflect"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/fentec-project/bn256"
	"github.com/fentec-project/fecore"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gtGenerator() *bn256.GT {
	g1gen := new(bn256.G1).ScalarBaseMult(big.NewInt(1))
	g2gen := new(bn256.G2).ScalarBaseMult(big.NewInt(1))
	return bn256.Pair(g1gen, g2gen)
}

func TestCalcBN256_BabyStepGiantStep(t *testing.T) {
	xCheck := big.NewInt(10000000)
	bound := big.NewInt(10000000)
	g := gtGenerator()
	h := new(bn256.GT).ScalarMult(g, xCheck)

	calc := NewCalc().InBN256().WithBound(bound)
	x, err := calc.BabyStepGiantStep(h, g)
	require.NoError(t, err)
	assert.Equal(t, xCheck, x, "BabyStepGiantStep in BN256 returns wrong dlog")
}

func TestCalcBN256_Negative(t *testing.T) {
	g := gtGenerator()
	calc := NewCalc().InBN256().WithBound(big.NewInt(5000)).WithNeg()

	for _, e := range []int64{-5000, -4321, -1, 1, 17, 4999, 5000} {
		h := new(bn256.GT).ScalarMult(g, new(big.Int).Mod(big.NewInt(e), bn256.Order))
		x, err := calc.BabyStepGiantStep(h, g)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(e), x)
	}
}

func TestCalcBN256_OutOfBound(t *testing.T) {
	g := gtGenerator()
	// 550 is reachable by the walk for bound 500, but lies outside it
	h := new(bn256.GT).ScalarMult(g, big.NewInt(550))

	_, err := NewCalc().InBN256().WithBound(big.NewInt(500)).BabyStepGiantStep(h, g)
	assert.True(t, errors.Is(err, fecore.ErrNotFound))

	hNeg := new(bn256.GT).Neg(h)
	_, err = NewCalc().InBN256().WithBound(big.NewInt(500)).WithNeg().BabyStepGiantStep(hNeg, g)
	assert.True(t, errors.Is(err, fecore.ErrNotFound))

	// without WithNeg, negative values are not searched for
	hMinusOne := new(bn256.GT).Neg(g)
	_, err = NewCalc().InBN256().WithBound(big.NewInt(500)).BabyStepGiantStep(hMinusOne, g)
	assert.True(t, errors.Is(err, fecore.ErrNotFound))
}

func TestCalcBN256_Identity(t *testing.T) {
	g := gtGenerator()
	h := new(bn256.GT).ScalarBaseMult(big.NewInt(0))

	calc := NewCalc().InBN256().WithBound(big.NewInt(1000)).WithNeg()
	x, err := calc.BabyStepGiantStep(h, g)
	require.NoError(t, err)
	assert.Equal(t, 0, x.Sign())
	assert.Nil(t, calc.Precomp, "no table should be built for the identity")
}

func TestCalcBN256_BoundTooLarge(t *testing.T) {
	g := gtGenerator()
	bound := new(big.Int).Add(MaxBound, big.NewInt(1))

	calc := NewCalc().InBN256().WithBound(bound)
	_, err := calc.BabyStepGiantStep(g, g)
	assert.True(t, errors.Is(err, fecore.ErrBoundTooLarge))
	assert.Nil(t, calc.Precomp)
}

func TestCalcBN256_PrecompReuse(t *testing.T) {
	g := gtGenerator()
	calc := NewCalc().InBN256().WithBound(big.NewInt(1000)).WithNeg()

	x, err := calc.BabyStepGiantStep(new(bn256.GT).ScalarMult(g, big.NewInt(123)), g)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(123), x)
	require.NotNil(t, calc.Precomp)
	// m = ceil(sqrt(1000)) + 1, table holds g^0, ..., g^m
	assert.Len(t, calc.Precomp, 34)
	table := reflect.ValueOf(calc.Precomp).Pointer()

	x, err = calc.BabyStepGiantStep(new(bn256.GT).ScalarMult(g, big.NewInt(456)), g)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(456), x)
	assert.Equal(t, table, reflect.ValueOf(calc.Precomp).Pointer(), "table should be reused")

	// a different generator needs a new table
	g2 := new(bn256.GT).ScalarMult(g, big.NewInt(2))
	x, err = calc.BabyStepGiantStep(new(bn256.GT).ScalarMult(g2, big.NewInt(7)), g2)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(7), x)
	assert.NotEqual(t, table, reflect.ValueOf(calc.Precomp).Pointer())
}

func TestCalcBN256_Workers(t *testing.T) {
	g := gtGenerator()
	h := new(bn256.GT).ScalarMult(g, new(big.Int).Sub(bn256.Order, big.NewInt(9876)))

	for _, n := range []int{0, 1, 3, 16, 1000} {
		calc := NewCalc().InBN256().WithBound(big.NewInt(10000)).WithNeg().WithWorkers(n)
		x, err := calc.BabyStepGiantStep(h, g)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(-9876), x, "wrong result with %d workers", n)
	}
}

func TestCalcG1_BabyStepGiantStep(t *testing.T) {
	g := new(bn256.G1).ScalarBaseMult(big.NewInt(1))
	calc := NewCalc().InG1().WithBound(big.NewInt(40960)).WithNeg()

	for _, e := range []int64{-40960, -3, 2, 40000} {
		h := new(bn256.G1).ScalarBaseMult(new(big.Int).Mod(big.NewInt(e), bn256.Order))
		x, err := calc.BabyStepGiantStep(h, g)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(e), x)
	}

	h := new(bn256.G1).ScalarBaseMult(big.NewInt(40961))
	_, err := calc.BabyStepGiantStep(h, g)
	assert.True(t, errors.Is(err, fecore.ErrNotFound))
}

func TestCalcBLS12381_BabyStepGiantStep(t *testing.T) {
	_, _, g1, g2 := bls12381.Generators()
	g, err := bls12381.Pair([]bls12381.G1Affine{g1}, []bls12381.G2Affine{g2})
	require.NoError(t, err)

	calc := NewCalc().InBLS12381().WithBound(big.NewInt(100000)).WithNeg()
	for _, e := range []int64{-99999, -1, 0, 42, 100000} {
		h := new(bls12381.GT).Exp(g, big.NewInt(e))
		x, err := calc.BabyStepGiantStep(h, &g)
		require.NoError(t, err)
		assert.Equal(t, 0, big.NewInt(e).Cmp(x))
	}
}

func TestBruteForce(t *testing.T) {
	g := gtGenerator()
	grp := gtBN256{}

	h := new(bn256.GT).ScalarMult(g, big.NewInt(10))
	x, err := bruteForce[*bn256.GT](grp, h, g, big.NewInt(10), false)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(10), x)

	_, err = bruteForce[*bn256.GT](grp, h, g, big.NewInt(9), true)
	assert.True(t, errors.Is(err, fecore.ErrNotFound))

	x, err = bruteForce[*bn256.GT](grp, grp.inv(h), g, big.NewInt(10), true)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(-10), x)

	// small bounds are handled without a table
	calc := NewCalc().InBN256().WithBound(big.NewInt(10)).WithNeg()
	x, err = calc.BabyStepGiantStep(grp.inv(h), g)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(-10), x)
	assert.Nil(t, calc.Precomp)
}
