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

package quadratic_test

import (
	"math/big"
	"testing"

	"github.com/fentec-project/fecore"
	"github.com/fentec-project/fecore/data"
	"github.com/fentec-project/fecore/quadratic"
	"github.com/fentec-project/fecore/sample"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boundedSampler(bound int64) sample.Sampler {
	return sample.NewUniformRange(big.NewInt(-bound), big.NewInt(bound+1))
}

func TestSGP(t *testing.T) {
	bound := big.NewInt(10)
	sampler := boundedSampler(10)
	n := 3

	q, err := quadratic.NewSGP(nil, n)
	require.NoError(t, err)

	for trial := 0; trial < 3; trial++ {
		f, err := data.NewRandomMatrix(n, n, sampler)
		require.NoError(t, err)
		x, err := data.NewRandomVector(n, sampler)
		require.NoError(t, err)
		y, err := data.NewRandomVector(n, sampler)
		require.NoError(t, err)

		// simulate the instantiation of encryptor, which is only given
		// the public key
		c, err := quadratic.NewSGPFromPubKey(q.PubKey).Encrypt(nil, x, y)
		require.NoError(t, err)

		key, err := q.DeriveKey(f)
		require.NoError(t, err)

		check, err := f.MulXMatY(x, y)
		require.NoError(t, err)

		dec, err := q.Decrypt(c, key, bound)
		require.NoError(t, err)
		assert.Equal(t, 0, check.Cmp(dec), "decryption wrong")
	}
}

func TestSGP_Concrete(t *testing.T) {
	tests := []struct {
		name  string
		x, y  data.Vector
		f     []int64
		bound int64
		want  int64
	}{
		{"ones", data.NewVectorFromInts(0, 1), data.NewVectorFromInts(1, 2), []int64{1, 1, 1, 1}, 2, 3},
		{"negative", data.NewVectorFromInts(-5, 3), data.NewVectorFromInts(2, -7), []int64{1, -2, 0, 4}, 7, -164},
		{"zero function", data.NewVectorFromInts(4, 4), data.NewVectorFromInts(4, 4), []int64{0, 0, 0, 0}, 4, 0},
	}

	q, err := quadratic.NewSGP(nil, 2)
	require.NoError(t, err)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := data.NewMatrixFromInts(2, 2, tt.f...)
			require.NoError(t, err)

			c, err := q.Encrypt(nil, tt.x, tt.y)
			require.NoError(t, err)
			key, err := q.DeriveKey(f)
			require.NoError(t, err)

			dec, err := q.Decrypt(c, key, big.NewInt(tt.bound))
			require.NoError(t, err)
			assert.Equal(t, big.NewInt(tt.want).String(), dec.String())
		})
	}
}

func TestSGP_Projection(t *testing.T) {
	n, d := 3, 2
	q, err := quadratic.NewSGP(nil, n)
	require.NoError(t, err)

	x, err := data.NewRandomVector(n, boundedSampler(3))
	require.NoError(t, err)
	P, err := data.NewRandomMatrix(n, d, boundedSampler(2))
	require.NoError(t, err)
	Q, err := data.NewRandomMatrix(d, d, boundedSampler(3))
	require.NoError(t, err)

	c, err := q.Encrypt(nil, x, x)
	require.NoError(t, err)
	cp, err := q.Project(c, P)
	require.NoError(t, err)
	key, err := q.DeriveKeyProjected(Q, P)
	require.NoError(t, err)

	xp, err := P.Transpose().MulVec(x)
	require.NoError(t, err)
	check, err := Q.MulXMatY(xp, xp)
	require.NoError(t, err)

	// coordinates of P^T * x are bounded by n * 2 * 3
	dec, err := q.Decrypt(cp, key, big.NewInt(18))
	require.NoError(t, err)
	assert.Equal(t, 0, check.Cmp(dec), "decryption of projected ciphertext wrong")

	// the key for the projection does not fit the original ciphertext
	_, err = q.Decrypt(c, key, big.NewInt(18))
	assert.True(t, errors.Is(err, fecore.ErrMalformedCipher))
}

func TestSGP_Errors(t *testing.T) {
	q, err := quadratic.NewSGP(nil, 2)
	require.NoError(t, err)

	_, err = q.Encrypt(nil, data.NewVectorFromInts(1, 2, 3), data.NewVectorFromInts(1, 2))
	assert.True(t, errors.Is(err, fecore.ErrDimensionMismatch))
	_, err = q.Encrypt(nil, data.NewVectorFromInts(1, 2), data.NewVectorFromInts(1))
	assert.True(t, errors.Is(err, fecore.ErrDimensionMismatch))

	f3, err := data.NewMatrixFromInts(3, 3, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	require.NoError(t, err)
	_, err = q.DeriveKey(f3)
	assert.True(t, errors.Is(err, fecore.ErrDimensionMismatch))

	P, err := data.NewMatrixFromInts(3, 1, 1, 1, 1)
	require.NoError(t, err)
	f1, err := data.NewMatrixFromInts(1, 1, 1)
	require.NoError(t, err)
	_, err = q.DeriveKeyProjected(f1, P)
	assert.True(t, errors.Is(err, fecore.ErrDimensionMismatch))

	c, err := q.Encrypt(nil, data.NewVectorFromInts(1, 2), data.NewVectorFromInts(3, 4))
	require.NoError(t, err)
	_, err = q.Project(c, P)
	assert.True(t, errors.Is(err, fecore.ErrDimensionMismatch))

	_, err = quadratic.NewSGPFromPubKey(q.PubKey).DeriveKey(f1)
	assert.True(t, errors.Is(err, fecore.ErrMalformedKey))

	_, err = quadratic.NewSGP(nil, 0)
	assert.True(t, errors.Is(err, fecore.ErrMalformedInput))
}

func TestSGP_NotFound(t *testing.T) {
	q, err := quadratic.NewSGP(nil, 2)
	require.NoError(t, err)
	f, err := data.NewMatrixFromInts(2, 2, 1, 0, 0, 1)
	require.NoError(t, err)

	// 2 * 20 * 20 is above the bound 4 * 3^3
	c, err := q.Encrypt(nil, data.NewVectorFromInts(20, 20), data.NewVectorFromInts(20, 20))
	require.NoError(t, err)
	key, err := q.DeriveKey(f)
	require.NoError(t, err)

	_, err = q.Decrypt(c, key, big.NewInt(3))
	assert.True(t, errors.Is(err, fecore.ErrNotFound))
}
