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

package sample_test

import (
	"io"
	"math/big"
	"testing"

	"github.com/fentec-project/fecore/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformRange(t *testing.T) {
	min, max := big.NewInt(-10), big.NewInt(10)
	sampler := sample.NewUniformRange(min, max)
	for i := 0; i < 200; i++ {
		v, err := sampler.Sample()
		require.NoError(t, err)
		assert.True(t, v.Cmp(min) >= 0 && v.Cmp(max) < 0, "value %v out of range", v)
	}
}

func TestUniformRange_Empty(t *testing.T) {
	_, err := sample.NewUniformRange(big.NewInt(3), big.NewInt(3)).Sample()
	assert.Error(t, err)
}

func TestUniformFrom_Seeded(t *testing.T) {
	var key [32]byte
	key[0] = 7
	max := big.NewInt(1 << 40)

	s1 := sample.NewUniformFrom(sample.NewKeystream(&key), max)
	s2 := sample.NewUniformFrom(sample.NewKeystream(&key), max)
	for i := 0; i < 20; i++ {
		v1, err := s1.Sample()
		require.NoError(t, err)
		v2, err := s2.Sample()
		require.NoError(t, err)
		assert.Equal(t, v1, v2)
	}
}

func TestKeystream(t *testing.T) {
	var key1, key2 [32]byte
	key2[31] = 1

	b1 := make([]byte, 3000)
	b2 := make([]byte, 3000)
	_, err := io.ReadFull(sample.NewKeystream(&key1), b1)
	require.NoError(t, err)
	// reading in small pieces gives the same stream
	ks := sample.NewKeystream(&key1)
	for i := 0; i < len(b2); i += 7 {
		end := i + 7
		if end > len(b2) {
			end = len(b2)
		}
		_, err := ks.Read(b2[i:end])
		require.NoError(t, err)
	}
	assert.Equal(t, b1, b2)

	// chunks do not repeat
	assert.NotEqual(t, b1[:1024], b1[1024:2048])

	b3 := make([]byte, 3000)
	_, err = io.ReadFull(sample.NewKeystream(&key2), b3)
	require.NoError(t, err)
	assert.NotEqual(t, b1, b3)
}

func TestUniformDet(t *testing.T) {
	var key [32]byte
	for i := range key {
		key[i] = byte(i)
	}
	max := big.NewInt(1000)

	s1 := sample.NewUniformDet(max, &key)
	s2 := sample.NewUniformDet(max, &key)
	seen := make(map[int64]bool)
	for i := 0; i < 50; i++ {
		v1, err := s1.Sample()
		require.NoError(t, err)
		v2, err := s2.Sample()
		require.NoError(t, err)
		assert.Equal(t, v1, v2)
		assert.True(t, v1.Sign() >= 0 && v1.Cmp(max) < 0)
		seen[v1.Int64()] = true
	}
	assert.Greater(t, len(seen), 1, "deterministic sampler should not be constant")

	_, err := sample.NewUniformDet(big.NewInt(1), &key).Sample()
	assert.Error(t, err)
}
