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

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/fentec-project/bn256"
)

// group is the minimal contract a cyclic group has to offer so that
// discrete logarithms can be computed in it. Operations return new
// elements and leave their arguments intact. Group operation is written
// multiplicatively.
type group[E any] interface {
	identity() E
	mul(a, b E) E
	inv(a E) E
	// exp is only called with non-negative exponents.
	exp(a E, k *big.Int) E
	// key returns a canonical encoding of a, used as a map key.
	key(a E) string
}

// gtBN256 is the target group of the BN256 pairing.
type gtBN256 struct{}

func (gtBN256) identity() *bn256.GT {
	return new(bn256.GT).ScalarBaseMult(big.NewInt(0))
}

func (gtBN256) mul(a, b *bn256.GT) *bn256.GT {
	return new(bn256.GT).Add(a, b)
}

func (gtBN256) inv(a *bn256.GT) *bn256.GT {
	return new(bn256.GT).Neg(a)
}

func (gtBN256) exp(a *bn256.GT, k *big.Int) *bn256.GT {
	return new(bn256.GT).ScalarMult(a, new(big.Int).Mod(k, bn256.Order))
}

func (gtBN256) key(a *bn256.GT) string {
	return string(a.Marshal())
}

// g1BN256 is the BN256 G1 group.
type g1BN256 struct{}

func (g1BN256) identity() *bn256.G1 {
	return new(bn256.G1).ScalarBaseMult(big.NewInt(0))
}

func (g1BN256) mul(a, b *bn256.G1) *bn256.G1 {
	return new(bn256.G1).Add(a, b)
}

func (g1BN256) inv(a *bn256.G1) *bn256.G1 {
	return new(bn256.G1).Neg(a)
}

func (g1BN256) exp(a *bn256.G1, k *big.Int) *bn256.G1 {
	return new(bn256.G1).ScalarMult(a, new(big.Int).Mod(k, bn256.Order))
}

func (g1BN256) key(a *bn256.G1) string {
	return string(a.Marshal())
}

// gtBLS12381 is the target group of the BLS12-381 pairing.
type gtBLS12381 struct{}

func (gtBLS12381) identity() *bls12381.GT {
	var one bls12381.GT
	one.SetOne()

	return &one
}

func (gtBLS12381) mul(a, b *bls12381.GT) *bls12381.GT {
	return new(bls12381.GT).Mul(a, b)
}

func (gtBLS12381) inv(a *bls12381.GT) *bls12381.GT {
	return new(bls12381.GT).Inverse(a)
}

func (gtBLS12381) exp(a *bls12381.GT, k *big.Int) *bls12381.GT {
	return new(bls12381.GT).Exp(*a, k)
}

func (gtBLS12381) key(a *bls12381.GT) string {
	b := a.Bytes()
	return string(b[:])
}
