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

// CalcBN256 represents a calculator for discrete logarithms
// that operates in the BN256.GT group.
type CalcBN256 struct {
	*solver[*bn256.GT]
}

// InBN256 returns a calculator for the BN256.GT group.
func (*Calc) InBN256() *CalcBN256 {
	return &CalcBN256{newSolver[*bn256.GT](gtBN256{})}
}

// WithBound returns a calculator searching for the logarithm in
// [0, bound], or [-bound, bound] if negative values are searched for.
func (c *CalcBN256) WithBound(bound *big.Int) *CalcBN256 {
	return &CalcBN256{c.withBound(bound)}
}

// WithNeg returns a calculator that also searches for negative values.
func (c *CalcBN256) WithNeg() *CalcBN256 {
	return &CalcBN256{c.withNeg()}
}

// WithWorkers returns a calculator splitting the giant steps among n
// goroutines.
func (c *CalcBN256) WithWorkers(n int) *CalcBN256 {
	return &CalcBN256{c.withWorkers(n)}
}

// BabyStepGiantStep implements the baby-step giant-step method to
// compute the discrete logarithm in the BN256.GT group.
//
// The function returns x, where h = g^x. If the solution was not found
// within the bound, it returns fecore.ErrNotFound. The baby-step table
// is kept in c.Precomp and reused by subsequent calls with the same g.
func (c *CalcBN256) BabyStepGiantStep(h, g *bn256.GT) (*big.Int, error) {
	return c.babyStepGiantStep(h, g)
}

// CalcG1 represents a calculator for discrete logarithms
// that operates in the BN256.G1 group.
type CalcG1 struct {
	*solver[*bn256.G1]
}

// InG1 returns a calculator for the BN256.G1 group.
func (*Calc) InG1() *CalcG1 {
	return &CalcG1{newSolver[*bn256.G1](g1BN256{})}
}

// WithBound sets the bound of the search, see CalcBN256.WithBound.
func (c *CalcG1) WithBound(bound *big.Int) *CalcG1 {
	return &CalcG1{c.withBound(bound)}
}

// WithNeg returns a calculator that also searches for negative values.
func (c *CalcG1) WithNeg() *CalcG1 {
	return &CalcG1{c.withNeg()}
}

// WithWorkers sets the number of goroutines performing giant steps.
func (c *CalcG1) WithWorkers(n int) *CalcG1 {
	return &CalcG1{c.withWorkers(n)}
}

// BabyStepGiantStep returns x, where h = x * g.
func (c *CalcG1) BabyStepGiantStep(h, g *bn256.G1) (*big.Int, error) {
	return c.babyStepGiantStep(h, g)
}

// CalcBLS12381 represents a calculator for discrete logarithms
// that operates in the target group of the BLS12-381 pairing.
type CalcBLS12381 struct {
	*solver[*bls12381.GT]
}

// InBLS12381 returns a calculator for the BLS12-381 target group.
func (*Calc) InBLS12381() *CalcBLS12381 {
	return &CalcBLS12381{newSolver[*bls12381.GT](gtBLS12381{})}
}

// WithBound sets the bound of the search, see CalcBN256.WithBound.
func (c *CalcBLS12381) WithBound(bound *big.Int) *CalcBLS12381 {
	return &CalcBLS12381{c.withBound(bound)}
}

// WithNeg returns a calculator that also searches for negative values.
func (c *CalcBLS12381) WithNeg() *CalcBLS12381 {
	return &CalcBLS12381{c.withNeg()}
}

// WithWorkers sets the number of goroutines performing giant steps.
func (c *CalcBLS12381) WithWorkers(n int) *CalcBLS12381 {
	return &CalcBLS12381{c.withWorkers(n)}
}

// BabyStepGiantStep returns x, where h = g^x.
func (c *CalcBLS12381) BabyStepGiantStep(h, g *bls12381.GT) (*big.Int, error) {
	return c.babyStepGiantStep(h, g)
}
