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

package quadratic

import (
	"io"
	"math/big"
	"sync"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/fentec-project/fecore"
	"github.com/fentec-project/fecore/data"
	"github.com/fentec-project/fecore/internal/dlog"
	"github.com/fentec-project/fecore/sample"
	"github.com/pkg/errors"
)

// blsOrder is the order of the BLS12-381 groups.
var blsOrder = fr.Modulus()

// SGPBLS12381 is the SGP scheme instantiated with the BLS12-381
// pairing instead of BN256. The scheme works the same way as SGP;
// only the groups differ, so keys and ciphertexts of the two are not
// interchangeable.
type SGPBLS12381 struct {
	N int

	SecKey *SGPSecKey
	PubKey *SGPBLS12381PubKey

	mu    sync.Mutex
	gCalc *dlog.CalcBLS12381
}

// SGPBLS12381PubKey is the master public key: G1S[i] = S[i] * G1
// and G2T[i] = T[i] * G2.
type SGPBLS12381PubKey struct {
	G1S []bls12381.G1Affine
	G2T []bls12381.G2Affine
}

// SGPBLS12381Cipher represents a ciphertext. Row i of AMulG1 (BMulG2)
// holds the two group elements blinding x_i (y_i).
type SGPBLS12381Cipher struct {
	G1MulGamma bls12381.G1Affine
	AMulG1     [][2]bls12381.G1Affine
	BMulG2     [][2]bls12381.G2Affine
}

// SGPBLS12381Key is a functional encryption key for the function
// given by the matrix F.
type SGPBLS12381Key struct {
	Key bls12381.G2Affine
	F   data.Matrix
}

// NewSGPBLS12381 generates master keys for input vectors of length n.
// Randomness is read from rand, or crypto/rand if rand is nil.
func NewSGPBLS12381(rand io.Reader, n int) (*SGPBLS12381, error) {
	if n < 1 {
		return nil, errors.Wrapf(fecore.ErrMalformedInput, "vector length %d", n)
	}

	sampler := sample.NewUniformFrom(rand, blsOrder)
	s, err := data.NewRandomVector(n, sampler)
	if err != nil {
		return nil, err
	}
	t, err := data.NewRandomVector(n, sampler)
	if err != nil {
		return nil, err
	}

	pk := &SGPBLS12381PubKey{
		G1S: make([]bls12381.G1Affine, n),
		G2T: make([]bls12381.G2Affine, n),
	}
	for i := 0; i < n; i++ {
		pk.G1S[i] = blsG1Exp(s[i])
		pk.G2T[i] = blsG2Exp(t[i])
	}

	return &SGPBLS12381{
		N:      n,
		SecKey: &SGPSecKey{S: s, T: t},
		PubKey: pk,
		gCalc:  dlog.NewCalc().InBLS12381().WithNeg(),
	}, nil
}

// NewSGPBLS12381FromPubKey returns an instance that can encrypt and
// decrypt, but not derive keys.
func NewSGPBLS12381FromPubKey(pubKey *SGPBLS12381PubKey) *SGPBLS12381 {
	return &SGPBLS12381{
		N:      len(pubKey.G1S),
		PubKey: pubKey,
		gCalc:  dlog.NewCalc().InBLS12381().WithNeg(),
	}
}

// Encrypt encrypts input vectors x and y with the master public key.
func (q *SGPBLS12381) Encrypt(rand io.Reader, x, y data.Vector) (*SGPBLS12381Cipher, error) {
	if err := x.CheckLen(q.N); err != nil {
		return nil, err
	}
	if err := y.CheckLen(q.N); err != nil {
		return nil, err
	}

	sampler := sample.NewUniformFrom(rand, blsOrder)
	gamma, err := sampler.Sample()
	if err != nil {
		return nil, err
	}
	W, WInv, err := randomInvertible(sampler, blsOrder)
	if err != nil {
		return nil, err
	}
	WInvT := WInv.Transpose()

	c := &SGPBLS12381Cipher{
		G1MulGamma: blsG1Exp(gamma),
		AMulG1:     make([][2]bls12381.G1Affine, q.N),
		BMulG2:     make([][2]bls12381.G2Affine, q.N),
	}
	for i := 0; i < q.N; i++ {
		for k := 0; k < 2; k++ {
			// a_i = (W^-1)^T * (x_i, gamma * s_i)
			ax := new(big.Int).Mul(WInvT.At(k, 0), x[i])
			as := new(big.Int).Mul(WInvT.At(k, 1), gamma)
			c.AMulG1[i][k] = blsG1Add(blsG1Exp(ax), blsG1Mul(q.PubKey.G1S[i], as))

			// b_i = W * (y_i, -t_i)
			by := new(big.Int).Mul(W.At(k, 0), y[i])
			bt := new(big.Int).Neg(W.At(k, 1))
			c.BMulG2[i][k] = blsG2Add(blsG2Exp(by), blsG2Mul(q.PubKey.G2T[i], bt))
		}
	}

	return c, nil
}

// DeriveKey derives the functional encryption key for the function
// (x, y) -> x^T * F * y, where F is an N x N matrix.
func (q *SGPBLS12381) DeriveKey(F data.Matrix) (*SGPBLS12381Key, error) {
	if q.SecKey == nil {
		return nil, errors.Wrap(fecore.ErrMalformedKey, "master secret key is missing")
	}
	if !F.CheckDims(q.N, q.N) {
		return nil, errors.Wrapf(fecore.ErrDimensionMismatch,
			"function matrix should be %d x %d", q.N, q.N)
	}

	v, err := F.MulXMatY(q.SecKey.S, q.SecKey.T)
	if err != nil {
		return nil, err
	}

	return &SGPBLS12381Key{
		Key: blsG2Exp(v),
		F:   F.Copy(),
	}, nil
}

// Decrypt decrypts the ciphertext c with the derived key in order to
// obtain x^T * F * y. The result is searched for within n^2 * bound^3,
// where n is the dimension of F. All the pairings are computed in a
// single multi-pairing.
func (q *SGPBLS12381) Decrypt(c *SGPBLS12381Cipher, key *SGPBLS12381Key, bound *big.Int) (*big.Int, error) {
	if key == nil {
		return nil, errors.Wrap(fecore.ErrMalformedKey, "key is nil")
	}
	if bound == nil {
		return nil, errors.Wrap(fecore.ErrMalformedInput, "bound cannot be nil")
	}
	n := key.F.Rows()
	if !key.F.CheckDims(n, n) {
		return nil, errors.Wrap(fecore.ErrDimensionMismatch, "function matrix should be square")
	}
	if err := c.check(n); err != nil {
		return nil, err
	}

	P := []bls12381.G1Affine{c.G1MulGamma}
	Q := []bls12381.G2Affine{key.Key}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			f := key.F.At(i, j)
			if f.Sign() == 0 {
				continue
			}
			for k := 0; k < 2; k++ {
				P = append(P, blsG1Mul(c.AMulG1[i][k], f))
				Q = append(Q, c.BMulG2[j][k])
			}
		}
	}
	prod, err := bls12381.Pair(P, Q)
	if err != nil {
		return nil, errors.Wrap(err, "could not compute pairing")
	}

	_, _, g1, g2 := bls12381.Generators()
	g, err := bls12381.Pair([]bls12381.G1Affine{g1}, []bls12381.G2Affine{g2})
	if err != nil {
		return nil, errors.Wrap(err, "could not compute pairing")
	}

	// b = n^2 * bound^3
	b := new(big.Int).Exp(bound, big.NewInt(3), nil)
	b.Abs(b)
	b.Mul(b, big.NewInt(int64(n*n)))

	q.mu.Lock()
	defer q.mu.Unlock()
	q.gCalc = q.gCalc.WithBound(b)

	return q.gCalc.BabyStepGiantStep(&prod, &g)
}

func (c *SGPBLS12381Cipher) check(n int) error {
	if c == nil || len(c.AMulG1) != n || len(c.BMulG2) != n {
		return errors.Wrapf(fecore.ErrMalformedCipher, "ciphertext should be of length %d", n)
	}
	if !c.G1MulGamma.IsInSubGroup() {
		return errors.Wrap(fecore.ErrMalformedCipher, "ciphertext contains an invalid point")
	}
	for i := 0; i < n; i++ {
		for k := 0; k < 2; k++ {
			if !c.AMulG1[i][k].IsInSubGroup() || !c.BMulG2[i][k].IsInSubGroup() {
				return errors.Wrap(fecore.ErrMalformedCipher, "ciphertext contains an invalid point")
			}
		}
	}

	return nil
}

// blsG1Exp returns k * G1, k is reduced modulo the group order.
func blsG1Exp(k *big.Int) bls12381.G1Affine {
	_, _, g1, _ := bls12381.Generators()
	return blsG1Mul(g1, k)
}

func blsG1Mul(a bls12381.G1Affine, k *big.Int) bls12381.G1Affine {
	var res bls12381.G1Affine
	res.ScalarMultiplication(&a, new(big.Int).Mod(k, blsOrder))
	return res
}

func blsG1Add(a, b bls12381.G1Affine) bls12381.G1Affine {
	var sum bls12381.G1Jac
	sum.FromAffine(&a)
	sum.AddMixed(&b)

	var res bls12381.G1Affine
	res.FromJacobian(&sum)
	return res
}

// blsG2Exp returns k * G2, k is reduced modulo the group order.
func blsG2Exp(k *big.Int) bls12381.G2Affine {
	_, _, _, g2 := bls12381.Generators()
	return blsG2Mul(g2, k)
}

func blsG2Mul(a bls12381.G2Affine, k *big.Int) bls12381.G2Affine {
	var res bls12381.G2Affine
	res.ScalarMultiplication(&a, new(big.Int).Mod(k, blsOrder))
	return res
}

func blsG2Add(a, b bls12381.G2Affine) bls12381.G2Affine {
	var sum bls12381.G2Jac
	sum.FromAffine(&a)
	sum.AddMixed(&b)

	var res bls12381.G2Affine
	res.FromJacobian(&sum)
	return res
}
