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

	"github.com/fentec-project/bn256"
	"github.com/fentec-project/fecore"
	"github.com/fentec-project/fecore/data"
	"github.com/fentec-project/fecore/internal/dlog"
	"github.com/fentec-project/fecore/sample"
	"github.com/pkg/errors"
)

// maxResample bounds the number of times a singular matrix W is
// resampled during encryption.
const maxResample = 16

// SGP implements efficient FE scheme for quadratic multi-variate polynomials
// based on  Sans, Gay and Pointcheval:
// "Reading in the Dark: Classifying Encrypted Digits with
// Functional Encryption".
// See paper: https://eprint.iacr.org/2018/206.pdf which is based on bilinear pairings.
// It offers adaptive security under chosen-plaintext attacks (IND-CPA security).
// Assuming input vectors x and y, the SGP scheme allows the decryptor to
// calculate x^T * F * y, where F is matrix that represents the function,
// and vectors x, y are only known to the encryptor, but not to decryptor.
//
// Encryption only needs the master public key, the master secret key
// is needed to derive keys.
type SGP struct {
	// length of vectors x and y (matrix F is N x N)
	N int

	SecKey *SGPSecKey
	PubKey *SGPPubKey

	// gCalc keeps the baby-step table between decryptions.
	mu    sync.Mutex
	gCalc *dlog.CalcBN256
}

// SGPSecKey represents a master secret key for the SGP scheme.
type SGPSecKey struct {
	S data.Vector
	T data.Vector
}

// SGPPubKey represents a master public key for the SGP scheme:
// G1S[i] = S[i] * G1 and G2T[i] = T[i] * G2.
type SGPPubKey struct {
	G1S data.VectorG1
	G2T data.VectorG2
}

// SGPCipher represents a ciphertext. An instance of this type
// is returned as a result of the Encrypt method. Row i of AMulG1
// (BMulG2) holds the two group elements blinding x_i (y_i).
type SGPCipher struct {
	G1MulGamma *bn256.G1
	AMulG1     data.MatrixG1
	BMulG2     data.MatrixG2
}

// SGPKey represents a functional encryption key for the function
// given by the matrix F.
type SGPKey struct {
	Key *bn256.G2
	F   data.Matrix
}

// NewSGP configures a new instance of the SGP scheme for input vectors
// of length n and generates its master keys. Randomness is read from
// rand, or crypto/rand if rand is nil.
func NewSGP(rand io.Reader, n int) (*SGP, error) {
	if n < 1 {
		return nil, errors.Wrapf(fecore.ErrMalformedInput, "vector length %d", n)
	}

	// msk is random s, t from Z_p^n
	sampler := sample.NewUniformFrom(rand, bn256.Order)
	s, err := data.NewRandomVector(n, sampler)
	if err != nil {
		return nil, err
	}
	t, err := data.NewRandomVector(n, sampler)
	if err != nil {
		return nil, err
	}

	return &SGP{
		N:      n,
		SecKey: &SGPSecKey{S: s, T: t},
		PubKey: &SGPPubKey{G1S: s.MulG1(), G2T: t.MulG2()},
		gCalc:  dlog.NewCalc().InBN256().WithNeg(),
	}, nil
}

// NewSGPFromPubKey reconstructs the scheme of a party that only holds
// the master public key. Such an instance can encrypt and decrypt, but
// cannot derive keys.
func NewSGPFromPubKey(pubKey *SGPPubKey) *SGP {
	return &SGP{
		N:      len(pubKey.G1S),
		PubKey: pubKey,
		gCalc:  dlog.NewCalc().InBN256().WithNeg(),
	}
}

// Encrypt encrypts input vectors x and y with the master public key.
// It returns the appropriate ciphertext. If ciphertext could not be
// generated, it returns an error.
func (q *SGP) Encrypt(rand io.Reader, x, y data.Vector) (*SGPCipher, error) {
	if err := x.CheckLen(q.N); err != nil {
		return nil, err
	}
	if err := y.CheckLen(q.N); err != nil {
		return nil, err
	}

	sampler := sample.NewUniformFrom(rand, bn256.Order)
	gamma, err := sampler.Sample()
	if err != nil {
		return nil, err
	}
	W, WInv, err := randomInvertible(sampler, bn256.Order)
	if err != nil {
		return nil, err
	}
	WInvT := WInv.Transpose()

	a := make(data.MatrixG1, q.N)
	b := make(data.MatrixG2, q.N)
	for i := 0; i < q.N; i++ {
		// a_i = (W^-1)^T * (x_i, gamma * s_i)
		a[i] = make(data.VectorG1, 2)
		for k := 0; k < 2; k++ {
			ax := new(big.Int).Mul(WInvT.At(k, 0), x[i])
			as := new(big.Int).Mul(WInvT.At(k, 1), gamma)
			a[i][k] = new(bn256.G1).ScalarBaseMult(ax.Mod(ax, bn256.Order))
			a[i][k].Add(a[i][k], new(bn256.G1).ScalarMult(q.PubKey.G1S[i], as.Mod(as, bn256.Order)))
		}

		// b_i = W * (y_i, -t_i)
		b[i] = make(data.VectorG2, 2)
		for k := 0; k < 2; k++ {
			by := new(big.Int).Mul(W.At(k, 0), y[i])
			bt := new(big.Int).Neg(W.At(k, 1))
			b[i][k] = new(bn256.G2).ScalarBaseMult(by.Mod(by, bn256.Order))
			b[i][k].Add(b[i][k], new(bn256.G2).ScalarMult(q.PubKey.G2T[i], bt.Mod(bt, bn256.Order)))
		}
	}

	return &SGPCipher{
		G1MulGamma: new(bn256.G1).ScalarBaseMult(gamma),
		AMulG1:     a,
		BMulG2:     b,
	}, nil
}

// randomInvertible samples a 2 x 2 matrix W and returns it together with
// its inverse modulo order. A singular W is resampled.
func randomInvertible(sampler sample.Sampler, order *big.Int) (data.Matrix2x2, data.Matrix2x2, error) {
	for i := 0; i < maxResample; i++ {
		W, err := data.NewRandomMatrix2x2(sampler)
		if err != nil {
			return data.Matrix2x2{}, data.Matrix2x2{}, err
		}
		WInv, err := W.InverseMod(order)
		if err == nil {
			return W, WInv, nil
		}
		if !errors.Is(err, fecore.ErrSingularMatrix) {
			return data.Matrix2x2{}, data.Matrix2x2{}, err
		}
	}

	return data.Matrix2x2{}, data.Matrix2x2{}, errors.Errorf("no invertible matrix in %d samples", maxResample)
}

// DeriveKey derives the functional encryption key for the function
// (x, y) -> x^T * F * y, where F is an N x N matrix. It returns an error
// if the key could not be derived.
func (q *SGP) DeriveKey(F data.Matrix) (*SGPKey, error) {
	if q.SecKey == nil {
		return nil, errors.Wrap(fecore.ErrMalformedKey, "master secret key is missing")
	}
	if !F.CheckDims(q.N, q.N) {
		return nil, errors.Wrapf(fecore.ErrDimensionMismatch,
			"function matrix should be %d x %d", q.N, q.N)
	}

	return deriveKey(q.SecKey.S, q.SecKey.T, F)
}

// DeriveKeyProjected derives the key for the function F applied to
// ciphertexts projected with P (see Project). P is an N x d matrix and
// F a d x d matrix.
func (q *SGP) DeriveKeyProjected(F, P data.Matrix) (*SGPKey, error) {
	if q.SecKey == nil {
		return nil, errors.Wrap(fecore.ErrMalformedKey, "master secret key is missing")
	}
	if P.Rows() != q.N || !F.CheckDims(P.Cols(), P.Cols()) {
		return nil, errors.Wrapf(fecore.ErrDimensionMismatch,
			"cannot project a %d x %d function matrix with a %d x %d matrix",
			F.Rows(), F.Cols(), P.Rows(), P.Cols())
	}

	PT := P.Transpose()
	s, err := PT.MulVec(q.SecKey.S)
	if err != nil {
		return nil, err
	}
	t, err := PT.MulVec(q.SecKey.T)
	if err != nil {
		return nil, err
	}

	return deriveKey(s, t, F)
}

// deriveKey returns the key f(s, t) * G2 for f given by F.
func deriveKey(s, t data.Vector, F data.Matrix) (*SGPKey, error) {
	v, err := F.MulXMatY(s, t)
	if err != nil {
		return nil, err
	}

	return &SGPKey{
		Key: new(bn256.G2).ScalarBaseMult(v.Mod(v, bn256.Order)),
		F:   F.Copy(),
	}, nil
}

// Project recombines the components of ciphertext c with the N x d
// matrix P. The result is a ciphertext of P^T * x and P^T * y, which
// can be decrypted with a key obtained by DeriveKeyProjected.
func (q *SGP) Project(c *SGPCipher, P data.Matrix) (*SGPCipher, error) {
	if err := c.check(q.N); err != nil {
		return nil, err
	}
	if P.Rows() != q.N {
		return nil, errors.Wrapf(fecore.ErrDimensionMismatch,
			"projection matrix should have %d rows", q.N)
	}

	PT := P.Transpose()
	a, err := PT.MulMatG1(c.AMulG1)
	if err != nil {
		return nil, err
	}
	b, err := PT.MulMatG2(c.BMulG2)
	if err != nil {
		return nil, err
	}

	return &SGPCipher{
		G1MulGamma: new(bn256.G1).Set(c.G1MulGamma),
		AMulG1:     a,
		BMulG2:     b,
	}, nil
}

// Decrypt decrypts the ciphertext c with the derived functional
// encryption key in order to obtain x^T * F * y. The elements of x, y
// and F are bounded by bound in absolute value, so the result is
// searched for within n^2 * bound^3, where n is the dimension of F.
func (q *SGP) Decrypt(c *SGPCipher, key *SGPKey, bound *big.Int) (*big.Int, error) {
	if key == nil || key.Key == nil {
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

	prod := bn256.Pair(c.G1MulGamma, key.Key)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			f := key.F.At(i, j)
			if f.Sign() == 0 {
				continue
			}
			e := bn256.Pair(c.AMulG1[i][0], c.BMulG2[j][0])
			e.Add(e, bn256.Pair(c.AMulG1[i][1], c.BMulG2[j][1]))
			prod.Add(prod, new(bn256.GT).ScalarMult(e, new(big.Int).Mod(f, bn256.Order)))
		}
	}

	g1gen := new(bn256.G1).ScalarBaseMult(big.NewInt(1))
	g2gen := new(bn256.G2).ScalarBaseMult(big.NewInt(1))
	g := bn256.Pair(g1gen, g2gen)

	// b = n^2 * bound^3
	b := new(big.Int).Exp(bound, big.NewInt(3), nil)
	b.Abs(b)
	b.Mul(b, big.NewInt(int64(n*n)))

	q.mu.Lock()
	defer q.mu.Unlock()
	q.gCalc = q.gCalc.WithBound(b)

	return q.gCalc.BabyStepGiantStep(prod, g)
}

func (c *SGPCipher) check(n int) error {
	if c == nil || c.G1MulGamma == nil || c.AMulG1.Rows() != n || c.BMulG2.Rows() != n {
		return errors.Wrapf(fecore.ErrMalformedCipher, "ciphertext should be of length %d", n)
	}
	for i := 0; i < n; i++ {
		if len(c.AMulG1[i]) != 2 || len(c.BMulG2[i]) != 2 {
			return errors.Wrap(fecore.ErrMalformedCipher, "ciphertext components should be pairs")
		}
		for k := 0; k < 2; k++ {
			if c.AMulG1[i][k] == nil || c.BMulG2[i][k] == nil {
				return errors.Wrap(fecore.ErrMalformedCipher, "ciphertext contains a nil element")
			}
		}
	}

	return nil
}
