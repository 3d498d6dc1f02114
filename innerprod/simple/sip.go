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

package simple

import (
	"io"
	"math/big"

	"github.com/fentec-project/bn256"
	"github.com/fentec-project/fecore"
	"github.com/fentec-project/fecore/data"
	"github.com/fentec-project/fecore/internal/dlog"
	"github.com/fentec-project/fecore/sample"
	"github.com/pkg/errors"
)

// SIPParams represents configuration parameters for the SIP scheme
// instance.
type SIPParams struct {
	// length of input vectors x and y
	L int
}

// SIPSecKey is the master secret key of the SIP scheme.
type SIPSecKey struct {
	S data.Vector
}

// SIPPubKey is the master public key of the SIP scheme,
// V[i] = S[i] * G1.
type SIPPubKey struct {
	V data.VectorG1
}

// SIPCipher is a SIP ciphertext: C0 = r * G1 and
// C[i] = x[i] * G1 + r * V[i].
type SIPCipher struct {
	C0 *bn256.G1
	C  data.VectorG1
}

// SIPKey is a functional encryption key for the inner product with Y.
type SIPKey struct {
	Y   data.Vector
	Key *big.Int
}

// SIP represents a scheme for functional encryption of inner products
// instantiated from the DDH assumption in the BN256.G1 group, based on
// Abdalla, Bourse, De Caro, and Pointcheval:
// "Simple Functional Encryption Schemes for Inner Products".
type SIP struct {
	Params *SIPParams
	SecKey *SIPSecKey
	PubKey *SIPPubKey
}

// NewSIP configures a new instance of the scheme for input vectors of
// length l and generates its master keys. Randomness is read from rand,
// or crypto/rand if rand is nil.
func NewSIP(rand io.Reader, l int) (*SIP, error) {
	if l < 1 {
		return nil, errors.Wrapf(fecore.ErrMalformedInput, "vector length %d", l)
	}

	s, err := data.NewRandomVector(l, sample.NewUniformFrom(rand, bn256.Order))
	if err != nil {
		return nil, err
	}

	return &SIP{
		Params: &SIPParams{L: l},
		SecKey: &SIPSecKey{S: s},
		PubKey: &SIPPubKey{V: s.MulG1()},
	}, nil
}

// NewSIPFromPubKey reconstructs the scheme of a party that only holds
// the master public key. Such an instance can encrypt and decrypt, but
// cannot derive keys.
func NewSIPFromPubKey(pubKey *SIPPubKey) *SIP {
	return &SIP{
		Params: &SIPParams{L: len(pubKey.V)},
		PubKey: pubKey,
	}
}

// Encrypt encrypts input vector x with the master public key of the
// scheme.
func (s *SIP) Encrypt(rand io.Reader, x data.Vector) (*SIPCipher, error) {
	return EncryptWithPubKey(rand, s.PubKey, x)
}

// EncryptWithPubKey encrypts input vector x with the provided master
// public key. It returns ErrDimensionMismatch if x is not of the length
// of the key.
func EncryptWithPubKey(rand io.Reader, pubKey *SIPPubKey, x data.Vector) (*SIPCipher, error) {
	if pubKey == nil {
		return nil, errors.Wrap(fecore.ErrMalformedKey, "public key is nil")
	}
	if err := x.CheckLen(len(pubKey.V)); err != nil {
		return nil, err
	}

	r, err := sample.NewUniformFrom(rand, bn256.Order).Sample()
	if err != nil {
		return nil, err
	}

	// C[i] = x[i] * G1 + r * V[i]
	c := x.MulG1()
	for i := range c {
		c[i].Add(c[i], new(bn256.G1).ScalarMult(pubKey.V[i], r))
	}

	return &SIPCipher{
		C0: new(bn256.G1).ScalarBaseMult(r),
		C:  c,
	}, nil
}

// DeriveKey takes input vector y and returns the functional encryption
// key for the inner product with y.
func (s *SIP) DeriveKey(y data.Vector) (*SIPKey, error) {
	if s.SecKey == nil {
		return nil, errors.Wrap(fecore.ErrMalformedKey, "master secret key is missing")
	}
	if err := y.CheckLen(s.Params.L); err != nil {
		return nil, err
	}

	key, err := s.SecKey.S.Dot(y)
	if err != nil {
		return nil, err
	}

	return &SIPKey{
		Y:   y.Copy(),
		Key: key.Mod(key, bn256.Order),
	}, nil
}

// Decrypt accepts the ciphertext and the functional encryption key for
// y. It returns the inner product of x and y, given that the coordinates
// of x and y are bounded by bound in absolute value. If the inner
// product is not found within bound^2 * L, an error wrapping
// fecore.ErrNotFound is returned.
func (s *SIP) Decrypt(cipher *SIPCipher, key *SIPKey, bound *big.Int) (*big.Int, error) {
	if err := cipher.check(s.Params.L); err != nil {
		return nil, err
	}
	if key == nil || key.Key == nil {
		return nil, errors.Wrap(fecore.ErrMalformedKey, "key is nil")
	}
	if err := key.Y.CheckLen(s.Params.L); err != nil {
		return nil, err
	}
	if bound == nil {
		return nil, errors.Wrap(fecore.ErrMalformedInput, "bound cannot be nil")
	}

	// sum of y[i] * C[i] - key * C0
	num := key.Y.MulVecG1(cipher.C).Sum()
	denom := new(bn256.G1).ScalarMult(cipher.C0, key.Key)
	r := new(bn256.G1).Add(num, new(bn256.G1).Neg(denom))

	b := new(big.Int).Mul(bound, bound)
	b.Mul(b, big.NewInt(int64(s.Params.L)))

	g := new(bn256.G1).ScalarBaseMult(big.NewInt(1))
	calc := dlog.NewCalc().InG1().WithBound(b).WithNeg()

	return calc.BabyStepGiantStep(r, g)
}

func (c *SIPCipher) check(l int) error {
	if c == nil || c.C0 == nil || len(c.C) != l {
		return errors.Wrap(fecore.ErrMalformedCipher, "ciphertext does not match the scheme")
	}
	for _, ci := range c.C {
		if ci == nil {
			return errors.Wrap(fecore.ErrMalformedCipher, "ciphertext contains a nil element")
		}
	}

	return nil
}
