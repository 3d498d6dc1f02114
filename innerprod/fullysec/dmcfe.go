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

package fullysec

import (
	"crypto/sha256"
	"io"
	"math/big"
	"strconv"

	"github.com/fentec-project/bn256"
	"github.com/fentec-project/fecore"
	"github.com/fentec-project/fecore/data"
	"github.com/fentec-project/fecore/internal/dlog"
	"github.com/fentec-project/fecore/sample"
	"github.com/pkg/errors"
)

// shareDomain separates the hashing of the Diffie-Hellman values of the
// handshake from other uses of the same group elements.
const shareDomain = "dmcfe-share"

// DMCFEClient is to be instantiated by the client. Idx presents index of the client.
type DMCFEClient struct {
	Idx          int
	ClientSecKey *big.Int
	ClientPubKey *bn256.G1
	Share        data.Matrix2x2
	S            data.Vector
}

// NewDMCFEClient is to be called by the party that wants to encrypt number x_i.
// The decryptor will be able to compute inner product of x and y where x = (x_1,...,x_l) and
// y is publicly known vector y = (y_1,...,y_l). Value idx presents index of the party, where
// it is assumed that if there are n clients, its indexes are in [0, n-1].
// Randomness is read from rand, or crypto/rand if rand is nil.
func NewDMCFEClient(rand io.Reader, idx int) (*DMCFEClient, error) {
	if idx < 0 {
		return nil, errors.Wrapf(fecore.ErrMalformedInput, "client index %d", idx)
	}

	sampler := sample.NewUniformFrom(rand, bn256.Order)
	s, err := data.NewRandomVector(2, sampler)
	if err != nil {
		return nil, errors.Wrap(err, "could not generate random vector")
	}
	sec, err := sampler.Sample()
	if err != nil {
		return nil, errors.Wrap(err, "could not generate random value")
	}
	pub := new(bn256.G1).ScalarBaseMult(sec)

	return &DMCFEClient{
		Idx:          idx,
		ClientSecKey: sec,
		ClientPubKey: pub,
		Share:        data.NewZeroMatrix2x2(),
		S:            s,
	}, nil
}

// SetShare sets a shared key for client c, based on the public keys of all the
// clients involved in the scheme. It assumes that Idx of a client indicates
// which is the corresponding public key in pubKeys. Shared keys are such that
// each client has a random key but all the shared keys sum to 0.
//
// The matrix shared by clients i and j is expanded from the hash of
// their Diffie-Hellman value, so both derive the same one; the client
// with the greater index adds it, the other one subtracts it.
func (c *DMCFEClient) SetShare(pubKeys []*bn256.G1) error {
	if c.Idx >= len(pubKeys) {
		return errors.Wrapf(fecore.ErrDimensionMismatch,
			"client index %d for %d public keys", c.Idx, len(pubKeys))
	}

	share := data.NewZeroMatrix2x2()
	for k := 0; k < len(pubKeys); k++ {
		if k == c.Idx {
			continue
		}
		if pubKeys[k] == nil {
			return errors.Wrapf(fecore.ErrMalformedKey, "public key of client %d is nil", k)
		}

		sharedG1 := new(bn256.G1).ScalarMult(pubKeys[k], c.ClientSecKey)
		sharedKey := sha256.Sum256(append([]byte(shareDomain), sharedG1.Marshal()...))

		add, err := data.NewRandomDetMatrix2x2(bn256.Order, &sharedKey)
		if err != nil {
			return err
		}

		if k < c.Idx {
			share = share.Add(add)
		} else {
			share = share.Sub(add)
		}
		share = share.Mod(bn256.Order)
	}
	c.Share = share

	return nil
}

// labelHashes hashes (k, label) to G1 for k = 0, 1.
func labelHashes(label string) ([2]*bn256.G1, error) {
	var hs [2]*bn256.G1
	for i := range hs {
		h, err := bn256.HashG1(strconv.Itoa(i) + " " + label)
		if err != nil {
			return hs, errors.Wrap(err, "could not hash label")
		}
		hs[i] = h
	}

	return hs, nil
}

// keyHashes hashes (k, y) to G2 for k = 0, 1.
func keyHashes(y data.Vector) ([2]*bn256.G2, error) {
	var hs [2]*bn256.G2
	for i := range hs {
		h, err := bn256.HashG2(strconv.Itoa(i) + " " + y.String())
		if err != nil {
			return hs, errors.Wrap(err, "could not hash vector")
		}
		hs[i] = h
	}

	return hs, nil
}

// Encrypt encrypts number x under some label.
func (c *DMCFEClient) Encrypt(x *big.Int, label string) (*bn256.G1, error) {
	if x == nil {
		return nil, errors.Wrap(fecore.ErrMalformedInput, "plaintext is nil")
	}
	hs, err := labelHashes(label)
	if err != nil {
		return nil, err
	}

	return c.encrypt(x, hs), nil
}

func (c *DMCFEClient) encrypt(x *big.Int, hs [2]*bn256.G1) *bn256.G1 {
	cipher := new(bn256.G1).ScalarBaseMult(new(big.Int).Mod(x, fecore.PlaintextModulus))
	for i, h := range hs {
		cipher.Add(cipher, new(bn256.G1).ScalarMult(h, c.S[i]))
	}

	return cipher
}

// EncryptVec encrypts a vector of numbers under some label. It is meant
// for a single client holding the whole vector, without a handshake;
// the ciphertext is decrypted with a key obtained by DeriveKey.
func (c *DMCFEClient) EncryptVec(x data.Vector, label string) (data.VectorG1, error) {
	if err := x.Check(); err != nil {
		return nil, err
	}
	hs, err := labelHashes(label)
	if err != nil {
		return nil, err
	}

	ciphers := make(data.VectorG1, len(x))
	for i, xi := range x {
		ciphers[i] = c.encrypt(xi, hs)
	}

	return ciphers, nil
}

// DeriveKeyShare generates client's key share. Decryptor needs shares from all clients.
// Only the coordinate of y belonging to the client enters the share
// directly, the whole y determines the hashed elements.
func (c *DMCFEClient) DeriveKeyShare(y data.Vector) (data.VectorG2, error) {
	if c.Idx >= len(y) {
		return nil, errors.Wrapf(fecore.ErrDimensionMismatch,
			"client index %d for a vector of length %d", c.Idx, len(y))
	}
	if err := y.Check(); err != nil {
		return nil, err
	}

	hs, err := keyHashes(y)
	if err != nil {
		return nil, err
	}

	keyShare := make(data.VectorG2, 2)
	for k := range keyShare {
		pow := new(big.Int).Mul(y[c.Idx], c.S[k])
		keyShare[k] = new(bn256.G2).ScalarBaseMult(pow.Mod(pow, bn256.Order))
		for i := 0; i < 2; i++ {
			keyShare[k].Add(keyShare[k], new(bn256.G2).ScalarMult(hs[i], c.Share.At(k, i)))
		}
	}

	return keyShare, nil
}

// DeriveKey derives the functional encryption key for y for a single
// client that encrypted the whole vector with EncryptVec.
func (c *DMCFEClient) DeriveKey(y data.Vector) (data.VectorG2, error) {
	if err := y.Check(); err != nil {
		return nil, err
	}

	ySum := big.NewInt(0)
	for _, yi := range y {
		ySum.Add(ySum, yi)
	}

	key := make(data.VectorG2, 2)
	for k := range key {
		pow := new(big.Int).Mul(ySum, c.S[k])
		key[k] = new(bn256.G2).ScalarBaseMult(pow.Mod(pow, bn256.Order))
	}

	return key, nil
}

// DMCFECombineKeys sums the key shares of all the clients into the
// functional encryption key. The step uses only public values.
func DMCFECombineKeys(keyShares []data.VectorG2) (data.VectorG2, error) {
	key := data.VectorG2{
		new(bn256.G2).ScalarBaseMult(big.NewInt(0)),
		new(bn256.G2).ScalarBaseMult(big.NewInt(0)),
	}
	for i, ks := range keyShares {
		if len(ks) != 2 || ks[0] == nil || ks[1] == nil {
			return nil, errors.Wrapf(fecore.ErrMalformedKey, "key share of client %d", i)
		}
		key = key.Add(ks)
	}

	return key, nil
}

// DMCFEDecrypt is to be called by a party that wants to decrypt a message - to compute inner product
// of x and y. It needs ciphertexts from all clients and the key combined from the key shares
// of all clients. The label is a string under which vector x has been encrypted (each client
// encrypted x_i under this label). The coordinates of x and y are bounded by bound in absolute
// value, so the inner product is searched for within bound^2 * len(y).
func DMCFEDecrypt(ciphers []*bn256.G1, y data.Vector, key data.VectorG2, label string,
	bound *big.Int) (*big.Int, error) {
	if err := y.CheckLen(len(ciphers)); err != nil {
		return nil, err
	}
	if bound == nil {
		return nil, errors.Wrap(fecore.ErrMalformedInput, "bound cannot be nil")
	}
	if len(key) != 2 || key[0] == nil || key[1] == nil {
		return nil, errors.Wrap(fecore.ErrMalformedKey, "key should consist of two G2 elements")
	}

	cSum := new(bn256.G1).ScalarBaseMult(big.NewInt(0))
	for i, c := range ciphers {
		if c == nil {
			return nil, errors.Wrapf(fecore.ErrMalformedCipher, "ciphertext of client %d is nil", i)
		}
		cSum.Add(cSum, new(bn256.G1).ScalarMult(c, new(big.Int).Mod(y[i], fecore.PlaintextModulus)))
	}
	gen2 := new(bn256.G2).ScalarBaseMult(big.NewInt(1))
	s := bn256.Pair(cSum, gen2)

	hs, err := labelHashes(label)
	if err != nil {
		return nil, err
	}
	t := bn256.Pair(hs[0], key[0])
	t.Add(t, bn256.Pair(hs[1], key[1]))
	s.Add(s, new(bn256.GT).Neg(t))

	b := new(big.Int).Mul(bound, bound)
	b.Mul(b, big.NewInt(int64(len(y))))

	gen1 := new(bn256.G1).ScalarBaseMult(big.NewInt(1))
	g := bn256.Pair(gen1, gen2)

	return dlog.NewCalc().InBN256().WithNeg().WithBound(b).BabyStepGiantStep(s, g)
}
