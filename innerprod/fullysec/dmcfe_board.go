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
	"context"
	"math/big"

	"github.com/fentec-project/bn256"
	"github.com/fentec-project/fecore"
	"github.com/fentec-project/fecore/bulletin"
	"github.com/fentec-project/fecore/data"
	"github.com/pkg/errors"
)

// Topics of the board under which the rounds of the protocol are run.
const (
	topicPubKeys   = "dmcfe:pubkeys"
	topicCiphers   = "dmcfe:ciphers:"
	topicKeyShares = "dmcfe:keyshares:"
)

// ExchangePubKeys posts the public key of client c to board, waits
// until all n clients posted theirs and sets the share of c from them.
// Encryption and key derivation are possible only after it returns.
func (c *DMCFEClient) ExchangePubKeys(ctx context.Context, board bulletin.Board, n int) error {
	if err := board.Post(ctx, topicPubKeys, c.Idx, c.ClientPubKey.Marshal()); err != nil {
		return errors.Wrap(err, "could not publish public key")
	}

	payloads, err := board.Collect(ctx, topicPubKeys, n)
	if err != nil {
		return errors.Wrap(err, "could not collect public keys")
	}
	pubKeys := make([]*bn256.G1, n)
	for i, p := range payloads {
		pubKeys[i] = new(bn256.G1)
		if _, err := pubKeys[i].Unmarshal(p); err != nil {
			return errors.Wrapf(fecore.ErrMalformedKey, "public key of client %d: %v", i, err)
		}
	}

	return c.SetShare(pubKeys)
}

// PublishCipher encrypts x under label and posts the ciphertext to board.
func (c *DMCFEClient) PublishCipher(ctx context.Context, board bulletin.Board, x *big.Int, label string) error {
	cipher, err := c.Encrypt(x, label)
	if err != nil {
		return err
	}

	return errors.Wrap(board.Post(ctx, topicCiphers+label, c.Idx, cipher.Marshal()),
		"could not publish ciphertext")
}

// PublishKeyShare derives the key share of c for y and posts it to board.
func (c *DMCFEClient) PublishKeyShare(ctx context.Context, board bulletin.Board, y data.Vector) error {
	keyShare, err := c.DeriveKeyShare(y)
	if err != nil {
		return err
	}

	payload := append(keyShare[0].Marshal(), keyShare[1].Marshal()...)
	return errors.Wrap(board.Post(ctx, topicKeyShares+y.String(), c.Idx, payload),
		"could not publish key share")
}

// DMCFEDecryptFromBoard waits for the ciphertexts under label and the key
// shares for y of all the len(y) clients, combines the key shares and
// decrypts the inner product of x and y.
func DMCFEDecryptFromBoard(ctx context.Context, board bulletin.Board, y data.Vector, label string,
	bound *big.Int) (*big.Int, error) {
	n := len(y)

	payloads, err := board.Collect(ctx, topicCiphers+label, n)
	if err != nil {
		return nil, errors.Wrap(err, "could not collect ciphertexts")
	}
	ciphers := make([]*bn256.G1, n)
	for i, p := range payloads {
		ciphers[i] = new(bn256.G1)
		if _, err := ciphers[i].Unmarshal(p); err != nil {
			return nil, errors.Wrapf(fecore.ErrMalformedCipher, "ciphertext of client %d: %v", i, err)
		}
	}

	payloads, err = board.Collect(ctx, topicKeyShares+y.String(), n)
	if err != nil {
		return nil, errors.Wrap(err, "could not collect key shares")
	}
	keyShares := make([]data.VectorG2, n)
	for i, p := range payloads {
		keyShares[i], err = unmarshalKeyShare(p)
		if err != nil {
			return nil, errors.Wrapf(err, "key share of client %d", i)
		}
	}

	key, err := DMCFECombineKeys(keyShares)
	if err != nil {
		return nil, err
	}

	return DMCFEDecrypt(ciphers, y, key, label, bound)
}

// unmarshalKeyShare decodes two concatenated G2 elements of equal size.
func unmarshalKeyShare(p []byte) (data.VectorG2, error) {
	if len(p) == 0 || len(p)%2 != 0 {
		return nil, errors.Wrap(fecore.ErrMalformedKey, "key share has invalid length")
	}

	half := len(p) / 2
	keyShare := data.VectorG2{new(bn256.G2), new(bn256.G2)}
	for i := range keyShare {
		if _, err := keyShare[i].Unmarshal(p[i*half : (i+1)*half]); err != nil {
			return nil, errors.Wrapf(fecore.ErrMalformedKey, "%v", err)
		}
	}

	return keyShare, nil
}
