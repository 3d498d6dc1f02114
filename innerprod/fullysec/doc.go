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

// Package fullysec includes fully secure schemes for functional encryption
// of inner products.
//
// The decentralized multi-client scheme (DMCFE) is based on the paper by
// Chotard, Dufour Sans, Gay, Phan and Pointcheval (see
// https://eprint.iacr.org/2017/989.pdf). There is no trusted authority:
// the clients agree on their secret shares by a pairwise Diffie-Hellman
// handshake, each of them encrypts its own coordinate of x under a label,
// and the key for y is combined from the key shares of all the clients.
//
// The messages of the protocol can be exchanged through a
// bulletin.Board, see ExchangePubKeys, PublishCipher, PublishKeyShare and
// DMCFEDecryptFromBoard.
package fullysec
