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

// Package fecore implements functional encryption schemes over the
// BN256 pairing groups: a simple inner-product scheme (see package
// innerprod/simple), a decentralized multi-client inner-product scheme
// without a trusted dealer (see package innerprod/fullysec) and a
// scheme for quadratic polynomials (see package quadratic).
//
// A key derived for a function f allows its holder to learn f(x)
// from an encryption of x, and nothing else. Every decryption ends
// with a bounded discrete logarithm search, so the caller has to
// provide a bound on the absolute values of the inputs. If the bound
// is too small, decryption returns ErrNotFound rather than a wrong
// value.
//
// Group arithmetic is provided by github.com/fentec-project/bn256 and
// is not constant time.
package fecore
