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

package fecore

import (
	"github.com/fentec-project/bn256"
	"github.com/pkg/errors"
)

var malformedStr = "is not of the proper form"

// Errors shared by all the schemes. Callers should match them with
// errors.Is, since they are usually returned wrapped.
var (
	ErrDimensionMismatch = errors.New("dimensions of the input do not match")
	ErrSingularMatrix    = errors.New("matrix is not invertible")
	ErrNotFound          = errors.New("failed to find discrete logarithm within bound")
	ErrBoundTooLarge     = errors.New("bound exceeds the maximal allowed bound")
	ErrMalformedInput    = errors.Errorf("input data %s", malformedStr)
	ErrMalformedCipher   = errors.Errorf("ciphertext %s", malformedStr)
	ErrMalformedKey      = errors.Errorf("key %s", malformedStr)
)

// PlaintextModulus is the modulus against which plaintext values are
// reduced before they are lifted into group exponents. It coincides with
// the order of the BN256 groups, so a negative plaintext -v is encoded
// as Order - v and recovered as -v by the discrete logarithm search.
var PlaintextModulus = bn256.Order
