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

	"github.com/fentec-project/fecore"
	"github.com/pkg/errors"
)

// Simply brute-forces all possible options in [0, bound], and in
// [-bound, 0) if neg is set.
func bruteForce[E any](grp group[E], h, g E, bound *big.Int, neg bool) (*big.Int, error) {
	hKey := grp.key(h)
	hInvKey := grp.key(grp.inv(h))

	x := grp.identity()
	for i := big.NewInt(0); i.Cmp(bound) <= 0; i.Add(i, big.NewInt(1)) {
		k := grp.key(x)
		if k == hKey {
			return new(big.Int).Set(i), nil
		}
		if neg && k == hInvKey {
			return new(big.Int).Neg(i), nil
		}
		x = grp.mul(x, g)
	}

	return nil, errors.Wrapf(fecore.ErrNotFound, "bound %v", bound)
}
