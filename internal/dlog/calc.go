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
	"context"
	"math/big"
	"runtime"
	"sync"

	"github.com/fentec-project/fecore"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// MaxBound limits the interval of values that are checked when
// computing discrete logarithms. It prevents time and memory
// exhaustive computation for practical purposes.
// If Calc is configured to use a boundary value > MaxBound, the
// computation is refused with fecore.ErrBoundTooLarge.
var MaxBound = big.NewInt(1500000000)

// bruteForceBound is the bound below which the logarithm is found by
// simply trying all the candidates.
var bruteForceBound = big.NewInt(16)

// errFound stops the remaining giant-step workers once one of them
// found the logarithm.
var errFound = errors.New("discrete logarithm found")

// Calc represents a discrete logarithm calculator.
type Calc struct{}

// NewCalc returns a calculator, which is specialized for a group by
// one of its In* methods.
func NewCalc() *Calc {
	return &Calc{}
}

// solver holds the configuration of a bounded baby-step giant-step
// search in a group with elements of type E, together with the baby-step
// table that can be reused between searches with the same generator.
//
// A solver is not safe for concurrent use, since BabyStepGiantStep
// may (re)build the table.
type solver[E any] struct {
	grp     group[E]
	bound   *big.Int
	neg     bool
	workers int

	// Precomp maps encoded powers g^i, i = 0, ..., m, to i.
	Precomp  map[string]int64
	precompG string
	precompM int64
}

func newSolver[E any](grp group[E]) *solver[E] {
	return &solver[E]{
		grp:     grp,
		bound:   MaxBound,
		workers: runtime.NumCPU(),
	}
}

// derive returns a copy of s with the configuration changed by f.
// The precomputed table is shared only while the bound, and thus
// the table size, stays the same.
func (s *solver[E]) derive(f func(*solver[E])) *solver[E] {
	res := *s
	f(&res)
	if res.bound.Cmp(s.bound) != 0 {
		res.Precomp = nil
		res.precompG = ""
	}

	return &res
}

func (s *solver[E]) withBound(bound *big.Int) *solver[E] {
	if bound == nil {
		return s
	}
	return s.derive(func(r *solver[E]) { r.bound = new(big.Int).Abs(bound) })
}

func (s *solver[E]) withNeg() *solver[E] {
	return s.derive(func(r *solver[E]) { r.neg = true })
}

func (s *solver[E]) withWorkers(n int) *solver[E] {
	if n < 1 {
		n = 1
	}
	return s.derive(func(r *solver[E]) { r.workers = n })
}

// giantStepCount returns m = ceil(sqrt(bound)) + 1.
func giantStepCount(bound *big.Int) int64 {
	m := new(big.Int).Sqrt(bound)
	if new(big.Int).Mul(m, m).Cmp(bound) < 0 {
		m.Add(m, big.NewInt(1))
	}

	return m.Int64() + 1
}

// precompute builds the baby-step table g^i -> i for i = 0, ..., m.
func (s *solver[E]) precompute(g E, m int64) {
	T := make(map[string]int64, m+1)
	x := s.grp.identity()
	for i := int64(0); i <= m; i++ {
		T[s.grp.key(x)] = i
		x = s.grp.mul(x, g)
	}

	s.Precomp = T
	s.precompG = s.grp.key(g)
	s.precompM = m
}

// babyStepGiantStep searches for e with |e| <= bound (or 0 <= e <= bound
// if negative values are not searched for) such that h = g^e.
func (s *solver[E]) babyStepGiantStep(h, g E) (*big.Int, error) {
	if s.bound.Cmp(MaxBound) > 0 {
		return nil, errors.Wrapf(fecore.ErrBoundTooLarge, "bound %v exceeds %v", s.bound, MaxBound)
	}

	if s.grp.key(h) == s.grp.key(s.grp.identity()) {
		return big.NewInt(0), nil
	}

	if s.bound.Cmp(bruteForceBound) < 0 {
		return bruteForce(s.grp, h, g, s.bound, s.neg)
	}

	m := giantStepCount(s.bound)
	if s.Precomp == nil || s.precompM != m || s.precompG != s.grp.key(g) {
		s.precompute(g, m)
	}

	// z = g^-m
	z := s.grp.inv(s.grp.exp(g, big.NewInt(m)))

	targets := []E{h}
	if s.neg {
		targets = append(targets, s.grp.inv(h))
	}

	workers := int64(s.workers)
	if workers < 1 {
		workers = 1
	}
	if workers > m+1 {
		workers = m + 1
	}
	chunk := (m + workers) / workers

	var (
		mu  sync.Mutex
		res *big.Int
	)
	eg, ctx := errgroup.WithContext(context.Background())
	for w := int64(0); w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > m+1 {
			hi = m + 1
		}
		if lo >= hi {
			break
		}
		eg.Go(func() error {
			e, ok := s.walk(ctx, targets, z, m, lo, hi)
			if !ok {
				return nil
			}
			mu.Lock()
			if res == nil {
				res = e
			}
			mu.Unlock()
			return errFound
		})
	}

	if err := eg.Wait(); err != nil && !errors.Is(err, errFound) {
		return nil, err
	}
	if res == nil {
		return nil, errors.Wrapf(fecore.ErrNotFound, "bound %v", s.bound)
	}

	return res, nil
}

// walk performs giant steps j = lo, ..., hi-1 for all the targets.
// The k-th target is (h^(-1))^k * z^j, a match with g^i means
// that the logarithm is (-1)^k (i + j*m). Matches with a magnitude
// above the bound are skipped.
func (s *solver[E]) walk(ctx context.Context, targets []E, z E, m, lo, hi int64) (*big.Int, bool) {
	zLo := s.grp.exp(z, big.NewInt(lo))
	xs := make([]E, len(targets))
	for k, t := range targets {
		xs[k] = s.grp.mul(t, zLo)
	}

	for j := lo; j < hi; j++ {
		select {
		case <-ctx.Done():
			return nil, false
		default:
		}

		for k := range xs {
			if i, ok := s.Precomp[s.grp.key(xs[k])]; ok {
				e := new(big.Int).Mul(big.NewInt(j), big.NewInt(m))
				e.Add(e, big.NewInt(i))
				if e.Cmp(s.bound) <= 0 {
					if k == 1 {
						e.Neg(e)
					}
					return e, true
				}
			}
			xs[k] = s.grp.mul(xs[k], z)
		}
	}

	return nil, false
}
