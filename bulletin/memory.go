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

package bulletin

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// MemoryBoard is a Board for parties running in the same process.
// It is safe for concurrent use.
type MemoryBoard struct {
	mu      sync.Mutex
	topics  map[string]map[int][]byte
	changed chan struct{}
	closed  bool
}

// NewMemoryBoard returns an empty MemoryBoard.
func NewMemoryBoard() *MemoryBoard {
	return &MemoryBoard{
		topics:  make(map[string]map[int][]byte),
		changed: make(chan struct{}),
	}
}

// Post publishes a copy of payload.
func (b *MemoryBoard) Post(ctx context.Context, topic string, idx int, payload []byte) error {
	if err := checkIndex(idx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}

	posts, ok := b.topics[topic]
	if !ok {
		posts = make(map[int][]byte)
		b.topics[topic] = posts
	}
	if _, ok := posts[idx]; ok {
		return errors.Wrapf(ErrDuplicate, "topic %q, index %d", topic, idx)
	}
	posts[idx] = append([]byte(nil), payload...)

	// wake up all the waiting collectors
	close(b.changed)
	b.changed = make(chan struct{})

	return nil
}

// Collect waits until parties 0, ..., n-1 posted to topic.
func (b *MemoryBoard) Collect(ctx context.Context, topic string, n int) ([][]byte, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	for {
		b.mu.Lock()
		if b.closed {
			b.mu.Unlock()
			return nil, ErrClosed
		}
		if res, ok := b.gather(topic, n); ok {
			b.mu.Unlock()
			return res, nil
		}
		changed := b.changed
		b.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// gather returns copies of the payloads of parties 0, ..., n-1, if they
// all posted. b.mu must be held.
func (b *MemoryBoard) gather(topic string, n int) ([][]byte, bool) {
	posts := b.topics[topic]
	res := make([][]byte, n)
	for i := range res {
		p, ok := posts[i]
		if !ok {
			return nil, false
		}
		res[i] = append([]byte(nil), p...)
	}

	return res, true
}

// Close closes the board, waking up all the waiting collectors.
func (b *MemoryBoard) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.changed)
	}

	return nil
}
