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

// Package bulletin provides boards through which the parties of a
// decentralized scheme exchange their public messages: public keys,
// ciphertexts and key shares.
//
// A board is organized in topics. In every topic each party posts at
// most one payload under its index, and readers wait until all the
// parties posted.
package bulletin

import (
	"context"

	"github.com/fentec-project/fecore"
	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrDuplicate = errors.New("index already posted to topic")
	ErrClosed    = errors.New("board is closed")
)

// Board defines the interface of a bulletin board.
type Board interface {
	// Post publishes payload of the party with index idx to topic.
	// It returns ErrDuplicate if the party already posted to topic.
	Post(ctx context.Context, topic string, idx int, payload []byte) error
	// Collect blocks until parties 0, ..., n-1 all posted to topic, and
	// returns their payloads ordered by index.
	Collect(ctx context.Context, topic string, n int) ([][]byte, error)
	// Close releases the resources held by the board.
	Close() error
}

func checkIndex(idx int) error {
	if idx < 0 {
		return errors.Wrapf(fecore.ErrMalformedInput, "invalid party index %d", idx)
	}
	return nil
}

func checkCount(n int) error {
	if n < 0 {
		return errors.Wrapf(fecore.ErrMalformedInput, "invalid number of parties %d", n)
	}
	return nil
}
