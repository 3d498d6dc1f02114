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

// Package sample includes samplers for sampling random values
// from uniform distributions.
//
// Package sample provides the Sampler interface along with
// implementations that read from an explicitly given io.Reader
// (crypto/rand by default) and a deterministic sampler driven by a
// salsa20 keystream. The deterministic one is what lets two parties
// expand the same shared secret into the same values.
//
// Implementations of the Sampler interface are used, for instance,
// to fill vector or matrix structures with the desired random data.
package sample
