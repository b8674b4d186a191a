// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package core holds the pieces shared by the PBF encoder and decoder: error
// sentinels, pooled buffers, delta coding and string tables.
package core

import "errors"

var (
	// ErrFormat is returned when the PBF stream is malformed: blocks out of
	// order, oversized blocks, truncated or corrupt data.
	ErrFormat = errors.New("pbf: invalid format")

	// ErrNotSupported is returned when the stream requires a feature that
	// isn't supported.
	ErrNotSupported = errors.New("pbf: not supported")

	// ErrValidation is returned when an entity can't be written.
	ErrValidation = errors.New("pbf: invalid entity")
)
