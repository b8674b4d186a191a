// Copyright 2017-25 the original author or authors.
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

package pbf

import (
	"errors"

	"m4o.io/pbf/v3/internal/core"
)

var (
	// ErrFormat is returned when the input isn't a well formed PBF stream:
	// the header block is missing or out of order, a block exceeds its size
	// limit, or the bytes are truncated or corrupt.
	ErrFormat = core.ErrFormat

	// ErrNotSupported is returned when the stream requires a feature, or a
	// blob compression, that isn't supported.
	ErrNotSupported = core.ErrNotSupported

	// ErrValidation is returned by Writer.Write for entities that can't be
	// written with the writer's settings.
	ErrValidation = core.ErrValidation

	// ErrInvalidOption is returned when a Reader or Writer is constructed
	// with an out of range option.
	ErrInvalidOption = errors.New("pbf: invalid option")

	// ErrClosed is returned when using a closed Reader or Writer.
	ErrClosed = errors.New("pbf: closed")
)
