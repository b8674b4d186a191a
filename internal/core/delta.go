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

package core

import (
	"golang.org/x/exp/constraints"
)

// DeltaEncoder turns a sequence of values into the differences between
// consecutive values.  The baseline of the first value is zero.
type DeltaEncoder[T constraints.Integer] struct {
	prev T
}

// Encode returns the difference between v and the previously encoded value.
func (e *DeltaEncoder[T]) Encode(v T) T {
	d := v - e.prev
	e.prev = v

	return d
}

// Reset restarts the sequence at a zero baseline.
func (e *DeltaEncoder[T]) Reset() {
	e.prev = 0
}

// DeltaDecoder reverses DeltaEncoder by keeping a running total.
type DeltaDecoder[T constraints.Integer] struct {
	total T
}

// Decode adds delta to the running total and returns the new total.
func (d *DeltaDecoder[T]) Decode(delta T) T {
	d.total += delta

	return d.total
}

// Reset restarts the running total at zero.
func (d *DeltaDecoder[T]) Reset() {
	d.total = 0
}

// EncodeDeltas calculates the delta-encoding of the values.
func EncodeDeltas[T constraints.Integer](values []T) []T {
	var enc DeltaEncoder[T]

	deltas := make([]T, len(values))
	for i, v := range values {
		deltas[i] = enc.Encode(v)
	}

	return deltas
}

// DecodeDeltas reverses EncodeDeltas.
func DecodeDeltas[T constraints.Integer](deltas []T) []T {
	var dec DeltaDecoder[T]

	values := make([]T, len(deltas))
	for i, d := range deltas {
		values[i] = dec.Decode(d)
	}

	return values
}
