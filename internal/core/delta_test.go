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

package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/pbf/v3/internal/core"
)

func TestEncodeDeltas(t *testing.T) {
	assert.Equal(t, []int64{10, 2, 3, -15}, core.EncodeDeltas([]int64{10, 12, 15, 0}))
	assert.Equal(t, []int64{}, core.EncodeDeltas([]int64{}))
}

func TestDecodeDeltas(t *testing.T) {
	assert.Equal(t, []int64{10, 12, 15, 0}, core.DecodeDeltas([]int64{10, 2, 3, -15}))
}

func TestDeltaRoundTrip(t *testing.T) {
	testCases := []struct {
		name   string
		values []int64
	}{
		{"single", []int64{-7}},
		{"ascending", []int64{1, 2, 3, 4, 5}},
		{"repeated", []int64{5, 5, 5}},
		{"mixed", []int64{515000000, -1000000, 0, 1 << 40, -(1 << 40)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.values, core.DecodeDeltas(core.EncodeDeltas(tc.values)))
		})
	}
}

func TestDeltaEncoderReset(t *testing.T) {
	var enc core.DeltaEncoder[int32]

	assert.Equal(t, int32(3), enc.Encode(3))
	assert.Equal(t, int32(1), enc.Encode(4))

	enc.Reset()
	assert.Equal(t, int32(4), enc.Encode(4))

	var dec core.DeltaDecoder[int32]

	assert.Equal(t, int32(3), dec.Decode(3))
	assert.Equal(t, int32(4), dec.Decode(1))

	dec.Reset()
	assert.Equal(t, int32(1), dec.Decode(1))
}
