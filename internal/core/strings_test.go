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
	"github.com/stretchr/testify/require"

	"m4o.io/pbf/v3/internal/core"
)

func TestStringTableIntern(t *testing.T) {
	st := core.NewStringTable()

	assert.Equal(t, int32(0), st.Intern(""))
	assert.Equal(t, int32(1), st.Intern("highway"))
	assert.Equal(t, int32(2), st.Intern("residential"))
	assert.Equal(t, int32(1), st.Intern("highway"))
	assert.Equal(t, 3, st.Len())

	assert.Equal(t, [][]byte{[]byte(""), []byte("highway"), []byte("residential")}, st.Materialize())
}

func TestStringTableEstimatedSize(t *testing.T) {
	st := core.NewStringTable()
	empty := st.EstimatedSize()

	st.Intern("abc")
	st.Intern("abc")

	assert.Equal(t, empty+3+3, st.EstimatedSize())
}

func TestStringTableReset(t *testing.T) {
	st := core.NewStringTable()
	st.Intern("a")
	st.Intern("b")

	st.Reset()

	assert.Equal(t, 1, st.Len())
	assert.Equal(t, int32(1), st.Intern("b"))
	assert.Equal(t, [][]byte{[]byte(""), []byte("b")}, st.Materialize())
}

func TestStringsResolve(t *testing.T) {
	s := core.NewStrings([][]byte{[]byte(""), []byte("name"), []byte("Main St")})

	v, err := s.Resolve(2)
	require.NoError(t, err)
	assert.Equal(t, "Main St", v)

	v, err = s.Resolve(0)
	require.NoError(t, err)
	assert.Equal(t, "", v)

	_, err = s.Resolve(3)
	assert.ErrorIs(t, err, core.ErrFormat)

	_, err = s.Resolve(-1)
	assert.ErrorIs(t, err, core.ErrFormat)
}
