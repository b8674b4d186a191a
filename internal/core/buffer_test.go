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

func TestPooledBuffer(t *testing.T) {
	buf := core.NewPooledBuffer()
	buf.WriteString("stale")
	buf.Close()

	assert.Nil(t, buf.Buffer)
	buf.Close()

	buf = core.NewPooledBuffer()
	defer buf.Close()

	assert.Equal(t, 0, buf.Len())
}
