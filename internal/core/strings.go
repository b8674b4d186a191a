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
	"fmt"
)

// stringOverhead approximates the per string cost of the protobuf framing in
// the serialized string table.
const stringOverhead = 3

// StringTable builds the string table of a single block.  Index 0 is reserved
// for the empty string, which is the delimiter of dense node tags; every
// other string gets the next index the first time it is interned.
type StringTable struct {
	indices map[string]int32
	strings []string
	size    int
}

// NewStringTable returns a table holding only the empty string sentinel.
func NewStringTable() *StringTable {
	t := &StringTable{}
	t.Reset()

	return t
}

// Intern returns the index of s, adding s to the table if it hasn't been
// seen before.
func (t *StringTable) Intern(s string) int32 {
	if s == "" {
		return 0
	}

	if i, ok := t.indices[s]; ok {
		return i
	}

	i := int32(len(t.strings))
	t.indices[s] = i
	t.strings = append(t.strings, s)
	t.size += len(s) + stringOverhead

	return i
}

// Len returns the number of entries, including the sentinel.
func (t *StringTable) Len() int {
	return len(t.strings)
}

// EstimatedSize returns an upper bound of the serialized table in bytes.
func (t *StringTable) EstimatedSize() int {
	return t.size
}

// Materialize returns the table with every string at its index.
func (t *StringTable) Materialize() [][]byte {
	s := make([][]byte, len(t.strings))
	for i, str := range t.strings {
		s[i] = []byte(str)
	}

	return s
}

// Reset drops every string except the sentinel.
func (t *StringTable) Reset() {
	t.indices = make(map[string]int32)
	t.strings = append(t.strings[:0], "")
	t.size = stringOverhead
}

// Strings resolves the indices of a decoded block's string table.
type Strings []string

// NewStrings converts a decoded string table.
func NewStrings(table [][]byte) Strings {
	s := make(Strings, len(table))
	for i, b := range table {
		s[i] = string(b)
	}

	return s
}

// Resolve returns the string at index i.  Index 0 always resolves to the
// empty string.
func (s Strings) Resolve(i int64) (string, error) {
	if i == 0 {
		return "", nil
	}

	if i < 0 || i >= int64(len(s)) {
		return "", fmt.Errorf("%w: string index %d out of range [0, %d)", ErrFormat, i, len(s))
	}

	return s[i], nil
}
