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

package cli

import (
	"github.com/spf13/pflag"

	"m4o.io/pbf/v3"
)

type compressionValue struct {
	value *pbf.BlobCompression
}

// NewCompressionValue returns a flag value, initialized to def, that parses
// blob compression names into p.
func NewCompressionValue(def pbf.BlobCompression, p *pbf.BlobCompression) pflag.Value {
	cv := &compressionValue{value: p}
	*cv.value = def

	return cv
}

func (c *compressionValue) Set(val string) error {
	bc, err := pbf.ParseBlobCompression(val)
	if err != nil {
		return err
	}

	*c.value = bc

	return nil
}

func (c *compressionValue) Type() string {
	return "compression"
}

func (c *compressionValue) String() string {
	if c.value == nil {
		return ""
	}

	return c.value.String()
}
