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
	"m4o.io/pbf/v3/internal/encoder"
)

// BlobCompression is the compression applied to every block written.
type BlobCompression = encoder.BlobCompression

// Supported blob compressions.
const (
	RAW  = encoder.RAW
	ZLIB = encoder.ZLIB
	LZMA = encoder.LZMA
	LZ4  = encoder.LZ4
	ZSTD = encoder.ZSTD
)

// ParseBlobCompression converts one of "none", "raw", "zlib", "lzma", "lz4"
// or "zstd" into a BlobCompression.
func ParseBlobCompression(s string) (BlobCompression, error) {
	return encoder.ParseBlobCompression(s)
}
