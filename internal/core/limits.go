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

// Block types.
const (
	OSMHeaderType = "OSMHeader"
	OSMDataType   = "OSMData"
)

// Size limits of the file format.
const (
	// MaxBlobHeaderSize is the maximum size of a serialized BlobHeader.
	MaxBlobHeaderSize = 64 * 1024

	// MaxHeaderBlockSize is the maximum uncompressed size of an OSMHeader
	// block.
	MaxHeaderBlockSize = 64 * 1024

	// MaxDataBlockSize is the maximum uncompressed size of an OSMData block.
	MaxDataBlockSize = 32 * 1024 * 1024

	// MaxBlobSize is the maximum serialized size of a Blob: a full data
	// block plus its Blob fields and worst case compression expansion.
	MaxBlobSize = MaxDataBlockSize + 256*1024
)

// MaxBlockSize returns the maximum uncompressed size of a block of the given
// type.
func MaxBlockSize(blockType string) int {
	if blockType == OSMHeaderType {
		return MaxHeaderBlockSize
	}

	return MaxDataBlockSize
}
