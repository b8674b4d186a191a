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

const (
	// DefaultInputBufferSize is the default size of the buffer reading the
	// input.
	DefaultInputBufferSize = 64 * 1024
)

type readerOptions struct {
	metadata        bool
	inputBufferSize int
}

// ReaderOption configures how a Reader decodes entities.
type ReaderOption func(*readerOptions)

// WithReadMetadata sets whether entity metadata is decoded.  When unset, the
// Info of every entity read is nil.
func WithReadMetadata(metadata bool) ReaderOption {
	return func(o *readerOptions) {
		o.metadata = metadata
	}
}

// WithInputBufferSize sets the size of the buffer reading the input.  Zero
// disables buffering.
func WithInputBufferSize(size int) ReaderOption {
	return func(o *readerOptions) {
		o.inputBufferSize = size
	}
}

var defaultReaderConfig = readerOptions{
	metadata:        true,
	inputBufferSize: DefaultInputBufferSize,
}
