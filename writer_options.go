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
	"fmt"
	"time"

	"m4o.io/pbf/v3/internal/encoder"
	"m4o.io/pbf/v3/model"
)

const (
	// DefaultBlobCompression is the default compression of written blocks.
	DefaultBlobCompression = ZLIB

	// DefaultBlockSizeThreshold is the estimated block size above which the
	// entities of one type are flushed.  It is half the maximum size of a
	// data block a reader accepts.
	DefaultBlockSizeThreshold = 16 * 1024 * 1024

	// DefaultWritingProgram is written in the header unless overridden.
	DefaultWritingProgram = "m4o.io/pbf"

	// OsmosisEntityLimit is the maximum number of entities per block of
	// files written by osmosis 0.38.
	OsmosisEntityLimit = encoder.EntityLimit
)

type writerOptions struct {
	compression BlobCompression
	metadata    bool
	settings    encoder.BlockSettings
	threshold   int
	maxEntities int

	boundingBox                      *model.BoundingBox
	optionalFeatures                 []string
	writingProgram                   string
	source                           string
	osmosisReplicationTimestamp      time.Time
	osmosisReplicationSequenceNumber int64
	osmosisReplicationBaseURL        string
}

// WriterOption configures how a Writer encodes entities.
type WriterOption func(*writerOptions)

// WithCompression sets the compression of the written blocks.
func WithCompression(compression BlobCompression) WriterOption {
	return func(o *writerOptions) {
		o.compression = compression
	}
}

// WithWriteMetadata sets whether the entity metadata is written.  When set,
// every written entity must carry metadata with a user name.
func WithWriteMetadata(metadata bool) WriterOption {
	return func(o *writerOptions) {
		o.metadata = metadata
	}
}

// WithDenseNodes sets whether nodes are written in the dense format.
func WithDenseNodes(dense bool) WriterOption {
	return func(o *writerOptions) {
		o.settings.DenseNodes = dense
	}
}

// WithGranularity sets the coordinate granularity, in nanodegrees.
func WithGranularity(granularity int32) WriterOption {
	return func(o *writerOptions) {
		o.settings.Granularity = granularity
	}
}

// WithDateGranularity sets the timestamp granularity, in milliseconds.
func WithDateGranularity(granularity int32) WriterOption {
	return func(o *writerOptions) {
		o.settings.DateGranularity = granularity
	}
}

// WithBlockSizeThreshold lowers the estimated block size that triggers a
// flush.
func WithBlockSizeThreshold(size int) WriterOption {
	return func(o *writerOptions) {
		o.threshold = size
	}
}

// WithMaxEntitiesPerBlock caps the number of entities in a block.  Zero
// means no cap.
func WithMaxEntitiesPerBlock(n int) WriterOption {
	return func(o *writerOptions) {
		o.maxEntities = n
	}
}

func WithBoundingBox(bbox *model.BoundingBox) WriterOption {
	return func(o *writerOptions) {
		o.boundingBox = bbox
	}
}

func WithOptionalFeatures(features ...string) WriterOption {
	return func(o *writerOptions) {
		o.optionalFeatures = append(o.optionalFeatures, features...)
	}
}

func WithWritingProgram(program string) WriterOption {
	return func(o *writerOptions) {
		o.writingProgram = program
	}
}

func WithSource(source string) WriterOption {
	return func(o *writerOptions) {
		o.source = source
	}
}

func WithOsmosisReplicationTimestamp(timestamp time.Time) WriterOption {
	return func(o *writerOptions) {
		o.osmosisReplicationTimestamp = timestamp
	}
}

func WithOsmosisReplicationSequenceNumber(sequenceNumber int64) WriterOption {
	return func(o *writerOptions) {
		o.osmosisReplicationSequenceNumber = sequenceNumber
	}
}

func WithOsmosisReplicationBaseURL(url string) WriterOption {
	return func(o *writerOptions) {
		o.osmosisReplicationBaseURL = url
	}
}

var defaultWriterConfig = writerOptions{
	compression:    DefaultBlobCompression,
	settings:       encoder.DefaultBlockSettings(),
	threshold:      DefaultBlockSizeThreshold,
	writingProgram: DefaultWritingProgram,
}

func (o *writerOptions) validate() error {
	switch {
	case o.compression < RAW || o.compression > ZSTD:
		return fmt.Errorf("%w: compression %v", ErrInvalidOption, o.compression)
	case o.settings.Granularity <= 0:
		return fmt.Errorf("%w: granularity %d", ErrInvalidOption, o.settings.Granularity)
	case o.settings.DateGranularity <= 0:
		return fmt.Errorf("%w: date granularity %d", ErrInvalidOption, o.settings.DateGranularity)
	case o.threshold <= 0 || o.threshold > DefaultBlockSizeThreshold:
		return fmt.Errorf("%w: block size threshold %d not in (0, %d]", ErrInvalidOption, o.threshold, DefaultBlockSizeThreshold)
	case o.maxEntities < 0:
		return fmt.Errorf("%w: max entities per block %d", ErrInvalidOption, o.maxEntities)
	}

	return nil
}

// header returns the header announcing the features the options require.
func (o *writerOptions) header() model.Header {
	required := []string{model.FeatureSchema}
	if o.settings.DenseNodes {
		required = append(required, model.FeatureDenseNodes)
	}

	var optional []string
	if o.metadata {
		optional = append(optional, model.FeatureHasMetadata)
	}

	for _, f := range o.optionalFeatures {
		if f != model.FeatureHasMetadata || !o.metadata {
			optional = append(optional, f)
		}
	}

	return model.Header{
		BoundingBox:                      o.boundingBox,
		RequiredFeatures:                 required,
		OptionalFeatures:                 optional,
		WritingProgram:                   o.writingProgram,
		Source:                           o.source,
		OsmosisReplicationTimestamp:      o.osmosisReplicationTimestamp,
		OsmosisReplicationSequenceNumber: o.osmosisReplicationSequenceNumber,
		OsmosisReplicationBaseURL:        o.osmosisReplicationBaseURL,
	}
}
