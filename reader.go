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
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"

	"m4o.io/pbf/v3/internal/core"
	"m4o.io/pbf/v3/internal/decoder"
	"m4o.io/pbf/v3/model"
)

// Reader decodes OpenStreetMap entities from a PBF stream, one block at a
// time.  Entities are returned as *model.Node, *model.Way and
// *model.Relation.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	// Header is the header of the stream, read when the Reader was created.
	Header model.Header

	cfg    readerOptions
	rdr    io.Reader
	closer io.Closer
	buf    *core.PooledBuffer

	entities []model.Entity
	err      error
}

// NewReader reads the header of the PBF stream r and returns a Reader for
// its entities.  Closing the Reader does not close r.
func NewReader(r io.Reader, opts ...ReaderOption) (*Reader, error) {
	return newReader(r, nil, opts...)
}

// OpenReader opens the named PBF file and returns a Reader for its entities.
// The file is closed when the Reader is closed.
func OpenReader(path string, opts ...ReaderOption) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}

	r, err := newReader(f, f, opts...)
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	return r, nil
}

func newReader(r io.Reader, closer io.Closer, opts ...ReaderOption) (*Reader, error) {
	cfg := defaultReaderConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.inputBufferSize < 0 {
		return nil, fmt.Errorf("%w: input buffer size %d", ErrInvalidOption, cfg.inputBufferSize)
	}

	if cfg.inputBufferSize > 0 {
		r = bufio.NewReaderSize(r, cfg.inputBufferSize)
	}

	hdr, err := decoder.LoadHeader(r)
	if err != nil {
		return nil, err
	}

	return &Reader{
		Header: hdr,
		cfg:    cfg,
		rdr:    r,
		closer: closer,
		buf:    core.NewPooledBuffer(),
	}, nil
}

// Read returns the next entity.  It returns io.EOF at the end of the
// stream, and keeps returning it, or the first error encountered, on every
// later call.
func (r *Reader) Read() (model.Entity, error) {
	for len(r.entities) == 0 {
		if r.err != nil {
			return nil, r.err
		}

		r.err = r.readBlock()
	}

	e := r.entities[0]
	r.entities[0] = nil
	r.entities = r.entities[1:]

	return e, nil
}

// readBlock decodes the next OSMData block into the entity queue, skipping
// blocks of any other type.
func (r *Reader) readBlock() error {
	h, err := decoder.ReadBlobHeader(r.rdr)
	if err != nil {
		return err
	}

	if h.GetType() != core.OSMDataType {
		slog.Debug("skipping block", "type", h.GetType(), "size", h.GetDatasize())

		return decoder.SkipBlob(r.rdr, h)
	}

	data, err := decoder.ReadBlock(r.rdr, h, r.buf)
	if err != nil {
		return err
	}

	entities, err := decoder.ParsePrimitiveBlock(data, r.cfg.metadata)
	if err != nil {
		return err
	}

	r.entities = entities

	return nil
}

// All returns an iterator over the remaining entities.  Iteration stops at
// the end of the stream or after yielding the first error.
func (r *Reader) All() iter.Seq2[model.Entity, error] {
	return func(yield func(model.Entity, error) bool) {
		for {
			e, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}

			if !yield(e, err) || err != nil {
				return
			}
		}
	}
}

// Close releases the Reader and, when it was created by OpenReader, closes
// the file.  Closing an already closed Reader is a no-op.
func (r *Reader) Close() error {
	if r.buf == nil {
		return nil
	}

	r.buf.Close()
	r.buf = nil
	r.entities = nil

	if r.err == nil || errors.Is(r.err, io.EOF) {
		r.err = ErrClosed
	}

	if r.closer != nil {
		return r.closer.Close()
	}

	return nil
}
