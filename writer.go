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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"m4o.io/pbf/v3/internal/core"
	"m4o.io/pbf/v3/internal/encoder"
	"m4o.io/pbf/v3/internal/pb"
	"m4o.io/pbf/v3/model"
)

// Writer encodes OpenStreetMap entities into a PBF stream.  Entities are
// buffered per type and written as one block per type when a buffer grows
// past the block size threshold, when Flush is called, or on Close.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	// Header is the header written when the Writer was created.
	Header model.Header

	cfg    writerOptions
	wrtr   io.Writer
	closer io.Closer

	nodes     *encoder.Buffer[model.Node]
	ways      *encoder.Buffer[model.Way]
	relations *encoder.Buffer[model.Relation]

	closed bool
}

// NewWriter returns a Writer writing to w, after writing the header block.
// Closing the Writer does not close w.
func NewWriter(w io.Writer, opts ...WriterOption) (*Writer, error) {
	return newWriter(w, nil, opts...)
}

// CreateWriter creates, or truncates, the named file and returns a Writer
// writing to it.  The file is closed when the Writer is closed.
func CreateWriter(path string, opts ...WriterOption) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("unable to create %s: %w", path, err)
	}

	w, err := newWriter(f, f, opts...)
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	return w, nil
}

func newWriter(w io.Writer, closer io.Closer, opts ...WriterOption) (*Writer, error) {
	cfg := defaultWriterConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	wrtr := &Writer{
		Header:    cfg.header(),
		cfg:       cfg,
		wrtr:      w,
		closer:    closer,
		nodes:     encoder.NewBuffer[model.Node](cfg.metadata),
		ways:      encoder.NewBuffer[model.Way](cfg.metadata),
		relations: encoder.NewBuffer[model.Relation](cfg.metadata),
	}

	if err := encoder.WriteHeader(w, wrtr.Header, cfg.compression); err != nil {
		return nil, err
	}

	return wrtr, nil
}

// Write buffers entity, a Node, Way or Relation given either by value or by
// pointer, and writes the blocks of every buffer that is full.
func (w *Writer) Write(entity model.Entity) error {
	if w.closed {
		return ErrClosed
	}

	switch e := entity.(type) {
	case model.Node:
		return w.writeNode(e)
	case *model.Node:
		if e == nil {
			return fmt.Errorf("%w: nil node", ErrValidation)
		}

		return w.writeNode(*e)
	case model.Way:
		return w.writeWay(e)
	case *model.Way:
		if e == nil {
			return fmt.Errorf("%w: nil way", ErrValidation)
		}

		return w.writeWay(*e)
	case model.Relation:
		return w.writeRelation(e)
	case *model.Relation:
		if e == nil {
			return fmt.Errorf("%w: nil relation", ErrValidation)
		}

		return w.writeRelation(*e)
	default:
		return fmt.Errorf("%w: entity %T", ErrValidation, entity)
	}
}

func (w *Writer) writeNode(n model.Node) error {
	if err := w.validate(n); err != nil {
		return err
	}

	// a zero string index terminates a dense node's tags
	if _, ok := n.Tags[""]; ok && w.cfg.settings.DenseNodes {
		return fmt.Errorf("%w: node %d has an empty tag key", ErrValidation, n.ID)
	}

	w.nodes.Add(n)

	return w.flushFull()
}

func (w *Writer) writeWay(way model.Way) error {
	if err := w.validate(way); err != nil {
		return err
	}

	w.ways.Add(way)

	return w.flushFull()
}

func (w *Writer) writeRelation(r model.Relation) error {
	if err := w.validate(r); err != nil {
		return err
	}

	for i, m := range r.Members {
		if m.Type < model.NODE || m.Type > model.RELATION {
			return fmt.Errorf("%w: relation %d member %d has type %v", ErrValidation, r.ID, i, m.Type)
		}
	}

	w.relations.Add(r)

	return w.flushFull()
}

func (w *Writer) validate(e model.Entity) error {
	if !w.cfg.metadata {
		return nil
	}

	info := e.GetInfo()
	if info == nil {
		return fmt.Errorf("%w: %v %d has no metadata", ErrValidation, e.Type(), e.GetID())
	}

	if info.User == "" {
		return fmt.Errorf("%w: %v %d has no user name", ErrValidation, e.Type(), e.GetID())
	}

	return nil
}

// Flush writes a block for each entity type that has buffered entities, in
// the order nodes, ways and relations.
func (w *Writer) Flush() error {
	if w.closed {
		return ErrClosed
	}

	return w.flush()
}

func (w *Writer) flush() error {
	if err := flush(w, w.nodes, encoder.NodesBlock); err != nil {
		return err
	}

	if err := flush(w, w.ways, encoder.WaysBlock); err != nil {
		return err
	}

	return flush(w, w.relations, encoder.RelationsBlock)
}

// flushFull writes the buffers that are over the size threshold or the
// entity cap.  Each buffer is considered on its own.
func (w *Writer) flushFull() error {
	if full(w, w.nodes) {
		if err := flush(w, w.nodes, encoder.NodesBlock); err != nil {
			return err
		}
	}

	if full(w, w.ways) {
		if err := flush(w, w.ways, encoder.WaysBlock); err != nil {
			return err
		}
	}

	if full(w, w.relations) {
		return flush(w, w.relations, encoder.RelationsBlock)
	}

	return nil
}

func full[T model.Entity](w *Writer, b *encoder.Buffer[T]) bool {
	if w.cfg.maxEntities > 0 && b.Len() >= w.cfg.maxEntities {
		return true
	}

	return b.EstimatedMaxSize() > w.cfg.threshold
}

func flush[T model.Entity](
	w *Writer,
	b *encoder.Buffer[T],
	assemble func(*encoder.Buffer[T], encoder.BlockSettings) *pb.PrimitiveBlock,
) error {
	if b.Len() == 0 {
		return nil
	}

	blk := assemble(b, w.cfg.settings)

	if err := encoder.WriteBlob(w.wrtr, core.OSMDataType, blk, w.cfg.compression); err != nil {
		slog.Error("unable to write block", "entities", b.Len(), "error", err)

		return fmt.Errorf("unable to write %d entities: %w", b.Len(), err)
	}

	slog.Debug("flushed block", "entities", b.Len(), "estimate", b.EstimatedMaxSize())

	b.Clear()

	return nil
}

// Close flushes the buffered entities and, when the Writer was created by
// CreateWriter, closes the file.  Closing an already closed Writer is a
// no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}

	w.closed = true

	err := w.flush()

	if w.closer != nil {
		err = errors.Join(err, w.closer.Close())
	}

	return err
}
