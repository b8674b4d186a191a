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

// Package recode implements the recode command, which rewrites an OSM PBF
// file with different encoding settings.
package recode

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"m4o.io/pbf/v3"
	"m4o.io/pbf/v3/cmd/pbf/cli"
	"m4o.io/pbf/v3/model"
)

type settings struct {
	compression    pbf.BlobCompression
	dense          bool
	metadata       bool
	blockSize      int
	maxEntities    int
	writingProgram string
}

func init() {
	cli.RootCmd.AddCommand(recodeCmd)

	flags := recodeCmd.Flags()
	flags.VarP(cli.NewCompressionValue(pbf.DefaultBlobCompression, new(pbf.BlobCompression)), "compression", "z",
		"blob compression (raw, zlib, lzma, lz4, zstd)")
	flags.BoolP("dense", "d", true, "write nodes as dense nodes")
	flags.BoolP("metadata", "m", true, "copy entity metadata")
	flags.Int("block-size", pbf.DefaultBlockSizeThreshold, "estimated block size, in bytes, that triggers a flush")
	flags.Int("max-entities", 0, "maximum number of entities per block, 0 for no limit")
	flags.String("writing-program", pbf.DefaultWritingProgram, "writing program recorded in the header")
	flags.BoolP("progress", "p", true, "show a progress bar")
}

var recodeCmd = &cobra.Command{
	Use:   "recode <input OSM file> <output OSM file>",
	Short: "Re-encode an OSM file",
	Long:  "Re-encode an OSM file, reading stdin when the input is \"-\"",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := cli.Config(cmd)
		if err != nil {
			return err
		}

		s, err := configure(v)
		if err != nil {
			return err
		}

		in, err := cli.OpenInput(args[0], v.GetBool("progress"))
		if err != nil {
			return err
		}
		defer in.Close()

		f, err := os.Create(args[1])
		if err != nil {
			return err
		}

		n, err := runRecode(in, f, s)
		if cerr := f.Close(); err == nil {
			err = cerr
		}

		if err != nil {
			return fmt.Errorf("unable to recode %s: %w", args[0], err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Recoded %s entities into %s\n", humanize.Comma(n), args[1])

		return nil
	},
}

func configure(v *viper.Viper) (settings, error) {
	c, err := pbf.ParseBlobCompression(v.GetString("compression"))
	if err != nil {
		return settings{}, err
	}

	return settings{
		compression:    c,
		dense:          v.GetBool("dense"),
		metadata:       v.GetBool("metadata"),
		blockSize:      v.GetInt("block-size"),
		maxEntities:    v.GetInt("max-entities"),
		writingProgram: v.GetString("writing-program"),
	}, nil
}

// runRecode copies every entity of in to out and returns how many were
// copied.  The header of in is carried over, apart from the features and the
// writing program.
func runRecode(in io.Reader, out io.Writer, s settings) (int64, error) {
	r, err := pbf.NewReader(in, pbf.WithReadMetadata(s.metadata))
	if err != nil {
		return 0, err
	}
	defer r.Close()

	h := r.Header

	metadata := s.metadata
	if metadata && !h.HasOptionalFeature(model.FeatureHasMetadata) {
		slog.Warn("input has no metadata, writing without it")

		metadata = false
	}

	var optional []string

	for _, f := range h.OptionalFeatures {
		if f != model.FeatureHasMetadata {
			optional = append(optional, f)
		}
	}

	w, err := pbf.NewWriter(out,
		pbf.WithCompression(s.compression),
		pbf.WithDenseNodes(s.dense),
		pbf.WithWriteMetadata(metadata),
		pbf.WithBlockSizeThreshold(s.blockSize),
		pbf.WithMaxEntitiesPerBlock(s.maxEntities),
		pbf.WithWritingProgram(s.writingProgram),
		pbf.WithBoundingBox(h.BoundingBox),
		pbf.WithOptionalFeatures(optional...),
		pbf.WithSource(h.Source),
		pbf.WithOsmosisReplicationTimestamp(h.OsmosisReplicationTimestamp),
		pbf.WithOsmosisReplicationSequenceNumber(h.OsmosisReplicationSequenceNumber),
		pbf.WithOsmosisReplicationBaseURL(h.OsmosisReplicationBaseURL))
	if err != nil {
		return 0, err
	}

	var n int64

	for e, err := range r.All() {
		if err != nil {
			_ = w.Close()

			return n, err
		}

		if err = w.Write(e); err != nil {
			_ = w.Close()

			return n, err
		}

		n++
	}

	slog.Debug("recoded entities", "count", n, "compression", s.compression)

	return n, w.Close()
}
