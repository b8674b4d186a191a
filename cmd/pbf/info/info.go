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

// Package info implements the info command, which prints the header of one
// or more OSM PBF files and, optionally, their entity counts.
package info

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/destel/rill"
	"github.com/spf13/cobra"

	"m4o.io/pbf/v3"
	"m4o.io/pbf/v3/cmd/pbf/cli"
	"m4o.io/pbf/v3/model"
)

var out io.Writer = os.Stdout

type extendedHeader struct {
	model.Header

	File          string `json:"file,omitempty"`
	Size          int64  `json:"size,omitempty"`
	NodeCount     int64  `json:"node_count"`
	WayCount      int64  `json:"way_count"`
	RelationCount int64  `json:"relation_count"`
}

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
	flags.IntP("cpu", "c", runtime.GOMAXPROCS(-1), "number of files to scan concurrently")
	flags.BoolP("extended", "e", false, "provide extended information (scans entire file)")
	flags.BoolP("progress", "p", true, "show a progress bar while scanning a single file")
}

var infoCmd = &cobra.Command{
	Use:   "info [<OSM file>...]",
	Short: "Print information about OSM files",
	Long:  "Print information about OSM files, reading stdin when no file is given",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := cli.Config(cmd)
		if err != nil {
			return err
		}

		extended := v.GetBool("extended")
		jsonfmt := v.GetBool("json")

		if len(args) == 0 {
			args = []string{"-"}
		}

		progress := extended && !jsonfmt && len(args) == 1 && v.GetBool("progress")

		infos, err := runFiles(args, max(v.GetInt("cpu"), 1), extended, progress)
		if err != nil {
			return err
		}

		for _, info := range infos {
			if jsonfmt {
				err = renderJSON(info, extended)
			} else {
				renderTxt(info, extended)
			}

			if err != nil {
				return err
			}
		}

		return nil
	},
}

// runFiles scans the named files, up to n at a time, and returns their
// information in the order the files were given.
func runFiles(names []string, n int, extended, progress bool) ([]*extendedHeader, error) {
	results := rill.OrderedMap(rill.FromSlice(names, nil), n, func(name string) (*extendedHeader, error) {
		return runFile(name, extended, progress)
	})

	return rill.ToSlice(results)
}

func runFile(name string, extended, progress bool) (*extendedHeader, error) {
	in, err := cli.OpenInput(name, progress)
	if err != nil {
		return nil, err
	}

	info, err := runInfo(in, extended)

	if cerr := in.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if name != "-" {
		info.File = name

		if fi, err := os.Stat(name); err == nil {
			info.Size = fi.Size()
		}
	}

	return info, nil
}

func runInfo(in io.Reader, extended bool) (*extendedHeader, error) {
	r, err := pbf.NewReader(in, pbf.WithReadMetadata(false))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	info := &extendedHeader{Header: r.Header}

	if !extended {
		return info, nil
	}

	start := time.Now()

	for e, err := range r.All() {
		if err != nil {
			return nil, err
		}

		switch e.Type() {
		case model.NODE:
			info.NodeCount++
		case model.WAY:
			info.WayCount++
		case model.RELATION:
			info.RelationCount++
		}
	}

	slog.Info("scanned entities",
		"nodes", info.NodeCount, "ways", info.WayCount, "relations", info.RelationCount,
		"elapsed", time.Since(start))

	return info, nil
}

func renderJSON(info *extendedHeader, extended bool) error {
	// marshall the smallest struct needed
	var v any
	if extended {
		v = info
	} else {
		v = info.Header
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, string(b))

	return nil
}

func renderTxt(info *extendedHeader, extended bool) {
	if info.File != "" {
		fmt.Fprintf(out, "File: %s (%s)\n", info.File, humanize.Bytes(uint64(info.Size)))
	}

	fmt.Fprintf(out, "BoundingBox: %s\n", info.BoundingBox)
	fmt.Fprintf(out, "RequiredFeatures: %s\n", strings.Join(info.RequiredFeatures, ", "))
	fmt.Fprintf(out, "OptionalFeatures: %s\n", strings.Join(info.OptionalFeatures, ", "))
	fmt.Fprintf(out, "WritingProgram: %s\n", info.WritingProgram)
	fmt.Fprintf(out, "Source: %s\n", info.Source)
	fmt.Fprintf(out, "OsmosisReplicationTimestamp: %s\n", info.OsmosisReplicationTimestamp.UTC().Format(time.RFC3339))
	fmt.Fprintf(out, "OsmosisReplicationSequenceNumber: %d\n", info.OsmosisReplicationSequenceNumber)
	fmt.Fprintf(out, "OsmosisReplicationBaseURL: %s\n", info.OsmosisReplicationBaseURL)

	if extended {
		fmt.Fprintf(out, "NodeCount: %s\n", humanize.Comma(info.NodeCount))
		fmt.Fprintf(out, "WayCount: %s\n", humanize.Comma(info.WayCount))
		fmt.Fprintf(out, "RelationCount: %s\n", humanize.Comma(info.RelationCount))
	}
}
