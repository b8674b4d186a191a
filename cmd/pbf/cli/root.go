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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that override flags, e.g.
// PBF_LOG_LEVEL or PBF_COMPRESSION.
const EnvPrefix = "PBF"

// RootCmd is the pbf command; sub-commands register themselves with it.
var RootCmd = &cobra.Command{
	Use:          "pbf",
	Short:        "Inspect and re-encode OpenStreetMap PBF files",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		v, err := Config(cmd)
		if err != nil {
			return err
		}

		return setupLogging(v.GetString("log-level"))
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.String("log-level", "warn", "logging level (debug, info, warn, error)")
	flags.String("config", "", "YAML file providing default flag values")
}

// Config returns the configuration of cmd.  Flags set on the command line
// win over PBF_ prefixed environment variables, which win over the entries
// of the --config file, which win over the flag defaults.
func Config(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("unable to bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	return v, nil
}

func setupLogging(level string) error {
	var lvl slog.Level

	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

	return nil
}
