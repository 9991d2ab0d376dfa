// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package options

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"
)

// FileConfig mirrors the command-line flags. Keys use the flag names.
type FileConfig struct {
	Algorithm   *string  `yaml:"algorithm"`
	Encoding    *string  `yaml:"encoding"`
	Format      *string  `yaml:"format"`
	ChunkSize   *int     `yaml:"chunk-size"`
	MaxDepth    *int     `yaml:"max-depth"`
	Sort        *bool    `yaml:"sort"`
	IgnorePaths []string `yaml:"ignore-paths"`
	IgnoreGit   *bool    `yaml:"ignore-git-paths"`
	OutputFile  *string  `yaml:"output-file"`
	NoColor     *bool    `yaml:"no-color"`
	LogLevel    *string  `yaml:"log-level"`
	LogFormat   *string  `yaml:"log-format"`
	LogBackend  *string  `yaml:"log-backend"`
	MetricsFile *string  `yaml:"metrics-file"`
	Timeout     *string  `yaml:"timeout"`
}

// LoadConfigFile parses a YAML config file. Unknown keys are rejected and
// an empty file yields an empty config.
func LoadConfigFile(path string) (*FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	cfg := &FileConfig{}
	if err := yaml.NewDecoder(f, yaml.Strict()).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// values returns the flag name to value pairs set in the file.
func (c *FileConfig) values() map[string]string {
	out := map[string]string{}
	str := func(name string, v *string) {
		if v != nil {
			out[name] = *v
		}
	}
	num := func(name string, v *int) {
		if v != nil {
			out[name] = strconv.Itoa(*v)
		}
	}
	flag := func(name string, v *bool) {
		if v != nil {
			out[name] = strconv.FormatBool(*v)
		}
	}

	str("algorithm", c.Algorithm)
	str("encoding", c.Encoding)
	str("format", c.Format)
	num("chunk-size", c.ChunkSize)
	num("max-depth", c.MaxDepth)
	flag("sort", c.Sort)
	if c.IgnorePaths != nil {
		out["ignore-paths"] = strings.Join(c.IgnorePaths, ",")
	}
	flag("ignore-git-paths", c.IgnoreGit)
	str("output-file", c.OutputFile)
	flag("no-color", c.NoColor)
	str("log-level", c.LogLevel)
	str("log-format", c.LogFormat)
	str("log-backend", c.LogBackend)
	str("metrics-file", c.MetricsFile)
	str("timeout", c.Timeout)
	return out
}

// Apply sets every flag present in the file that was not given explicitly
// on the command line.
func (c *FileConfig) Apply(flags *pflag.FlagSet) error {
	for name, value := range c.values() {
		if flags.Changed(name) {
			continue
		}
		if flags.Lookup(name) == nil {
			return fmt.Errorf("config key %q has no matching flag", name)
		}
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("config key %q: %w", name, err)
		}
	}
	return nil
}
