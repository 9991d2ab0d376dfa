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

// Package options defines the command-line flags of treesha1sum.
package options

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/sigstore/treesha1sum/pkg/logging"
)

// FlagAdder is implemented by any flag group that can register itself to a cobra command.
type FlagAdder interface {
	AddFlags(cmd *cobra.Command)
}

// ValidLogFormats lists the valid log format strings.
var ValidLogFormats = []string{"text", "json"}

// ValidLogBackends lists the logging backends selectable with --log-backend.
var ValidLogBackends = []string{"default", "zap"}

// RootOptions holds the flags that configure the process rather than the walk.
type RootOptions struct {
	// ConfigFile is a YAML file providing defaults for any flag.
	ConfigFile string
	// OutputFile redirects the report from stdout to a file.
	OutputFile string
	// NoColor disables ANSI escapes in the report.
	NoColor bool
	// LogLevel sets the minimum log level (debug, info, warn, error, silent).
	LogLevel string
	// LogFormat sets the log output format (text, json).
	LogFormat string
	// LogBackend selects the logger implementation (default, zap).
	LogBackend string
	// MetricsFile, when set, receives Prometheus metrics after the walk.
	MetricsFile string
	// Timeout bounds the whole walk. Zero means no limit.
	Timeout time.Duration
}

var _ FlagAdder = (*RootOptions)(nil)

// AddFlags registers the root flags.
func (o *RootOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.ConfigFile, "config", "",
		"read default option values from a YAML file; explicit flags win")
	_ = cmd.MarkFlagFilename("config", "yaml", "yml")

	cmd.Flags().StringVar(&o.OutputFile, "output-file", "",
		"write the report to a file instead of stdout")

	cmd.Flags().BoolVar(&o.NoColor, "no-color", false,
		"monochrome console output")

	cmd.Flags().StringVar(&o.LogLevel, "log-level", "warn",
		"set the minimum log level (debug, info, warn, error, silent)")

	cmd.Flags().StringVar(&o.LogFormat, "log-format", "text",
		"set the log output format (text, json)")

	cmd.Flags().StringVar(&o.LogBackend, "log-backend", "default",
		"logger implementation (default, zap)")

	cmd.Flags().StringVar(&o.MetricsFile, "metrics-file", "",
		"write Prometheus metrics in text format to this file after the walk")
	_ = cmd.MarkFlagFilename("metrics-file", "prom")

	cmd.Flags().DurationVar(&o.Timeout, "timeout", 0,
		"abort the walk after this duration (0 disables the limit)")
}

// Validate checks the values that cobra cannot check on its own.
func (o *RootOptions) Validate() error {
	if _, err := logging.LookupLogLevel(o.LogLevel); err != nil {
		return err
	}
	if !slices.Contains(ValidLogFormats, o.LogFormat) {
		return fmt.Errorf("unknown log format %q (supported: %v)", o.LogFormat, ValidLogFormats)
	}
	if !slices.Contains(ValidLogBackends, o.LogBackend) {
		return fmt.Errorf("unknown log backend %q (supported: %v)", o.LogBackend, ValidLogBackends)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", o.Timeout)
	}
	return nil
}

// GetLogLevel returns the effective log level based on the options.
func (o *RootOptions) GetLogLevel() logging.LogLevel {
	return logging.ParseLogLevel(o.LogLevel)
}

// GetLogFormat returns the log format based on the options.
func (o *RootOptions) GetLogFormat() logging.LogFormat {
	return logging.ParseLogFormat(o.LogFormat)
}

// NewLogger creates the stderr logger selected by the options.
func (o *RootOptions) NewLogger() (logging.Logger, error) {
	opts := logging.DefaultLoggerOptions()
	opts.Level = o.GetLogLevel()
	opts.Format = o.GetLogFormat()

	if o.LogBackend == "zap" {
		return logging.NewZapLoggerWithOptions(opts)
	}
	return logging.NewLoggerWithOptions(opts), nil
}
