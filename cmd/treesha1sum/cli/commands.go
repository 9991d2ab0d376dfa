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

// Package cli builds the treesha1sum cobra command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"sigs.k8s.io/release-utils/version"

	"github.com/sigstore/treesha1sum/cmd/treesha1sum/cli/options"
	"github.com/sigstore/treesha1sum/pkg/logging"
	"github.com/sigstore/treesha1sum/pkg/metrics"
	"github.com/sigstore/treesha1sum/pkg/report"
	"github.com/sigstore/treesha1sum/pkg/treewalk"
)

// New returns the root command. Every call gets its own option values.
func New() *cobra.Command {
	ro := &options.RootOptions{}
	wo := &options.WalkOptions{}

	info := version.GetVersionInfo()

	cmd := &cobra.Command{
		Use:   "treesha1sum [options] [DIRECTORY]",
		Short: "Print the SHA-1 digest of every file below a directory.",
		Long: `Walks DIRECTORY (default ".") depth first and prints one line per entry:

  <digest> *<path>                 regular files
  [symlink]  <path> -> <target>    symbolic links, never followed
  [<type>]  <path>                 devices, pipes, sockets and other types

Exit status is 0 on success, 1 if any entry failed or the arguments are
invalid, and 79 if DIRECTORY is not a directory.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return &UsageError{Err: err}
			}
			return nil
		},
		Version:           info.GitVersion,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if ro.ConfigFile != "" {
				cfg, err := options.LoadConfigFile(ro.ConfigFile)
				if err != nil {
					return &UsageError{Err: err}
				}
				if err := cfg.Apply(cmd.Flags()); err != nil {
					return &UsageError{Err: err}
				}
			}
			if err := ro.Validate(); err != nil {
				return &UsageError{Err: err}
			}
			if err := wo.Validate(); err != nil {
				return &UsageError{Err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return run(cmd, ro, wo, root)
		},
	}

	cmd.SetVersionTemplate(fmt.Sprintf("treesha1sum {{.Version}}\n\n%s\n", info.String()))
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	ro.AddFlags(cmd)
	wo.AddFlags(cmd)
	return cmd
}

func run(cmd *cobra.Command, ro *options.RootOptions, wo *options.WalkOptions, root string) (err error) {
	logger, err := ro.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	if zl, ok := logger.(*logging.ZapLogger); ok {
		defer func() { _ = zl.Sync() }()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if ro.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ro.Timeout)
		defer cancel()
	}

	out := cmd.OutOrStdout()
	if ro.OutputFile != "" {
		f, ferr := os.Create(ro.OutputFile)
		if ferr != nil {
			return fmt.Errorf("create output file %s: %w", ro.OutputFile, ferr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close output file: %w", cerr)
			}
		}()
		out = f
	}

	ropts, err := wo.ReportOptions(colorEnabled(out, ro.NoColor))
	if err != nil {
		return &UsageError{Err: err}
	}
	rep, err := report.New(out, ropts)
	if err != nil {
		return &UsageError{Err: err}
	}

	var m *metrics.Metrics
	if ro.MetricsFile != "" {
		m = metrics.New()
	}

	wopts := wo.WalkerOptions()
	wopts.Logger = logger
	wopts.Metrics = m
	walker, err := treewalk.New(wopts, rep)
	if err != nil {
		return &UsageError{Err: err}
	}

	logger.WithFields(map[string]interface{}{
		"root":      root,
		"algorithm": wopts.Algorithm,
	}).Debugln("starting walk")

	walkErr := walker.Walk(ctx, root)

	if err := rep.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := m.WriteTextfile(ro.MetricsFile); err != nil {
		logger.Error("%v", err)
		walkErr = multierr.Append(walkErr, err)
	}

	return exitError(ctx, walkErr)
}

// exitError maps a walk result to the process exit contract.
func exitError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var nde *treewalk.NotADirectoryError
	if errors.As(err, &nde) {
		return &ExitError{Code: nde.ExitCode(), Err: nde}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &ExitError{Code: ExitFailure, Err: fmt.Errorf("walk aborted: %w", ctxErr)}
	}

	errs := multierr.Errors(err)
	if len(errs) == 1 {
		return &ExitError{Code: ExitFailure, Err: err}
	}
	return &ExitError{Code: ExitFailure, Err: fmt.Errorf("%d entries could not be processed: %w", len(errs), err)}
}

// colorEnabled reports whether w should get ANSI color. color.NoColor
// carries the library's NO_COLOR and TERM=dumb checks; w must itself be a
// terminal since the report may go to --output-file.
func colorEnabled(w io.Writer, noColor bool) bool {
	if noColor || color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
