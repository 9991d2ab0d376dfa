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

// Package treewalk visits a directory tree depth first and reports one
// Entry per non-directory path: a digest for regular files, a label for
// everything else. Symlinks are reported, never followed.
package treewalk

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/multierr"

	hashengines "github.com/sigstore/treesha1sum/pkg/hashing/engines"
	hashio "github.com/sigstore/treesha1sum/pkg/hashing/engines/io"
	"github.com/sigstore/treesha1sum/pkg/logging"
	"github.com/sigstore/treesha1sum/pkg/metrics"
	"github.com/sigstore/treesha1sum/pkg/tracing"

	// Registers the built-in engines.
	_ "github.com/sigstore/treesha1sum/pkg/hashing/engines/memory"
)

const (
	// DefaultAlgorithm is used when Options.Algorithm is empty.
	DefaultAlgorithm = "sha1"
	// DefaultChunkSize is the read size used when streaming files.
	DefaultChunkSize = 64 * 1024
)

// Sink receives entries in visit order.
type Sink interface {
	Emit(Entry) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Entry) error

func (f SinkFunc) Emit(e Entry) error { return f(e) }

// Options configures a Walker.
type Options struct {
	// Algorithm names a registered hash engine.
	Algorithm string
	// ChunkSize is the file read size. Zero selects DefaultChunkSize.
	ChunkSize int
	// MaxDepth limits how many directory levels below the root are
	// descended. Zero means unlimited.
	MaxDepth int
	// Sort orders directory children byte-wise by name.
	Sort bool
	// IgnorePaths are skipped together with everything below them.
	IgnorePaths []string
	// IgnoreGitPaths skips GitRelatedPaths at any level below the root.
	IgnoreGitPaths bool

	Logger  logging.Logger
	Metrics *metrics.Metrics
}

// DefaultOptions returns sha1, 64 KiB chunks, sorted output and no depth limit.
func DefaultOptions() Options {
	return Options{
		Algorithm: DefaultAlgorithm,
		ChunkSize: DefaultChunkSize,
		Sort:      true,
	}
}

// Walker drives the traversal. It is not safe for concurrent use.
type Walker struct {
	opts      Options
	sink      Sink
	logger    logging.Logger
	newHasher hashio.FileHasherFactory
}

// New validates opts and returns a Walker emitting to sink.
func New(opts Options, sink Sink) (*Walker, error) {
	if sink == nil {
		return nil, errors.New("sink must not be nil")
	}
	if opts.Algorithm == "" {
		opts.Algorithm = DefaultAlgorithm
	}
	if opts.ChunkSize == 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.ChunkSize < 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", opts.ChunkSize)
	}
	if opts.MaxDepth < 0 {
		return nil, fmt.Errorf("max depth must be non-negative, got %d", opts.MaxDepth)
	}

	factory, err := hashengines.Factory(opts.Algorithm)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Walker{
		opts:      opts,
		sink:      sink,
		logger:    logger,
		newHasher: hashio.NewFileHasherFactory(factory, opts.ChunkSize),
	}, nil
}

// Walk visits root and everything below it.
//
// Per-entry failures do not stop the walk; they are combined into the
// returned error. If root is not a directory its entry is still emitted
// and the result includes a *NotADirectoryError. Cancelling ctx, or a
// Sink error, stops the walk immediately.
func (w *Walker) Walk(ctx context.Context, root string) error {
	start := time.Now()
	attrs := map[string]interface{}{
		"root":      root,
		"algorithm": w.opts.Algorithm,
	}

	err := tracing.Run(ctx, "treewalk.Walk", attrs, func(ctx context.Context) error {
		rc := classify(root)

		var errs error
		if err := w.visit(ctx, rc.path, 0, rc, &errs); err != nil {
			return multierr.Append(err, errs)
		}

		switch {
		case rc.kind == KindDirectory, rc.kind == KindSymlink && isDir(rc.path):
			return errs
		case rc.kind == KindNone:
			return multierr.Combine(&EntryError{Op: "stat", Path: NormalizePath(rc.path), Err: rc.err}, errs)
		default:
			return multierr.Combine(&NotADirectoryError{Path: NormalizePath(rc.path), Kind: rc.kind}, errs)
		}
	})

	w.opts.Metrics.ObserveWalk(time.Since(start))
	w.logger.WithFields(map[string]interface{}{
		"root":     NormalizePath(root),
		"duration": time.Since(start).String(),
		"errors":   len(multierr.Errors(err)),
	}).Debugln("walk finished")

	return err
}

// Visit processes a single path at the given depth, recursing into it if
// it is a directory. It returns the per-entry failures below path, or the
// error that aborted the visit.
func (w *Walker) Visit(ctx context.Context, path string, depth int) error {
	var errs error
	if err := w.visit(ctx, path, depth, nil, &errs); err != nil {
		return multierr.Append(err, errs)
	}
	return errs
}

// classified is the Lstat result for one path.
type classified struct {
	path string
	kind EntryKind
	err  error
}

func classify(path string) *classified {
	kind, _, err := Classify(path)
	return &classified{path: path, kind: kind, err: err}
}

// isDir follows symlinks, so a link to a directory is an acceptable root.
// The link itself is still reported, not descended.
func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// visit returns only fatal errors; per-entry failures go to errs. A nil c
// means path has not been classified yet.
func (w *Walker) visit(ctx context.Context, path string, depth int, c *classified, errs *error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if ShouldIgnore(path, w.opts.IgnorePaths) || (depth > 0 && w.opts.IgnoreGitPaths && isGitRelated(path)) {
		w.logger.WithField("path", NormalizePath(path)).Debugln("ignored")
		return nil
	}

	if c == nil {
		c = classify(path)
	}
	kind, statErr := c.kind, c.err
	entry := Entry{
		Path:  NormalizePath(path),
		Kind:  kind,
		Depth: depth,
	}
	log := w.logger.WithFields(map[string]interface{}{
		"path": entry.Path,
		"kind": kind.String(),
	})

	switch kind {
	case KindDirectory:
		if w.opts.MaxDepth > 0 && depth >= w.opts.MaxDepth {
			entry.Failure = FailureDepthLimit
			log.Warn("not descending below depth %d", w.opts.MaxDepth)
			w.opts.Metrics.ObserveError("depth")
			return w.emit(entry)
		}

		names, err := w.readDirNames(path)
		if err != nil {
			entry.Failure = FailureList
			entry.Err = &EntryError{Op: "list", Path: entry.Path, Err: err}
			log.Error("cannot list directory: %v", err)
			w.opts.Metrics.ObserveError("list")
			multierr.AppendInto(errs, entry.Err)
			return w.emit(entry)
		}

		log.Debug("descending into %d entries", len(names))
		for _, name := range names {
			if err := w.visit(ctx, filepath.Join(path, name), depth+1, nil, errs); err != nil {
				return err
			}
		}
		return nil

	case KindRegular:
		w.hashFile(ctx, path, &entry)
		if entry.Err != nil {
			log.Error("cannot hash file: %v", entry.Err)
			w.opts.Metrics.ObserveError("read")
			multierr.AppendInto(errs, entry.Err)
		}

	case KindSymlink:
		target, err := resolveSymlink(path)
		if err != nil {
			entry.Failure = FailureRead
			entry.Err = &EntryError{Op: "readlink", Path: entry.Path, Err: err}
			log.Error("cannot read link: %v", err)
			w.opts.Metrics.ObserveError("read")
			multierr.AppendInto(errs, entry.Err)
		} else {
			entry.Target = target
		}

	case KindNotFound, KindNone:
		entry.Err = statErr
		log.Warn("cannot stat: %v", statErr)
		w.opts.Metrics.ObserveError("stat")
	}

	return w.emit(entry)
}

func (w *Walker) emit(entry Entry) error {
	w.opts.Metrics.ObserveEntry(entry.Label())
	if err := w.sink.Emit(entry); err != nil {
		return fmt.Errorf("emit %s: %w", entry.Path, err)
	}
	return nil
}

func (w *Walker) readDirNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dirents, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(dirents))
	for i, d := range dirents {
		names[i] = d.Name()
	}
	if w.opts.Sort {
		sort.Strings(names)
	}
	return names, nil
}

func (w *Walker) hashFile(ctx context.Context, path string, entry *Entry) {
	start := time.Now()

	err := tracing.Run(ctx, "treewalk.hashFile", map[string]interface{}{"path": entry.Path}, func(context.Context) error {
		hasher, err := w.newHasher(path)
		if err != nil {
			return err
		}

		d, err := hasher.Compute()
		entry.Size = hasher.BytesHashed()
		if err != nil {
			return err
		}
		entry.Digest = d
		return nil
	})
	if err != nil {
		entry.Failure = FailureRead
		entry.Err = &EntryError{Op: "read", Path: entry.Path, Err: err}
		return
	}

	w.opts.Metrics.ObserveHash(entry.Size, time.Since(start))
}
