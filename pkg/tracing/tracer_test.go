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

package tracing

import (
	"context"
	"errors"
	"testing"
)

type recordedSpan struct {
	name  string
	attrs map[string]interface{}
	err   error
	ended bool
}

func (s *recordedSpan) SetAttribute(key string, value interface{}) { s.attrs[key] = value }
func (s *recordedSpan) RecordError(err error) {
	if err != nil {
		s.err = err
	}
}
func (s *recordedSpan) End() { s.ended = true }

type recordingTracer struct {
	spans []*recordedSpan
}

func (r *recordingTracer) Start(ctx context.Context, name string) (context.Context, Span) {
	s := &recordedSpan{name: name, attrs: map[string]interface{}{}}
	r.spans = append(r.spans, s)
	return ctx, s
}

func TestRun_NoopTracerCallsFn(t *testing.T) {
	SetTracer(nil)
	if Enabled() {
		t.Fatal("Enabled() = true with the no-op tracer")
	}

	called := false
	err := Run(context.Background(), "walk", nil, func(context.Context) error {
		called = true
		return nil
	})
	if err != nil || !called {
		t.Errorf("Run() = %v, called = %v", err, called)
	}
}

func TestRun_RecordsAttributesAndError(t *testing.T) {
	rec := &recordingTracer{}
	SetTracer(rec)
	defer SetTracer(nil)

	if !Enabled() {
		t.Fatal("Enabled() = false after SetTracer")
	}

	boom := errors.New("boom")
	err := Run(context.Background(), "hash", map[string]interface{}{"path": "a/b"}, func(context.Context) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want %v", err, boom)
	}

	if len(rec.spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(rec.spans))
	}
	s := rec.spans[0]
	if s.name != "hash" || s.attrs["path"] != "a/b" || !errors.Is(s.err, boom) || !s.ended {
		t.Errorf("span = %+v", s)
	}
}

func TestShutdownWithoutInit(t *testing.T) {
	if err := Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
