// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan runs the batch pipeline: load each input, recognize text in
// images, extract event candidates and write them out for review.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/eventscan/internal/export"
	"github.com/pdiddy/eventscan/internal/input"
	"github.com/pdiddy/eventscan/internal/ocr"
	"github.com/pdiddy/eventscan/pkg/types"
)

// ErrNoOCR is returned for image inputs when the pipeline has no OCR
// provider.
var ErrNoOCR = errors.New("image input requires an OCR provider")

// Loader reads and classifies an input reference.
type Loader interface {
	Load(ctx context.Context, ref string) (input.Input, error)
}

// Extractor turns text into event candidates.
type Extractor interface {
	Extract(text string) []types.EventCandidate
}

// Options wires a Pipeline. OCR may be nil when only text inputs are
// expected.
type Options struct {
	Loader    Loader
	OCR       ocr.Provider
	Engine    Extractor
	Reference types.Date
	Config    types.ScanConfig
	// Stdout receives the YAML documents when Config.OutputDir is empty.
	Stdout io.Writer
	Log    zerolog.Logger
}

// Pipeline processes inputs sequentially. One failing input never stops
// the batch.
type Pipeline struct {
	opts Options
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	return &Pipeline{opts: opts}
}

// Summary holds counts from a batch scan.
type Summary struct {
	Scanned int
	Empty   int
	Failed  int
	Events  int
}

// Total returns the number of inputs processed.
func (s Summary) Total() int {
	return s.Scanned + s.Empty + s.Failed
}

// HasFailures reports whether any input failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Run scans every ref in order, printing one status line per input to w.
// It returns early with ctx.Err() when the context is cancelled between
// inputs.
func (p *Pipeline) Run(ctx context.Context, refs []string, w io.Writer) (Summary, error) {
	var summary Summary
	names := make(map[string]int)
	docs := 0

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		name := uniqueName(names, input.Name(ref))
		log := p.opts.Log.With().Str("source", ref).Logger()

		result, err := p.Scan(ctx, ref)
		if err == nil {
			err = p.write(name, result, &docs)
		}
		if err != nil {
			log.Warn().Err(err).Msg("scan failed")
			fmt.Fprintf(w, "failed %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		log.Debug().Int("events", len(result.Events)).Msg("scanned")
		if len(result.Events) == 0 {
			fmt.Fprintf(w, "empty %s: no events found\n", name)
			summary.Empty++
			continue
		}
		fmt.Fprintf(w, "scanned %s (%d events)\n", name, len(result.Events))
		summary.Scanned++
		summary.Events += len(result.Events)
	}

	return summary, nil
}

// Scan loads one input and extracts its candidates without writing
// anything.
func (p *Pipeline) Scan(ctx context.Context, ref string) (*types.ScanResult, error) {
	in, err := p.opts.Loader.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	p.opts.Log.Debug().
		Str("source", ref).
		Str("kind", in.Kind.String()).
		Str("mime", in.MIME).
		Int("bytes", len(in.Data)).
		Msg("loaded input")

	text, err := p.text(ctx, in)
	if err != nil {
		return nil, err
	}

	result := &types.ScanResult{
		Source:    ref,
		Reference: p.opts.Reference,
		Events:    p.opts.Engine.Extract(text),
	}
	if p.opts.Config.IncludeText {
		result.Text = text
	}
	if result.Events == nil {
		result.Events = []types.EventCandidate{}
	}
	return result, nil
}

func (p *Pipeline) text(ctx context.Context, in input.Input) (string, error) {
	if in.Kind != input.KindImage {
		return in.Text(), nil
	}
	if p.opts.OCR == nil {
		return "", ErrNoOCR
	}
	text, err := p.opts.OCR.Recognize(ctx, in.Data)
	if err != nil {
		return "", fmt.Errorf("recognizing text: %w", err)
	}
	return text, nil
}

// write stores result as <dir>/<name>-events.yaml, or prints it to Stdout
// when no output directory is configured. docs counts the YAML documents
// already printed. With ICS enabled each candidate also becomes
// <dir>/<name>-<n>.ics.
func (p *Pipeline) write(name string, result *types.ScanResult, docs *int) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	dir := p.opts.Config.OutputDir
	if dir == "" {
		if *docs > 0 {
			fmt.Fprintln(p.opts.Stdout, "---")
		}
		if _, err := p.opts.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
		*docs++
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, name+"-events.yaml"), data, 0o644); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
	}

	if !p.opts.Config.WriteICS {
		return nil
	}
	if dir == "" {
		dir = "."
	}
	for i, ev := range result.Events {
		ics, err := export.ICS(ev)
		if err != nil {
			return fmt.Errorf("event %d: %w", i+1, err)
		}
		path := filepath.Join(dir, name+"-"+strconv.Itoa(i+1)+".ics")
		if err := os.WriteFile(path, ics, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

// uniqueName appends -2, -3, ... to repeated stems within one batch.
func uniqueName(seen map[string]int, name string) string {
	seen[name]++
	if n := seen[name]; n > 1 {
		return name + "-" + strconv.Itoa(n)
	}
	return name
}
