// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package input loads scan inputs from files, stdin or http(s) URLs and
// classifies them as text or image.
package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/pdiddy/eventscan/internal/ocr"
)

// Stdin is the input reference that reads standard input.
const Stdin = "-"

// ErrUnsupportedContent is returned for inputs that are neither plain text
// nor a supported image.
var ErrUnsupportedContent = errors.New("unsupported content")

// Kind classifies loaded content.
type Kind int

const (
	KindText Kind = iota
	KindImage
)

func (k Kind) String() string {
	if k == KindImage {
		return "image"
	}
	return "text"
}

// Input is a loaded scan input.
type Input struct {
	// Ref is the reference as given by the user.
	Ref string
	// Name is a filesystem-safe stem used for output files.
	Name string
	Kind Kind
	// MIME is the sniffed content type.
	MIME string
	Data []byte
}

// Text returns the input content as a string. Only meaningful for KindText.
func (in Input) Text() string {
	return strings.TrimPrefix(string(in.Data), "\ufeff")
}

// Fetcher downloads remote inputs.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Loader resolves input references.
type Loader struct {
	fetcher Fetcher
	stdin   io.Reader
}

// NewLoader returns a Loader that fetches URLs with f and reads "-" from
// stdin.
func NewLoader(f Fetcher, stdin io.Reader) *Loader {
	return &Loader{fetcher: f, stdin: stdin}
}

// Load reads ref and classifies its content.
func (l *Loader) Load(ctx context.Context, ref string) (Input, error) {
	data, err := l.read(ctx, ref)
	if err != nil {
		return Input{}, err
	}

	in := Input{Ref: ref, Name: Name(ref), Data: data}
	in.Kind, in.MIME, err = classify(data)
	if err != nil {
		return Input{}, fmt.Errorf("%s: %w", ref, err)
	}
	return in, nil
}

func (l *Loader) read(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case ref == Stdin:
		if l.stdin == nil {
			return nil, errors.New("stdin is not available")
		}
		data, err := io.ReadAll(l.stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	case isURL(ref):
		if l.fetcher == nil {
			return nil, fmt.Errorf("no HTTP client configured for %s", ref)
		}
		return l.fetcher.Get(ctx, ref)
	default:
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", ref, err)
		}
		return data, nil
	}
}

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func classify(data []byte) (Kind, string, error) {
	if len(data) == 0 {
		return KindText, "text/plain", nil
	}
	if mime, err := ocr.DetectImage(data); err == nil {
		return KindImage, mime, nil
	}
	detected := mimetype.Detect(data)
	for m := detected; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return KindText, detected.String(), nil
		}
	}
	return 0, "", fmt.Errorf("%w: %s", ErrUnsupportedContent, detected.String())
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Name derives the output stem for ref: the base name without extension,
// or "stdin" for standard input.
func Name(ref string) string {
	var base string
	switch {
	case ref == Stdin:
		return "stdin"
	case isURL(ref):
		u, err := url.Parse(ref)
		if err == nil {
			base = path.Base(u.Path)
			if base == "/" || base == "." {
				base = u.Hostname()
			}
		}
	default:
		base = filepath.Base(ref)
	}

	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Trim(unsafeNameChars.ReplaceAllString(base, "-"), "-.")
	if base == "" {
		return "input"
	}
	return base
}
