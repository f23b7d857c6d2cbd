// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/pdiddy/eventscan/pkg/types"
)

// runner abstracts process execution for testing.
type runner interface {
	Run(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

type osRunner struct{}

func (osRunner) Run(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Tesseract runs a locally installed tesseract binary.
type Tesseract struct {
	path      string
	dataPath  string
	languages string
	run       runner
}

// NewTesseract creates a provider for the tesseract binary named in cfg.
func NewTesseract(cfg types.OCRConfig) *Tesseract {
	path := cfg.TesseractPath
	if path == "" {
		path = "tesseract"
	}
	return &Tesseract{
		path:      path,
		dataPath:  cfg.DataPath,
		languages: cfg.Languages,
		run:       osRunner{},
	}
}

// Recognize pipes image through tesseract and returns the trimmed text.
func (t *Tesseract) Recognize(ctx context.Context, image []byte) (string, error) {
	if _, err := DetectImage(image); err != nil {
		return "", err
	}

	var stdout, stderr bytes.Buffer
	err := t.run.Run(ctx, t.path, command(t.languages, t.dataPath), bytes.NewReader(image), &stdout, &stderr)
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("tesseract: %w: %s", err, msg)
		}
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return cleanText(stdout.String()), nil
}

// Version returns the first line of `tesseract --version`.
func (t *Tesseract) Version(ctx context.Context) (string, error) {
	var stdout bytes.Buffer
	if err := t.run.Run(ctx, t.path, []string{"--version"}, nil, &stdout, io.Discard); err != nil {
		return "", fmt.Errorf("getting tesseract version: %w", err)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(stdout.String()), "\n")
	return line, nil
}
