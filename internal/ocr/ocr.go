// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr recovers text from images with tesseract, either from a local
// binary or from a container image.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/pdiddy/eventscan/internal/container"
	"github.com/pdiddy/eventscan/pkg/types"
)

// ErrUnsupportedImage is returned when image bytes are not in a format
// tesseract can read.
var ErrUnsupportedImage = errors.New("unsupported image type")

// SupportedMimeTypes lists the image formats accepted for OCR.
var SupportedMimeTypes = []string{
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/bmp",
	"image/webp",
	"image/tiff",
}

// Provider turns image bytes into text. Implementations return "" with no
// error for an image without text.
type Provider interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// DetectImage sniffs image and returns its MIME type, or an error wrapping
// ErrUnsupportedImage.
func DetectImage(image []byte) (string, error) {
	m := mimetype.Detect(image)
	for _, supported := range SupportedMimeTypes {
		if m.Is(supported) {
			return supported, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, m.String())
}

// IsImage reports whether data is in one of the supported image formats.
func IsImage(data []byte) bool {
	_, err := DetectImage(data)
	return err == nil
}

// command builds the tesseract argument list that reads the image from
// stdin and writes plain text to stdout.
func command(languages, dataPath string) []string {
	args := []string{"stdin", "stdout"}
	if languages != "" {
		args = append(args, "-l", languages)
	}
	if dataPath != "" {
		args = append(args, "--tessdata-dir", dataPath)
	}
	return args
}

func cleanText(raw string) string {
	return strings.TrimSpace(raw)
}

// detectRuntime is overridable for tests.
var detectRuntime = container.DetectRuntime

// New creates the provider selected by cfg.Backend.
func New(ctx context.Context, cfg types.OCRConfig) (Provider, error) {
	switch cfg.Backend {
	case types.OCRTesseract, "":
		return NewTesseract(cfg), nil
	case types.OCRContainer:
		rt, err := detectRuntime(ctx)
		if err != nil {
			return nil, fmt.Errorf("container OCR backend: %w", err)
		}
		c, err := NewContainerTesseract(ctx, rt, cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown OCR backend %q", cfg.Backend)
	}
}
