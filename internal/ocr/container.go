// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/pdiddy/eventscan/internal/container"
	"github.com/pdiddy/eventscan/pkg/types"
)

// containerDataPath is where the host tessdata directory appears inside the
// container.
const containerDataPath = "/tessdata"

// ContainerTesseract runs tesseract inside a container image. It depends on
// a container.Runtime (docker or podman) injected at construction time.
type ContainerTesseract struct {
	runtime   container.Runtime
	image     string
	languages string
	dataPath  string
}

// NewContainerTesseract creates a provider that runs cfg.Image with rt. It
// verifies that the image exists locally before returning.
func NewContainerTesseract(ctx context.Context, rt container.Runtime, cfg types.OCRConfig) (*ContainerTesseract, error) {
	if err := rt.ImageExists(ctx, cfg.Image); err != nil {
		return nil, fmt.Errorf("tesseract image not available in %s: %w", rt.Name(), err)
	}
	dataPath := cfg.DataPath
	if dataPath != "" {
		abs, err := filepath.Abs(dataPath)
		if err != nil {
			return nil, fmt.Errorf("resolving tessdata directory %s: %w", dataPath, err)
		}
		dataPath = abs
	}
	return &ContainerTesseract{
		runtime:   rt,
		image:     cfg.Image,
		languages: cfg.Languages,
		dataPath:  dataPath,
	}, nil
}

// Recognize pipes image through the container and returns the trimmed text.
func (c *ContainerTesseract) Recognize(ctx context.Context, image []byte) (string, error) {
	if _, err := DetectImage(image); err != nil {
		return "", err
	}

	var mounts []container.Mount
	dataPath := ""
	if c.dataPath != "" {
		mounts = append(mounts, container.Mount{Source: c.dataPath, Target: containerDataPath})
		dataPath = containerDataPath
	}

	cmd := append([]string{"tesseract"}, command(c.languages, dataPath)...)
	var out bytes.Buffer
	if err := c.runtime.Run(ctx, c.image, cmd, bytes.NewReader(image), &out, mounts...); err != nil {
		return "", fmt.Errorf("tesseract in %s: %w", c.image, err)
	}
	return cleanText(out.String()), nil
}
