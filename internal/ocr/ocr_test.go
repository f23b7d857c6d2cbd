// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/eventscan/internal/container"
	"github.com/pdiddy/eventscan/pkg/types"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0}, 32)...)
	pdfBytes  = []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")
)

type mockRunner struct {
	name   string
	args   []string
	stdin  []byte
	stdout string
	stderr string
	err    error
}

func (m *mockRunner) Run(_ context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	m.name = name
	m.args = args
	if stdin != nil {
		m.stdin, _ = io.ReadAll(stdin)
	}
	_, _ = io.WriteString(stdout, m.stdout)
	_, _ = io.WriteString(stderr, m.stderr)
	return m.err
}

type mockRuntime struct {
	missingImage bool
	image        string
	command      []string
	mounts       []container.Mount
	output       string
	err          error
}

func (m *mockRuntime) Name() string                   { return "docker" }
func (m *mockRuntime) Available(context.Context) bool { return true }

func (m *mockRuntime) ImageExists(_ context.Context, image string) error {
	if m.missingImage {
		return errors.New("no such image: " + image)
	}
	return nil
}

func (m *mockRuntime) Run(_ context.Context, image string, command []string, _ io.Reader, stdout io.Writer, mounts ...container.Mount) error {
	m.image = image
	m.command = command
	m.mounts = mounts
	if m.err != nil {
		return m.err
	}
	_, err := io.WriteString(stdout, m.output)
	return err
}

func TestDetectImage(t *testing.T) {
	mime, err := DetectImage(pngBytes)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	mime, err = DetectImage(jpegBytes)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)

	_, err = DetectImage(pdfBytes)
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = DetectImage([]byte("Team Sync Jan 15"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	assert.True(t, IsImage(pngBytes))
	assert.False(t, IsImage(nil))
}

func TestTesseract_Recognize(t *testing.T) {
	run := &mockRunner{stdout: "\n  Team Sync Jan 15 10:00-11:30\n\n"}
	tess := NewTesseract(types.OCRConfig{Languages: "eng+deu", DataPath: "/opt/tessdata"})
	tess.run = run

	text, err := tess.Recognize(context.Background(), pngBytes)
	require.NoError(t, err)
	assert.Equal(t, "Team Sync Jan 15 10:00-11:30", text)
	assert.Equal(t, "tesseract", run.name)
	assert.Equal(t, []string{"stdin", "stdout", "-l", "eng+deu", "--tessdata-dir", "/opt/tessdata"}, run.args)
	assert.Equal(t, pngBytes, run.stdin)
}

func TestTesseract_EmptyPage(t *testing.T) {
	tess := NewTesseract(types.OCRConfig{TesseractPath: "/usr/local/bin/tesseract"})
	run := &mockRunner{stdout: " \n\f"}
	tess.run = run

	text, err := tess.Recognize(context.Background(), jpegBytes)
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.Equal(t, "/usr/local/bin/tesseract", run.name)
	assert.Equal(t, []string{"stdin", "stdout"}, run.args)
}

func TestTesseract_Errors(t *testing.T) {
	tess := NewTesseract(types.OCRConfig{Languages: "eng"})
	run := &mockRunner{stderr: "Error opening data file eng.traineddata\n", err: errors.New("exit status 1")}
	tess.run = run

	_, err := tess.Recognize(context.Background(), pngBytes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit status 1")
	assert.Contains(t, err.Error(), "eng.traineddata")

	run.name = ""
	_, err = tess.Recognize(context.Background(), pdfBytes)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
	assert.Empty(t, run.name, "tesseract must not run for unsupported input")
}

func TestTesseract_Version(t *testing.T) {
	tess := NewTesseract(types.OCRConfig{})
	tess.run = &mockRunner{stdout: "tesseract 5.3.4\n leptonica-1.84.1\n"}

	v, err := tess.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tesseract 5.3.4", v)
}

func TestContainerTesseract(t *testing.T) {
	rt := &mockRuntime{output: "Dentist Feb 3 8:15-9:00\n"}
	cfg := types.OCRConfig{Image: "jitesoft/tesseract-ocr:latest", Languages: "eng"}

	c, err := NewContainerTesseract(context.Background(), rt, cfg)
	require.NoError(t, err)

	text, err := c.Recognize(context.Background(), pngBytes)
	require.NoError(t, err)
	assert.Equal(t, "Dentist Feb 3 8:15-9:00", text)
	assert.Equal(t, "jitesoft/tesseract-ocr:latest", rt.image)
	assert.Equal(t, []string{"tesseract", "stdin", "stdout", "-l", "eng"}, rt.command)
	assert.Empty(t, rt.mounts)

	rt.err = errors.New("container exited")
	_, err = c.Recognize(context.Background(), pngBytes)
	assert.ErrorContains(t, err, "container exited")
}

func TestContainerTesseract_MountsDataPath(t *testing.T) {
	rt := &mockRuntime{output: "Yoga Jan 15\n"}
	dataDir := t.TempDir()
	cfg := types.OCRConfig{Image: "tesseract:5", Languages: "deu", DataPath: dataDir}

	c, err := NewContainerTesseract(context.Background(), rt, cfg)
	require.NoError(t, err)

	_, err = c.Recognize(context.Background(), pngBytes)
	require.NoError(t, err)
	assert.Equal(t, []container.Mount{{Source: dataDir, Target: "/tessdata"}}, rt.mounts)
	assert.Equal(t, []string{"tesseract", "stdin", "stdout", "-l", "deu", "--tessdata-dir", "/tessdata"}, rt.command)
}

func TestContainerTesseract_MissingImage(t *testing.T) {
	_, err := NewContainerTesseract(context.Background(), &mockRuntime{missingImage: true},
		types.OCRConfig{Image: "tesseract:none"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tesseract image not available in docker")
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	p, err := New(ctx, types.OCRConfig{Backend: types.OCRTesseract, Languages: "eng"})
	require.NoError(t, err)
	assert.IsType(t, &Tesseract{}, p)

	orig := detectRuntime
	t.Cleanup(func() { detectRuntime = orig })

	detectRuntime = func(context.Context) (container.Runtime, error) { return &mockRuntime{}, nil }
	p, err = New(ctx, types.OCRConfig{Backend: types.OCRContainer, Image: "img"})
	require.NoError(t, err)
	assert.IsType(t, &ContainerTesseract{}, p)

	detectRuntime = func(context.Context) (container.Runtime, error) { return &mockRuntime{missingImage: true}, nil }
	p, err = New(ctx, types.OCRConfig{Backend: types.OCRContainer, Image: "img"})
	assert.ErrorContains(t, err, "no such image")
	assert.Nil(t, p)

	detectRuntime = func(context.Context) (container.Runtime, error) { return nil, errors.New("no runtime") }
	_, err = New(ctx, types.OCRConfig{Backend: types.OCRContainer})
	assert.ErrorContains(t, err, "no runtime")

	_, err = New(ctx, types.OCRConfig{Backend: "cloud"})
	assert.ErrorContains(t, err, "unknown OCR backend")
}
