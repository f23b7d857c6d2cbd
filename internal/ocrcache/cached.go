// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocrcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/eventscan/internal/ocr"
)

// Cached wraps an OCR provider with a Store. Cache read and write failures
// are logged and fall through to the provider.
type Cached struct {
	provider  ocr.Provider
	store     *Store
	backend   string
	languages string
	log       zerolog.Logger
}

// NewCached returns a provider that consults store before calling p.
// backend and languages are part of the cache key, so changing either
// invalidates earlier results.
func NewCached(p ocr.Provider, store *Store, backend, languages string, log zerolog.Logger) *Cached {
	return &Cached{provider: p, store: store, backend: backend, languages: languages, log: log}
}

// Key derives the cache key for image under the given backend and languages.
func Key(image []byte, backend, languages string) string {
	h := sha256.New()
	h.Write(image)
	fmt.Fprintf(h, "\x00%s\x00%s", backend, languages)
	return hex.EncodeToString(h.Sum(nil))
}

// Recognize returns the cached text for image, or runs the wrapped provider
// and stores its result.
func (c *Cached) Recognize(ctx context.Context, image []byte) (string, error) {
	key := Key(image, c.backend, c.languages)

	entry, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		c.log.Warn().Err(err).Str("key", key).Msg("ocr cache read failed")
	case ok:
		c.log.Debug().Str("key", key).Bool("cached", true).Msg("ocr cache hit")
		return entry.Text, nil
	}

	text, err := c.provider.Recognize(ctx, image)
	if err != nil {
		return "", err
	}

	if err := c.store.Put(ctx, Entry{Key: key, Backend: c.backend, Languages: c.languages, Text: text}); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("ocr cache write failed")
	}
	return text, nil
}
