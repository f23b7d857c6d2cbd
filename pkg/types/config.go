package types

import "time"

// HTTPConfig holds shared HTTP settings used when inputs are fetched by URL.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "eventscan/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on HTTP 429 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries" validate:"gte=0"`
}

// ExtractionConfig tunes the event-extraction heuristics.
type ExtractionConfig struct {
	// TimeWindow is the number of characters searched on each side of a
	// date mention for a time range (default 50).
	TimeWindow int `json:"time_window" yaml:"time_window" mapstructure:"time_window" validate:"gte=0"`

	// TitleLead is the number of characters before a date mention taken
	// as title context (default 30).
	TitleLead int `json:"title_lead" yaml:"title_lead" mapstructure:"title_lead" validate:"gte=0"`

	// TitleTrail is the number of characters after a date mention taken
	// as title context (default 20).
	TitleTrail int `json:"title_trail" yaml:"title_trail" mapstructure:"title_trail" validate:"gte=0"`

	// DefaultStart is the HH:MM start used when no time range is found (default "09:00").
	DefaultStart string `json:"default_start" yaml:"default_start" mapstructure:"default_start" validate:"required"`

	// DefaultDuration is added to the start when no end time is found (default 1h).
	DefaultDuration time.Duration `json:"default_duration" yaml:"default_duration" mapstructure:"default_duration" validate:"gt=0"`

	// PlaceholderTitle replaces titles that clean up to nothing (default "No title found").
	PlaceholderTitle string `json:"placeholder_title" yaml:"placeholder_title" mapstructure:"placeholder_title" validate:"required"`

	// Languages restricts the date parser's language detection (default ["en"]).
	Languages []string `json:"languages" yaml:"languages" mapstructure:"languages"`
}

// OCRBackend identifies the OCR implementation.
type OCRBackend string

const (
	OCRTesseract OCRBackend = "tesseract"
	OCRContainer OCRBackend = "container"
)

// OCRConfig holds settings for the OCR provider.
type OCRConfig struct {
	// Backend selects the OCR implementation: tesseract or container.
	Backend OCRBackend `json:"backend" yaml:"backend" mapstructure:"backend" validate:"oneof=tesseract container"`

	// TesseractPath is the tesseract executable (default "tesseract").
	TesseractPath string `json:"tesseract_path" yaml:"tesseract_path" mapstructure:"tesseract_path"`

	// DataPath is an optional tessdata directory.
	DataPath string `json:"data_path" yaml:"data_path" mapstructure:"data_path"`

	// Languages is passed to tesseract -l (e.g. "eng" or "eng+deu").
	Languages string `json:"languages" yaml:"languages" mapstructure:"languages" validate:"required"`

	// Image is the container image used by the container backend.
	Image string `json:"image" yaml:"image" mapstructure:"image"`
}

// CacheConfig controls the OCR text cache.
type CacheConfig struct {
	// Path is the SQLite database file. Empty disables caching.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// ScanConfig holds settings for the scan stage.
type ScanConfig struct {
	// OutputDir receives <name>-events.yaml files. Empty writes YAML to stdout.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// WriteICS also writes one .ics file per candidate into OutputDir.
	WriteICS bool `json:"write_ics" yaml:"write_ics" mapstructure:"write_ics"`

	// IncludeText keeps the recognized text in each ScanResult.
	IncludeText bool `json:"include_text" yaml:"include_text" mapstructure:"include_text"`
}

// LoggingConfig selects the log level and output format.
type LoggingConfig struct {
	// Level is a zerolog level name (debug, info, warn, error).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "console" for human-readable output or "json".
	Format string `json:"format" yaml:"format" mapstructure:"format" validate:"oneof=console json"`
}

// Config groups all settings for the CLI.
type Config struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction" mapstructure:"extraction"`
	OCR        OCRConfig        `json:"ocr" yaml:"ocr" mapstructure:"ocr"`
	Cache      CacheConfig      `json:"cache" yaml:"cache" mapstructure:"cache"`
	HTTP       HTTPConfig       `json:"http" yaml:"http" mapstructure:"http"`
	Scan       ScanConfig       `json:"scan" yaml:"scan" mapstructure:"scan"`
	Logging    LoggingConfig    `json:"logging" yaml:"logging" mapstructure:"logging"`
}
