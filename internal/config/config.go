// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads eventscan settings from a YAML file, EVENTSCAN_*
// environment variables and bound flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pdiddy/eventscan/pkg/types"
)

const (
	// Name is the config file stem and the ~/.config subdirectory.
	Name      = "eventscan"
	envPrefix = "EVENTSCAN"
)

// SetDefaults registers every key with its default value. Registering all
// keys also lets AutomaticEnv find them during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("extraction.time_window", 50)
	v.SetDefault("extraction.title_lead", 30)
	v.SetDefault("extraction.title_trail", 20)
	v.SetDefault("extraction.default_start", "09:00")
	v.SetDefault("extraction.default_duration", time.Hour)
	v.SetDefault("extraction.placeholder_title", "No title found")
	v.SetDefault("extraction.languages", []string{"en"})

	v.SetDefault("ocr.backend", string(types.OCRTesseract))
	v.SetDefault("ocr.tesseract_path", "tesseract")
	v.SetDefault("ocr.data_path", "")
	v.SetDefault("ocr.languages", "eng")
	v.SetDefault("ocr.image", "jitesoft/tesseract-ocr:latest")

	v.SetDefault("cache.path", "")

	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("http.user_agent", "eventscan/0.1")
	v.SetDefault("http.max_retries", 3)

	v.SetDefault("scan.output_dir", "")
	v.SetDefault("scan.write_ics", false)
	v.SetDefault("scan.include_text", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Init points v at cfgFile, or at eventscan.yaml in the working directory
// or ~/.config/eventscan/config.yaml when cfgFile is empty, and enables
// EVENTSCAN_* overrides. It returns the file that was read, or "" when no
// file was found.
func Init(v *viper.Viper, cfgFile string) (string, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigType("yaml")
		v.SetConfigName(Name)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load unmarshals and validates the settings held by v.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations in cfg.
func Validate(cfg types.Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating config: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	if _, err := types.ParseTimeOfDay(cfg.Extraction.DefaultStart); err != nil {
		return fmt.Errorf("invalid config: extraction.default_start: %w", err)
	}
	return nil
}
