package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikbrunner/lnk/internal/model"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	SiteURL                    string          `json:"siteURL" yaml:"siteURL"`
	PerPage                    int             `json:"perPage" yaml:"perPage"`
	PaginationDisplay          string          `json:"paginationDisplay" yaml:"paginationDisplay"`
	HasTextControl             bool            `json:"hasTextControl" yaml:"hasTextControl"`
	HasRichPreviews            bool            `json:"hasRichPreviews" yaml:"hasRichPreviews"`
	WithCreateSuggestion       bool            `json:"withCreateSuggestion" yaml:"withCreateSuggestion"`
	ShowInitialSuggestions     bool            `json:"showInitialSuggestions" yaml:"showInitialSuggestions"`
	CreateSuggestionButtonText string          `json:"createSuggestionButtonText" yaml:"createSuggestionButtonText"`
	Settings                   []model.Setting `json:"settings" yaml:"settings"`
	LogLevel                   string          `json:"logLevel" yaml:"logLevel"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		SiteURL:                "https://example.com",
		PerPage:                10,
		PaginationDisplay:      "total-results",
		HasTextControl:         true,
		HasRichPreviews:        false,
		WithCreateSuggestion:   true,
		ShowInitialSuggestions: true,
		Settings:               model.DefaultSettings(),
		LogLevel:               "info",
	}
}

// LoadConfig reads config from a JSON file, or YAML when the path ends in
// .yaml or .yml.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if isYAML(path) {
		err = yaml.Unmarshal(data, &config)
	} else {
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, err
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if config.SiteURL == "" {
		config.SiteURL = defaults.SiteURL
	}
	if config.PerPage <= 0 {
		config.PerPage = defaults.PerPage
	}
	if config.PaginationDisplay == "" {
		config.PaginationDisplay = defaults.PaginationDisplay
	}
	if config.Settings == nil {
		config.Settings = defaults.Settings
	}
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}

	return &config, nil
}

// SaveConfig writes config in the format chosen by the path extension.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// DefaultConfigFilePath returns the default config path: ~/.config/lnk/config.json
func DefaultConfigFilePath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}
