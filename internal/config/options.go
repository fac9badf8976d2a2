package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TranscribeOptions are the model/formatting options forwarded to the
// transcription provider. They can be overridden by a yaml file pointed to
// by TRANSCRIBE_OPTIONS.
type TranscribeOptions struct {
	Model       string `yaml:"model"`
	Language    string `yaml:"language"`
	SmartFormat bool   `yaml:"smart_format"`
}

// DefaultTranscribeOptions mirrors what the hosted deployment uses.
func DefaultTranscribeOptions() TranscribeOptions {
	return TranscribeOptions{
		Model:       "whisper-medium",
		Language:    "en",
		SmartFormat: true,
	}
}

// LoadTranscribeOptions returns the defaults, overlaid with the yaml file at
// path when path is non-empty.
func LoadTranscribeOptions(path string) (TranscribeOptions, error) {
	opts := DefaultTranscribeOptions()
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read transcribe options: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse transcribe options: %w", err)
	}
	return opts, nil
}
