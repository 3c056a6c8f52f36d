package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// Config represents the quill settings.
type Config struct {
	Provider         string        `json:"provider"`
	Model            string        `json:"model"`
	Format           string        `json:"format"`
	MaxPatchBytes    int           `json:"maxPatchBytes"`
	ContextLines     int           `json:"contextLines"`
	Include          []string      `json:"include"`
	Exclude          []string      `json:"exclude"`
	Body             bool          `json:"body"`
	IgnoreWhitespace bool          `json:"ignoreWhitespace"`
	StyleFile        string        `json:"styleFile,omitempty"`
	Cache            CacheConfig   `json:"cache"`
	Privacy          PrivacyConfig `json:"privacy"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// PrivacyConfig controls privacy/redaction behavior.
type PrivacyConfig struct {
	RedactSecrets bool     `json:"redactSecrets"`
	RedactPaths   []string `json:"redactPaths,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:         "openai",
		Model:            "gpt-4o-mini",
		Format:           "text",
		MaxPatchBytes:    10000,
		ContextLines:     3,
		Include:          []string{"**/*"},
		Exclude:          []string{"vendor/**", "**/*.gen.go", "**/go.sum", "**/*.lock"},
		IgnoreWhitespace: true,
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 86400,
		},
		Privacy: PrivacyConfig{
			RedactSecrets: true,
			RedactPaths:   []string{"**/.env", "**/*secrets*"},
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for quill.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "quill"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "quill"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "quill"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "quill"), nil
	default:
		return filepath.Join(home, ".config", "quill"), nil
	}
}

// ConfigPath returns the full path to the settings file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads settings from the config file. Returns zero Config and nil
// error if the file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the settings to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > 0 {
		if err := mergeFileData(&cfg, data); err != nil {
			return Config{}, err
		}
	}
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFileData(dst *Config, data []byte) error {
	var src Config
	if err := json.Unmarshal(data, &src); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.MaxPatchBytes > 0 {
		dst.MaxPatchBytes = src.MaxPatchBytes
	}
	if src.ContextLines > 0 {
		dst.ContextLines = src.ContextLines
	}
	if len(src.Include) > 0 {
		dst.Include = src.Include
	}
	if len(src.Exclude) > 0 {
		dst.Exclude = src.Exclude
	}
	if src.StyleFile != "" {
		dst.StyleFile = src.StyleFile
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
	if src.Cache.TTLSeconds > 0 {
		dst.Cache.TTLSeconds = src.Cache.TTLSeconds
	}
	if len(src.Privacy.RedactPaths) > 0 {
		dst.Privacy.RedactPaths = src.Privacy.RedactPaths
	}

	// Toggles default to true, so a plain struct decode cannot tell an absent
	// field from an explicit false. A second pointer-typed decode carries the
	// presence information.
	var toggles struct {
		Body             *bool `json:"body"`
		IgnoreWhitespace *bool `json:"ignoreWhitespace"`
		Cache            struct {
			Enabled *bool `json:"enabled"`
		} `json:"cache"`
		Privacy struct {
			RedactSecrets *bool `json:"redactSecrets"`
		} `json:"privacy"`
	}
	if err := json.Unmarshal(data, &toggles); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	if toggles.Body != nil {
		dst.Body = *toggles.Body
	}
	if toggles.IgnoreWhitespace != nil {
		dst.IgnoreWhitespace = *toggles.IgnoreWhitespace
	}
	if toggles.Cache.Enabled != nil {
		dst.Cache.Enabled = *toggles.Cache.Enabled
	}
	if toggles.Privacy.RedactSecrets != nil {
		dst.Privacy.RedactSecrets = *toggles.Privacy.RedactSecrets
	}
	return nil
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("QUILL_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("QUILL_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("QUILL_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("QUILL_MAX_PATCH_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxPatchBytes = n
		}
	}
	if v := os.Getenv("QUILL_CONTEXT_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ContextLines = n
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["provider"]; ok && v != "" {
		cfg.Provider = v
	}
	if v, ok := overrides["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := overrides["maxPatchBytes"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxPatchBytes = n
		}
	}
	if v, ok := overrides["contextLines"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ContextLines = n
		}
	}
	if v, ok := overrides["styleFile"]; ok && v != "" {
		cfg.StyleFile = v
	}
	if v, ok := overrides["body"]; ok && v == "true" {
		cfg.Body = true
	}
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "format":
		cfg.Format = value
	case "maxPatchBytes":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxPatchBytes must be an integer: %w", err)
		}
		cfg.MaxPatchBytes = n
	case "contextLines":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("contextLines must be an integer: %w", err)
		}
		cfg.ContextLines = n
	case "styleFile":
		cfg.StyleFile = value
	case "body":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("body must be a boolean: %w", err)
		}
		cfg.Body = b
	case "ignoreWhitespace":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("ignoreWhitespace must be a boolean: %w", err)
		}
		cfg.IgnoreWhitespace = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
