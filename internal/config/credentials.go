package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// CredentialsFileName is the INI file holding API keys, one section per
// provider:
//
//	[openai]
//	api_key = sk-...
//
//	[anthropic]
//	api_key = sk-ant-...
const CredentialsFileName = "credentials.ini"

// placeholderValues are sample values shipped in documentation that must not
// be mistaken for a real key.
var placeholderValues = map[string]bool{
	"your-api-key-here": true,
	"changeme":          true,
	"replace_me":        true,
	"sk-...":            true,
}

// Credentials holds the API keys read once at startup.
type Credentials struct {
	keys map[string]string
	path string
}

// MissingKeyError reports an absent or placeholder API key for a provider.
type MissingKeyError struct {
	Provider string
	EnvVar   string
	Path     string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("no API key for provider %q: set %s or add api_key to the [%s] section of %s",
		e.Provider, e.EnvVar, e.Provider, e.Path)
}

// IsMissingKey checks if an error is a missing-API-key configuration error.
func IsMissingKey(err error) bool {
	_, ok := err.(*MissingKeyError)
	return ok
}

// CredentialsPath returns the full path to the credentials file.
func CredentialsPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, CredentialsFileName), nil
}

// LoadCredentials reads the credentials file. A missing file is not an error;
// key lookups then rely on environment variables alone.
func LoadCredentials() (Credentials, error) {
	path, err := CredentialsPath()
	if err != nil {
		return Credentials{}, err
	}
	creds := Credentials{keys: map[string]string{}, path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return creds, nil
		}
		return Credentials{}, fmt.Errorf("reading credentials file: %w", err)
	}

	file, err := ini.Load(data)
	if err != nil {
		return Credentials{}, fmt.Errorf("parsing credentials file: %w", err)
	}
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		name := strings.ToLower(section.Name())
		creds.keys[name] = strings.TrimSpace(section.Key("api_key").String())
	}
	return creds, nil
}

// envVarFor maps a provider name to its conventional API key variable.
func envVarFor(provider string) string {
	switch provider {
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	default:
		return strings.ToUpper(provider) + "_API_KEY"
	}
}

// Key resolves the API key for a provider. The environment variable takes
// precedence over the credentials file. Absence or a placeholder value is a
// MissingKeyError.
func (c Credentials) Key(provider string) (string, error) {
	envVar := envVarFor(provider)
	key := os.Getenv(envVar)
	if key == "" {
		key = c.keys[provider]
	}
	if key == "" || placeholderValues[strings.ToLower(key)] {
		return "", &MissingKeyError{Provider: provider, EnvVar: envVar, Path: c.path}
	}
	return key, nil
}

// OptionalKey resolves the API key for a provider that does not require one
// (local servers). Returns "" instead of an error when nothing is configured.
func (c Credentials) OptionalKey(provider string) string {
	key, err := c.Key(provider)
	if err != nil {
		return ""
	}
	return key
}
