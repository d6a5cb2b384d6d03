package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CredentialFileName is the file inside the data dir holding the API key.
const CredentialFileName = "credential"

// CredentialWarning is shown every time a key is saved.
const CredentialWarning = "Warning: your API key is stored locally in plain text at %s. " +
	"Anyone with access to this account can read it; do not use this setup on shared machines."

// ErrEmptyCredential is returned when saving a blank API key.
var ErrEmptyCredential = errors.New("please enter your API key")

// CredentialSource names where a key was found.
type CredentialSource string

// Credential sources reported by Status.
const (
	CredentialNone CredentialSource = "none"
	CredentialFile CredentialSource = "file"
	CredentialEnv  CredentialSource = "env"
)

// CredentialStore keeps the text-generation API key in a single local file. An
// environment variable can stand in when no file exists.
type CredentialStore struct {
	path   string
	envVar string
	warn   io.Writer
}

// CredentialOption configures a CredentialStore.
type CredentialOption func(*CredentialStore)

// WithEnvFallback makes Load fall back to the named variable when no key is saved.
func WithEnvFallback(name string) CredentialOption {
	return func(c *CredentialStore) { c.envVar = name }
}

// WithWarningOutput redirects the plain-text storage warning (default stderr).
func WithWarningOutput(w io.Writer) CredentialOption {
	return func(c *CredentialStore) { c.warn = w }
}

// NewCredentialStore returns a store for <dataDir>/credential.
func NewCredentialStore(dataDir string, opts ...CredentialOption) *CredentialStore {
	c := &CredentialStore{
		path: filepath.Join(dataDir, CredentialFileName),
		warn: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the credential file path.
func (c *CredentialStore) Path() string {
	return c.path
}

// Save trims and writes key with owner-only permissions, then prints the warning.
func (c *CredentialStore) Save(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyCredential
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credential directory: %w", err)
	}
	if err := os.WriteFile(c.path, []byte(key+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(c.path, 0o600); err != nil {
		return fmt.Errorf("failed to restrict API key permissions: %w", err)
	}
	if c.warn != nil {
		fmt.Fprintf(c.warn, CredentialWarning+"\n", c.path)
	}
	return nil
}

// Load returns the saved key, the fallback variable, or "" when neither is set.
func (c *CredentialStore) Load() (string, error) {
	key, source, err := c.lookup()
	if err != nil || source == CredentialNone {
		return "", err
	}
	return key, nil
}

// Status reports where the key would be loaded from.
func (c *CredentialStore) Status() (CredentialSource, error) {
	_, source, err := c.lookup()
	return source, err
}

// Remove deletes the saved key. Removing a missing key is not an error.
func (c *CredentialStore) Remove() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove API key: %w", err)
	}
	return nil
}

func (c *CredentialStore) lookup() (string, CredentialSource, error) {
	data, err := os.ReadFile(c.path)
	switch {
	case err == nil:
		if key := strings.TrimSpace(string(data)); key != "" {
			return key, CredentialFile, nil
		}
	case !errors.Is(err, os.ErrNotExist):
		return "", CredentialNone, fmt.Errorf("failed to read API key: %w", err)
	}

	if c.envVar != "" {
		if key := strings.TrimSpace(os.Getenv(c.envVar)); key != "" {
			return key, CredentialEnv, nil
		}
	}
	return "", CredentialNone, nil
}

// ProviderKeyEnv returns the conventional API key variable for a provider.
func ProviderKeyEnv(provider string) string {
	if provider == "gemini" {
		return "GEMINI_API_KEY"
	}
	return "OPENAI_API_KEY"
}
