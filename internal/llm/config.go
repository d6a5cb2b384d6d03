// Package llm is the boundary to the hosted text-generation service: provider clients,
// the prompt helpers used by the editor and the credential precondition.
package llm

import "fmt"

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderOpenAI is the OpenAI chat completions API, reached through langchaingo
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Default generation parameters.
const (
	DefaultMaxTokens   = 500
	DefaultTemperature = 0.7

	// CoverLetterMaxTokens is the larger budget used for cover letters.
	CoverLetterMaxTokens = 800
)

// Options tunes a single generation call.
type Options struct {
	MaxTokens   int
	Temperature float64
}

// DefaultOptions returns the options used when a caller does not override them.
func DefaultOptions() Options {
	return Options{MaxTokens: DefaultMaxTokens, Temperature: DefaultTemperature}
}

// withDefaults fills zero fields from DefaultOptions. A zero temperature is kept only
// when MaxTokens was also set, so Options{} means "all defaults".
func (o Options) withDefaults() Options {
	if o == (Options{}) {
		return DefaultOptions()
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = DefaultMaxTokens
	}
	return o
}

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Model    string
	// BaseURL overrides the provider endpoint. Only the OpenAI provider honours it.
	BaseURL string
}

// DefaultConfig returns the default configuration (OpenAI, gpt-3.5-turbo)
func DefaultConfig() *Config {
	return DefaultOpenAIConfig()
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() *Config {
	return &Config{Provider: ProviderOpenAI, Model: "gpt-3.5-turbo"}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{Provider: ProviderGemini, Model: "gemini-2.5-flash"}
}

// DisplayName returns the provider name shown to users.
func (p Provider) DisplayName() string {
	if p == ProviderGemini {
		return "Gemini"
	}
	return "OpenAI"
}

// ParseProvider converts a configuration string to a Provider.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(s); p {
	case ProviderOpenAI, ProviderGemini:
		return p, nil
	default:
		return "", fmt.Errorf("unknown LLM provider %q (expected openai or gemini)", s)
	}
}

// WithModel returns a copy of the config using model.
func (c *Config) WithModel(model string) *Config {
	out := *c
	out.Model = model
	return &out
}

// resolvedModel returns the configured model or the provider default.
func (c *Config) resolvedModel() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider == ProviderGemini {
		return DefaultGeminiConfig().Model
	}
	return DefaultOpenAIConfig().Model
}
