package llm

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/prompts"
	"go.uber.org/zap"
)

const promptFile = "generation.json"

var (
	// ErrMissingCredential is returned before any network call when no API key is set.
	// The wrapping message names the configured provider.
	ErrMissingCredential = errors.New("no API key configured")
	// ErrMissingInput is returned when a prompt parameter the request needs is blank.
	ErrMissingInput = errors.New("missing information")
)

// CredentialSource yields the configured API key, or "" when none is set.
type CredentialSource interface {
	Load() (string, error)
}

// StaticCredential is a CredentialSource holding a fixed key.
type StaticCredential string

// Load returns the key.
func (s StaticCredential) Load() (string, error) { return string(s), nil }

// JobDescriptionRequest parameterises the job-description prompt.
type JobDescriptionRequest struct {
	JobTitle string
	Company  string
	Years    int
}

// SummaryRequest parameterises the summary prompt.
type SummaryRequest struct {
	JobTitle string
	Years    int
	Skills   []string
}

// CoverLetterRequest parameterises the cover-letter prompt. JobDescription is optional.
type CoverLetterRequest struct {
	Name           string
	JobTitle       string
	Company        string
	Experience     string
	JobDescription string
}

// Generator builds prompts, checks preconditions and calls the configured provider.
// Each call is a single request without retry.
type Generator struct {
	config      *Config
	credentials CredentialSource
	newClient   ClientFactory
	logger      *zap.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithClientFactory replaces the provider client constructor.
func WithClientFactory(f ClientFactory) GeneratorOption {
	return func(g *Generator) { g.newClient = f }
}

// WithGeneratorLogger sets the logger.
func WithGeneratorLogger(logger *zap.Logger) GeneratorOption {
	return func(g *Generator) { g.logger = logger }
}

// NewGenerator returns a Generator for config reading the API key from credentials.
func NewGenerator(config *Config, credentials CredentialSource, opts ...GeneratorOption) *Generator {
	if config == nil {
		config = DefaultConfig()
	}
	g := &Generator{
		config:      config,
		credentials: credentials,
		newClient:   NewClient,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// HasCredential reports whether an API key is configured.
func (g *Generator) HasCredential() bool {
	key, err := g.apiKey()
	return err == nil && key != ""
}

func (g *Generator) apiKey() (string, error) {
	missing := fmt.Errorf("%w: please set your %s API key", ErrMissingCredential, g.config.Provider.DisplayName())
	if g.credentials == nil {
		return "", missing
	}
	key, err := g.credentials.Load()
	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	if strings.TrimSpace(key) == "" {
		return "", missing
	}
	return key, nil
}

// JobDescription drafts 3-5 bullet points for a position.
func (g *Generator) JobDescription(ctx context.Context, req JobDescriptionRequest) (string, error) {
	if blank(req.JobTitle) || blank(req.Company) {
		return "", fmt.Errorf("%w: please provide a job title and company name", ErrMissingInput)
	}
	return g.generate(ctx, "job_description", map[string]string{
		"JobTitle": req.JobTitle,
		"Company":  req.Company,
		"Years":    strconv.Itoa(max(1, req.Years)),
	}, DefaultOptions())
}

// Summary drafts a 3-4 sentence professional summary.
func (g *Generator) Summary(ctx context.Context, req SummaryRequest) (string, error) {
	if blank(req.JobTitle) || req.Years <= 0 {
		return "", fmt.Errorf("%w: please provide a job title and years of experience", ErrMissingInput)
	}
	return g.generate(ctx, "summary", map[string]string{
		"JobTitle": req.JobTitle,
		"Years":    strconv.Itoa(req.Years),
		"Skills":   strings.Join(nonBlank(req.Skills), ", "),
	}, DefaultOptions())
}

// CoverLetter drafts a 3-4 paragraph cover letter with the larger token budget.
func (g *Generator) CoverLetter(ctx context.Context, req CoverLetterRequest) (string, error) {
	if blank(req.Name) || blank(req.JobTitle) || blank(req.Company) {
		return "", fmt.Errorf("%w: please provide a name, job title and company name", ErrMissingInput)
	}
	jobDescription := ""
	if !blank(req.JobDescription) {
		var err error
		jobDescription, err = prompts.Render(promptFile, "cover_letter_job_description", map[string]string{
			"JobDescription": strings.TrimSpace(req.JobDescription),
		})
		if err != nil {
			return "", err
		}
	}
	return g.generate(ctx, "cover_letter", map[string]string{
		"Name":           req.Name,
		"JobTitle":       req.JobTitle,
		"Company":        req.Company,
		"Experience":     strings.TrimSpace(req.Experience),
		"JobDescription": jobDescription,
	}, Options{MaxTokens: CoverLetterMaxTokens, Temperature: DefaultTemperature})
}

// generate checks the credential, renders the prompt and performs one provider call.
func (g *Generator) generate(ctx context.Context, key string, data map[string]string, opts Options) (string, error) {
	apiKey, err := g.apiKey()
	if err != nil {
		return "", err
	}

	prompt, err := prompts.Render(promptFile, key, data)
	if err != nil {
		return "", err
	}

	client, err := g.newClient(ctx, g.config, apiKey)
	if err != nil {
		return "", err
	}
	defer client.Close()

	g.logger.Debug("generating text",
		zap.String("prompt", key),
		zap.String("model", client.Model()),
		zap.Int("max_tokens", opts.MaxTokens),
	)

	text, err := client.GenerateContent(ctx, prompt, opts)
	if err != nil {
		g.logger.Warn("text generation failed", zap.String("prompt", key), zap.Error(err))
		return "", err
	}
	text = CleanText(text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
