package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app bundles what every command needs: configuration, logger and the opened store.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	storage storage.Storage
	store   *store.Store
	creds   *config.CredentialStore
}

// loadSettings reads and validates the configuration.
func loadSettings() (*config.Config, error) {
	loaded, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	cfg := loaded.MergeWithDefaults(config.Defaults())
	if verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// openApp loads the configuration and opens the store on the configured backend.
func openApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(cfg.Env, cfg.Verbose)
	if err != nil {
		return nil, err
	}

	st, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage, err)
	}

	opts := []store.Option{store.WithLogger(logger)}
	if cfg.GapTolerantRemoval {
		opts = append(opts, store.WithGapTolerantRemoval())
	}
	s, err := store.Open(ctx, st, opts...)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	creds := config.NewCredentialStore(cfg.DataDir,
		config.WithEnvFallback(config.ProviderKeyEnv(cfg.Provider)),
		config.WithWarningOutput(cmd.ErrOrStderr()),
	)

	return &app{cfg: cfg, logger: logger, storage: st, store: s, creds: creds}, nil
}

// Close releases the storage backend and flushes the logger.
func (a *app) Close() {
	if err := a.storage.Close(); err != nil {
		a.logger.Warn("failed to close storage", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func (a *app) generator() *llm.Generator {
	return llm.NewGenerator(a.cfg.LLMConfig(), a.creds, llm.WithGeneratorLogger(a.logger))
}

func (a *app) exporter(outputDir string) *export.ChromeExporter {
	if outputDir == "" {
		outputDir = a.cfg.OutputDir
	}
	return export.NewChromeExporter(outputDir,
		export.WithChromePath(a.cfg.ChromePath),
		export.WithLogger(a.logger),
	)
}

func (a *app) printer(cmd *cobra.Command) *observability.Printer {
	return observability.NewPrinter(cmd.OutOrStdout())
}

// withApp opens the app for the duration of run.
func withApp(run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, args, a)
	}
}

// writeFile writes data to path.
func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
