package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	exportFormats []string
	exportOutDir  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the resume to PDF (and optionally HTML and Markdown)",
	Long:  "Renders the resume with its template and writes <resume name>.<ext> for every requested format. PDF export starts a headless Chrome.",
	Args:  cobra.NoArgs,
	RunE:  withApp(runExport),
}

var exportJSONCmd = &cobra.Command{
	Use:   "export-json <file>",
	Short: "Write the resume document as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		data, err := store.Encode(a.store.State())
		if err != nil {
			return err
		}
		if err := writeFile(args[0], data); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), args[0])
		return err
	}),
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the resume with a document previously written by export-json",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runImport),
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema that import and export-json files follow",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprint(cmd.OutOrStdout(), schemas.DocumentSchema())
		return err
	},
}

func init() {
	exportCmd.Flags().StringSliceVar(&exportFormats, "format", []string{"pdf"}, "Formats to write: pdf, html, md")
	exportCmd.Flags().StringVarP(&exportOutDir, "out-dir", "o", "", "Output directory (default: output_dir from the config)")
	rootCmd.AddCommand(exportCmd, exportJSONCmd, importCmd, schemaCmd)
}

func runExport(cmd *cobra.Command, _ []string, a *app) error {
	for _, f := range exportFormats {
		if !slices.Contains([]string{"pdf", "html", "md"}, f) {
			return fmt.Errorf("unknown export format %q (want pdf, html or md)", f)
		}
	}

	outDir := exportOutDir
	if outDir == "" {
		outDir = a.cfg.OutputDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	state := a.store.State()
	page, err := rendering.RenderHTML(state)
	if err != nil {
		return err
	}

	var (
		mu      sync.Mutex
		written []string
	)
	record := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		written = append(written, path)
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	for _, format := range exportFormats {
		g.Go(func() error {
			path, err := exportFormat(ctx, a, format, state, page, outDir)
			if err != nil {
				return fmt.Errorf("%s export failed: %w", format, err)
			}
			record(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	slices.Sort(written)
	for _, path := range written {
		a.logger.Info("exported", zap.String("path", path))
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), path); err != nil {
			return err
		}
	}
	return nil
}

func exportFormat(ctx context.Context, a *app, format string, state types.DocumentState, page, outDir string) (string, error) {
	switch format {
	case "pdf":
		return a.exporter(outDir).Export(ctx, page, rendering.PreviewElementID, state.ResumeName)
	case "html":
		path := filepath.Join(outDir, export.FileName(state.ResumeName, "html"))
		return path, writeFile(path, []byte(page))
	default:
		md, err := rendering.ElementMarkdown(page, rendering.PreviewElementID)
		if err != nil {
			return "", err
		}
		path := filepath.Join(outDir, export.FileName(state.ResumeName, "md"))
		return path, writeFile(path, []byte(md))
	}
}

func runImport(_ *cobra.Command, args []string, a *app) error {
	if err := schemas.ValidateDocumentFile(args[0]); err != nil {
		return err
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	state, err := store.Hydrate(data)
	if err != nil {
		return err
	}
	return a.store.Replace(state)
}
