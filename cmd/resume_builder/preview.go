package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/spf13/cobra"
)

var previewFormat string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the rendered resume as Markdown or HTML",
	Args:  cobra.NoArgs,
	RunE:  withApp(runPreview),
}

func init() {
	previewCmd.Flags().StringVarP(&previewFormat, "format", "f", "md", "Output format: md or html")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string, a *app) error {
	var (
		out string
		err error
	)
	switch previewFormat {
	case "md", "markdown":
		out, err = rendering.RenderMarkdown(a.store.State())
	case "html":
		out, err = rendering.RenderHTML(a.store.State())
	default:
		return fmt.Errorf("unknown preview format %q (want md or html)", previewFormat)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
