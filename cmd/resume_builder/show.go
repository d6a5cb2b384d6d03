package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-builder/internal/store"
	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:     "show [section-id]",
	Aliases: []string{"list"},
	Short:   "Show the resume or one section",
	Args:    cobra.MaximumNArgs(1),
	RunE:    withApp(runShow),
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print JSON instead of the formatted view")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string, a *app) error {
	if len(args) == 0 {
		state := a.store.State()
		if showJSON {
			return printJSON(cmd, state)
		}
		a.printer(cmd).PrintDocument(state)
		return nil
	}

	section, ok := a.store.Section(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", store.ErrSectionNotFound, args[0])
	}
	if showJSON {
		return printJSON(cmd, section)
	}
	a.printer(cmd).PrintSection(section)
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
