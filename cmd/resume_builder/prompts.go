package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/spf13/cobra"
)

const promptFile = "generation.json"

var promptsShow bool

var promptsCmd = &cobra.Command{
	Use:   "prompts [key]",
	Short: "List the text-generation prompts and the values each one needs",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPrompts,
}

func init() {
	promptsCmd.Flags().BoolVar(&promptsShow, "show", false, "Print the prompt text as well")
	rootCmd.AddCommand(promptsCmd)
}

func runPrompts(cmd *cobra.Command, args []string) error {
	keys := args
	if len(keys) == 0 {
		var err error
		if keys, err = prompts.List(promptFile); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	for _, key := range keys {
		template, err := prompts.Get(promptFile, key)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %s\n", key, strings.Join(prompts.Placeholders(template), ", "))
		if promptsShow || len(args) > 0 {
			fmt.Fprintf(out, "  %s\n", template)
		}
	}
	return nil
}
