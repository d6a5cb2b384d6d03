package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:       "template <modern|professional|creative|simple>",
	Short:     "Select the visual template",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"modern", "professional", "creative", "simple"},
	RunE: withApp(func(_ *cobra.Command, args []string, a *app) error {
		t, err := types.ParseTemplate(args[0])
		if err != nil {
			return err
		}
		return a.store.SetTemplate(t)
	}),
}

var nameCmd = &cobra.Command{
	Use:   "name <resume name>",
	Short: "Set the resume name, which is also the export file name",
	Args:  cobra.MinimumNArgs(1),
	RunE: withApp(func(_ *cobra.Command, args []string, a *app) error {
		return a.store.SetResumeName(strings.Join(args, " "))
	}),
}

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the resume and start over from the default sections",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		if !resetYes {
			return fmt.Errorf("reset discards the whole resume; pass --yes to confirm")
		}
		return a.store.Reset()
	}),
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Confirm the reset")
	rootCmd.AddCommand(templateCmd, nameCmd, resetCmd)
}
