package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Edit entries of experience, education, skills and projects sections",
}

var itemAddCmd = &cobra.Command{
	Use:   "add <section-id> [key=value...]",
	Short: "Append an entry and print its id",
	Args:  cobra.MinimumNArgs(1),
	RunE:  withApp(runItemAdd),
}

var itemSetCmd = &cobra.Command{
	Use:     "set <section-id> <item-id> key=value...",
	Short:   "Set fields of an entry",
	Args:    cobra.MinimumNArgs(3),
	Example: "  resume_builder item set experience exp-1 company=Acme position=\"Staff Engineer\" startDate=2021-03 current=true",
	RunE:    withApp(runItemSet),
}

var itemRemoveCmd = &cobra.Command{
	Use:   "remove <section-id> <item-id>",
	Short: "Remove an entry",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(_ *cobra.Command, args []string, a *app) error {
		return a.store.RemoveItem(args[0], args[1])
	}),
}

func init() {
	itemCmd.AddCommand(itemAddCmd, itemSetCmd, itemRemoveCmd)
	rootCmd.AddCommand(itemCmd)
}

func runItemAdd(cmd *cobra.Command, args []string, a *app) error {
	fields, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}

	id, err := a.store.AddItem(args[0])
	if err != nil {
		return err
	}
	if len(fields) > 0 {
		if err := setItem(a, args[0], id, fields); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
	return err
}

func runItemSet(_ *cobra.Command, args []string, a *app) error {
	fields, err := parseAssignments(args[2:])
	if err != nil {
		return err
	}
	return setItem(a, args[0], args[1], fields)
}

func setItem(a *app, sectionID, itemID string, fields map[string]string) error {
	return a.store.EditContent(sectionID, func(c types.Content) error {
		return setFields(c, itemID, fields)
	})
}
