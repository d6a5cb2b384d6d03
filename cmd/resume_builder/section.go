package main

import (
	"fmt"
	"strconv"

	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var (
	sectionTitle string
	sectionOrder int
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Add, edit, reorder and remove sections",
}

var sectionAddCmd = &cobra.Command{
	Use:   "add <type>",
	Short: "Add a section of the given type at the end (or at --order)",
	Long:  "Adds a section. Types: summary, experience, education, skills, projects, custom.",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runSectionAdd),
}

var sectionSetCmd = &cobra.Command{
	Use:     "set <section-id> key=value...",
	Short:   "Set fields of a section, e.g. name=Ada summary=\"...\" title=\"About me\"",
	Args:    cobra.MinimumNArgs(2),
	Example: "  resume_builder section set contact name=\"Ada Lovelace\" email=ada@example.com",
	RunE:    withApp(runSectionSet),
}

var sectionRemoveCmd = &cobra.Command{
	Use:   "remove <section-id>",
	Short: "Remove a section (the contact section cannot be removed)",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runSectionRemove),
}

var sectionMoveCmd = &cobra.Command{
	Use:   "move <section-id> <position>",
	Short: "Move a section to a zero-based position",
	Args:  cobra.ExactArgs(2),
	RunE:  withApp(runSectionMove),
}

var sectionUpCmd = &cobra.Command{
	Use:   "up <section-id>",
	Short: "Move a section one place up",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		return a.store.MoveUp(args[0])
	}),
}

var sectionDownCmd = &cobra.Command{
	Use:   "down <section-id>",
	Short: "Move a section one place down",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		return a.store.MoveDown(args[0])
	}),
}

var sectionSelectCmd = &cobra.Command{
	Use:   "select [section-id]",
	Short: "Select the section being edited; no argument clears the selection",
	Args:  cobra.MaximumNArgs(1),
	RunE:  withApp(runSectionSelect),
}

func init() {
	sectionAddCmd.Flags().StringVar(&sectionTitle, "title", "", "Section title (default depends on the type)")
	sectionAddCmd.Flags().IntVar(&sectionOrder, "order", -1, "Zero-based position (default: last)")

	sectionCmd.AddCommand(sectionAddCmd, sectionSetCmd, sectionRemoveCmd, sectionMoveCmd,
		sectionUpCmd, sectionDownCmd, sectionSelectCmd)
	rootCmd.AddCommand(sectionCmd)
}

func runSectionAdd(cmd *cobra.Command, args []string, a *app) error {
	t, err := types.ParseSectionType(args[0])
	if err != nil {
		return err
	}

	section, err := a.store.NewSection(t, sectionTitle)
	if err != nil {
		return err
	}
	if sectionOrder >= 0 {
		if err := a.store.MoveSection(section.ID, sectionOrder); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), section.ID)
	return err
}

func runSectionSet(_ *cobra.Command, args []string, a *app) error {
	id := args[0]
	fields, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}

	var patch store.SectionPatch
	if title, ok := fields["title"]; ok {
		patch.Title = &title
		delete(fields, "title")
	}

	section, ok := a.store.Section(id)
	if !ok {
		return fmt.Errorf("%w: %s", store.ErrSectionNotFound, id)
	}
	if len(fields) > 0 {
		if err := setFields(section.Content, "", fields); err != nil {
			return err
		}
		patch.Content = section.Content
	}

	return a.store.UpdateSection(id, patch)
}

func runSectionRemove(_ *cobra.Command, args []string, a *app) error {
	return a.store.RemoveSection(args[0])
}

func runSectionMove(_ *cobra.Command, args []string, a *app) error {
	position, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("position must be a number: %w", err)
	}
	return a.store.MoveSection(args[0], position)
}

func runSectionSelect(_ *cobra.Command, args []string, a *app) error {
	if len(args) == 0 {
		return a.store.SetActiveSection(nil)
	}
	if _, ok := a.store.Section(args[0]); !ok {
		return fmt.Errorf("%w: %s", store.ErrSectionNotFound, args[0])
	}
	return a.store.SetActiveSection(&args[0])
}
