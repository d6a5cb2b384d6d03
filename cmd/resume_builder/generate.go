package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/spf13/cobra"
)

var (
	genSection        string
	genJobTitle       string
	genCompany        string
	genYears          int
	genSkills         string
	genName           string
	genExperience     string
	genJobDescription string
	genOut            string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft resume text with the configured language model",
	Long:  "Drafts text with the configured provider (OpenAI by default). Requires an API key: see 'resume_builder apikey set'.",
}

var generateJobDescriptionCmd = &cobra.Command{
	Use:   "job-description <section-id> <item-id>",
	Short: "Draft the description of an experience entry from its position, company and dates",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		text, err := llm.DraftJobDescription(cmd.Context(), a.generator(), a.store, args[0], args[1], time.Now())
		if err != nil && !errors.Is(err, store.ErrNotSaved) {
			return generationError(err)
		}
		return printGenerated(cmd, a, "Job Description", text, err)
	}),
}

var generateSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Draft the professional summary",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		text, err := llm.DraftSummary(cmd.Context(), a.generator(), a.store, genSection, llm.SummaryRequest{
			JobTitle: genJobTitle,
			Years:    genYears,
			Skills:   splitList(genSkills),
		})
		if err != nil && !errors.Is(err, store.ErrNotSaved) {
			return generationError(err)
		}
		return printGenerated(cmd, a, "Professional Summary", text, err)
	}),
}

var generateCoverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Draft a cover letter from the resume and a job posting",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		text, err := llm.DraftCoverLetter(cmd.Context(), a.generator(), a.store.State(), llm.CoverLetterRequest{
			Name:           genName,
			JobTitle:       genJobTitle,
			Company:        genCompany,
			Experience:     genExperience,
			JobDescription: genJobDescription,
		})
		if err != nil {
			return generationError(err)
		}
		if genOut != "" {
			if err := writeFile(genOut, []byte(text+"\n")); err != nil {
				return err
			}
		}
		return printGenerated(cmd, a, "Cover Letter", text, nil)
	}),
}

func init() {
	generateSummaryCmd.Flags().StringVar(&genSection, "section", "summary", "Summary section to write to")
	generateSummaryCmd.Flags().StringVar(&genJobTitle, "title", "", "Job title (required)")
	generateSummaryCmd.Flags().IntVar(&genYears, "years", 0, "Years of experience (required)")
	generateSummaryCmd.Flags().StringVar(&genSkills, "skills", "", "Comma-separated skills (default: the skills sections)")

	generateCoverLetterCmd.Flags().StringVar(&genJobTitle, "title", "", "Job title (required)")
	generateCoverLetterCmd.Flags().StringVar(&genCompany, "company", "", "Company name (required)")
	generateCoverLetterCmd.Flags().StringVar(&genName, "name", "", "Applicant name (default: the contact name)")
	generateCoverLetterCmd.Flags().StringVar(&genExperience, "experience", "", "Experience summary (default: the experience entries)")
	generateCoverLetterCmd.Flags().StringVar(&genJobDescription, "job-description", "", "Job posting text")
	generateCoverLetterCmd.Flags().StringVarP(&genOut, "out", "o", "", "Also write the letter to this file")

	generateCmd.AddCommand(generateJobDescriptionCmd, generateSummaryCmd, generateCoverLetterCmd)
	rootCmd.AddCommand(generateCmd)
}

// printGenerated prints the text even when storing it failed, then reports saveErr.
func printGenerated(cmd *cobra.Command, a *app, kind, text string, saveErr error) error {
	a.printer(cmd).PrintGenerated(kind, text)
	return saveErr
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// generationError points at the command that fixes a missing credential.
func generationError(err error) error {
	if errors.Is(err, llm.ErrMissingCredential) {
		return fmt.Errorf("%w; run 'resume_builder apikey set'", err)
	}
	return err
}
