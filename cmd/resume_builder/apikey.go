package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/spf13/cobra"
)

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage the API key used for text generation",
}

var apikeySetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Save the API key (read from stdin when no argument is given)",
	Long:  "Saves the API key to <data_dir>/credential with owner-only permissions. The key is stored in plain text.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAPIKeySet,
}

var apikeyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether an API key is configured",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		creds, err := credentialStore(cmd)
		if err != nil {
			return err
		}
		source, err := creds.Status()
		if err != nil {
			return err
		}
		switch source {
		case config.CredentialFile:
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "API key configured (%s)\n", creds.Path())
		case config.CredentialEnv:
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "API key configured (environment)")
		default:
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "No API key configured")
		}
		return err
	},
}

var apikeyRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Delete the saved API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		creds, err := credentialStore(cmd)
		if err != nil {
			return err
		}
		return creds.Remove()
	},
}

func init() {
	apikeyCmd.AddCommand(apikeySetCmd, apikeyStatusCmd, apikeyRemoveCmd)
	rootCmd.AddCommand(apikeyCmd)
}

// credentialStore opens the credential file without touching document storage.
func credentialStore(cmd *cobra.Command) (*config.CredentialStore, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, err
	}
	return config.NewCredentialStore(cfg.DataDir,
		config.WithEnvFallback(config.ProviderKeyEnv(cfg.Provider)),
		config.WithWarningOutput(cmd.ErrOrStderr()),
	), nil
}

func runAPIKeySet(cmd *cobra.Command, args []string) error {
	creds, err := credentialStore(cmd)
	if err != nil {
		return err
	}

	key := ""
	if len(args) == 1 {
		key = args[0]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return config.ErrEmptyCredential
		}
		key = strings.TrimSpace(line)
	}
	return creds.Save(key)
}
