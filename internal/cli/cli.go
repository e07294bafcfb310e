package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/akhdanfadh/larderkeep/internal/larder"
	"github.com/akhdanfadh/larderkeep/internal/logger"
)

// Version and Commit are set by main from build information.
var (
	Version = "dev"
	Commit  = "none"
)

// Run executes the CLI with the process arguments.
func Run(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "larderkeep",
		Short: "Back up and manage your Larder bookmarks",
		Long: `larderkeep talks to the Larder API (https://larder.io) with your personal token.

The token can be given as an argument, with --token, the LARDER_TOKEN
environment variable, a .env file, or "token:" in the config file.`,
		Version:       fmt.Sprintf("%s (commit %s)", Version, Commit),
		SilenceUsage:  true,
		SilenceErrors: true, // main prints the error
	}
	addClientFlags(root)

	root.AddCommand(
		newBackupCmd(),
		newInspectCmd(),
		newCheckCmd(),
		newFoldersCmd(),
		newTagsCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "larderkeep %s (commit %s)\n", Version, Commit)
		},
	}
}

// newLogger returns the logger for a command run: requests are traced with
// --verbose, otherwise only warnings and errors are shown.
func newLogger(w io.Writer, s *settings) logger.Logger {
	if s.Verbose {
		return logger.NewStdLogger(w, logger.LevelDebug)
	}
	return logger.NewStdLogger(w, logger.LevelWarn)
}

// newClient builds an API client from the settings. An explicit token
// (positional argument) takes precedence over the configured one.
func newClient(s *settings, token string, log logger.Logger) *larder.Client {
	if token == "" {
		token = s.Token
	}
	return larder.NewClient(larder.Config{
		Token:      token,
		BaseURL:    s.BaseURL,
		AuthScheme: s.AuthScheme,
	},
		larder.WithTimeout(s.Timeout),
		larder.WithLogger(log),
	)
}

// explainAPIError tells a rejected request (4xx, usually the token or an ID)
// apart from a failing service (5xx). Other errors pass through unchanged.
func explainAPIError(err error) error {
	var remote larder.RemoteError
	if !errors.As(err, &remote) {
		return err
	}
	if remote.IsClientError() {
		return fmt.Errorf("request rejected, check the token and arguments: %w", err)
	}
	return fmt.Errorf("larder service failed, try again later: %w", err)
}
