package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFoldersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "List folders and their bookmark counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			client := newClient(s, "", newLogger(cmd.ErrOrStderr(), s))

			folders, err := client.Folders(cmd.Context())
			if err != nil {
				return err
			}
			return writeFolders(cmd.OutOrStdout(), format, folders)
		},
	}
	addOutputFlag(cmd)
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that the API token is accepted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			client := newClient(s, "", newLogger(cmd.ErrOrStderr(), s))

			if err := client.CheckConnectivity(cmd.Context()); err != nil {
				return fmt.Errorf("larder API check failed: %w", explainAPIError(err))
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
