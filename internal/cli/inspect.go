package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akhdanfadh/larderkeep/internal/netscape"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize a Netscape bookmark file, such as a previous backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening bookmark file: %w", err)
			}
			defer func() { _ = f.Close() }() // ignore error, less critical for read

			entries, err := netscape.Parse(f)
			if err != nil {
				return fmt.Errorf("parsing bookmark file: %w", err)
			}

			printInspectSummary(cmd.OutOrStdout(), args[0], entries)
			return nil
		},
	}
}
