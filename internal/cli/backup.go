package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/akhdanfadh/larderkeep/internal/backup"
	"github.com/akhdanfadh/larderkeep/internal/logger"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup [token] <destination_directory>",
		Short: "Export all bookmarks into a Netscape bookmark file",
		Long: `Fetch every folder and its bookmarks, then write them into
LarderBackup_<YYYY-MM-DD>_<HH:MM:SS>.html inside the destination directory.

Bookmarks are written as one flat list unless --group-by-folder is set.
Tags are not exported.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runBackup,
	}
	cmd.Flags().Bool(flagGroupByFolder, false, "Keep each folder as its own section in the output")
	return cmd
}

func runBackup(cmd *cobra.Command, args []string) error {
	start := time.Now()

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	var token string
	destDir := args[len(args)-1]
	if len(args) == 2 {
		token = args[0]
	}

	stderr := cmd.ErrOrStderr()
	log := newLogger(stderr, s)
	client := newClient(s, token, log)

	opts := []backup.Option{
		backup.WithLogger(log),
		backup.WithGroupByFolder(s.GroupByFolder),
	}

	// progress indicator only when stderr is a TTY and not verbose (verbose has its own logging)
	var progress *logger.TTYProgresser
	if !s.Verbose && logger.IsTerminal(stderr) {
		progress = logger.NewProgresser(stderr, "Folders: %d/%d")
		opts = append(opts, backup.WithProgress(progress))
	}

	res, err := backup.New(client, opts...).Run(cmd.Context(), destDir)
	if progress != nil {
		progress.Clear()
	}
	if err != nil {
		return fmt.Errorf("backup: %w", explainAPIError(err))
	}

	printBackupSummary(stderr, res, time.Since(start))
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.Path)
	return nil
}
