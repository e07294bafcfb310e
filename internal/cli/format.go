package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/akhdanfadh/larderkeep/internal/larder"
)

const (
	flagOutput  = "output"
	outputTable = "table"
	outputYAML  = "yaml"
)

// folderRow and tagRow are the listing views of the API records.
type folderRow struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Bookmarks int    `yaml:"bookmarks"`
	Created   string `yaml:"created,omitempty"`
	Modified  string `yaml:"modified,omitempty"`
}

type tagRow struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color,omitempty"`
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(flagOutput, "o", outputTable, `Output format, "table" or "yaml"`)
}

// outputFormat returns the --output value, rejecting unknown formats before
// any request is made.
func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString(flagOutput)
	switch format {
	case outputTable, outputYAML:
		return format, nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

func writeFolders(w io.Writer, format string, folders []larder.Folder) error {
	rows := make([]folderRow, 0, len(folders))
	for _, f := range folders {
		rows = append(rows, folderRow{ID: f.ID, Name: f.Name, Bookmarks: f.Links, Created: f.Created, Modified: f.Modified})
	}
	if format == outputYAML {
		return writeYAML(w, rows)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tBOOKMARKS")
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\n", r.ID, r.Name, r.Bookmarks)
	}
	return tw.Flush()
}

func writeTags(w io.Writer, format string, tags []larder.Tag) error {
	rows := make([]tagRow, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, tagRow{ID: t.ID, Name: t.Name, Color: t.Color})
	}
	if format == outputYAML {
		return writeYAML(w, rows)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tCOLOR")
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, r.Name, r.Color)
	}
	return tw.Flush()
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
