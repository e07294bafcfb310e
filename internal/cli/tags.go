package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akhdanfadh/larderkeep/internal/larder"
)

const flagColor = "color"

func newTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List, create and delete tags",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			client, err := tagsClient(cmd)
			if err != nil {
				return err
			}
			tags, err := client.Tags(cmd.Context())
			if err != nil {
				return err
			}
			return writeTags(cmd.OutOrStdout(), format, tags)
		},
	}
	addOutputFlag(list)

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := tagsClient(cmd)
			if err != nil {
				return err
			}
			color, _ := cmd.Flags().GetString(flagColor)

			tag := larder.Tag{Name: args[0], Color: color}
			if err := client.SaveTag(cmd.Context(), &tag); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tag.ID)
			return nil
		},
	}
	create.Flags().String(flagColor, "", "Tag color, e.g. #ff8800 (server picks one when empty)")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tag by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := tagsClient(cmd)
			if err != nil {
				return err
			}
			return client.DeleteTag(cmd.Context(), larder.Tag{ID: args[0]})
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func tagsClient(cmd *cobra.Command) (*larder.Client, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	return newClient(s, "", newLogger(cmd.ErrOrStderr(), s)), nil
}
