package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tOgg1/msgboard/internal/board"
	"github.com/tOgg1/msgboard/internal/logging"
	"github.com/tOgg1/msgboard/internal/models"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print all messages, oldest first",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			jsonOutput, _ := cmd.Flags().GetBool("json")
			return runList(cmd, opts, jsonOutput)
		},
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func newPostCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "post",
		Aliases: []string{"create"},
		Short:   "Create a message",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPost(cmd, opts)
		},
	}
	cmd.Flags().String("username", "", "author name")
	cmd.Flags().String("content", "", "message text")
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit <id>",
		Aliases: []string{"update"},
		Short:   "Replace a message's content",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, opts, args[0])
		},
	}
	cmd.Flags().String("content", "", "new message text (required)")
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a message",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, opts, args[0])
		},
	}
}

func runList(cmd *cobra.Command, opts *rootOptions, jsonOutput bool) error {
	client, err := opts.newClient()
	if err != nil {
		return err
	}
	msgs, err := client.List(cmd.Context())
	if err != nil {
		return serviceError(err)
	}

	// Same ordering as the terminal UI.
	b := board.New()
	b.ApplyRefresh(b.BeginRefresh(), msgs, nil)
	rows := b.Rows()
	ordered := make([]models.Message, 0, len(rows))
	for _, row := range rows {
		ordered = append(ordered, row.Message)
	}

	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), ordered)
	}
	if len(ordered) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No messages")
		return nil
	}
	return writeTable(cmd.OutOrStdout(), messageHeaders, messageRows(ordered))
}

func runPost(cmd *cobra.Command, opts *rootOptions) error {
	username, _ := cmd.Flags().GetString("username")
	content, _ := cmd.Flags().GetString("content")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client, err := opts.newClient()
	if err != nil {
		return err
	}
	msg, err := client.Create(cmd.Context(), models.CreateRequest{Username: username, Content: content})
	if err != nil {
		return serviceError(err)
	}
	logger := logging.Component("cli")
	logger.Debug().Str("id", msg.ID.String()).Msg("message created")
	return writeMessage(cmd.OutOrStdout(), msg, jsonOutput)
}

func runEdit(cmd *cobra.Command, opts *rootOptions, rawID string) error {
	if !cmd.Flags().Changed("content") {
		return usageError(cmd, `required flag "content" not set`)
	}
	id, err := models.ParseID(rawID)
	if err != nil {
		return usageError(cmd, fmt.Sprintf("invalid id %q", rawID))
	}
	content, _ := cmd.Flags().GetString("content")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client, err := opts.newClient()
	if err != nil {
		return err
	}
	msg, err := client.Update(cmd.Context(), id, models.UpdateRequest{Content: content})
	if err != nil {
		return serviceError(err)
	}
	logger := logging.Component("cli")
	logger.Debug().Str("id", msg.ID.String()).Msg("message updated")
	return writeMessage(cmd.OutOrStdout(), msg, jsonOutput)
}

func runDelete(cmd *cobra.Command, opts *rootOptions, rawID string) error {
	id, err := models.ParseID(rawID)
	if err != nil {
		return usageError(cmd, fmt.Sprintf("invalid id %q", rawID))
	}

	client, err := opts.newClient()
	if err != nil {
		return err
	}
	if err := client.Delete(cmd.Context(), id); err != nil {
		return serviceError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
	return nil
}

func writeMessage(out io.Writer, msg models.Message, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(out, msg)
	}
	return writeTable(out, messageHeaders, messageRows([]models.Message{msg}))
}

func writeJSON(out io.Writer, payload any) error {
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return Exitf(ExitCodeFailure, "encode output: %v", err)
	}
	_, err = fmt.Fprintln(out, string(encoded))
	return err
}
