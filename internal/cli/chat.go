package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/kanban/internal/models"
)

// ChatCmd returns the chat command
func ChatCmd() *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the board assistant",
		Long: `Ask the assistant about a board. It sees a summary of the board's columns,
tasks, checklists and deadlines plus the last few messages.`,
	}
	cmd.PersistentFlags().StringVarP(&boardID, "board", "b", "", "Board ID (default: current board)")

	cmd.AddCommand(&cobra.Command{
		Use:   "send [message...]",
		Short: "Send a message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := boardFlag(cmd, boardID)
			if err != nil {
				return err
			}
			svc, err := services()
			if err != nil {
				return err
			}
			exchange, err := svc.Chat.SendMessage(NewContext(cmd.Context()), id, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), exchange.Answer.Content)
			if exchange.Fallback {
				globalLogger.Debug("assistant unavailable, stored fallback reply")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "history",
		Short: "Show the conversation of a board",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := boardFlag(cmd, boardID)
			if err != nil {
				return err
			}
			svc, err := services()
			if err != nil {
				return err
			}
			msgs, err := svc.Chat.ListMessages(NewContext(cmd.Context()), id)
			if err != nil {
				return err
			}
			if len(msgs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No messages yet.")
				return nil
			}
			for _, m := range msgs {
				who := color.New(color.FgCyan).Sprint("you")
				if m.Sender == models.SenderAI {
					who = color.New(color.FgMagenta).Sprint("assistant")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n", m.Timestamp.Local().Format("15:04"), who, m.Content)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the conversation of a board",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := boardFlag(cmd, boardID)
			if err != nil {
				return err
			}
			svc, err := services()
			if err != nil {
				return err
			}
			n, err := svc.Chat.ClearMessages(NewContext(cmd.Context()), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared %d messages\n", n)
			return nil
		},
	})

	return cmd
}
