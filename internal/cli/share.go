package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// ShareCmd returns the share command
func ShareCmd() *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Share boards through invite codes",
		Long: `Invite codes let other users join a board as members. Only the board owner
can remove members, and the owner cannot be removed.`,
	}
	cmd.PersistentFlags().StringVarP(&boardID, "board", "b", "", "Board ID (default: current board)")

	cmd.AddCommand(&cobra.Command{
		Use:   "invite",
		Short: "Create an invite code for a board",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := boardFlag(cmd, boardID)
			if err != nil {
				return err
			}
			svc, err := services()
			if err != nil {
				return err
			}
			invite, err := svc.Sharing.CreateInvite(NewContext(cmd.Context()), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Invite code for board %s: %s\n", id, invite.Code)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "join [code]",
		Short: "Join a board with an invite code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			id, err := svc.Sharing.JoinBoard(NewContext(cmd.Context()), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Joined board %s\n", id)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "members",
		Short: "List the members of a board",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := boardFlag(cmd, boardID)
			if err != nil {
				return err
			}
			svc, err := services()
			if err != nil {
				return err
			}
			members, err := svc.Sharing.ListMembers(NewContext(cmd.Context()), id)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "USER\tROLE\tSINCE")
			fmt.Fprintln(w, "----\t----\t-----")
			for _, m := range members {
				fmt.Fprintf(w, "%s\t%s\t%s\n", m.UserID, m.Role, m.CreatedAt.Local().Format("2006-01-02"))
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove [user-id]",
		Short: "Remove a member from a board (owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := boardFlag(cmd, boardID)
			if err != nil {
				return err
			}
			svc, err := services()
			if err != nil {
				return err
			}
			if err := svc.Sharing.RemoveMember(NewContext(cmd.Context()), id, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %s from board %s\n", args[0], id)
			return nil
		},
	})

	return cmd
}
