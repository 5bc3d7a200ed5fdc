package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"provenance/internal/errs"
)

var notificationCmd = &cobra.Command{
	Use:   "notification",
	Short: "Read the --as account's notifications",
}

var notificationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications, newest first",
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		unread, _ := cmd.Flags().GetBool("unread")
		limit, _ := cmd.Flags().GetInt("limit")

		items, err := d.Service.ListNotifications(cmd.Context(), actorID, unread, limit)
		if err != nil {
			return errs.Wrap(err, "list notifications")
		}
		out := cmd.OutOrStdout()
		for _, item := range items {
			marker := "*"
			if item.IsRead {
				marker = " "
			}
			if _, err := fmt.Fprintf(out, "%s %s\t%s\t%s\t%s\n",
				marker,
				item.ID,
				item.CreatedAt.Format(time.RFC3339),
				item.Type,
				item.Title,
			); err != nil {
				return errs.Wrap(err, "write notification row")
			}
		}
		return nil
	}),
}

var notificationCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of unread notifications",
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		count, err := d.Service.UnreadCount(cmd.Context(), actorID)
		if err != nil {
			return errs.Wrap(err, "count unread notifications")
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), count)
		return err
	}),
}

var notificationReadCmd = &cobra.Command{
	Use:   "read <notification-id>",
	Short: "Mark one notification read",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		if err := d.Service.MarkNotificationRead(cmd.Context(), actorID, cmd.Flags().Arg(0)); err != nil {
			return errs.Wrap(err, "mark notification read")
		}
		return nil
	}),
}

var notificationReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification read",
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		updated, err := d.Service.MarkAllNotificationsRead(cmd.Context(), actorID)
		if err != nil {
			return errs.Wrap(err, "mark all notifications read")
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "marked %d read\n", updated)
		return err
	}),
}

func init() {
	rootCmd.AddCommand(notificationCmd)
	notificationCmd.AddCommand(notificationListCmd, notificationCountCmd, notificationReadCmd, notificationReadAllCmd)

	notificationListCmd.Flags().Bool("unread", false, "Only unread notifications")
	notificationListCmd.Flags().Int("limit", 50, "Maximum rows")
}
