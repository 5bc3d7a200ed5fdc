package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"provenance/internal/errs"
	"provenance/internal/usecase/provenance"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Create and inspect accounts",
}

var accountCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account, optionally with a role",
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")
		role, _ := cmd.Flags().GetString("role")

		view, err := d.Service.CreateAccount(cmd.Context(), provenance.CreateAccountInput{
			Email:       email,
			DisplayName: name,
			Role:        role,
		})
		if err != nil {
			return errs.Wrap(err, "create account")
		}
		return printAccount(cmd, view)
	}),
}

var accountShowCmd = &cobra.Command{
	Use:   "show <account-id>",
	Short: "Show an account",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		view, err := d.Service.GetAccount(cmd.Context(), cmd.Flags().Arg(0))
		if err != nil {
			return errs.Wrap(err, "get account")
		}
		return printAccount(cmd, view)
	}),
}

var accountSetRoleCmd = &cobra.Command{
	Use:   "set-role <account-id> <role>",
	Short: "Onboard an account as artist, collector or gallery",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		view, err := d.Service.SetRole(cmd.Context(), actorID, cmd.Flags().Arg(0), cmd.Flags().Arg(1))
		if err != nil {
			return errs.Wrap(err, "set role")
		}
		return printAccount(cmd, view)
	}),
}

func printAccount(cmd *cobra.Command, view provenance.AccountView) error {
	role := string(view.Role)
	if role == "" {
		role = "-"
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\trole=%s\n", view.ID, view.Email, view.DisplayName, role); err != nil {
		return errs.Wrap(err, "write account output")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountCreateCmd, accountShowCmd, accountSetRoleCmd)

	accountCreateCmd.Flags().String("email", "", "Email address")
	accountCreateCmd.Flags().String("name", "", "Display name")
	accountCreateCmd.Flags().String("role", "", "artist, collector or gallery")
	_ = accountCreateCmd.MarkFlagRequired("email")
}
