package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"provenance/internal/errs"
)

var certificateCmd = &cobra.Command{
	Use:   "certificate",
	Short: "Advance an artwork's provenance certificate",
}

var certificateClaimCmd = &cobra.Command{
	Use:   "claim <artwork-id>",
	Short: "Claim an artwork as its artist (--as must be an artist)",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		artworkID := cmd.Flags().Arg(0)
		if err := d.Service.ClaimCertificate(cmd.Context(), artworkID, actorID); err != nil {
			return errs.Wrap(err, "claim certificate")
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "claimed %s, awaiting verification by the poster\n", artworkID); err != nil {
			return errs.Wrap(err, "write claim output")
		}
		return nil
	}),
}

var certificateVerifyCmd = &cobra.Command{
	Use:   "verify <artwork-id>",
	Short: "Confirm an artist's claim as the original poster",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		artworkID := cmd.Flags().Arg(0)
		if err := d.Service.VerifyCertificate(cmd.Context(), artworkID, actorID); err != nil {
			return errs.Wrap(err, "verify certificate")
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "verified %s\n", artworkID); err != nil {
			return errs.Wrap(err, "write verify output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(certificateCmd)
	certificateCmd.AddCommand(certificateClaimCmd, certificateVerifyCmd)
}
