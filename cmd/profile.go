package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"provenance/internal/errs"
	"provenance/internal/ports"
	"provenance/internal/usecase/provenance"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Gallery-managed artist profiles and their claims",
}

var profileCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an artist profile as a gallery",
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		name, _ := cmd.Flags().GetString("name")
		bio, _ := cmd.Flags().GetString("bio")

		profile, err := d.Service.CreateArtistProfile(cmd.Context(), actorID, provenance.CreateArtistProfileInput{Name: name, Bio: bio})
		if err != nil {
			return errs.Wrap(err, "create artist profile")
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", profile.ID, profile.Name); err != nil {
			return errs.Wrap(err, "write profile output")
		}
		return nil
	}),
}

var profileRequestClaimCmd = &cobra.Command{
	Use:   "request-claim <profile-id>",
	Short: "Ask the managing gallery to hand a profile over to you",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		message, _ := cmd.Flags().GetString("message")
		claim, err := d.Service.RequestProfileClaim(cmd.Context(), actorID, cmd.Flags().Arg(0), message)
		if err != nil {
			return errs.Wrap(err, "request profile claim")
		}
		return printClaim(cmd, claim)
	}),
}

var profileClaimsCmd = &cobra.Command{
	Use:   "claims <profile-id>",
	Short: "List claims on a profile you manage",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		claims, err := d.Service.ListProfileClaims(cmd.Context(), actorID, cmd.Flags().Arg(0))
		if err != nil {
			return errs.Wrap(err, "list profile claims")
		}
		for _, claim := range claims {
			if err := printClaim(cmd, claim); err != nil {
				return err
			}
		}
		return nil
	}),
}

var profileApproveCmd = &cobra.Command{
	Use:   "approve <claim-id>",
	Short: "Approve a pending profile claim",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		response, _ := cmd.Flags().GetString("response")
		claim, err := d.Service.ApproveProfileClaim(cmd.Context(), actorID, cmd.Flags().Arg(0), response)
		if err != nil {
			// An auto-rejected claim is returned alongside the reason.
			if claim.ID != "" {
				_ = printClaim(cmd, claim)
			}
			return errs.Wrap(err, "approve profile claim")
		}
		return printClaim(cmd, claim)
	}),
}

var profileRejectCmd = &cobra.Command{
	Use:   "reject <claim-id>",
	Short: "Reject a pending profile claim",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		reason, _ := cmd.Flags().GetString("reason")
		claim, err := d.Service.RejectProfileClaim(cmd.Context(), actorID, cmd.Flags().Arg(0), reason)
		if err != nil {
			return errs.Wrap(err, "reject profile claim")
		}
		return printClaim(cmd, claim)
	}),
}

func printClaim(cmd *cobra.Command, claim ports.ProfileClaim) error {
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\tprofile=%s\tartist=%s\t%s\n",
		claim.ID,
		claim.ProfileID,
		claim.ArtistAccountID,
		claim.Status,
	); err != nil {
		return errs.Wrap(err, "write claim output")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileCreateCmd, profileRequestClaimCmd, profileClaimsCmd, profileApproveCmd, profileRejectCmd)

	profileCreateCmd.Flags().String("name", "", "Artist name")
	profileCreateCmd.Flags().String("bio", "", "Short biography")
	_ = profileCreateCmd.MarkFlagRequired("name")

	profileRequestClaimCmd.Flags().String("message", "", "Note for the gallery")
	profileApproveCmd.Flags().String("response", "", "Note for the artist")
	profileRejectCmd.Flags().String("reason", "", "Why the claim is rejected")
}
