package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"provenance/internal/errs"
	"provenance/internal/ports"
	"provenance/internal/usecase/provenance"
)

var artworkCmd = &cobra.Command{
	Use:   "artwork",
	Short: "Post and browse artworks",
}

var artworkCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Post an artwork as the --as account",
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		flags := cmd.Flags()
		title, _ := flags.GetString("title")
		artist, _ := flags.GetString("artist")
		year, _ := flags.GetString("year")
		medium, _ := flags.GetString("medium")
		description, _ := flags.GetString("description")

		artwork, err := d.Service.CreateArtwork(cmd.Context(), actorID, provenance.CreateArtworkInput{
			Title:       title,
			ArtistName:  artist,
			Year:        year,
			Medium:      medium,
			Description: description,
		})
		if err != nil {
			return errs.Wrap(err, "create artwork")
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), renderArtworkCard(artwork)); err != nil {
			return errs.Wrap(err, "write artwork output")
		}
		return nil
	}),
}

var artworkShowCmd = &cobra.Command{
	Use:   "show <artwork-id>",
	Short: "Show an artwork and its certificate",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		artwork, err := d.Service.GetArtwork(cmd.Context(), cmd.Flags().Arg(0))
		if err != nil {
			return errs.Wrap(err, "get artwork")
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), renderArtworkCard(artwork)); err != nil {
			return errs.Wrap(err, "write artwork output")
		}
		return nil
	}),
}

var artworkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List artworks, newest first",
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		flags := cmd.Flags()
		poster, _ := flags.GetString("poster")
		artist, _ := flags.GetString("artist")
		status, _ := flags.GetString("status")
		limit, _ := flags.GetInt("limit")

		artworks, err := d.Service.ListArtworks(cmd.Context(), provenance.ArtworkListFilter{
			AccountID:       poster,
			ArtistAccountID: artist,
			Status:          status,
			Limit:           limit,
		})
		if err != nil {
			return errs.Wrap(err, "list artworks")
		}
		return printArtworkRows(cmd, artworks)
	}),
}

var artworkPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List artworks waiting for an artist claim",
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		limit, _ := cmd.Flags().GetInt("limit")
		artworks, err := d.Service.PendingClaims(cmd.Context(), limit)
		if err != nil {
			return errs.Wrap(err, "list pending claims")
		}
		return printArtworkRows(cmd, artworks)
	}),
}

var artworkStatusCmd = &cobra.Command{
	Use:   "status <artwork-id>",
	Short: "Print the certificate status of an artwork",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, d deps) error {
		status, err := d.Service.CertificateStatus(cmd.Context(), cmd.Flags().Arg(0))
		if err != nil {
			return errs.Wrap(err, "get certificate status")
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), status); err != nil {
			return errs.Wrap(err, "write status output")
		}
		return nil
	}),
}

func printArtworkRows(cmd *cobra.Command, artworks []ports.Artwork) error {
	out := cmd.OutOrStdout()
	if len(artworks) == 0 {
		_, err := fmt.Fprintln(out, "no artworks")
		return err
	}
	for _, artwork := range artworks {
		if _, err := fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n",
			artwork.ID,
			artwork.CertificateNumber,
			artwork.CertificateStatus,
			artwork.Title,
			artwork.ArtistName,
		); err != nil {
			return errs.Wrap(err, "write artwork row")
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(artworkCmd)
	artworkCmd.AddCommand(artworkCreateCmd, artworkShowCmd, artworkListCmd, artworkPendingCmd, artworkStatusCmd)

	artworkCreateCmd.Flags().String("title", "", "Artwork title")
	artworkCreateCmd.Flags().String("artist", "", "Artist name; defaults to the poster's name for artists")
	artworkCreateCmd.Flags().String("year", "", "Year")
	artworkCreateCmd.Flags().String("medium", "", "Medium")
	artworkCreateCmd.Flags().String("description", "", "Description")
	_ = artworkCreateCmd.MarkFlagRequired("title")

	artworkListCmd.Flags().String("poster", "", "Only artworks posted by this account")
	artworkListCmd.Flags().String("artist", "", "Only artworks attributed to this artist account")
	artworkListCmd.Flags().String("status", "", "pending_artist_claim, pending_verification or verified")
	artworkListCmd.Flags().Int("limit", 50, "Maximum rows")

	artworkPendingCmd.Flags().Int("limit", 50, "Maximum rows")
}
