package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"provenance/internal/domain/certificate"
	"provenance/internal/ports"
)

var (
	cardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func statusStyle(status certificate.Status) lipgloss.Style {
	switch status {
	case certificate.StatusVerified:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	case certificate.StatusPendingVerification:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	}
}

// renderArtworkCard draws an artwork and its certificate as a bordered card.
func renderArtworkCard(artwork ports.Artwork) string {
	var builder strings.Builder
	builder.WriteString(titleStyle.Render(artwork.Title))
	builder.WriteString("\n")

	byline := firstNonEmpty(artwork.ArtistName, "unknown artist")
	if artwork.Year != "" {
		byline += ", " + artwork.Year
	}
	if artwork.Medium != "" {
		byline += " · " + artwork.Medium
	}
	builder.WriteString(dimStyle.Render(byline))
	builder.WriteString("\n\n")

	builder.WriteString(fmt.Sprintf("certificate  %s (%s)\n", artwork.CertificateNumber, artwork.CertificateType))
	builder.WriteString("status       " + statusStyle(artwork.CertificateStatus).Render(string(artwork.CertificateStatus)) + "\n")
	builder.WriteString("posted by    " + artwork.AccountID + "\n")
	if artwork.ArtistAccountID != nil {
		builder.WriteString("artist       " + *artwork.ArtistAccountID + "\n")
	}
	if artwork.ClaimedByArtistAt != nil {
		builder.WriteString("claimed      " + artwork.ClaimedByArtistAt.Format(time.RFC3339) + "\n")
	}
	if artwork.VerifiedByOwnerAt != nil {
		builder.WriteString("verified     " + artwork.VerifiedByOwnerAt.Format(time.RFC3339) + "\n")
	}
	builder.WriteString(dimStyle.Render("id " + artwork.ID))

	return cardStyle.Render(builder.String())
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
