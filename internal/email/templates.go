package email

import (
	"fmt"
	"strings"

	"brandpulse/internal/models"
)

// NegativeToneAlert builds the subject and body for a negative-sentiment
// alert email.
func NegativeToneAlert(summary *models.AnalysisSummary) (subject, body string) {
	subject = fmt.Sprintf("Negative sentiment detected for %s", summary.BrandName)

	var sb strings.Builder
	fmt.Fprintf(&sb, "An analysis of %q came back with negative overall sentiment.\n\n", summary.BrandName)
	fmt.Fprintf(&sb, "Analysis ID:    %s\n", summary.ID)
	fmt.Fprintf(&sb, "Prompt:         %s\n", summary.Prompt)
	fmt.Fprintf(&sb, "Total mentions: %d\n", summary.TotalMentions)
	fmt.Fprintf(&sb, "Unique sources: %d (%s coverage)\n", summary.UniqueSources, summary.CoverageBucket)
	fmt.Fprintf(&sb, "Trust score:    %.2f\n", summary.TrustScore)
	fmt.Fprintf(&sb, "Analyzed at:    %s\n", summary.CreatedAt.Format("2006-01-02 15:04 UTC"))

	return subject, sb.String()
}

// DailyDigest builds the subject and body for the periodic digest email.
func DailyDigest(summaries []models.AnalysisSummary) (subject, body string) {
	subject = fmt.Sprintf("BrandPulse digest: %d analyses", len(summaries))

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d analyses completed in the last digest period.\n\n", len(summaries))
	for _, s := range summaries {
		fmt.Fprintf(&sb, "- %s: %s tone, %d mentions across %d sources (trust %.2f)\n",
			s.BrandName, s.OverallTone, s.TotalMentions, s.UniqueSources, s.TrustScore)
	}

	return subject, sb.String()
}
