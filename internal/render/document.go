// Package render turns ranked articles into the markdown digest document.
package render

import (
	"fmt"
	"strings"
	"time"

	"AINewsAgent/internal/domain"
)

// Title returns the digest heading text for the given date string.
func Title(date string) string {
	return "Top AI News - " + date
}

// Document renders the full markdown digest. Pure function of its inputs:
// heading, generation stamp, section header, then one numbered section per
// article with source, summary, and link lines, separated by horizontal rules.
func Document(date string, generatedAt time.Time, articles []domain.Article) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", Title(date))
	fmt.Fprintf(&b, "Generated on: %s\n\n", generatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "## Top %d AI Updates of the Day\n\n", len(articles))

	for i, article := range articles {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, article.Title)
		fmt.Fprintf(&b, "**Source:** %s\n\n", article.Source)
		fmt.Fprintf(&b, "**Summary:** %s\n\n", article.Summary)
		fmt.Fprintf(&b, "**Link:** %s\n\n", article.URL)
		b.WriteString("---\n\n")
	}

	return b.String()
}
