package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/akumar-dev/tweetpulse-be/internal/models"
)

// WritePDF writes one analyzed batch as a PDF report: a title, the
// sentiment summary block, then a striped table of the tweets.
func WritePDF(w io.Writer, title, label string, tweets []models.AnalyzedTweet) error {
	summary := Summarize(tweets)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	summaryLines := []string{
		"Sentiment Summary:",
		fmt.Sprintf("Positive: %d (%s%%)", summary.Positive, summary.PositivePct()),
		fmt.Sprintf("Negative: %d (%s%%)", summary.Negative, summary.NegativePct()),
		fmt.Sprintf("Neutral: %d (%s%%)", summary.Neutral, summary.NeutralPct()),
		fmt.Sprintf("Total Tweets: %d", summary.Total),
	}
	for _, line := range summaryLines {
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	widths := []float64{30, 80, 30, 50}
	headers := []string{"Hashtag/Username", "Tweet", "Sentiment", "Posted"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(220, 220, 220)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	fill := false
	for _, tweet := range tweets {
		pdf.SetFillColor(240, 240, 240)
		row := []string{label, truncate(tweet.Text, 60), sentimentOrNA(tweet.Sentiment), formatPosted(tweet.CreatedAt)}
		for i, cell := range row {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
		fill = !fill
	}

	return pdf.Output(w)
}

// truncate keeps table cells on one line.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
