// Package export renders analyzed batches for the dashboard: sentiment
// summaries, CSV files and PDF reports.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/akumar-dev/tweetpulse-be/internal/models"
)

// Summary aggregates sentiment counts over one analyzed batch.
type Summary struct {
	Positive int
	Negative int
	Neutral  int
	Total    int
}

// Summarize counts the sentiment labels in tweets. Labels are matched
// case-insensitively; anything unrecognized (e.g. "Unknown") counts toward
// the total only.
func Summarize(tweets []models.AnalyzedTweet) Summary {
	s := Summary{Total: len(tweets)}
	for _, tweet := range tweets {
		switch strings.ToLower(tweet.Sentiment) {
		case "positive":
			s.Positive++
		case "negative":
			s.Negative++
		case "neutral":
			s.Neutral++
		}
	}
	return s
}

// PositivePct returns the positive share as a one-decimal percentage
// string, e.g. "33.3".
func (s Summary) PositivePct() string { return s.pct(s.Positive) }

// NegativePct returns the negative share.
func (s Summary) NegativePct() string { return s.pct(s.Negative) }

// NeutralPct returns the neutral share.
func (s Summary) NeutralPct() string { return s.pct(s.Neutral) }

func (s Summary) pct(count int) string {
	if s.Total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(count)/float64(s.Total)*100)
}

// formatPosted renders a tweet's created_at for export. Upstream
// timestamps are RFC 3339; anything unparseable ("Unknown", "N/A") passes
// through unchanged.
func formatPosted(createdAt string) string {
	if createdAt == "" {
		return "N/A"
	}
	parsed, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return createdAt
	}
	return parsed.Format(time.RFC1123)
}

// sentimentOrNA fills the sentiment column for unanalyzed tweets.
func sentimentOrNA(sentiment string) string {
	if sentiment == "" {
		return "N/A"
	}
	return sentiment
}
