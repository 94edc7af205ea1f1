package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akumar-dev/tweetpulse-be/internal/models"
)

func TestSummarize(t *testing.T) {
	tweets := []models.AnalyzedTweet{
		{Text: "a", Sentiment: "Positive"},
		{Text: "b", Sentiment: "positive"},
		{Text: "c", Sentiment: "Negative"},
		{Text: "d", Sentiment: "NEUTRAL"},
		{Text: "e", Sentiment: "Unknown"},
	}

	s := Summarize(tweets)
	assert.Equal(t, 2, s.Positive)
	assert.Equal(t, 1, s.Negative)
	assert.Equal(t, 1, s.Neutral)
	assert.Equal(t, 5, s.Total)
}

func TestSummaryPercentages(t *testing.T) {
	s := Summary{Positive: 1, Negative: 1, Neutral: 1, Total: 3}
	assert.Equal(t, "33.3", s.PositivePct())
	assert.Equal(t, "33.3", s.NegativePct())
	assert.Equal(t, "33.3", s.NeutralPct())

	empty := Summarize(nil)
	assert.Equal(t, "0.0", empty.PositivePct())
	assert.Equal(t, 0, empty.Total)
}

func TestFormatPosted(t *testing.T) {
	assert.Equal(t, "N/A", formatPosted(""))
	assert.Equal(t, "Unknown", formatPosted("Unknown"))
	assert.Equal(t, "Mon, 15 Jan 2024 10:30:00 UTC", formatPosted("2024-01-15T10:30:00Z"))
}

func TestSentimentOrNA(t *testing.T) {
	assert.Equal(t, "N/A", sentimentOrNA(""))
	assert.Equal(t, "Positive", sentimentOrNA("Positive"))
}
