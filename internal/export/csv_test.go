package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akumar-dev/tweetpulse-be/internal/models"
)

func TestWriteCSV(t *testing.T) {
	tweets := []models.AnalyzedTweet{
		{Text: "great stuff", Sentiment: "Positive", CreatedAt: "2024-01-15T10:30:00Z"},
		{Text: "no label yet", CreatedAt: "Unknown"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, "golang", tweets))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Hashtag/Username", "Tweet", "Sentiment", "Posted"}, records[0])
	assert.Equal(t, []string{"golang", "great stuff", "Positive", "Mon, 15 Jan 2024 10:30:00 UTC"}, records[1])
	assert.Equal(t, []string{"golang", "no label yet", "N/A", "Unknown"}, records[2])
}

func TestWriteCSVEscapesCommasAndQuotes(t *testing.T) {
	tweets := []models.AnalyzedTweet{
		{Text: `tricky, "quoted" text`, Sentiment: "Neutral"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, "jane", tweets))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, `tricky, "quoted" text`, records[1][1])
}
