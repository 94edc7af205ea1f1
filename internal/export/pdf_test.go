package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akumar-dev/tweetpulse-be/internal/models"
)

func TestWritePDF(t *testing.T) {
	tweets := []models.AnalyzedTweet{
		{Text: "great stuff", Sentiment: "Positive", CreatedAt: "2024-01-15T10:30:00Z"},
		{Text: strings.Repeat("long ", 30), Sentiment: "Negative"},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, "Sentiment Report: #golang", "golang", tweets))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output must start with the PDF magic")
	assert.Greater(t, buf.Len(), 1000)
}

func TestWritePDFEmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, "Sentiment Report: @jane", "jane", nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 60))
	long := strings.Repeat("x", 100)
	got := truncate(long, 60)
	assert.Len(t, got, 60)
	assert.True(t, strings.HasSuffix(got, "..."))
}
