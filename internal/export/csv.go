package export

import (
	"encoding/csv"
	"io"

	"github.com/akumar-dev/tweetpulse-be/internal/models"
)

// csvHeader matches the dashboard's historical export format.
var csvHeader = []string{"Hashtag/Username", "Tweet", "Sentiment", "Posted"}

// WriteCSV writes one analyzed batch as CSV. label is the hashtag or
// username the batch was fetched for and fills the first column of every
// row.
func WriteCSV(w io.Writer, label string, tweets []models.AnalyzedTweet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, tweet := range tweets {
		record := []string{label, tweet.Text, sentimentOrNA(tweet.Sentiment), formatPosted(tweet.CreatedAt)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
