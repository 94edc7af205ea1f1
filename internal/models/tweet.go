package models

import "time"

// Tweet is a single fetched tweet as returned by the upstream service.
// CreatedAt is the upstream's string timestamp, or "Unknown" when the
// upstream could not provide one.
type Tweet struct {
	Text      string `json:"text" bson:"text"`
	CreatedAt string `json:"created_at" bson:"created_at"`
}

// AnalyzedTweet is a tweet together with its sentiment label. The label is
// one of Positive/Negative/Neutral, assigned upstream, never computed here.
type AnalyzedTweet struct {
	Text      string `json:"text" bson:"text"`
	Sentiment string `json:"sentiment" bson:"sentiment"`
	CreatedAt string `json:"created_at" bson:"created_at"`
}

// UserBatch is a saved group of analyzed tweets for one Twitter account.
// Every save produces a new document; batches are never merged or updated.
type UserBatch struct {
	ID       string          `json:"id" bson:"_id"`
	Username string          `json:"username" bson:"username"`
	Name     string          `json:"name" bson:"name"`
	Owner    string          `json:"owner" bson:"owner"` // account that saved the batch
	Tweets   []AnalyzedTweet `json:"tweets" bson:"tweets"`
	SavedAt  time.Time       `json:"savedAt" bson:"saved_at"`
}

// HashtagBatch is a saved group of tweets fetched for a hashtag. Sentiment
// labels are optional: the batch may be saved before analysis ran.
type HashtagBatch struct {
	ID        string          `json:"id" bson:"_id"`
	Hashtag   string          `json:"hashtag" bson:"hashtag"`
	Owner     string          `json:"owner" bson:"owner"`
	Tweets    []AnalyzedTweet `json:"tweets" bson:"tweets"`
	CreatedAt time.Time       `json:"createdAt" bson:"created_at"`
}
