// Package docstore persists analyzed-tweet batches as MongoDB documents.
// Saves are append-only inserts: every save call produces a new document
// and nothing is ever updated or pruned.
package docstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/akumar-dev/tweetpulse-be/internal/models"
)

// Collection names.
const (
	ColAnalyzedTweets = "analyzed_tweets"
	ColHashtagTweets  = "hashtag_tweets"
)

// Store is the MongoDB-backed batch store.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB and prepares the batch collections.
func NewStore(uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	s := &Store{client: client, db: client.Database(dbName)}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Close disconnects from MongoDB.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	indexes := []struct {
		col  string
		keys bson.D
	}{
		{ColAnalyzedTweets, bson.D{{Key: "owner", Value: 1}, {Key: "saved_at", Value: -1}}},
		{ColHashtagTweets, bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	for _, i := range indexes {
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: i.keys}); err != nil {
			return err
		}
	}
	return nil
}

// SaveUserBatch appends a new analyzed-tweet batch document.
func (s *Store) SaveUserBatch(ctx context.Context, batch *models.UserBatch) error {
	_, err := s.col(ColAnalyzedTweets).InsertOne(ctx, batch)
	return err
}

// SaveHashtagBatch appends a new hashtag batch document.
func (s *Store) SaveHashtagBatch(ctx context.Context, batch *models.HashtagBatch) error {
	_, err := s.col(ColHashtagTweets).InsertOne(ctx, batch)
	return err
}

// ListUserBatches returns the batches saved by owner, newest first.
func (s *Store) ListUserBatches(ctx context.Context, owner string) ([]models.UserBatch, error) {
	opts := options.Find().SetSort(bson.D{{Key: "saved_at", Value: -1}})
	return findMany[models.UserBatch](ctx, s.col(ColAnalyzedTweets), bson.D{{Key: "owner", Value: owner}}, opts)
}

// ListHashtagBatches returns the hashtag batches saved by owner, newest
// first.
func (s *Store) ListHashtagBatches(ctx context.Context, owner string) ([]models.HashtagBatch, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[models.HashtagBatch](ctx, s.col(ColHashtagTweets), bson.D{{Key: "owner", Value: owner}}, opts)
}

func findMany[T any](ctx context.Context, col *mongo.Collection, filter bson.D, opts ...options.Lister[options.FindOptions]) ([]T, error) {
	cursor, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []T{}
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, cursor.Err()
}
