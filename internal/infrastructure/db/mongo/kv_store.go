package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hp-grievance/portal/internal/core/ports"
)

const collectionKV = "kv"

type kvDocument struct {
	Key       string     `bson:"_id"`
	Value     []byte     `bson:"value"`
	UpdatedAt time.Time  `bson:"updated_at"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// KVStore implements ports.KeyValueStore as one document per key. Documents
// with expires_at are reaped by a TTL index; reads filter on it as well
// because the reaper runs only once a minute.
type KVStore struct {
	col *mongo.Collection
}

func NewKVStore(db *mongo.Database) *KVStore {
	return &KVStore{col: db.Collection(collectionKV)}
}

// Get retrieves the value stored under key.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc kvDocument
	err := s.col.FindOne(ctx, liveFilter(key, time.Now().UTC())).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrKeyNotFound
		}
		return nil, fmt.Errorf("mongo get %s: %w", key, err)
	}
	return doc.Value, nil
}

// Set upserts the value for key.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	return s.SetWithTTL(ctx, key, value, 0)
}

// SetWithTTL upserts the value for key and sets or clears its expiry.
func (s *KVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	update := bson.M{
		"$set":   bson.M{"value": value, "updated_at": now},
		"$unset": bson.M{"expires_at": ""},
	}
	if ttl > 0 {
		update = bson.M{"$set": bson.M{"value": value, "updated_at": now, "expires_at": now.Add(ttl)}}
	}
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo set %s: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting a missing key is not an error.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete %s: %w", key, err)
	}
	return nil
}

// CompareAndSwap filters the update on the previous value, so a concurrent
// writer makes it match nothing. A nil prev inserts and relies on the _id
// uniqueness, after clearing an expired document the reaper has not removed.
func (s *KVStore) CompareAndSwap(ctx context.Context, key string, prev, next []byte) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	if prev == nil {
		if _, err := s.col.DeleteOne(ctx, bson.M{"_id": key, "expires_at": bson.M{"$lte": now}}); err != nil {
			return fmt.Errorf("mongo cas %s: %w", key, err)
		}
		_, err := s.col.InsertOne(ctx, kvDocument{Key: key, Value: next, UpdatedAt: now})
		if mongo.IsDuplicateKeyError(err) {
			return ports.ErrConflict
		}
		if err != nil {
			return fmt.Errorf("mongo cas %s: %w", key, err)
		}
		return nil
	}

	filter := liveFilter(key, now)
	filter["value"] = prev
	res, err := s.col.UpdateOne(ctx, filter, bson.M{
		"$set":   bson.M{"value": next, "updated_at": now},
		"$unset": bson.M{"expires_at": ""},
	})
	if err != nil {
		return fmt.Errorf("mongo cas %s: %w", key, err)
	}
	if res.MatchedCount == 0 {
		return ports.ErrConflict
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the kv collection.
func (s *KVStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	_, err := s.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// liveFilter matches key unless its document has expired.
func liveFilter(key string, now time.Time) bson.M {
	return bson.M{
		"_id": key,
		"$or": bson.A{
			bson.M{"expires_at": bson.M{"$exists": false}},
			bson.M{"expires_at": bson.M{"$gt": now}},
		},
	}
}

// Ping checks the server backing the collection.
func (s *KVStore) Ping(ctx context.Context) error {
	return s.col.Database().Client().Ping(ctx, nil)
}
