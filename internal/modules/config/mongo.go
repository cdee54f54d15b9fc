package config

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type blobDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type mongoBlobStore struct{ coll *mongo.Collection }

// NewMongoBlobStore keeps blobs as documents keyed by _id.
func NewMongoBlobStore(coll *mongo.Collection) BlobStore { return &mongoBlobStore{coll: coll} }

func (m *mongoBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc blobDocument
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc.Value), nil
}

func (m *mongoBlobStore) Put(ctx context.Context, key string, value []byte) error {
	doc := blobDocument{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}

func (m *mongoBlobStore) Delete(ctx context.Context, key string) error {
	_, err := m.coll.DeleteOne(ctx, bson.M{"_id": key})
	return err
}
