package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DeviceStateCollection holds one document per stored key.
const DeviceStateCollection = "device_state"

type stateDoc struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoStore persists values in a single collection keyed by _id.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(DeviceStateCollection)}
}

func (s *MongoStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc stateDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc.Value, true, nil
}

func (s *MongoStore) Set(ctx context.Context, key string, value []byte) error {
	update := bson.M{"$set": bson.M{"value": value, "updatedAt": time.Now()}}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	return err
}

func (s *MongoStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": keys}})
	return err
}

// ApplyBatch sends the writes as one ordered bulk write. If it fails part way
// the documents it touched are restored from a snapshot taken beforehand.
func (s *MongoStore) ApplyBatch(ctx context.Context, writes []Write) error {
	if len(writes) == 0 {
		return nil
	}
	keys := make([]string, len(writes))
	for i, w := range writes {
		keys[i] = w.Key
	}
	prev, err := s.snapshot(ctx, keys)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	_, err = s.coll.BulkWrite(ctx, writeModels(writes), options.BulkWrite().SetOrdered(true))
	if err == nil {
		return nil
	}
	undo := make([]Write, len(keys))
	for i, k := range keys {
		v, ok := prev[k]
		undo[i] = Write{Key: k, Value: v, Delete: !ok}
	}
	if _, rerr := s.coll.BulkWrite(ctx, writeModels(undo)); rerr != nil {
		return errors.Join(err, fmt.Errorf("rollback: %w", rerr))
	}
	return err
}

func (s *MongoStore) snapshot(ctx context.Context, keys []string) (map[string][]byte, error) {
	cur, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": keys}})
	if err != nil {
		return nil, err
	}
	var docs []stateDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(docs))
	for _, d := range docs {
		out[d.Key] = d.Value
	}
	return out, nil
}

func writeModels(writes []Write) []mongo.WriteModel {
	now := time.Now()
	out := make([]mongo.WriteModel, 0, len(writes))
	for _, w := range writes {
		filter := bson.M{"_id": w.Key}
		if w.Delete {
			out = append(out, mongo.NewDeleteOneModel().SetFilter(filter))
			continue
		}
		update := bson.M{"$set": bson.M{"value": w.Value, "updatedAt": now}}
		out = append(out, mongo.NewUpdateOneModel().SetFilter(filter).SetUpdate(update).SetUpsert(true))
	}
	return out
}
