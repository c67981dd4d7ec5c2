package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harentsoaR/clinic-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Observer receives the outcome of every collection operation.
type Observer interface {
	ObserveStoreOp(collection, op string, err error, elapsed time.Duration)
}

type Collection[D any] struct {
	coll *mongo.Collection
	obs  Observer
}

var _ store.Collection[struct{}] = (*Collection[struct{}])(nil)

func NewCollection[D any](db *mongo.Database, name string, obs Observer) *Collection[D] {
	return &Collection[D]{coll: db.Collection(name), obs: obs}
}

func (c *Collection[D]) observe(op string, start time.Time, err error) {
	if c.obs != nil {
		c.obs.ObserveStoreOp(c.coll.Name(), op, err, time.Since(start))
	}
}

func (c *Collection[D]) FindMany(ctx context.Context, filter store.Filter) (docs []D, err error) {
	defer func(start time.Time) { c.observe("find", start, err) }(time.Now())

	cursor, err := c.coll.Find(ctx, orEmpty(filter))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	docs = make([]D, 0)
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	return docs, nil
}

func (c *Collection[D]) FindOne(ctx context.Context, filter store.Filter) (doc D, err error) {
	defer func(start time.Time) { c.observe("find_one", start, err) }(time.Now())

	err = c.coll.FindOne(ctx, orEmpty(filter)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, store.ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("find one %s: %w", c.coll.Name(), err)
	}
	return doc, nil
}

func (c *Collection[D]) InsertOne(ctx context.Context, doc D) (res store.InsertResult, err error) {
	defer func(start time.Time) { c.observe("insert", start, err) }(time.Now())

	out, err := c.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return res, fmt.Errorf("insert %s: %w: %v", c.coll.Name(), store.ErrDuplicateKey, err)
	}
	if err != nil {
		return res, fmt.Errorf("insert %s: %w", c.coll.Name(), err)
	}
	return store.InsertResult{Acknowledged: true, InsertedID: out.InsertedID}, nil
}

func (c *Collection[D]) UpdateOne(ctx context.Context, filter store.Filter, patch store.Patch, upsert bool) (res store.UpdateResult, err error) {
	defer func(start time.Time) { c.observe("update", start, err) }(time.Now())

	out, err := c.coll.UpdateOne(ctx, orEmpty(filter), bson.M{"$set": orEmpty(patch)}, options.Update().SetUpsert(upsert))
	if mongo.IsDuplicateKeyError(err) {
		return res, fmt.Errorf("update %s: %w: %v", c.coll.Name(), store.ErrDuplicateKey, err)
	}
	if err != nil {
		return res, fmt.Errorf("update %s: %w", c.coll.Name(), err)
	}
	return store.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  out.MatchedCount,
		ModifiedCount: out.ModifiedCount,
		UpsertedCount: out.UpsertedCount,
		UpsertedID:    out.UpsertedID,
	}, nil
}

func (c *Collection[D]) DeleteOne(ctx context.Context, filter store.Filter) (res store.DeleteResult, err error) {
	defer func(start time.Time) { c.observe("delete", start, err) }(time.Now())

	out, err := c.coll.DeleteOne(ctx, orEmpty(filter))
	if err != nil {
		return res, fmt.Errorf("delete %s: %w", c.coll.Name(), err)
	}
	return store.DeleteResult{Acknowledged: true, DeletedCount: out.DeletedCount}, nil
}

func orEmpty(m bson.M) bson.M {
	if m == nil {
		return bson.M{}
	}
	return m
}
