// Package memstore keeps documents in process memory. It backs local runs
// with STORE_DRIVER=memory and the handler tests.
package memstore

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/harentsoaR/clinic-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection stores documents as BSON maps so filters and patches see the
// same field names and value types MongoDB would.
type Collection[D any] struct {
	mu   sync.RWMutex
	docs []bson.M
}

var _ store.Collection[struct{}] = (*Collection[struct{}])(nil)

func NewCollection[D any]() *Collection[D] {
	return &Collection[D]{}
}

func (c *Collection[D]) FindMany(ctx context.Context, filter store.Filter) ([]D, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	want, err := toDocument(filter)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]D, 0)
	for _, doc := range c.docs {
		if !matches(doc, want) {
			continue
		}
		d, err := fromDocument[D](doc)
		if err != nil {
			return nil, fmt.Errorf("find: %w", err)
		}
		out = append(out, d)
	}
	return out, nil
}

func (c *Collection[D]) FindOne(ctx context.Context, filter store.Filter) (D, error) {
	var zero D
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	want, err := toDocument(filter)
	if err != nil {
		return zero, fmt.Errorf("find one: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(want); i >= 0 {
		return fromDocument[D](c.docs[i])
	}
	return zero, store.ErrNotFound
}

func (c *Collection[D]) InsertOne(ctx context.Context, doc D) (store.InsertResult, error) {
	if err := ctx.Err(); err != nil {
		return store.InsertResult{}, err
	}
	m, err := toDocument(doc)
	if err != nil {
		return store.InsertResult{}, fmt.Errorf("insert: %w", err)
	}
	id := ensureID(m)

	c.mu.Lock()
	c.docs = append(c.docs, m)
	c.mu.Unlock()

	return store.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (c *Collection[D]) UpdateOne(ctx context.Context, filter store.Filter, patch store.Patch, upsert bool) (store.UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return store.UpdateResult{}, err
	}
	want, err := toDocument(filter)
	if err != nil {
		return store.UpdateResult{}, fmt.Errorf("update: %w", err)
	}
	set, err := toDocument(patch)
	if err != nil {
		return store.UpdateResult{}, fmt.Errorf("update: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(want)
	if i < 0 {
		if !upsert {
			return store.UpdateResult{Acknowledged: true}, nil
		}
		doc := bson.M{}
		for k, v := range want {
			if !strings.HasPrefix(k, "$") {
				doc[k] = v
			}
		}
		for k, v := range set {
			doc[k] = v
		}
		id := ensureID(doc)
		c.docs = append(c.docs, doc)
		return store.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: id}, nil
	}

	doc := c.docs[i]
	modified := false
	for k, v := range set {
		if old, ok := doc[k]; ok && valueEqual(old, v) {
			continue
		}
		doc[k] = v
		modified = true
	}

	res := store.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if modified {
		res.ModifiedCount = 1
	}
	return res, nil
}

func (c *Collection[D]) DeleteOne(ctx context.Context, filter store.Filter) (store.DeleteResult, error) {
	if err := ctx.Err(); err != nil {
		return store.DeleteResult{}, err
	}
	want, err := toDocument(filter)
	if err != nil {
		return store.DeleteResult{}, fmt.Errorf("delete: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(want)
	if i < 0 {
		return store.DeleteResult{Acknowledged: true}, nil
	}
	c.docs = append(c.docs[:i], c.docs[i+1:]...)
	return store.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

// indexOf must be called with c.mu held.
func (c *Collection[D]) indexOf(want bson.M) int {
	for i, doc := range c.docs {
		if matches(doc, want) {
			return i
		}
	}
	return -1
}

func ensureID(doc bson.M) any {
	if id, ok := doc["_id"]; ok && id != primitive.NilObjectID && id != nil {
		return id
	}
	id := primitive.NewObjectID()
	doc["_id"] = id
	return id
}

func toDocument(v any) (bson.M, error) {
	if v == nil {
		return bson.M{}, nil
	}
	if m, ok := v.(bson.M); ok && m == nil {
		return bson.M{}, nil
	}
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = bson.M{}
	}
	return m, nil
}

func fromDocument[D any](doc bson.M) (D, error) {
	var d D
	raw, err := bson.Marshal(doc)
	if err != nil {
		return d, err
	}
	err = bson.Unmarshal(raw, &d)
	return d, err
}

func matches(doc, want bson.M) bool {
	for k, v := range want {
		got, ok := doc[k]
		if !ok {
			if v == nil {
				continue
			}
			return false
		}
		if !valueEqual(got, v) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	if fa, ok := number(a); ok {
		if fb, ok := number(b); ok {
			return fa == fb
		}
	}
	return reflect.DeepEqual(a, b)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
