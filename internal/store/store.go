// Package store defines the document-collection contract every handler talks
// to. Implementations live in mongostore (MongoDB) and memstore (in-process).
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

// Filter selects documents by field equality. An empty filter matches all.
type Filter = bson.M

// Patch is a partial document merged with $set semantics.
type Patch = bson.M

var (
	ErrNotFound     = errors.New("document not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

type InsertResult struct {
	Acknowledged bool `json:"acknowledged"`
	InsertedID   any  `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount"`
	UpsertedID    any   `json:"upsertedId"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Collection is a typed view over one collection of documents shaped like D.
type Collection[D any] interface {
	FindMany(ctx context.Context, filter Filter) ([]D, error)
	// FindOne returns ErrNotFound when no document matches.
	FindOne(ctx context.Context, filter Filter) (D, error)
	// InsertOne never checks uniqueness itself; a unique index violation
	// surfaces as ErrDuplicateKey.
	InsertOne(ctx context.Context, doc D) (InsertResult, error)
	UpdateOne(ctx context.Context, filter Filter, patch Patch, upsert bool) (UpdateResult, error)
	DeleteOne(ctx context.Context, filter Filter) (DeleteResult, error)
}
