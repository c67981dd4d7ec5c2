package utils

import (
	"github.com/harentsoaR/clinic-api/internal/exceptions"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseObjectID rejects malformed ids before they reach a store.
func ParseObjectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, exceptions.ErrBadRequest("Invalid id", err)
	}
	return id, nil
}
