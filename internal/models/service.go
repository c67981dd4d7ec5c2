package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Service is a bookable treatment. Slots lists every time value that can be
// booked for it on any given day.
type Service struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Price Price              `bson:"price,omitempty" json:"price,omitempty"`
	Slots []string           `bson:"slots" json:"slots"`
}

type ServiceSummary struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name"`
}
