package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Booking is a patient's appointment for one treatment slot on one date.
type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Treatment     string             `bson:"treatment" json:"treatment" binding:"required"`
	Date          string             `bson:"date" json:"date" binding:"required"`
	Slot          string             `bson:"slot" json:"slot"`
	Patient       string             `bson:"patient" json:"patient" binding:"required"`
	PatientName   string             `bson:"patientName,omitempty" json:"patientName,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Price         Price              `bson:"price,omitempty" json:"price,omitempty"`
	Paid          bool               `bson:"paid" json:"paid"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
}

// Payment is the append-only record written when a booking gets paid.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Appointment   string             `bson:"appointment" json:"appointment"`
	TransactionID string             `bson:"transactionId" json:"transactionId" binding:"required"`
	Patient       string             `bson:"patient,omitempty" json:"patient,omitempty"`
	Price         Price              `bson:"price,omitempty" json:"price,omitempty"`
}
