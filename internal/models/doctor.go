package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Doctor struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name" binding:"required"`
	Email     string             `bson:"email" json:"email" binding:"required,email"`
	Specialty string             `bson:"specialty,omitempty" json:"specialty,omitempty"`
	Img       string             `bson:"img,omitempty" json:"img,omitempty"`
}

type Review struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name   string             `bson:"name,omitempty" json:"name,omitempty"`
	Email  string             `bson:"email,omitempty" json:"email,omitempty"`
	Rating float64            `bson:"rating" json:"rating" binding:"min=0,max=5"`
	Review string             `bson:"review,omitempty" json:"review,omitempty"`
	Img    string             `bson:"img,omitempty" json:"img,omitempty"`
}
