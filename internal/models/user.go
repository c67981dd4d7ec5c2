package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Role string

const (
	RoleNone   Role = ""
	RoleAdmin  Role = "admin"
	RoleDoctor Role = "doctor"
)

// Account is a document of the users collection, keyed by email.
type Account struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email    string             `bson:"email" json:"email"`
	Name     string             `bson:"name,omitempty" json:"name,omitempty"`
	Phone    string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role     Role               `bson:"role,omitempty" json:"role,omitempty"`
	Password string             `bson:"password,omitempty" json:"-"` // bcrypt hash, never serialized
}

// AccountUpsert is the body accepted by PUT /user/:email. Role is not part of
// it: roles only change through the admin grant routes.
type AccountUpsert struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"omitempty,min=8,max=72"`
}
