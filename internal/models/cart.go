package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type CartItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	MenuItemID string             `bson:"menuItemId,omitempty" json:"menuItemId,omitempty"`
	Email      string             `bson:"email" json:"email" binding:"required"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	Price      Price              `bson:"price" json:"price"`
	Quantity   int                `bson:"quantity" json:"quantity" binding:"min=0"`
}

type MenuItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name" binding:"required"`
	Recipe   string             `bson:"recipe,omitempty" json:"recipe,omitempty"`
	Image    string             `bson:"image,omitempty" json:"image,omitempty"`
	Category string             `bson:"category,omitempty" json:"category,omitempty"`
	Price    Price              `bson:"price" json:"price"`
}

// MenuItemUpdate carries the fields PUT /menu/:id may change; nil means untouched.
type MenuItemUpdate struct {
	Name     *string `json:"name"`
	Recipe   *string `json:"recipe"`
	Image    *string `json:"image"`
	Category *string `json:"category"`
	Price    *Price  `json:"price"`
}
