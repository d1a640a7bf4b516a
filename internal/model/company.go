package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Company is administered by exactly one User, referenced by User.
// Address and Contacts are kept newest-first.
type Company struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User     primitive.ObjectID `bson:"user" json:"user"`
	Company  string             `bson:"company" json:"company"`
	Address  []Address          `bson:"address" json:"address"`
	Contacts []Contact          `bson:"contacts" json:"contacts"`
}

type Address struct {
	Country    string `bson:"country" json:"country"`
	City       string `bson:"city" json:"city"`
	Street     string `bson:"street" json:"street"`
	PostalCode string `bson:"postal_code" json:"postal_code"`
}

type Contact struct {
	Name  string `bson:"contact_name" json:"contact_name"`
	Email string `bson:"contact_email" json:"contact_email"`
	Phone string `bson:"contact_phone" json:"contact_phone"`
}
