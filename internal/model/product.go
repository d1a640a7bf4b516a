package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProductName   string             `bson:"ProductName" json:"ProductName"`
	Specification Specification      `bson:"specification" json:"specification"`
	Company       primitive.ObjectID `bson:"company" json:"company"`
}

// Specification values are kept as strings even when numeric.
type Specification struct {
	Price    string `bson:"price" json:"price"`
	Category string `bson:"category" json:"category"`
	Weight   string `bson:"weight" json:"weight"`
}
