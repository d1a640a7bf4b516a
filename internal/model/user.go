package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CompanyName string             `bson:"companyName" json:"companyName"`
	Email       string             `bson:"email" json:"email"`
	Password    []byte             `bson:"password" json:"-"`
	Avatar      string             `bson:"avatar" json:"avatar"`
	Date        primitive.DateTime `bson:"date" json:"date"`
}
