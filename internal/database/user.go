package database

import (
	"context"
	"devicehub/internal/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

func (db Database) UserInsert(ctx context.Context, u model.User) (model.User, error) {
	u.ID = primitive.NilObjectID
	u.Date = primitive.NewDateTimeFromTime(time.Now())

	r, err := db.Collection(CollectionUsers).InsertOne(ctx, u)
	if err != nil {
		return model.User{}, errors.Wrapf(err, "error inserting User with email: %s", u.Email)
	}
	u.ID = r.InsertedID.(primitive.ObjectID)
	return u, nil
}

func (db Database) UserFindByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := db.Collection(CollectionUsers).FindOne(ctx, bson.M{"email": email}).Decode(&u)
	return u, errors.Wrapf(err, "error finding User with email: %s", email)
}

func (db Database) UserFindByID(ctx context.Context, id primitive.ObjectID) (model.User, error) {
	var u model.User
	err := db.Collection(CollectionUsers).FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	return u, errors.Wrapf(err, "error finding User with ID: %s", id.Hex())
}
