package database

import (
	"context"
	"devicehub/internal/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db Database) CompaniesFindAll(ctx context.Context) ([]model.Company, error) {
	cs := []model.Company{}
	cur, err := db.Collection(CollectionCompanies).Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "error getting cursor to find all Companies")
	}
	if err = cur.All(ctx, &cs); err != nil {
		return nil, errors.Wrap(err, "error getting all Companies from cursor")
	}
	return cs, nil
}

func (db Database) CompanyFindByUser(ctx context.Context, userID primitive.ObjectID) (model.Company, error) {
	var c model.Company
	err := db.Collection(CollectionCompanies).FindOne(ctx, bson.M{"user": userID}).Decode(&c)
	return c, errors.Wrapf(err, "error finding Company for UserID: %s", userID.Hex())
}

// CompanyUpsert sets the company name on the user's Company, creating the
// document with empty address and contact lists if it does not exist.
func (db Database) CompanyUpsert(ctx context.Context, userID primitive.ObjectID, name string) (model.Company, error) {
	var c model.Company
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := db.Collection(CollectionCompanies).FindOneAndUpdate(
		ctx,
		bson.M{"user": userID},
		bson.M{
			"$set": bson.M{"company": name},
			"$setOnInsert": bson.M{
				"address":  []model.Address{},
				"contacts": []model.Contact{},
			},
		},
		opts,
	).Decode(&c)
	return c, errors.Wrapf(err, "error upserting Company for UserID: %s, name: %s", userID.Hex(), name)
}

func (db Database) CompanyAddressAdd(ctx context.Context, userID primitive.ObjectID, a model.Address) (model.Company, error) {
	c, err := db.companyPushFront(ctx, userID, "address", a)
	return c, errors.Wrapf(err, "error adding Address to Company for UserID: %s", userID.Hex())
}

func (db Database) CompanyContactAdd(ctx context.Context, userID primitive.ObjectID, ct model.Contact) (model.Company, error) {
	c, err := db.companyPushFront(ctx, userID, "contacts", ct)
	return c, errors.Wrapf(err, "error adding Contact to Company for UserID: %s", userID.Hex())
}

func (db Database) companyPushFront(ctx context.Context, userID primitive.ObjectID, field string, v any) (model.Company, error) {
	var c model.Company
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := db.Collection(CollectionCompanies).FindOneAndUpdate(
		ctx,
		bson.M{"user": userID},
		bson.M{"$push": bson.M{
			field: bson.M{
				"$each":     []any{v},
				"$position": 0,
			},
		}},
		opts,
	).Decode(&c)
	return c, err
}
