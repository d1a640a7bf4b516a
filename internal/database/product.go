package database

import (
	"context"
	"devicehub/internal/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (db Database) ProductFindExisting(ctx context.Context, p model.Product) (model.Product, error) {
	var existing model.Product
	err := db.Collection(CollectionProducts).FindOne(
		ctx,
		bson.M{
			"ProductName":            p.ProductName,
			"specification.price":    p.Specification.Price,
			"specification.category": p.Specification.Category,
			"specification.weight":   p.Specification.Weight,
			"company":                p.Company,
		},
	).Decode(&existing)
	return existing, errors.Wrapf(err, "error finding existing Product: %+v", p)
}

func (db Database) ProductInsert(ctx context.Context, p model.Product) (model.Product, error) {
	p.ID = primitive.NilObjectID
	r, err := db.Collection(CollectionProducts).InsertOne(ctx, p)
	if err != nil {
		return model.Product{}, errors.Wrapf(err, "error inserting Product: %+v", p)
	}
	p.ID = r.InsertedID.(primitive.ObjectID)
	return p, nil
}

func (db Database) ProductsFindByCompany(ctx context.Context, companyID primitive.ObjectID) ([]model.Product, error) {
	ps := []model.Product{}
	cur, err := db.Collection(CollectionProducts).Find(ctx, bson.M{"company": companyID})
	if err != nil {
		return nil, errors.Wrapf(err, "error getting cursor to find Products for CompanyID: %s", companyID.Hex())
	}
	if err = cur.All(ctx, &ps); err != nil {
		return nil, errors.Wrapf(err, "error getting Products from cursor for CompanyID: %s", companyID.Hex())
	}
	return ps, nil
}

func (db Database) ProductFindByID(ctx context.Context, id primitive.ObjectID) (model.Product, error) {
	var p model.Product
	err := db.Collection(CollectionProducts).FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	return p, errors.Wrapf(err, "error finding Product with ID: %s", id.Hex())
}
