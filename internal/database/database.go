package database

import (
	"context"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	CollectionUsers      = "users"
	CollectionCompanies  = "companies"
	CollectionProducts   = "products"
	CollectionIoTDevices = "iotDevices"
)

type Database struct {
	*mongo.Database
}

func ConnectDB(ctx context.Context, dbURI string, dbName string) (*mongo.Client, error) {
	c, err := mongo.Connect(ctx, options.Client().ApplyURI(dbURI))
	if err != nil {
		return nil, errors.Wrapf(err, "error connecting to: %s", dbURI)
	}

	if err = c.Ping(ctx, readpref.Primary()); err != nil {
		return nil, errors.Wrapf(err, "error pinging: %s", dbURI)
	}

	if err = EnsureIndexes(ctx, c.Database(dbName)); err != nil {
		_ = c.Disconnect(ctx)
		return nil, err
	}

	return c, nil
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CollectionUsers).Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		},
	)
	if err != nil {
		return errors.Wrap(err, "error creating users indexes")
	}

	_, err = db.Collection(CollectionCompanies).Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetName("user_unique").SetUnique(true),
		},
	)
	if err != nil {
		return errors.Wrap(err, "error creating companies indexes")
	}

	_, err = db.Collection(CollectionProducts).Indexes().CreateMany(
		ctx,
		[]mongo.IndexModel{
			{
				Keys: bson.D{
					{Key: "company", Value: 1},
					{Key: "ProductName", Value: 1},
					{Key: "specification.price", Value: 1},
					{Key: "specification.category", Value: 1},
					{Key: "specification.weight", Value: 1},
				},
				Options: options.Index().SetName("product_unique").SetUnique(true),
			},
		},
	)
	if err != nil {
		return errors.Wrap(err, "error creating products indexes")
	}

	_, err = db.Collection(CollectionIoTDevices).Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "productId", Value: 1}},
			Options: options.Index().SetName("productId_index"),
		},
	)
	if err != nil {
		return errors.Wrap(err, "error creating iotDevices indexes")
	}

	return nil
}
