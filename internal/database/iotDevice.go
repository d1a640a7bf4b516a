package database

import (
	"context"
	"devicehub/internal/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db Database) IoTDeviceInsert(ctx context.Context, d model.IoTDevice) (model.IoTDevice, error) {
	d.ID = primitive.NilObjectID
	if d.Updates == nil {
		d.Updates = []model.Update{}
	}
	r, err := db.Collection(CollectionIoTDevices).InsertOne(ctx, d)
	if err != nil {
		return model.IoTDevice{}, errors.Wrapf(err, "error inserting IoTDevice for ProductID: %s", d.ProductID.Hex())
	}
	d.ID = r.InsertedID.(primitive.ObjectID)
	return d, nil
}

func (db Database) IoTDevicesFindByProduct(ctx context.Context, productID primitive.ObjectID) ([]model.IoTDevice, error) {
	ds := []model.IoTDevice{}
	cur, err := db.Collection(CollectionIoTDevices).Find(ctx, bson.M{"productId": productID})
	if err != nil {
		return nil, errors.Wrapf(err, "error getting cursor to find IoTDevices for ProductID: %s", productID.Hex())
	}
	if err = cur.All(ctx, &ds); err != nil {
		return nil, errors.Wrapf(err, "error getting IoTDevices from cursor for ProductID: %s", productID.Hex())
	}
	return ds, nil
}

func (db Database) IoTDeviceFindByID(ctx context.Context, id primitive.ObjectID) (model.IoTDevice, error) {
	var d model.IoTDevice
	err := db.Collection(CollectionIoTDevices).FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	return d, errors.Wrapf(err, "error finding IoTDevice with ID: %s", id.Hex())
}

// IoTDeviceUpdateAdd prepends u to the device's updates in a single $push,
// so concurrent appends never overwrite each other.
func (db Database) IoTDeviceUpdateAdd(ctx context.Context, id primitive.ObjectID, u model.Update) (model.IoTDevice, error) {
	var d model.IoTDevice
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := db.Collection(CollectionIoTDevices).FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{
			"updates": bson.M{
				"$each":     []model.Update{u},
				"$position": 0,
			},
		}},
		opts,
	).Decode(&d)
	return d, errors.Wrapf(err, "error adding Update to IoTDevice with ID: %s", id.Hex())
}
