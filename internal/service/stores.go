package service

import (
	"context"
	"devicehub/internal/locker"
	"devicehub/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStore interface {
	UserInsert(ctx context.Context, u model.User) (model.User, error)
	UserFindByEmail(ctx context.Context, email string) (model.User, error)
	UserFindByID(ctx context.Context, id primitive.ObjectID) (model.User, error)
}

type CompanyStore interface {
	CompaniesFindAll(ctx context.Context) ([]model.Company, error)
	CompanyFindByUser(ctx context.Context, userID primitive.ObjectID) (model.Company, error)
	CompanyUpsert(ctx context.Context, userID primitive.ObjectID, name string) (model.Company, error)
	CompanyAddressAdd(ctx context.Context, userID primitive.ObjectID, a model.Address) (model.Company, error)
	CompanyContactAdd(ctx context.Context, userID primitive.ObjectID, c model.Contact) (model.Company, error)
}

type ProductStore interface {
	ProductFindExisting(ctx context.Context, p model.Product) (model.Product, error)
	ProductInsert(ctx context.Context, p model.Product) (model.Product, error)
	ProductsFindByCompany(ctx context.Context, companyID primitive.ObjectID) ([]model.Product, error)
	ProductFindByID(ctx context.Context, id primitive.ObjectID) (model.Product, error)
}

type IoTDeviceStore interface {
	IoTDeviceInsert(ctx context.Context, d model.IoTDevice) (model.IoTDevice, error)
	IoTDevicesFindByProduct(ctx context.Context, productID primitive.ObjectID) ([]model.IoTDevice, error)
	IoTDeviceFindByID(ctx context.Context, id primitive.ObjectID) (model.IoTDevice, error)
	IoTDeviceUpdateAdd(ctx context.Context, id primitive.ObjectID, u model.Update) (model.IoTDevice, error)
}

type Locker interface {
	Lock(ctx context.Context, key string) (locker.Unlock, error)
}
