package server

import (
	"context"
	"devicehub/internal/model"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"time"
)

type Server struct {
	Users         userService
	Companies     companyService
	Products      productService
	Devices       deviceService
	Updates       updateService
	Logger        logger
	AuthSecretKey jwk.Key
	TokenTTL      time.Duration
}

type logger interface {
	Debug(v ...any)
	Info(v ...any)
	Error(v ...any)
	Tracef(format string, v ...any)
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

type userService interface {
	Register(ctx context.Context, companyName string, email string, password string) (model.User, error)
	Authenticate(ctx context.Context, email string, password string) (model.User, error)
	Get(ctx context.Context, userID string) (model.User, error)
}

type companyService interface {
	UpsertForUser(ctx context.Context, userID string, name string) (model.Company, error)
	List(ctx context.Context) ([]model.Company, error)
	GetByUser(ctx context.Context, userID string) (model.Company, error)
	AddAddress(ctx context.Context, userID string, a model.Address) (model.Company, error)
	AddContact(ctx context.Context, userID string, ct model.Contact) (model.Company, error)
}

type productService interface {
	Create(ctx context.Context, userID string, companyID string, name string, spec model.Specification) (model.Product, bool, error)
	ListByCompany(ctx context.Context, userID string, companyID string) ([]model.Product, error)
	Get(ctx context.Context, userID string, companyID string, productID string) (model.Product, error)
}

type deviceService interface {
	Create(ctx context.Context, userID string, companyID string, productID string, owner model.Owner) (model.IoTDevice, error)
	ListByProduct(ctx context.Context, userID string, companyID string, productID string) ([]model.IoTDevice, error)
	Get(ctx context.Context, userID string, companyID string, productID string, deviceID string) (model.IoTDevice, error)
}

type updateService interface {
	Append(
		ctx context.Context, userID string, companyID string, productID string, deviceID string,
		data string, reportedAt *time.Time,
	) (model.IoTDevice, error)
	Recent(
		ctx context.Context, userID string, companyID string, productID string, deviceID string, count int,
	) ([]model.Update, error)
}
