package service

import (
	"context"
	"devicehub/internal/model"
	"github.com/pkg/errors"
)

// Ownership walks the chain User -> Company -> Product -> IoTDevice and
// refuses any link that does not belong to the caller. A company is found
// through its owning user id, never through the user's company name.
type Ownership struct {
	Companies CompanyStore
	Products  ProductStore
	Devices   IoTDeviceStore
}

func (o Ownership) CompanyForUser(ctx context.Context, userID string) (model.Company, error) {
	uid, err := parseID("Company", userID)
	if err != nil {
		return model.Company{}, err
	}
	c, err := o.Companies.CompanyFindByUser(ctx, uid)
	if err != nil {
		if isNoDocuments(err) {
			return model.Company{}, notFound("Company", userID)
		}
		return model.Company{}, err
	}
	return c, nil
}

func (o Ownership) AssertOwns(c model.Company, userID string) error {
	if c.User.Hex() != userID {
		return errors.Wrapf(ErrNotOwner, "Company %s belongs to UserID %s, not %s", c.ID.Hex(), c.User.Hex(), userID)
	}
	return nil
}

// Company resolves the caller's company and checks that companyID, as given
// in the request path, names it.
func (o Ownership) Company(ctx context.Context, userID string, companyID string) (model.Company, error) {
	c, err := o.CompanyForUser(ctx, userID)
	if err != nil {
		return model.Company{}, err
	}
	if err = o.AssertOwns(c, userID); err != nil {
		return model.Company{}, err
	}
	if c.ID.Hex() != companyID {
		return model.Company{}, errors.Wrapf(ErrNotOwner, "CompanyID %s is not the Company of UserID %s", companyID, userID)
	}
	return c, nil
}

func (o Ownership) Product(ctx context.Context, userID string, companyID string, productID string) (model.Product, error) {
	c, err := o.Company(ctx, userID, companyID)
	if err != nil {
		return model.Product{}, err
	}
	pid, err := parseID("Product", productID)
	if err != nil {
		return model.Product{}, err
	}
	p, err := o.Products.ProductFindByID(ctx, pid)
	if err != nil {
		if isNoDocuments(err) {
			return model.Product{}, notFound("Product", productID)
		}
		return model.Product{}, err
	}
	if p.Company != c.ID {
		return model.Product{}, errors.Wrapf(ErrNotOwner, "ProductID %s does not belong to CompanyID %s", productID, companyID)
	}
	return p, nil
}

func (o Ownership) Device(
	ctx context.Context, userID string, companyID string, productID string, deviceID string,
) (model.IoTDevice, error) {
	p, err := o.Product(ctx, userID, companyID, productID)
	if err != nil {
		return model.IoTDevice{}, err
	}
	did, err := parseID("IoT device", deviceID)
	if err != nil {
		return model.IoTDevice{}, err
	}
	d, err := o.Devices.IoTDeviceFindByID(ctx, did)
	if err != nil {
		if isNoDocuments(err) {
			return model.IoTDevice{}, notFound("IoT device", deviceID)
		}
		return model.IoTDevice{}, err
	}
	if d.ProductID != p.ID {
		return model.IoTDevice{}, errors.Wrapf(ErrNotOwner, "IoTDeviceID %s does not belong to ProductID %s", deviceID, productID)
	}
	return d, nil
}
