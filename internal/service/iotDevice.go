package service

import (
	"context"
	"devicehub/internal/model"
)

type DeviceService struct {
	Store     IoTDeviceStore
	Ownership Ownership
}

func NewDeviceService(store IoTDeviceStore, o Ownership) *DeviceService {
	return &DeviceService{Store: store, Ownership: o}
}

// Create registers a device under one of the caller's products. Owner and
// payment details are stored as given; see model.Payment.
func (s *DeviceService) Create(
	ctx context.Context, userID string, companyID string, productID string, owner model.Owner,
) (model.IoTDevice, error) {
	p, err := s.Ownership.Product(ctx, userID, companyID, productID)
	if err != nil {
		return model.IoTDevice{}, err
	}
	return s.Store.IoTDeviceInsert(ctx, model.IoTDevice{
		ProductID: p.ID,
		Owner:     owner,
		Updates:   []model.Update{},
	})
}

func (s *DeviceService) ListByProduct(
	ctx context.Context, userID string, companyID string, productID string,
) ([]model.IoTDevice, error) {
	p, err := s.Ownership.Product(ctx, userID, companyID, productID)
	if err != nil {
		return nil, err
	}
	return s.Store.IoTDevicesFindByProduct(ctx, p.ID)
}

func (s *DeviceService) Get(
	ctx context.Context, userID string, companyID string, productID string, deviceID string,
) (model.IoTDevice, error) {
	return s.Ownership.Device(ctx, userID, companyID, productID, deviceID)
}
