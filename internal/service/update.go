package service

import (
	"context"
	"devicehub/internal/misc"
	"devicehub/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slices"
	"time"
)

type UpdateService struct {
	Store     IoTDeviceStore
	Ownership Ownership
	Now       func() time.Time
}

func NewUpdateService(store IoTDeviceStore, o Ownership) *UpdateService {
	return &UpdateService{Store: store, Ownership: o, Now: time.Now}
}

// Append records data at the front of the device's update history. The
// entry is stamped with the server clock; reportedAt, when the client sent
// one, is kept alongside but never used for ordering.
func (s *UpdateService) Append(
	ctx context.Context, userID string, companyID string, productID string, deviceID string,
	data string, reportedAt *time.Time,
) (model.IoTDevice, error) {
	d, err := s.Ownership.Device(ctx, userID, companyID, productID, deviceID)
	if err != nil {
		return model.IoTDevice{}, err
	}

	u := model.Update{
		ID:        primitive.NewObjectID(),
		Data:      data,
		TimeStamp: primitive.NewDateTimeFromTime(s.Now()),
	}
	if reportedAt != nil {
		r := primitive.NewDateTimeFromTime(*reportedAt)
		u.ReportedAt = &r
	}

	d, err = s.Store.IoTDeviceUpdateAdd(ctx, d.ID, u)
	if err != nil {
		if isNoDocuments(err) {
			return model.IoTDevice{}, notFound("IoT device", deviceID)
		}
		return model.IoTDevice{}, err
	}
	return d, nil
}

// Recent returns at most count updates of the device, newest first.
func (s *UpdateService) Recent(
	ctx context.Context, userID string, companyID string, productID string, deviceID string, count int,
) ([]model.Update, error) {
	d, err := s.Ownership.Device(ctx, userID, companyID, productID, deviceID)
	if err != nil {
		return nil, err
	}
	return LatestUpdates(d.Updates, count), nil
}

// LatestUpdates sorts a copy of us by TimeStamp, newest first, and keeps the
// first n. Entries with equal timestamps keep their stored order.
func LatestUpdates(us []model.Update, n int) []model.Update {
	sorted := make([]model.Update, len(us))
	copy(sorted, us)
	slices.SortStableFunc(sorted, func(a, b model.Update) bool {
		return a.TimeStamp > b.TimeStamp
	})
	return sorted[:misc.Min(misc.Max(n, 0), len(sorted))]
}
