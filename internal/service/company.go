package service

import (
	"context"
	"devicehub/internal/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

type CompanyService struct {
	Store  CompanyStore
	Locker Locker
}

func NewCompanyService(store CompanyStore, l Locker) *CompanyService {
	return &CompanyService{Store: store, Locker: l}
}

// UpsertForUser renames the user's company, creating it if needed. Calls for
// the same user are serialized by the Locker; a duplicate key from a racing
// insert on another instance is retried once, which then takes the update
// path.
func (s *CompanyService) UpsertForUser(ctx context.Context, userID string, name string) (model.Company, error) {
	uid, err := parseID("User", userID)
	if err != nil {
		return model.Company{}, err
	}

	unlock, err := s.Locker.Lock(ctx, "company:"+userID)
	if err != nil {
		return model.Company{}, errors.Wrapf(err, "error locking Company for UserID: %s", userID)
	}
	defer unlock()

	c, err := s.Store.CompanyUpsert(ctx, uid, name)
	if mongo.IsDuplicateKeyError(err) {
		c, err = s.Store.CompanyUpsert(ctx, uid, name)
	}
	return c, err
}

func (s *CompanyService) List(ctx context.Context) ([]model.Company, error) {
	return s.Store.CompaniesFindAll(ctx)
}

func (s *CompanyService) GetByUser(ctx context.Context, userID string) (model.Company, error) {
	uid, err := parseID("Company", userID)
	if err != nil {
		return model.Company{}, err
	}
	c, err := s.Store.CompanyFindByUser(ctx, uid)
	if err != nil {
		if isNoDocuments(err) {
			return model.Company{}, notFound("Company", userID)
		}
		return model.Company{}, err
	}
	return c, nil
}

// AddAddress puts a at the front of the company's address list.
func (s *CompanyService) AddAddress(ctx context.Context, userID string, a model.Address) (model.Company, error) {
	uid, err := parseID("Company", userID)
	if err != nil {
		return model.Company{}, err
	}
	c, err := s.Store.CompanyAddressAdd(ctx, uid, a)
	if err != nil {
		if isNoDocuments(err) {
			return model.Company{}, notFound("Company", userID)
		}
		return model.Company{}, err
	}
	return c, nil
}

// AddContact puts ct at the front of the company's contact list.
func (s *CompanyService) AddContact(ctx context.Context, userID string, ct model.Contact) (model.Company, error) {
	uid, err := parseID("Company", userID)
	if err != nil {
		return model.Company{}, err
	}
	c, err := s.Store.CompanyContactAdd(ctx, uid, ct)
	if err != nil {
		if isNoDocuments(err) {
			return model.Company{}, notFound("Company", userID)
		}
		return model.Company{}, err
	}
	return c, nil
}
