package service

import (
	"context"
	"devicehub/internal/model"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductService struct {
	Store     ProductStore
	Ownership Ownership
}

func NewProductService(store ProductStore, o Ownership) *ProductService {
	return &ProductService{Store: store, Ownership: o}
}

// Create inserts a product for the caller's company. When a product with the
// same name, specification and company already exists it is returned instead
// and created is false.
func (s *ProductService) Create(
	ctx context.Context, userID string, companyID string, name string, spec model.Specification,
) (p model.Product, created bool, err error) {
	c, err := s.Ownership.Company(ctx, userID, companyID)
	if err != nil {
		return model.Product{}, false, err
	}

	p = model.Product{
		ProductName:   name,
		Specification: spec,
		Company:       c.ID,
	}
	existing, err := s.Store.ProductFindExisting(ctx, p)
	if err == nil {
		return existing, false, nil
	}
	if !isNoDocuments(err) {
		return model.Product{}, false, err
	}

	p, err = s.Store.ProductInsert(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			existing, err = s.Store.ProductFindExisting(ctx, model.Product{
				ProductName:   name,
				Specification: spec,
				Company:       c.ID,
			})
			if err != nil {
				return model.Product{}, false, err
			}
			return existing, false, nil
		}
		return model.Product{}, false, err
	}
	return p, true, nil
}

func (s *ProductService) ListByCompany(ctx context.Context, userID string, companyID string) ([]model.Product, error) {
	c, err := s.Ownership.Company(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	return s.Store.ProductsFindByCompany(ctx, c.ID)
}

func (s *ProductService) Get(ctx context.Context, userID string, companyID string, productID string) (model.Product, error) {
	return s.Ownership.Product(ctx, userID, companyID, productID)
}
