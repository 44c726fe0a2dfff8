package usecase

import (
	"context"
	"strings"

	"github.com/puntoventa/backend/internal/domain"
)

// ProductService handles catalog operations over the product store
type ProductService struct {
	store    domain.ProductStore
	barcodes *BarcodeGenerator
}

// NewProductService creates a new product service with dependencies
func NewProductService(store domain.ProductStore) *ProductService {
	return &ProductService{
		store:    store,
		barcodes: NewBarcodeGenerator(store),
	}
}

// Create stores a new product. When no barcode is supplied a unique EAN13 is
// generated; a supplied barcode is kept verbatim (suppliers print non-EAN
// codes) but must be free within the company.
func (s *ProductService) Create(ctx context.Context, req *domain.ProductCreate) (*domain.Product, error) {
	if req == nil || strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidRequest
	}
	if req.SalePrice < 0 || req.CostPrice < 0 || req.Stock < 0 {
		return nil, domain.ErrInvalidRequest
	}

	if req.Barcode == "" {
		code, err := s.barcodes.Generate(ctx, req.CompanyID)
		if err != nil {
			return nil, err
		}
		req.Barcode = code
	} else {
		exists, err := s.store.BarcodeExists(ctx, req.CompanyID, req.Barcode)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateBarcode
		}
	}

	return s.store.Create(ctx, req)
}

// Get returns one product by id
func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.store.GetByID(ctx, id)
}

// List returns the products of a company; companyID 0 lists all
func (s *ProductService) List(ctx context.Context, companyID int64) ([]domain.Product, error) {
	return s.store.List(ctx, companyID)
}

// Update modifies a product's mutable fields
func (s *ProductService) Update(ctx context.Context, id int64, req *domain.ProductUpdate) (*domain.Product, error) {
	if req == nil || strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidRequest
	}
	if req.SalePrice < 0 || req.CostPrice < 0 || req.Stock < 0 {
		return nil, domain.ErrInvalidRequest
	}
	return s.store.Update(ctx, id, req)
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}
