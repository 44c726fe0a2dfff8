package usecase

import (
	"context"

	"github.com/puntoventa/backend/internal/domain"
)

// SaleService records and queries sales
type SaleService struct {
	store domain.SaleStore
}

// NewSaleService creates a new sale service
func NewSaleService(store domain.SaleStore) *SaleService {
	return &SaleService{store: store}
}

// Record validates and persists a sale. The store inserts the sale and its
// detail rows and decrements stock in a single transaction; insufficient
// stock on any line rolls the whole sale back.
func (s *SaleService) Record(ctx context.Context, req *domain.SaleCreate) (*domain.Sale, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, domain.ErrInvalidRequest
	}
	for _, item := range req.Items {
		if item.ProductID <= 0 || item.Quantity <= 0 || item.UnitPrice < 0 {
			return nil, domain.ErrInvalidRequest
		}
	}
	return s.store.CreateSale(ctx, req)
}

// Get returns one sale with its detail lines
func (s *SaleService) Get(ctx context.Context, id int64) (*domain.Sale, error) {
	return s.store.GetSale(ctx, id)
}

// List returns recent sales of a company; companyID 0 lists all
func (s *SaleService) List(ctx context.Context, companyID int64) ([]domain.Sale, error) {
	return s.store.ListSales(ctx, companyID)
}
