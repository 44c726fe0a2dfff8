package domain

import "context"

// ProductStore defines the interface for product persistence
type ProductStore interface {
	Create(ctx context.Context, p *ProductCreate) (*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, companyID int64) ([]Product, error)
	Update(ctx context.Context, id int64, p *ProductUpdate) (*Product, error)
	Delete(ctx context.Context, id int64) error
	BarcodeExists(ctx context.Context, companyID int64, barcode string) (bool, error)
}

// SaleStore defines the interface for sale persistence. CreateSale inserts
// the sale and its detail rows and decrements stock in one transaction.
type SaleStore interface {
	CreateSale(ctx context.Context, s *SaleCreate) (*Sale, error)
	GetSale(ctx context.Context, id int64) (*Sale, error)
	ListSales(ctx context.Context, companyID int64) ([]Sale, error)
}

// ModelClient defines the interface for the text-generation backend
type ModelClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// TextExtractor defines the interface for pulling plain text out of an
// uploaded document
type TextExtractor interface {
	ExtractText(data []byte, mediaType string) (string, error)
}
