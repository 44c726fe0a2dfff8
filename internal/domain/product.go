package domain

import "time"

// Product is a catalog entry as persisted in the store.
type Product struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"companyId"`
	Name      string    `json:"name"`
	SalePrice float64   `json:"salePrice"`
	CostPrice float64   `json:"costPrice"`
	Stock     float64   `json:"stock"`
	Barcode   string    `json:"barcode,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductCreate carries the fields accepted when creating a product.
// An empty barcode means the service generates an EAN13.
type ProductCreate struct {
	CompanyID int64   `json:"companyId"`
	Name      string  `json:"name" binding:"required"`
	SalePrice float64 `json:"salePrice"`
	CostPrice float64 `json:"costPrice"`
	Stock     float64 `json:"stock"`
	Barcode   string  `json:"barcode"`
}

// ProductUpdate carries the mutable product fields.
type ProductUpdate struct {
	Name      string  `json:"name" binding:"required"`
	SalePrice float64 `json:"salePrice"`
	CostPrice float64 `json:"costPrice"`
	Stock     float64 `json:"stock"`
}
