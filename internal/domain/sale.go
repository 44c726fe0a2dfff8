package domain

import "time"

// Sale is a recorded transaction with its detail lines.
type Sale struct {
	ID        int64      `json:"id"`
	Reference string     `json:"reference"`
	CompanyID int64      `json:"companyId"`
	Total     float64    `json:"total"`
	CreatedAt time.Time  `json:"createdAt"`
	Items     []SaleItem `json:"items"`
}

// SaleItem is one detail line of a sale.
type SaleItem struct {
	ID        int64   `json:"id"`
	SaleID    int64   `json:"saleId"`
	ProductID int64   `json:"productId"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// SaleCreate carries the lines of a sale to record. Stock for every product
// is decremented in the same transaction that inserts the rows.
type SaleCreate struct {
	CompanyID int64            `json:"companyId"`
	Items     []SaleItemCreate `json:"items" binding:"required"`
}

// SaleItemCreate is one requested sale line.
type SaleItemCreate struct {
	ProductID int64   `json:"productId" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required"`
	UnitPrice float64 `json:"unitPrice"`
}
