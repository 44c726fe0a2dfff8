package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/puntoventa/backend/internal/domain"
)

// Store persists products and sales in MySQL
type Store struct {
	db *sql.DB
}

// NewStore creates a new store over an open connection pool
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create inserts a product, retrying transient MySQL failures
func (s *Store) Create(ctx context.Context, p *domain.ProductCreate) (*domain.Product, error) {
	var id int64
	var err error

	for attempt := 1; attempt <= 3; attempt++ {
		var result sql.Result
		result, err = s.db.ExecContext(ctx,
			`INSERT INTO products (company_id, name, sale_price, cost_price, stock, barcode)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			p.CompanyID, p.Name, p.SalePrice, p.CostPrice, p.Stock, p.Barcode)
		if err == nil {
			id, err = result.LastInsertId()
			if err == nil {
				break
			}
		}

		if isDuplicateKey(err) {
			return nil, domain.ErrDuplicateBarcode
		}
		if !isTransientError(err) {
			return nil, err
		}

		log.Printf("[STORE] create product attempt %d failed: %v", attempt, err)
		time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
	}
	if err != nil {
		return nil, fmt.Errorf("create product after retries: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID returns one product
func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p := &domain.Product{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, company_id, name, sale_price, cost_price, stock, barcode, created_at, updated_at
		 FROM products WHERE id = ?`, id).
		Scan(&p.ID, &p.CompanyID, &p.Name, &p.SalePrice, &p.CostPrice, &p.Stock, &p.Barcode, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns the products of a company, all companies when companyID is 0
func (s *Store) List(ctx context.Context, companyID int64) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, company_id, name, sale_price, cost_price, stock, barcode, created_at, updated_at
		 FROM products
		 WHERE (? = 0 OR company_id = ?)
		 ORDER BY id ASC
		 LIMIT 200`, companyID, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.SalePrice, &p.CostPrice, &p.Stock, &p.Barcode, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Update modifies a product's mutable fields
func (s *Store) Update(ctx context.Context, id int64, p *domain.ProductUpdate) (*domain.Product, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE products SET name = ?, sale_price = ?, cost_price = ?, stock = ? WHERE id = ?`,
		p.Name, p.SalePrice, p.CostPrice, p.Stock, id)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete removes a product
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// BarcodeExists reports whether a barcode is already assigned within a company
func (s *Store) BarcodeExists(ctx context.Context, companyID int64, barcode string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE company_id = ? AND barcode = ?)`,
		companyID, barcode).Scan(&exists)
	return exists, err
}

// CreateSale inserts the sale and its detail rows and decrements stock inside
// one transaction. A line that would drive stock negative rolls everything
// back with ErrInsufficientStock.
func (s *Store) CreateSale(ctx context.Context, sale *domain.SaleCreate) (*domain.Sale, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	total := 0.0
	for _, item := range sale.Items {
		total += item.Quantity * item.UnitPrice
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO sales (reference, company_id, total) VALUES (?, ?, ?)`,
		uuid.NewString(), sale.CompanyID, total)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	saleID, err := result.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, item := range sale.Items {
		// The stock guard doubles as the existence check
		res, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?`,
			item.Quantity, item.ProductID, item.Quantity)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if affected == 0 {
			tx.Rollback()
			var exists bool
			if err := s.db.QueryRowContext(ctx,
				`SELECT EXISTS(SELECT 1 FROM products WHERE id = ?)`, item.ProductID).Scan(&exists); err != nil {
				return nil, err
			}
			if !exists {
				return nil, domain.ErrProductNotFound
			}
			return nil, domain.ErrInsufficientStock
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sale_items (sale_id, product_id, quantity, unit_price) VALUES (?, ?, ?, ?)`,
			saleID, item.ProductID, item.Quantity, item.UnitPrice); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetSale(ctx, saleID)
}

// GetSale returns one sale with its detail lines
func (s *Store) GetSale(ctx context.Context, id int64) (*domain.Sale, error) {
	sale := &domain.Sale{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, reference, company_id, total, created_at FROM sales WHERE id = ?`, id).
		Scan(&sale.ID, &sale.Reference, &sale.CompanyID, &sale.Total, &sale.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSaleNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := s.saleItems(ctx, id)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

// ListSales returns recent sales with their detail lines, newest first
func (s *Store) ListSales(ctx context.Context, companyID int64) ([]domain.Sale, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, reference, company_id, total, created_at
		 FROM sales
		 WHERE (? = 0 OR company_id = ?)
		 ORDER BY id DESC
		 LIMIT 50`, companyID, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		var sale domain.Sale
		if err := rows.Scan(&sale.ID, &sale.Reference, &sale.CompanyID, &sale.Total, &sale.CreatedAt); err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sales {
		items, err := s.saleItems(ctx, sales[i].ID)
		if err != nil {
			return nil, err
		}
		sales[i].Items = items
	}
	return sales, nil
}

// saleItems returns the detail lines of one sale
func (s *Store) saleItems(ctx context.Context, saleID int64) ([]domain.SaleItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, sale_id, product_id, quantity, unit_price FROM sale_items WHERE sale_id = ? ORDER BY id ASC`,
		saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.SaleItem{}
	for rows.Next() {
		var item domain.SaleItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// isDuplicateKey checks for the MySQL duplicate-entry error
func isDuplicateKey(err error) bool {
	var driverErr *mysql.MySQLError
	return errors.As(err, &driverErr) && driverErr.Number == 1062
}

// isTransientError checks if the error is a transient MySQL error worth
// retrying
func isTransientError(err error) bool {
	var driverErr *mysql.MySQLError
	if !errors.As(err, &driverErr) {
		return false
	}
	switch driverErr.Number {
	case 1040, // ER_CON_COUNT_ERROR: too many connections
		1205, // ER_LOCK_WAIT_TIMEOUT
		1213, // ER_LOCK_DEADLOCK
		2003, // CR_CONN_HOST_ERROR
		2006, // CR_SERVER_GONE_ERROR
		2013: // CR_SERVER_LOST
		return true
	}
	return false
}
