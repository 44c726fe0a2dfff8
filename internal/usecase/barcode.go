package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/puntoventa/backend/internal/domain"
)

// countryPrefix is the GS1 prefix used for generated codes (Argentina)
const countryPrefix = "779"

// maxBarcodeAttempts bounds the uniqueness retry loop
const maxBarcodeAttempts = 5

// ean13CheckDigit computes the check digit for the first 12 digits of an
// EAN13 code: odd positions weigh 1, even positions weigh 3.
func ean13CheckDigit(digits string) int {
	sum := 0
	for i, r := range digits {
		d := int(r - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10
}

// ValidEAN13 reports whether code is a well-formed EAN13 barcode
func ValidEAN13(code string) bool {
	if len(code) != 13 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return ean13CheckDigit(code[:12]) == int(code[12]-'0')
}

// BarcodeGenerator produces unique EAN13 codes scoped to a company's catalog
type BarcodeGenerator struct {
	store domain.ProductStore
}

// NewBarcodeGenerator creates a new barcode generator
func NewBarcodeGenerator(store domain.ProductStore) *BarcodeGenerator {
	return &BarcodeGenerator{store: store}
}

// Generate returns a fresh EAN13 not yet assigned within the company.
// Collisions are resolved by regenerating; after maxBarcodeAttempts the loop
// gives up with ErrBarcodeExhausted.
func (g *BarcodeGenerator) Generate(ctx context.Context, companyID int64) (string, error) {
	for attempt := 0; attempt < maxBarcodeAttempts; attempt++ {
		body := fmt.Sprintf("%s%09d", countryPrefix, rand.IntN(1_000_000_000))
		code := fmt.Sprintf("%s%d", body, ean13CheckDigit(body))

		exists, err := g.store.BarcodeExists(ctx, companyID, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", domain.ErrBarcodeExhausted
}
