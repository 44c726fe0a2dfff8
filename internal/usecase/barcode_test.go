package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/puntoventa/backend/internal/domain"
)

// stubProductStore implements domain.ProductStore for generator tests; only
// BarcodeExists carries behavior
type stubProductStore struct {
	taken      map[string]bool
	takenFirst int // report the first N probes as taken regardless of code
	probes     int
	err        error
}

func (s *stubProductStore) BarcodeExists(ctx context.Context, companyID int64, barcode string) (bool, error) {
	s.probes++
	if s.err != nil {
		return false, s.err
	}
	if s.probes <= s.takenFirst {
		return true, nil
	}
	return s.taken[barcode], nil
}

func (s *stubProductStore) Create(ctx context.Context, p *domain.ProductCreate) (*domain.Product, error) {
	return nil, errors.New("not implemented")
}

func (s *stubProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return nil, domain.ErrProductNotFound
}

func (s *stubProductStore) List(ctx context.Context, companyID int64) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubProductStore) Update(ctx context.Context, id int64, p *domain.ProductUpdate) (*domain.Product, error) {
	return nil, domain.ErrProductNotFound
}

func (s *stubProductStore) Delete(ctx context.Context, id int64) error {
	return domain.ErrProductNotFound
}

func TestEAN13CheckDigit(t *testing.T) {
	tests := []struct {
		digits   string
		expected int
	}{
		{"400638133393", 1}, // a published GS1 example
		{"779000000000", 3},
		{"000000000000", 0},
	}

	for _, tt := range tests {
		if got := ean13CheckDigit(tt.digits); got != tt.expected {
			t.Errorf("ean13CheckDigit(%q) = %d, want %d", tt.digits, got, tt.expected)
		}
	}
}

func TestValidEAN13(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{"4006381333931", true},
		{"7790000000003", true},
		{"4006381333932", false}, // wrong check digit
		{"400638133393", false},  // too short
		{"40063813339311", false},
		{"400638133393a", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidEAN13(tt.code); got != tt.expected {
			t.Errorf("ValidEAN13(%q) = %v, want %v", tt.code, got, tt.expected)
		}
	}
}

func TestBarcodeGeneratorGenerate(t *testing.T) {
	g := NewBarcodeGenerator(&stubProductStore{})

	code, err := g.Generate(context.Background(), 1)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !ValidEAN13(code) {
		t.Errorf("Generate() = %q, want a valid EAN13", code)
	}
	if !strings.HasPrefix(code, "779") {
		t.Errorf("Generate() = %q, want the 779 country prefix", code)
	}
}

func TestBarcodeGeneratorRetriesCollisions(t *testing.T) {
	store := &stubProductStore{takenFirst: 2}
	g := NewBarcodeGenerator(store)

	code, err := g.Generate(context.Background(), 1)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if code == "" {
		t.Fatal("Generate() returned an empty code")
	}
	if store.probes != 3 {
		t.Errorf("probes = %d, want 3", store.probes)
	}
}

func TestBarcodeGeneratorExhaustion(t *testing.T) {
	store := &stubProductStore{takenFirst: maxBarcodeAttempts}
	g := NewBarcodeGenerator(store)

	_, err := g.Generate(context.Background(), 1)
	if !errors.Is(err, domain.ErrBarcodeExhausted) {
		t.Errorf("Generate() error = %v, want ErrBarcodeExhausted", err)
	}
}

func TestBarcodeGeneratorStoreError(t *testing.T) {
	probeErr := errors.New("connection refused")
	g := NewBarcodeGenerator(&stubProductStore{err: probeErr})

	_, err := g.Generate(context.Background(), 1)
	if !errors.Is(err, probeErr) {
		t.Errorf("Generate() error = %v, want the store error", err)
	}
}
