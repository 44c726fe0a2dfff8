package usecase

import (
	"log"
	"math"
	"strings"

	"github.com/puntoventa/backend/internal/domain"
)

// RecordValidator is the final integrity gate between raw model records and
// caller-visible results. Missing and null fields are defaulted; records with
// wrongly-typed required fields are dropped, never surfaced as errors, since
// the input is untrusted model output and partial success beats total
// rejection.
type RecordValidator struct {
	enableDebugLogging bool
}

// NewRecordValidator creates a new record validator
func NewRecordValidator(enableDebugLogging bool) *RecordValidator {
	return &RecordValidator{enableDebugLogging: enableDebugLogging}
}

// Validate produces a CandidateProduct from one raw record. The second return
// value reports acceptance: the record must carry a non-blank name and finite
// numeric prices/stock. A present null is treated like an absent field and
// defaulted.
func (v *RecordValidator) Validate(rec domain.RawRecord) (domain.CandidateProduct, bool) {
	name, ok := stringField(rec, "nombre", "name")
	if !ok {
		return v.reject(rec, "name is not a string")
	}
	if strings.TrimSpace(name) == "" {
		return v.reject(rec, "name is empty")
	}

	salePrice, ok := numberField(rec, "precioVenta", "salePrice")
	if !ok {
		return v.reject(rec, "sale price is not a finite number")
	}
	costPrice, ok := numberField(rec, "precioCosto", "costPrice")
	if !ok {
		return v.reject(rec, "cost price is not a finite number")
	}
	stock, ok := numberField(rec, "stock")
	if !ok {
		return v.reject(rec, "stock is not a finite number")
	}

	// Barcode is optional free text; a wrongly-typed value degrades to ""
	barcode, ok := stringField(rec, "codigoBarras", "barcode")
	if !ok {
		barcode = ""
	}

	return domain.CandidateProduct{
		Name:      name,
		SalePrice: salePrice,
		CostPrice: costPrice,
		Stock:     stock,
		Barcode:   barcode,
	}, true
}

// ValidateVoiceItem cross-references one raw record against the catalog
// supplied in the prompt. A candidate lacking a recognizable catalog id is
// dropped rather than defaulted: inventing a nonexistent product is a
// correctness violation, unlike a missing price which is safely defaultable.
// Name and prices are taken from the catalog entry, not the model's echo.
func (v *RecordValidator) ValidateVoiceItem(rec domain.RawRecord, catalog map[int64]domain.CatalogEntry) (domain.MatchedItem, bool) {
	raw, present := rec["id"]
	if !present || raw == nil {
		v.logRejection(rec, "missing catalog id")
		return domain.MatchedItem{}, false
	}
	id, isNum := raw.(float64)
	if !isNum || math.IsNaN(id) || math.IsInf(id, 0) || id != math.Trunc(id) {
		v.logRejection(rec, "catalog id is not an integer")
		return domain.MatchedItem{}, false
	}

	entry, found := catalog[int64(id)]
	if !found {
		v.logRejection(rec, "catalog id not in catalog")
		return domain.MatchedItem{}, false
	}

	quantity, ok := numberField(rec, "cantidad", "quantity")
	if !ok {
		v.logRejection(rec, "quantity is not a finite number")
		return domain.MatchedItem{}, false
	}
	if quantity <= 0 {
		// An order line without a usable quantity means one unit
		quantity = 1
	}

	return domain.MatchedItem{
		ProductID: entry.ID,
		Name:      entry.Name,
		Quantity:  quantity,
		SalePrice: entry.SalePrice,
		CostPrice: entry.CostPrice,
	}, true
}

func (v *RecordValidator) reject(rec domain.RawRecord, reason string) (domain.CandidateProduct, bool) {
	v.logRejection(rec, reason)
	return domain.CandidateProduct{}, false
}

func (v *RecordValidator) logRejection(rec domain.RawRecord, reason string) {
	if v.enableDebugLogging {
		log.Printf("[VALIDATE] record rejected (%s): %v", reason, rec)
	}
}

// stringField returns the value of the first key present in the record.
// Absent or null values default to "". The second return value is false only
// when a present value has a non-string type.
func stringField(rec domain.RawRecord, keys ...string) (string, bool) {
	for _, key := range keys {
		value, present := rec[key]
		if !present || value == nil {
			continue
		}
		s, isString := value.(string)
		if !isString {
			return "", false
		}
		return s, true
	}
	return "", true
}

// numberField returns the value of the first key present in the record.
// Absent or null values default to 0. The second return value is false when a
// present value has a non-numeric type or is not finite.
func numberField(rec domain.RawRecord, keys ...string) (float64, bool) {
	for _, key := range keys {
		value, present := rec[key]
		if !present || value == nil {
			continue
		}
		n, isNumber := value.(float64)
		if !isNumber || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	}
	return 0, true
}
