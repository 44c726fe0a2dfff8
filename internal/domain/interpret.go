package domain

// CandidateProduct is a provisional product entry produced by the
// interpretation pipeline. It is never persisted directly; the caller decides
// whether to store it via the product-creation path.
type CandidateProduct struct {
	Name      string  `json:"name"`
	SalePrice float64 `json:"salePrice"`
	CostPrice float64 `json:"costPrice"`
	Stock     float64 `json:"stock"`
	Barcode   string  `json:"barcode"`
}

// CatalogEntry is a caller-supplied existing product used to constrain
// voice-order interpretation to real inventory. The json tags follow the
// wire schema the model is instructed to echo back.
type CatalogEntry struct {
	ID        int64   `json:"id"`
	Name      string  `json:"nombre"`
	SalePrice float64 `json:"precioVenta"`
	CostPrice float64 `json:"precioCosto"`
}

// MatchedItem is one recognized line of a spoken order, cross-referenced
// against the catalog.
type MatchedItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	SalePrice float64 `json:"salePrice"`
	CostPrice float64 `json:"costPrice"`
}

// RawRecord is one untyped JSON object pulled out of the model's reply,
// prior to validation.
type RawRecord map[string]interface{}

// ParseResult is the tagged outcome of structured extraction. Found is false
// when no parseable JSON was located, so callers cannot mistake "nothing
// parsed" for "parsed an empty list".
type ParseResult struct {
	Records []RawRecord
	Found   bool
}

// VoiceOrderRequest is the inbound payload for spoken-order interpretation.
type VoiceOrderRequest struct {
	Transcript string         `json:"transcript" binding:"required"`
	Catalog    []CatalogEntry `json:"catalog"`
}

// VoiceOrderResult pairs the matched items with the transcript they came from.
type VoiceOrderResult struct {
	Products           []MatchedItem `json:"products"`
	OriginalTranscript string        `json:"originalTranscript"`
}
