package domain

import "errors"

var (
	// ErrModelUnavailable is returned when the model backend cannot be
	// reached or replies with a non-success status
	ErrModelUnavailable = errors.New("model backend unavailable")

	// ErrModelTimeout is returned when no completion arrives within the
	// configured deadline
	ErrModelTimeout = errors.New("model inference timed out")

	// ErrUnsupportedFormat is returned for document media types the text
	// extractor does not handle
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrProductNotFound is returned when a product id does not exist
	ErrProductNotFound = errors.New("product not found")

	// ErrSaleNotFound is returned when a sale id does not exist
	ErrSaleNotFound = errors.New("sale not found")

	// ErrDuplicateBarcode is returned when a barcode is already assigned
	// to another product of the same company
	ErrDuplicateBarcode = errors.New("barcode already in use")

	// ErrBarcodeExhausted is returned when barcode generation fails to
	// find a free code within its attempt budget
	ErrBarcodeExhausted = errors.New("could not generate a unique barcode")

	// ErrInsufficientStock is returned when a sale would drive a product's
	// stock below zero; the whole transaction is rolled back
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")
)
