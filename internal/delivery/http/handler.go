package http

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/puntoventa/backend/internal/domain"
	"github.com/puntoventa/backend/internal/usecase"
)

// maxUploadBytes caps document uploads (10 MiB)
const maxUploadBytes = 10 << 20

// Handler holds dependencies for HTTP handlers
type Handler struct {
	interpreter *usecase.InterpreterService
	products    *usecase.ProductService
	sales       *usecase.SaleService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	interpreter *usecase.InterpreterService,
	products *usecase.ProductService,
	sales *usecase.SaleService,
) *Handler {
	return &Handler{
		interpreter: interpreter,
		products:    products,
		sales:       sales,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "puntoventa-backend",
		"version": "1.0.0",
	})
}

// InterpretDocument handles document interpretation requests. A reply the
// model garbled beyond recovery is a 200 with an empty product list, not an
// error: the client flow is identical either way. Only infrastructure
// failures surface as 5xx.
func (h *Handler) InterpretDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	mediaType := c.PostForm("mediaType")
	if mediaType == "" {
		mediaType = fileHeader.Header.Get("Content-Type")
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}

	products, err := h.interpreter.InterpretDocument(c.Request.Context(), data, mediaType)
	if err != nil {
		h.interpretError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// InterpretVoiceOrder handles spoken-order interpretation requests
func (h *Handler) InterpretVoiceOrder(c *gin.Context) {
	var req domain.VoiceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transcript is required"})
		return
	}

	result, err := h.interpreter.InterpretVoiceOrder(c.Request.Context(), req.Transcript, req.Catalog)
	if err != nil {
		h.interpretError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// interpretError maps pipeline errors to HTTP responses
func (h *Handler) interpretError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrModelTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "model backend did not answer in time"})
	case errors.Is(err, domain.ErrModelUnavailable):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "model backend unavailable"})
	default:
		log.Printf("[HTTP] interpretation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// CreateProduct handles product creation
func (h *Handler) CreateProduct(c *gin.Context) {
	var req domain.ProductCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	product, err := h.products.Create(c.Request.Context(), &req)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// ListProducts returns the catalog, optionally filtered by companyId
func (h *Handler) ListProducts(c *gin.Context) {
	companyID, _ := strconv.ParseInt(c.Query("companyId"), 10, 64)

	products, err := h.products.List(c.Request.Context(), companyID)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct returns one product by id
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpdateProduct modifies one product
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req domain.ProductUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	product, err := h.products.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes one product
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateSale records a sale
func (h *Handler) CreateSale(c *gin.Context) {
	var req domain.SaleCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items are required"})
		return
	}

	sale, err := h.sales.Record(c.Request.Context(), &req)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// GetSale returns one sale by id
func (h *Handler) GetSale(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sale id"})
		return
	}

	sale, err := h.sales.Get(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// ListSales returns recent sales, optionally filtered by companyId
func (h *Handler) ListSales(c *gin.Context) {
	companyID, _ := strconv.ParseInt(c.Query("companyId"), 10, 64)

	sales, err := h.sales.List(c.Request.Context(), companyID)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

// storeError maps catalog and sale errors to HTTP responses
func (h *Handler) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrSaleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrDuplicateBarcode), errors.Is(err, domain.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("[HTTP] store operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
