package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"stockqr/internal/models"
	"stockqr/internal/pagination"
	"stockqr/internal/qr"
	"stockqr/internal/services"
)

// ProductHandler handles product and label requests.
type ProductHandler struct {
	productService services.ProductServicer
	qrService      services.QRServicer
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService services.ProductServicer, qrService services.QRServicer) *ProductHandler {
	return &ProductHandler{productService: productService, qrService: qrService}
}

// CreateProductRequest represents the request payload for creating a product.
type CreateProductRequest struct {
	CategoryID string           `json:"categoryId" binding:"required,not_blank"`
	Name       string           `json:"name" binding:"required,not_blank,max=200"`
	Barcode    string           `json:"barcode" binding:"max=64"`
	Price      *decimal.Decimal `json:"price" swaggertype:"number"`
	Cost       *decimal.Decimal `json:"cost" swaggertype:"number"`
	MinStock   *int             `json:"minStock" binding:"omitempty,gte=0"`
}

// UpdateProductRequest represents the request payload for updating a product.
// Stock counters cannot be changed here; use the stock endpoints.
type UpdateProductRequest struct {
	CategoryID *string          `json:"categoryId" binding:"omitempty,not_blank"`
	Name       *string          `json:"name" binding:"omitempty,not_blank,max=200"`
	Barcode    *string          `json:"barcode" binding:"omitempty,max=64"`
	Price      *decimal.Decimal `json:"price" swaggertype:"number"`
	Cost       *decimal.Decimal `json:"cost" swaggertype:"number"`
	MinStock   *int             `json:"minStock" binding:"omitempty,gte=0"`
}

// QRRequest holds the optional rendering parameters of a label.
type QRRequest struct {
	Size       int    `form:"size" binding:"omitempty,min=64,max=1024"`
	Foreground string `form:"fg" binding:"omitempty,hex_color"`
	Background string `form:"bg" binding:"omitempty,hex_color"`
}

// CreateProduct handles the creation of a new product
// @Summary     Create a product
// @Description Create a product with zero stock and a generated QR code
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       request body CreateProductRequest true "Product details"
// @Success     201 {object} models.Product "Product created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), models.ProductPatch{
		CategoryID: &req.CategoryID,
		Name:       &req.Name,
		Barcode:    &req.Barcode,
		Price:      req.Price,
		Cost:       req.Cost,
		MinStock:   req.MinStock,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// ListProducts handles listing products
// @Summary     List products
// @Description List products, optionally filtered by search text or category
// @Tags        products
// @Produce     json
// @Param       search      query string false "Case-insensitive match on name or barcode"
// @Param       category_id query string false "Category ID"
// @Param       page        query int    false "Page number"
// @Param       page_size   query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[models.ProductView]
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	filter := services.ProductFilter{
		Search:     c.Query("search"),
		CategoryID: c.Query("category_id"),
	}

	result, err := h.productService.ListProducts(c.Request.Context(), filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// LowStockProducts handles listing products at or below their threshold
// @Summary     Low-stock products
// @Tags        products
// @Produce     json
// @Success     200 {array} models.ProductView
// @Router      /products/low-stock [get]
func (h *ProductHandler) LowStockProducts(c *gin.Context) {
	products, err := h.productService.LowStockProducts(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProductByID handles the retrieval of a product
// @Summary     Get product by ID
// @Tags        products
// @Produce     json
// @Param       id path string true "Product ID"
// @Success     200 {object} models.ProductView
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id} [get]
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	product, err := h.productService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// UpdateProduct handles updating product attributes
// @Summary     Update a product
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       id      path string               true "Product ID"
// @Param       request body UpdateProductRequest true "Fields to change"
// @Success     200 {object} models.Product
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Product or category not found"
// @Router      /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, models.ProductPatch{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Barcode:    req.Barcode,
		Price:      req.Price,
		Cost:       req.Cost,
		MinStock:   req.MinStock,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct handles deleting a product
// @Summary     Delete a product
// @Description Delete a product. Its movement history is kept.
// @Tags        products
// @Produce     json
// @Param       id path string true "Product ID"
// @Success     200 {object} MessageResponse
// @Router      /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Product deleted successfully"})
}

// ProductQR handles rendering a product label
// @Summary     Product QR code
// @Description Render the product's QR code as a PNG image
// @Tags        products
// @Produce     png
// @Param       id   path  string true  "Product ID"
// @Param       size query int    false "Image size in pixels"
// @Param       fg   query string false "Foreground color (#rrggbb)"
// @Param       bg   query string false "Background color (#rrggbb)"
// @Success     200 {file} binary
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id}/qr [get]
func (h *ProductHandler) ProductQR(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req QRRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	img, err := h.qrService.ProductQR(c.Request.Context(), id, qr.Options{
		Size:       req.Size,
		Foreground: req.Foreground,
		Background: req.Background,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", img)
}

// ProductQRPayload handles returning the text encoded in a product label
// @Summary     Product QR payload
// @Tags        products
// @Produce     json
// @Param       id path string true "Product ID"
// @Success     200 {object} map[string]string
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id}/qr/payload [get]
func (h *ProductHandler) ProductQRPayload(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	payload, err := h.qrService.ProductPayload(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payload": payload})
}
