package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockqr/internal/errors"
	"stockqr/internal/models"
	"stockqr/internal/services"
)

// ScanHandler handles decoded scanner input.
type ScanHandler struct {
	scanService services.ScanServicer
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(scanService services.ScanServicer) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// ResolveRequest carries the text produced by a scanner.
type ResolveRequest struct {
	Text string `json:"text" binding:"required"`
}

// ConfirmRequest represents a movement confirmed after a scan.
type ConfirmRequest struct {
	ProductID string `json:"productId" binding:"required,not_blank"`
	Mode      string `json:"mode" binding:"required,movement_type"`
	Quantity  int    `json:"quantity" binding:"gte=0"`
}

// Resolve handles mapping scanned text to a product
// @Summary     Resolve a scanned code
// @Description Find the product referenced by a QR payload or a plain code
// @Tags        scan
// @Accept      json
// @Produce     json
// @Param       request body ResolveRequest true "Decoded text"
// @Success     200 {object} models.ProductView
// @Failure     404 {object} ErrorResponse "No matching product"
// @Router      /scan/resolve [post]
func (h *ScanHandler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	product, found := h.scanService.Resolve(c.Request.Context(), req.Text)
	if !found {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrProductNotFound, "No product matches the scanned code"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Confirm handles recording a movement for a scanned product
// @Summary     Confirm a scan
// @Description Record a stock movement for a scanned product. Quantity 0 counts as 1.
// @Tags        scan
// @Accept      json
// @Produce     json
// @Param       request body ConfirmRequest true "Movement"
// @Success     201 {object} map[string]interface{} "Updated product and transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Insufficient stock"
// @Router      /scan/confirm [post]
func (h *ScanHandler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	product, tx, err := h.scanService.Confirm(c.Request.Context(), req.ProductID, models.MovementType(req.Mode), req.Quantity)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product, "transaction": tx})
}
