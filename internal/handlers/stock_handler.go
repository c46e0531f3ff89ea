package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockqr/internal/models"
	"stockqr/internal/pagination"
	"stockqr/internal/services"
)

// StockHandler handles stock movements and the movement log.
type StockHandler struct {
	stockService services.StockServicer
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService services.StockServicer) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// MovementRequest represents the request payload for a stock movement.
type MovementRequest struct {
	ProductID string `json:"productId" binding:"required,not_blank"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Notes     string `json:"notes" binding:"max=500"`
}

// HistoryRequest holds the movement log filters.
type HistoryRequest struct {
	Type      string `form:"type" binding:"omitempty,movement_type"`
	ProductID string `form:"product_id"`
}

// StockIn handles an inbound movement
// @Summary     Stock in
// @Description Add units to a product and log the movement
// @Tags        stock
// @Accept      json
// @Produce     json
// @Param       request body MovementRequest true "Movement"
// @Success     201 {object} map[string]interface{} "Updated product and transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /stock/in [post]
func (h *StockHandler) StockIn(c *gin.Context) {
	h.move(c, models.MovementIn)
}

// StockOut handles an outbound movement
// @Summary     Stock out
// @Description Remove units from a product and log the movement
// @Tags        stock
// @Accept      json
// @Produce     json
// @Param       request body MovementRequest true "Movement"
// @Success     201 {object} map[string]interface{} "Updated product and transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Failure     409 {object} ErrorResponse "Insufficient stock"
// @Router      /stock/out [post]
func (h *StockHandler) StockOut(c *gin.Context) {
	h.move(c, models.MovementOut)
}

func (h *StockHandler) move(c *gin.Context, direction models.MovementType) {
	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	product, tx, err := h.stockService.Move(c.Request.Context(), req.ProductID, direction, req.Quantity, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product, "transaction": tx})
}

// History handles listing the movement log
// @Summary     Movement history
// @Description List stock movements, newest first
// @Tags        stock
// @Produce     json
// @Param       type       query string false "in or out"
// @Param       product_id query string false "Product ID"
// @Param       page       query int    false "Page number"
// @Param       page_size  query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[models.TransactionView]
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /transactions [get]
func (h *StockHandler) History(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	var req HistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	filter := services.TransactionFilter{ProductID: req.ProductID}
	if req.Type != "" {
		movement := models.MovementType(req.Type)
		filter.Type = &movement
	}

	result, err := h.stockService.History(c.Request.Context(), filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
