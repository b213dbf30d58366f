package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/trademarket-api/internal/application/model"
	"github.com/sangkips/trademarket-api/internal/application/service"
	"github.com/sangkips/trademarket-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// List handles listing all receipts
func (h *ReceiptHandler) List(c *gin.Context) {
	receipts, err := h.receiptService.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, receipts)
}

// ListByPeriod handles listing receipts between startDate and endDate
func (h *ReceiptHandler) ListByPeriod(c *gin.Context) {
	start, end, ok := parsePeriod(c)
	if !ok {
		return
	}

	receipts, err := h.receiptService.GetReceiptsByPeriod(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, receipts)
}

// Get handles getting a receipt by ID
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if receipt == nil {
		response.NotFound(c, "Receipt not found")
		return
	}
	response.OK(c, receipt)
}

// Details handles listing the line items of a receipt
func (h *ReceiptHandler) Details(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	details, err := h.receiptService.GetReceiptDetails(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, details)
}

// Sum handles computing the amount payable for a receipt
func (h *ReceiptHandler) Sum(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	sum, err := h.receiptService.ToPay(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sum)
}

// Create handles opening a receipt
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req model.ReceiptModel
	if !bindBody(c, &req) {
		return
	}

	if err := h.receiptService.Add(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, req)
}

// Update handles updating a receipt
func (h *ReceiptHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.ReceiptModel
	if !bindBody(c, &req) || !matchesPath(c, id, req.ID) {
		return
	}

	if err := h.receiptService.Update(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Empty(c)
}

// Delete handles deleting a receipt with its line items
func (h *ReceiptHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.receiptService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Empty(c)
}

// AddProduct handles adding units of a product to a receipt
func (h *ReceiptHandler) AddProduct(c *gin.Context) {
	h.changeProduct(c, h.receiptService.AddProduct)
}

// RemoveProduct handles removing units of a product from a receipt
func (h *ReceiptHandler) RemoveProduct(c *gin.Context) {
	h.changeProduct(c, h.receiptService.RemoveProduct)
}

// CheckOut handles closing a receipt
func (h *ReceiptHandler) CheckOut(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.receiptService.CheckOut(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Empty(c)
}

type lineChange func(ctx context.Context, productID, receiptID uint, quantity int) error

func (h *ReceiptHandler) changeProduct(c *gin.Context, change lineChange) {
	receiptID, ok := parseID(c, "id")
	if !ok {
		return
	}
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}
	quantity, ok := parseInt(c, "quantity")
	if !ok {
		return
	}

	if err := change(c.Request.Context(), productID, receiptID, quantity); err != nil {
		response.Error(c, err)
		return
	}
	response.Empty(c)
}
