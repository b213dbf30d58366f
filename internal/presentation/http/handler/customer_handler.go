package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/trademarket-api/internal/application/model"
	"github.com/sangkips/trademarket-api/internal/application/service"
	"github.com/sangkips/trademarket-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing all customers
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customerService.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, customers)
}

// Get handles getting a customer by ID
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if customer == nil {
		response.NotFound(c, "Customer not found")
		return
	}
	response.OK(c, customer)
}

// ListByProduct handles listing the customers who bought a product
func (h *CustomerHandler) ListByProduct(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}

	customers, err := h.customerService.GetCustomersByProductID(c.Request.Context(), productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, customers)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req model.CustomerModel
	if !bindBody(c, &req) {
		return
	}

	if err := h.customerService.Add(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, req)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.CustomerModel
	if !bindBody(c, &req) || !matchesPath(c, id, req.ID) {
		return
	}

	if err := h.customerService.Update(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Empty(c)
}

// Delete handles deleting a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Empty(c)
}
