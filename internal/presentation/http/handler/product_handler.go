package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/trademarket-api/internal/application/model"
	"github.com/sangkips/trademarket-api/internal/application/service"
	"github.com/sangkips/trademarket-api/internal/presentation/http/dto/response"
)

// ProductHandler handles product and category HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products, filtered when any bound is given
func (h *ProductHandler) List(c *gin.Context) {
	var filter model.FilterSearchModel
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid filter: "+err.Error())
		return
	}

	products, err := h.productService.GetByFilter(c.Request.Context(), &filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, products)
}

// Get handles getting a product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if product == nil {
		response.NotFound(c, "Product not found")
		return
	}
	response.OK(c, product)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req model.ProductModel
	if !bindBody(c, &req) {
		return
	}

	if err := h.productService.Add(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, req)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.ProductModel
	if !bindBody(c, &req) || !matchesPath(c, id, req.ID) {
		return
	}

	if err := h.productService.Update(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Empty(c)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Empty(c)
}

// ListCategories handles listing all categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.productService.GetAllProductCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, categories)
}

// CreateCategory handles creating a category
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req model.ProductCategoryModel
	if !bindBody(c, &req) {
		return
	}

	if err := h.productService.AddCategory(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, req)
}

// UpdateCategory handles renaming a category
func (h *ProductHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req model.ProductCategoryModel
	if !bindBody(c, &req) || !matchesPath(c, id, req.ID) {
		return
	}

	if err := h.productService.UpdateCategory(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Empty(c)
}

// DeleteCategory handles deleting a category with its products
func (h *ProductHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.RemoveCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Empty(c)
}
