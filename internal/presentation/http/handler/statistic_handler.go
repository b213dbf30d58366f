package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/trademarket-api/internal/application/service"
	"github.com/sangkips/trademarket-api/internal/presentation/http/dto/response"
)

// StatisticHandler handles statistics HTTP requests
type StatisticHandler struct {
	statisticService *service.StatisticService
}

// NewStatisticHandler creates a new statistic handler
func NewStatisticHandler(statisticService *service.StatisticService) *StatisticHandler {
	return &StatisticHandler{statisticService: statisticService}
}

// PopularProducts handles the most sold products across all receipts
func (h *StatisticHandler) PopularProducts(c *gin.Context) {
	count, ok := parseInt(c, "productCount")
	if !ok {
		return
	}

	products, err := h.statisticService.GetMostPopularProducts(c.Request.Context(), count)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, products)
}

// CustomerPopularProducts handles the most sold products of one customer
func (h *StatisticHandler) CustomerPopularProducts(c *gin.Context) {
	customerID, ok := parseID(c, "id")
	if !ok {
		return
	}
	count, ok := parseInt(c, "productCount")
	if !ok {
		return
	}

	products, err := h.statisticService.GetCustomersMostPopularProducts(c.Request.Context(), count, customerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, products)
}

// MostValuableCustomers handles the customers who spent most in a period
func (h *StatisticHandler) MostValuableCustomers(c *gin.Context) {
	count, ok := parseInt(c, "customerCount")
	if !ok {
		return
	}
	start, end, ok := parsePeriod(c)
	if !ok {
		return
	}

	customers, err := h.statisticService.GetMostValuableCustomers(c.Request.Context(), count, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, customers)
}

// CategoryIncome handles the income of a category in a period
func (h *StatisticHandler) CategoryIncome(c *gin.Context) {
	categoryID, ok := parseID(c, "categoryId")
	if !ok {
		return
	}
	start, end, ok := parsePeriod(c)
	if !ok {
		return
	}

	income, err := h.statisticService.GetIncomeOfCategoryInPeriod(c.Request.Context(), categoryID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, income)
}
