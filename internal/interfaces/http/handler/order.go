package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderapp "github.com/portal/backend/internal/application/order"
	"github.com/portal/backend/internal/interfaces/http/dto"
)

// OrderHandler handles imported order API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderServiceImpl
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderServiceImpl) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List godoc
// @Summary      List imported orders for a store
// @Tags         orders
// @Produce      json
// @Param        domain query string true "Store domain"
// @Success      200 {object} dto.Response{data=[]dto.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not identified")
		return
	}

	domain := c.Query("domain")
	if domain == "" {
		h.BadRequest(c, "Query parameter 'domain' is required")
		return
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), tenantID, domain)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewOrderListResponse(orders))
}

// Count godoc
// @Summary      Count imported orders for a store
// @Tags         orders
// @Produce      json
// @Param        domain query string true "Store domain"
// @Success      200 {object} dto.Response{data=dto.OrderCountResponse}
// @Security     BearerAuth
// @Router       /orders/count [get]
func (h *OrderHandler) Count(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not identified")
		return
	}

	domain := c.Query("domain")
	if domain == "" {
		h.BadRequest(c, "Query parameter 'domain' is required")
		return
	}

	count, err := h.orderService.CountOrders(c.Request.Context(), tenantID, domain)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.OrderCountResponse{Count: count})
}

// Get godoc
// @Summary      Get an imported order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response{data=dto.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not identified")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	ord, err := h.orderService.GetOrder(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewOrderResponse(ord))
}
