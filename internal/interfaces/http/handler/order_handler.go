package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BolivianProgrammer/RazorPedidos/internal/application/ordering"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/account"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/order"
	"github.com/BolivianProgrammer/RazorPedidos/internal/interfaces/http/middleware"
)

type OrderHandler struct {
	svc *ordering.Service
}

func NewOrderHandler(svc *ordering.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type placeOrderRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// PlaceOrder is the customer purchase: one product, one quantity.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	placed, err := h.svc.PlaceOrder(c.Request.Context(), principal, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, placed)
}

type createOrderRequest struct {
	CustomerID int64           `json:"customer_id" binding:"required"`
	Lines      []ordering.Line `json:"lines" binding:"required"`
}

// CreateOrder is the staff-side multi-line creation. Rejected lines come back
// in the response body alongside the created order.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.CreateOrder(c.Request.Context(), principal, req.CustomerID, req.Lines)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	o, err := h.svc.GetOrder(c.Request.Context(), principal, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	orders, err := h.svc.ListOrders(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// RecentOrders returns the caller's own latest orders.
func (h *OrderHandler) RecentOrders(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	orders, err := h.svc.RecentOrders(c.Request.Context(), principal, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	next, err := order.ParseStatus(req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.svc.ChangeStatus(c.Request.Context(), principal, id, next)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteOrder(c.Request.Context(), principal, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func principalOf(c *gin.Context) (account.Principal, bool) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no principal"})
		return account.Principal{}, false
	}
	return principal, true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
