package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appcatalog "github.com/BolivianProgrammer/RazorPedidos/internal/application/catalog"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/catalog"
)

type ProductHandler struct {
	svc *appcatalog.Service
}

func NewProductHandler(svc *appcatalog.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// ListProducts supports search, price bounds, in-stock filtering and sorting
// via query parameters.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := catalog.ListFilter{
		Search:  c.Query("search"),
		Sort:    catalog.SortOrder(c.Query("sort")),
		InStock: c.Query("in_stock") == "true",
	}

	if raw := c.Query("min_price"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_price"})
			return
		}
		filter.MinPrice = &min
	}
	if raw := c.Query("max_price"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price"})
			return
		}
		filter.MaxPrice = &max
	}

	products, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	var in appcatalog.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.svc.Create(c.Request.Context(), principal, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in appcatalog.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.svc.Update(c.Request.Context(), principal, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), principal, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
