package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BolivianProgrammer/RazorPedidos/internal/application/ordering"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/account"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/catalog"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/order"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/repository"
)

// respondError maps domain sentinels onto HTTP status codes. Anything
// unrecognized is a 500 with a generic body so internals never leak.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, account.ErrUnauthorizedPrincipal):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, account.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, account.ErrUserNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrConcurrencyConflict),
		errors.Is(err, account.ErrEmailTaken),
		errors.Is(err, order.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrNoValidItems),
		errors.Is(err, order.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrUnknownStatus),
		errors.Is(err, ordering.ErrTargetNotCustomer),
		errors.Is(err, catalog.ErrNameRequired),
		errors.Is(err, catalog.ErrTextTooLong),
		errors.Is(err, catalog.ErrInvalidPrice),
		errors.Is(err, catalog.ErrInvalidStock),
		errors.Is(err, account.ErrNameRequired),
		errors.Is(err, account.ErrEmailRequired),
		errors.Is(err, account.ErrPasswordRequired),
		errors.Is(err, account.ErrUnknownRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
