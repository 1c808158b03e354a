// Package httpapi wires the ledger services to HTTP routes. It is thin
// glue: JSON in, typed service calls, JSON/CSV/xlsx out. All domain policy
// lives in the service and calculator packages.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/service"
	"github.com/mmynk/splitledger/internal/storage"
)

// Handler wires HTTP routes to the ledger services.
type Handler struct {
	users    *service.UserService
	expenses *service.ExpenseService
	balances *service.BalanceService
}

// New creates a Handler over the given services.
func New(users *service.UserService, expenses *service.ExpenseService, balances *service.BalanceService) *Handler {
	return &Handler{users: users, expenses: expenses, balances: balances}
}

// RegisterRoutes attaches all ledger routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/users", h.createUser)
	router.GET("/users/:id", h.getUser)
	router.GET("/users/:id/expenses", h.getUserExpenses)

	router.POST("/expenses", h.createExpense)
	router.GET("/expenses", h.getOverallExpenses)
	router.GET("/expenses/:id", h.getExpense)

	router.GET("/balance-details", h.getBalanceDetails)
	router.GET("/balance-sheet", h.downloadBalanceSheetCSV)
	router.GET("/balance-sheet.xlsx", h.downloadBalanceSheetXLSX)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// respondError maps domain error kinds to HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
