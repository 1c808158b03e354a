package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/service"
)

type splitInputRequest struct {
	User    string          `json:"user"`
	Amount  decimal.Decimal `json:"amount"`
	Percent decimal.Decimal `json:"percent"`
}

type createExpenseRequest struct {
	Description  string              `json:"description"`
	Amount       decimal.Decimal     `json:"amount"`
	SplitType    string              `json:"split_type"`
	PaidBy       string              `json:"paid_by"`
	Participants []string            `json:"participants"`
	Splits       []splitInputRequest `json:"splits"`
}

func (h *Handler) createExpense(c *gin.Context) {
	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %s", models.ErrInvalidInput, err))
		return
	}

	in := service.RecordExpenseInput{
		Description:  req.Description,
		Amount:       req.Amount,
		SplitType:    models.SplitType(req.SplitType),
		PaidBy:       req.PaidBy,
		Participants: req.Participants,
	}
	for _, s := range req.Splits {
		in.Splits = append(in.Splits, models.SplitInput{
			UserID:  s.User,
			Amount:  s.Amount,
			Percent: s.Percent,
		})
	}

	id, err := h.expenses.RecordExpense(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "Expense created successfully"})
}

func (h *Handler) getExpense(c *gin.Context) {
	view, err := h.expenses.GetExpense(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	splits := make([]gin.H, 0, len(view.Splits))
	for _, s := range view.Splits {
		splits = append(splits, gin.H{
			"user":   s.UserName,
			"amount": s.Amount.StringFixed(2),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          view.ID,
		"description": view.Description,
		"amount":      view.Amount.StringFixed(2),
		"date":        view.Date,
		"split_type":  view.SplitType,
		"paid_by":     view.PaidByName,
		"splits":      splits,
	})
}

func (h *Handler) getUserExpenses(c *gin.Context) {
	view, err := h.expenses.UserExpenses(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	paid := make([]gin.H, 0, len(view.Paid))
	for _, e := range view.Paid {
		paid = append(paid, gin.H{
			"id":          e.ID,
			"description": e.Description,
			"amount":      e.Amount.StringFixed(2),
			"date":        e.Date,
		})
	}
	involved := make([]gin.H, 0, len(view.Involved))
	for _, e := range view.Involved {
		involved = append(involved, gin.H{
			"id":          e.ID,
			"description": e.Description,
			"amount":      e.Amount.StringFixed(2),
			"date":        e.Date,
			"owed_amount": e.OwedAmount.StringFixed(2),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses_paid":     paid,
		"expenses_involved": involved,
		"total_paid":        view.TotalPaid.StringFixed(2),
		"total_owed":        view.TotalOwed.StringFixed(2),
	})
}

func (h *Handler) getOverallExpenses(c *gin.Context) {
	view, err := h.expenses.OverallExpenses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	expenses := make([]gin.H, 0, len(view.Expenses))
	for _, e := range view.Expenses {
		expenses = append(expenses, gin.H{
			"id":          e.ID,
			"description": e.Description,
			"amount":      e.Amount.StringFixed(2),
			"date":        e.Date,
			"paid_by":     e.PaidByName,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total":    view.Total.StringFixed(2),
		"expenses": expenses,
	})
}
