package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// ExpenseShare is one breakdown entry: what a user owes on one expense.
type ExpenseShare struct {
	ExpenseID   string
	Description string
	Date        string
	Amount      decimal.Decimal
}

// UserBalance is the aggregated position of one user across the ledger.
type UserBalance struct {
	User models.User

	// TotalPaid is the sum of amounts of expenses this user paid for.
	TotalPaid decimal.Decimal

	// TotalOwed is the sum of this user's split amounts across all expenses,
	// including expenses they paid for themselves.
	TotalOwed decimal.Decimal

	// Balance is TotalPaid minus TotalOwed. Positive means net creditor.
	Balance decimal.Decimal

	// Shares lists each expense the user has a split in, in ledger order.
	Shares []ExpenseShare
}

// Summary is the full balance picture of the ledger.
type Summary struct {
	Users []UserBalance

	// OverallTotal is the sum of all expense amounts in the ledger.
	OverallTotal decimal.Decimal
}

// Summarize aggregates paid/owed/balance per user plus the ledger-wide total.
// Users come out in input order; shares follow expense input order. The
// function is pure: callers hand it a consistent snapshot of the ledger and
// every rendering derives from the one returned Summary.
func Summarize(users []models.User, expenses []models.Expense) Summary {
	index := make(map[string]int, len(users))
	balances := make([]UserBalance, len(users))
	for i, u := range users {
		index[u.ID] = i
		balances[i] = UserBalance{
			User:      u,
			TotalPaid: decimal.Zero,
			TotalOwed: decimal.Zero,
		}
	}

	overall := decimal.Zero
	for _, e := range expenses {
		overall = overall.Add(e.Amount)

		if i, ok := index[e.PaidBy]; ok {
			balances[i].TotalPaid = balances[i].TotalPaid.Add(e.Amount)
		}

		for _, s := range e.Splits {
			i, ok := index[s.UserID]
			if !ok {
				continue
			}
			balances[i].TotalOwed = balances[i].TotalOwed.Add(s.Amount)
			balances[i].Shares = append(balances[i].Shares, ExpenseShare{
				ExpenseID:   e.ID,
				Description: e.Description,
				Date:        e.Date(),
				Amount:      s.Amount,
			})
		}
	}

	for i := range balances {
		balances[i].Balance = balances[i].TotalPaid.Sub(balances[i].TotalOwed)
	}

	return Summary{Users: balances, OverallTotal: overall}
}
