package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/storage"
)

// BalanceService computes the ledger-wide balance report. There is no
// caching: every call reloads users and expenses from the store and
// aggregates from that snapshot, so the report is always current and every
// rendering (JSON, CSV, xlsx) derives from the same Summary.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a BalanceService with the given storage backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// Report aggregates balances across the whole ledger.
func (s *BalanceService) Report(ctx context.Context) (*calculator.Summary, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}

	summary := calculator.Summarize(users, expenses)
	return &summary, nil
}

// BalanceRow is one line of the tabular balance view shared by the CSV and
// xlsx renderings.
type BalanceRow struct {
	User      string
	TotalPaid decimal.Decimal
	TotalOwed decimal.Decimal
	Balance   decimal.Decimal

	// Breakdown is the semicolon-joined "description: amount" pairs of the
	// user's expense shares.
	Breakdown string
}

// Rows flattens a Summary into the tabular balance-sheet view.
func Rows(summary *calculator.Summary) []BalanceRow {
	rows := make([]BalanceRow, 0, len(summary.Users))
	for _, ub := range summary.Users {
		parts := make([]string, 0, len(ub.Shares))
		for _, share := range ub.Shares {
			parts = append(parts, fmt.Sprintf("%s: %s", share.Description, share.Amount.StringFixed(2)))
		}
		rows = append(rows, BalanceRow{
			User:      ub.User.Name,
			TotalPaid: ub.TotalPaid,
			TotalOwed: ub.TotalOwed,
			Balance:   ub.Balance,
			Breakdown: strings.Join(parts, "; "),
		})
	}
	return rows
}
