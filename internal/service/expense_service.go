package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

const maxDescriptionLen = 255

// ExpenseService records expenses and serves expense views.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates an ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// RecordExpenseInput carries a validated-for-format expense creation request.
type RecordExpenseInput struct {
	Description  string
	Amount       decimal.Decimal
	SplitType    models.SplitType
	PaidBy       string
	Participants []string
	Splits       []models.SplitInput
}

// RecordExpense validates the request, computes the splits, and persists the
// expense with all of its splits atomically. On any failure nothing is
// written and the error wraps models.ErrInvalidInput or storage.ErrNotFound.
func (s *ExpenseService) RecordExpense(ctx context.Context, in RecordExpenseInput) (string, error) {
	if in.Description == "" || len(in.Description) > maxDescriptionLen {
		return "", fmt.Errorf("%w: description must be non-empty and at most %d characters",
			models.ErrInvalidInput, maxDescriptionLen)
	}
	if !in.Amount.IsPositive() {
		return "", fmt.Errorf("%w: amount must be positive", models.ErrInvalidInput)
	}

	if _, err := s.store.GetUser(ctx, in.PaidBy); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("%w: payer %s does not exist", models.ErrInvalidInput, in.PaidBy)
		}
		return "", err
	}
	for _, userID := range in.Participants {
		if _, err := s.store.GetUser(ctx, userID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return "", fmt.Errorf("%w: participant %s does not exist", models.ErrInvalidInput, userID)
			}
			return "", err
		}
	}

	splits, err := calculator.ComputeSplits(in.Amount, in.SplitType, in.Participants, in.Splits)
	if err != nil {
		return "", err
	}

	expense := &models.Expense{
		Description: in.Description,
		Amount:      in.Amount,
		SplitType:   in.SplitType,
		PaidBy:      in.PaidBy,
		Splits:      splits,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return "", err
	}

	return expense.ID, nil
}

// SplitView is one participant's share in an expense view, resolved to a
// display name.
type SplitView struct {
	UserID   string
	UserName string
	Amount   decimal.Decimal
}

// ExpenseView is the rendering-ready form of a single expense.
type ExpenseView struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Date        string
	SplitType   models.SplitType
	PaidBy      string
	PaidByName  string
	Splits      []SplitView
}

// GetExpense returns the expense with payer and participant names resolved.
func (s *ExpenseService) GetExpense(ctx context.Context, expenseID string) (*ExpenseView, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
		}
		return nil, err
	}

	payer, err := s.store.GetUser(ctx, expense.PaidBy)
	if err != nil {
		return nil, err
	}

	view := &ExpenseView{
		ID:          expense.ID,
		Description: expense.Description,
		Amount:      expense.Amount,
		Date:        expense.Date(),
		SplitType:   expense.SplitType,
		PaidBy:      payer.ID,
		PaidByName:  payer.Name,
	}
	for _, split := range expense.Splits {
		user, err := s.store.GetUser(ctx, split.UserID)
		if err != nil {
			return nil, err
		}
		view.Splits = append(view.Splits, SplitView{
			UserID:   user.ID,
			UserName: user.Name,
			Amount:   split.Amount,
		})
	}

	return view, nil
}

// UserExpenseEntry is one expense in a per-user listing. OwedAmount is set
// only for involved expenses.
type UserExpenseEntry struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Date        string
	OwedAmount  decimal.Decimal
}

// UserExpensesView lists the expenses a user paid for and the expenses they
// participate in, with the user's ledger-wide paid and owed totals.
type UserExpensesView struct {
	Paid      []UserExpenseEntry
	Involved  []UserExpenseEntry
	TotalPaid decimal.Decimal
	TotalOwed decimal.Decimal
}

// UserExpenses returns the paid and involved expense lists for one user.
func (s *ExpenseService) UserExpenses(ctx context.Context, userID string) (*UserExpensesView, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
		}
		return nil, err
	}

	paid, err := s.store.ListExpensesPaidBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	involved, err := s.store.ListExpensesInvolving(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &UserExpensesView{}
	if view.TotalPaid, err = s.store.SumPaidBy(ctx, userID); err != nil {
		return nil, err
	}
	if view.TotalOwed, err = s.store.SumOwedBy(ctx, userID); err != nil {
		return nil, err
	}
	for _, e := range paid {
		view.Paid = append(view.Paid, UserExpenseEntry{
			ID:          e.ID,
			Description: e.Description,
			Amount:      e.Amount,
			Date:        e.Date(),
		})
	}
	for _, e := range involved {
		entry := UserExpenseEntry{
			ID:          e.ID,
			Description: e.Description,
			Amount:      e.Amount,
			Date:        e.Date(),
		}
		for _, split := range e.Splits {
			if split.UserID == userID {
				entry.OwedAmount = split.Amount
				break
			}
		}
		view.Involved = append(view.Involved, entry)
	}

	return view, nil
}

// OverallExpenseEntry is one expense in the ledger-wide listing.
type OverallExpenseEntry struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Date        string
	PaidByName  string
}

// OverallExpensesView is the ledger-wide total plus every expense.
type OverallExpensesView struct {
	Total    decimal.Decimal
	Expenses []OverallExpenseEntry
}

// OverallExpenses returns the sum of all expense amounts and the expense
// list with payer names.
func (s *ExpenseService) OverallExpenses(ctx context.Context) (*OverallExpensesView, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	view := &OverallExpensesView{Total: decimal.Zero}
	for _, e := range expenses {
		name, ok := names[e.PaidBy]
		if !ok {
			payer, err := s.store.GetUser(ctx, e.PaidBy)
			if err != nil {
				return nil, err
			}
			name = payer.Name
			names[e.PaidBy] = name
		}
		view.Total = view.Total.Add(e.Amount)
		view.Expenses = append(view.Expenses, OverallExpenseEntry{
			ID:          e.ID,
			Description: e.Description,
			Amount:      e.Amount,
			Date:        e.Date(),
			PaidByName:  name,
		})
	}

	return view, nil
}
