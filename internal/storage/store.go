// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// ErrNotFound is returned when a referenced user or expense does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the ledger persistence operations. The abstraction keeps the
// core logic independent of any particular storage engine (SQLite here,
// PostgreSQL later) and owns the expense→splits cascade.
type Store interface {
	// CreateUser persists a new user. The user.ID and user.CreatedAt fields
	// are populated by the store.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID. Returns ErrNotFound if absent.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetUserByEmail retrieves a user by email. Returns ErrNotFound if absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListUsers returns all users ordered by registration time.
	ListUsers(ctx context.Context) ([]models.User, error)

	// CreateExpense persists an expense together with all of its splits as a
	// single atomic unit. Readers never observe an expense without its full
	// split set. The expense.ID and expense.CreatedAt fields are populated by
	// the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its full split set.
	// Returns ErrNotFound if absent.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpenses returns every expense in the ledger, each with its full
	// split set, ordered by creation time.
	ListExpenses(ctx context.Context) ([]models.Expense, error)

	// ListExpensesPaidBy returns the expenses paid for by the given user.
	ListExpensesPaidBy(ctx context.Context, userID string) ([]models.Expense, error)

	// ListExpensesInvolving returns the expenses the given user has a split
	// in, each with its full split set.
	ListExpensesInvolving(ctx context.Context, userID string) ([]models.Expense, error)

	// SumPaidBy returns the exact sum of expense amounts paid by the user.
	SumPaidBy(ctx context.Context, userID string) (decimal.Decimal, error)

	// SumOwedBy returns the exact sum of the user's split amounts.
	SumOwedBy(ctx context.Context, userID string) (decimal.Decimal, error)

	// DeleteExpense removes an expense and, through the ownership relation,
	// all of its splits. Returns ErrNotFound if absent.
	DeleteExpense(ctx context.Context, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}
