package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// CreateExpense persists an expense and all of its splits in one transaction.
// Either every row lands or none do, so concurrent readers never see an
// expense with a partial split set.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, description, amount, split_type, paid_by, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		expense.ID, expense.Description, formatAmount(expense.Amount),
		string(expense.SplitType), expense.PaidBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, user_id, amount, position) VALUES (?, ?, ?, ?)",
			expense.ID, split.UserID, formatAmount(split.Amount), i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including its full split set.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var amount, splitType string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, description, amount, split_type, paid_by, created_at FROM expenses WHERE id = ?",
		expenseID,
	).Scan(&expense.ID, &expense.Description, &amount, &splitType, &expense.PaidBy, &expense.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if expense.Amount, err = parseAmount(amount); err != nil {
		return nil, err
	}
	expense.SplitType = models.SplitType(splitType)

	if expense.Splits, err = s.loadSplits(ctx, expense.ID); err != nil {
		return nil, err
	}

	return expense, nil
}

// ListExpenses returns every expense with its split set, in creation order.
func (s *SQLiteStore) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	return s.listExpensesWhere(ctx, "", nil, true)
}

// ListExpensesPaidBy returns the expenses paid for by the given user.
// Split sets are not loaded; payer views only need the expense rows.
func (s *SQLiteStore) ListExpensesPaidBy(ctx context.Context, userID string) ([]models.Expense, error) {
	return s.listExpensesWhere(ctx, "WHERE paid_by = ?", []any{userID}, false)
}

// ListExpensesInvolving returns the expenses the user has a split in, each
// with its full split set.
func (s *SQLiteStore) ListExpensesInvolving(ctx context.Context, userID string) ([]models.Expense, error) {
	return s.listExpensesWhere(ctx,
		"WHERE id IN (SELECT expense_id FROM expense_splits WHERE user_id = ?)",
		[]any{userID}, true)
}

func (s *SQLiteStore) listExpensesWhere(ctx context.Context, where string, args []any, withSplits bool) ([]models.Expense, error) {
	// rowid order is insertion order, which created_at alone cannot give at
	// second resolution
	query := "SELECT id, description, amount, split_type, paid_by, created_at FROM expenses " +
		where + " ORDER BY rowid"
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var expense models.Expense
		var amount, splitType string
		if err := rows.Scan(&expense.ID, &expense.Description, &amount, &splitType,
			&expense.PaidBy, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if expense.Amount, err = parseAmount(amount); err != nil {
			return nil, err
		}
		expense.SplitType = models.SplitType(splitType)
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	if withSplits {
		for i := range expenses {
			if expenses[i].Splits, err = s.loadSplits(ctx, expenses[i].ID); err != nil {
				return nil, err
			}
		}
	}

	return expenses, nil
}

// loadSplits fetches the split set of one expense in recorded order.
func (s *SQLiteStore) loadSplits(ctx context.Context, expenseID string) ([]models.ExpenseSplit, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, amount FROM expense_splits WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer rows.Close()

	var splits []models.ExpenseSplit
	for rows.Next() {
		var split models.ExpenseSplit
		var amount string
		if err := rows.Scan(&split.UserID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		if split.Amount, err = parseAmount(amount); err != nil {
			return nil, err
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}

	return splits, nil
}

// SumPaidBy returns the exact sum of expense amounts paid by the user.
// Amounts are summed as decimals in Go; SQL SUM over floats could drift.
func (s *SQLiteStore) SumPaidBy(ctx context.Context, userID string) (decimal.Decimal, error) {
	return s.sumAmounts(ctx, "SELECT amount FROM expenses WHERE paid_by = ?", userID)
}

// SumOwedBy returns the exact sum of the user's split amounts.
func (s *SQLiteStore) SumOwedBy(ctx context.Context, userID string) (decimal.Decimal, error) {
	return s.sumAmounts(ctx, "SELECT amount FROM expense_splits WHERE user_id = ?", userID)
}

func (s *SQLiteStore) sumAmounts(ctx context.Context, query, userID string) (decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum amounts: %w", err)
	}
	defer rows.Close()

	sum := decimal.Zero
	for rows.Next() {
		var amount string
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, fmt.Errorf("failed to scan amount: %w", err)
		}
		d, err := parseAmount(amount)
		if err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(d)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("failed to iterate amounts: %w", err)
	}

	return sum, nil
}

// DeleteExpense removes an expense; the foreign key cascade removes its
// splits in the same statement's transaction.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}
