package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
)

// newTestServices creates the full service stack over a temp SQLite store.
func newTestServices(t *testing.T) (*UserService, *ExpenseService, *BalanceService) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitledger-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return NewUserService(store), NewExpenseService(store), NewBalanceService(store)
}

func registerUser(t *testing.T, users *UserService, name, email string) *models.User {
	t.Helper()
	user, err := users.CreateUser(context.Background(), CreateUserInput{
		Name:         name,
		Email:        email,
		MobileNumber: "9876543210",
	})
	require.NoError(t, err)
	return user
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
