package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
)

func TestBalanceReport(t *testing.T) {
	users, expenses, balances := newTestServices(t)
	ctx := context.Background()

	alice := registerUser(t, users, "Alice", "alice@example.com")
	bob := registerUser(t, users, "Bob", "bob@example.com")
	carol := registerUser(t, users, "Carol", "carol@example.com")

	// Alice pays 60, split three ways; Bob pays 30, split with Carol.
	_, err := expenses.RecordExpense(ctx, RecordExpenseInput{
		Description:  "Dinner",
		Amount:       dec("60.00"),
		SplitType:    models.SplitEqual,
		PaidBy:       alice.ID,
		Participants: []string{alice.ID, bob.ID, carol.ID},
	})
	require.NoError(t, err)

	_, err = expenses.RecordExpense(ctx, RecordExpenseInput{
		Description:  "Museum",
		Amount:       dec("30.00"),
		SplitType:    models.SplitExact,
		PaidBy:       bob.ID,
		Participants: []string{bob.ID, carol.ID},
		Splits: []models.SplitInput{
			{UserID: bob.ID, Amount: dec("12.00")},
			{UserID: carol.ID, Amount: dec("18.00")},
		},
	})
	require.NoError(t, err)

	summary, err := balances.Report(ctx)
	require.NoError(t, err)

	assert.Equal(t, "90.00", summary.OverallTotal.StringFixed(2))
	require.Len(t, summary.Users, 3)

	byName := make(map[string]int)
	for i, ub := range summary.Users {
		byName[ub.User.Name] = i
	}

	a := summary.Users[byName["Alice"]]
	assert.Equal(t, "60.00", a.TotalPaid.StringFixed(2))
	assert.Equal(t, "20.00", a.TotalOwed.StringFixed(2))
	assert.Equal(t, "40.00", a.Balance.StringFixed(2))

	b := summary.Users[byName["Bob"]]
	assert.Equal(t, "30.00", b.TotalPaid.StringFixed(2))
	assert.Equal(t, "32.00", b.TotalOwed.StringFixed(2))
	assert.Equal(t, "-2.00", b.Balance.StringFixed(2))

	c := summary.Users[byName["Carol"]]
	assert.Equal(t, "0.00", c.TotalPaid.StringFixed(2))
	assert.Equal(t, "38.00", c.TotalOwed.StringFixed(2))
	assert.Equal(t, "-38.00", c.Balance.StringFixed(2))

	// every balance equals paid minus owed, exactly
	for _, ub := range summary.Users {
		assert.True(t, ub.Balance.Equal(ub.TotalPaid.Sub(ub.TotalOwed)), ub.User.Name)
	}
}

func TestBalanceReport_OverallTotalMatchesRecordedExpenses(t *testing.T) {
	users, expenses, balances := newTestServices(t)
	ctx := context.Background()

	alice := registerUser(t, users, "Alice", "alice@example.com")

	amounts := []string{"1.01", "2.02", "3.03", "44.44"}
	total := dec("0")
	for _, amount := range amounts {
		_, err := expenses.RecordExpense(ctx, RecordExpenseInput{
			Description:  "Item",
			Amount:       dec(amount),
			SplitType:    models.SplitEqual,
			PaidBy:       alice.ID,
			Participants: []string{alice.ID},
		})
		require.NoError(t, err)
		total = total.Add(dec(amount))
	}

	summary, err := balances.Report(ctx)
	require.NoError(t, err)
	assert.True(t, summary.OverallTotal.Equal(total),
		"overall total %s != recorded sum %s", summary.OverallTotal, total)
}

func TestBalanceRows(t *testing.T) {
	users, expenses, balances := newTestServices(t)
	ctx := context.Background()

	alice := registerUser(t, users, "Alice", "alice@example.com")
	bob := registerUser(t, users, "Bob", "bob@example.com")

	_, err := expenses.RecordExpense(ctx, RecordExpenseInput{
		Description:  "Lunch",
		Amount:       dec("21.00"),
		SplitType:    models.SplitEqual,
		PaidBy:       alice.ID,
		Participants: []string{alice.ID, bob.ID},
	})
	require.NoError(t, err)

	_, err = expenses.RecordExpense(ctx, RecordExpenseInput{
		Description:  "Snacks",
		Amount:       dec("5.00"),
		SplitType:    models.SplitEqual,
		PaidBy:       bob.ID,
		Participants: []string{bob.ID},
	})
	require.NoError(t, err)

	summary, err := balances.Report(ctx)
	require.NoError(t, err)

	rows := Rows(summary)
	require.Len(t, rows, 2)

	// rows mirror the structured report exactly
	for i, row := range rows {
		ub := summary.Users[i]
		assert.Equal(t, ub.User.Name, row.User)
		assert.True(t, row.TotalPaid.Equal(ub.TotalPaid))
		assert.True(t, row.TotalOwed.Equal(ub.TotalOwed))
		assert.True(t, row.Balance.Equal(ub.Balance))
	}

	assert.Equal(t, "Lunch: 10.50", rows[0].Breakdown)
	assert.Equal(t, "Lunch: 10.50; Snacks: 5.00", rows[1].Breakdown)
}
