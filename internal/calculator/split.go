// Package calculator holds the pure money math: splitting an expense total
// across participants and aggregating balances over a ledger. Nothing here
// touches storage or performs I/O.
package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeSplits turns (total, split type, participants, per-participant
// inputs) into one ExpenseSplit per participant, in participant input order.
//
// The sum of the produced amounts always equals total exactly. EQUAL and
// PERCENT division happens in whole cents rounded down, and any leftover
// cents are handed out one per participant starting from the first in input
// order. The rule is deterministic: the same inputs always produce the same
// splits.
//
// All failures wrap models.ErrInvalidInput.
func ComputeSplits(total decimal.Decimal, splitType models.SplitType, participants []string, inputs []models.SplitInput) ([]models.ExpenseSplit, error) {
	if len(participants) == 0 {
		return nil, fmt.Errorf("%w: at least one participant is required", models.ErrInvalidInput)
	}
	if err := checkDuplicates(participants); err != nil {
		return nil, err
	}

	totalCents, err := toCents(total, "amount")
	if err != nil {
		return nil, err
	}
	if totalCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", models.ErrInvalidInput)
	}

	switch splitType {
	case models.SplitEqual:
		return equalSplits(totalCents, participants), nil
	case models.SplitExact:
		return exactSplits(totalCents, participants, inputs)
	case models.SplitPercent:
		return percentSplits(totalCents, participants, inputs)
	default:
		return nil, fmt.Errorf("%w: unknown split type %q", models.ErrInvalidInput, splitType)
	}
}

// equalSplits gives every participant total/n cents rounded down, then one
// extra cent each to the first (total mod n) participants.
func equalSplits(totalCents int64, participants []string) []models.ExpenseSplit {
	n := int64(len(participants))
	base := totalCents / n
	leftover := totalCents % n

	splits := make([]models.ExpenseSplit, len(participants))
	for i, userID := range participants {
		cents := base
		if int64(i) < leftover {
			cents++
		}
		splits[i] = models.ExpenseSplit{UserID: userID, Amount: fromCents(cents)}
	}
	return splits
}

// exactSplits validates caller-provided amounts: one per participant,
// non-negative, summing exactly to the total.
func exactSplits(totalCents int64, participants []string, inputs []models.SplitInput) ([]models.ExpenseSplit, error) {
	byUser, err := indexInputs(participants, inputs)
	if err != nil {
		return nil, err
	}

	splits := make([]models.ExpenseSplit, len(participants))
	var sum int64
	for i, userID := range participants {
		cents, err := toCents(byUser[userID].Amount, "split amount")
		if err != nil {
			return nil, err
		}
		if cents < 0 {
			return nil, fmt.Errorf("%w: split amount for user %s must not be negative", models.ErrInvalidInput, userID)
		}
		sum += cents
		splits[i] = models.ExpenseSplit{UserID: userID, Amount: fromCents(cents)}
	}

	if sum != totalCents {
		return nil, fmt.Errorf("%w: sum of splits %s must equal total amount %s",
			models.ErrInvalidInput, fromCents(sum), fromCents(totalCents))
	}
	return splits, nil
}

// percentSplits validates that percentages sum to exactly 100, converts each
// share to cents rounded down, and distributes the rounding leftover one cent
// per participant in input order.
func percentSplits(totalCents int64, participants []string, inputs []models.SplitInput) ([]models.ExpenseSplit, error) {
	byUser, err := indexInputs(participants, inputs)
	if err != nil {
		return nil, err
	}

	percentSum := decimal.Zero
	for _, userID := range participants {
		p := byUser[userID].Percent
		if p.IsNegative() {
			return nil, fmt.Errorf("%w: percentage for user %s must not be negative", models.ErrInvalidInput, userID)
		}
		percentSum = percentSum.Add(p)
	}
	if !percentSum.Equal(oneHundred) {
		return nil, fmt.Errorf("%w: percentages must sum to 100, got %s", models.ErrInvalidInput, percentSum)
	}

	total := decimal.New(totalCents, 0)
	cents := make([]int64, len(participants))
	var allocated int64
	for i, userID := range participants {
		// share of the total in cents, rounded down; dividing by 100 is a
		// decimal shift, so the computation stays exact
		cents[i] = total.Mul(byUser[userID].Percent).Shift(-2).IntPart()
		allocated += cents[i]
	}

	// leftover is bounded by the participant count, one cent each
	for i := 0; allocated < totalCents; i++ {
		cents[i]++
		allocated++
	}

	splits := make([]models.ExpenseSplit, len(participants))
	for i, userID := range participants {
		splits[i] = models.ExpenseSplit{UserID: userID, Amount: fromCents(cents[i])}
	}
	return splits, nil
}

// indexInputs maps inputs by user and checks they cover the participant set
// exactly: no missing entries, no duplicates, no strangers.
func indexInputs(participants []string, inputs []models.SplitInput) (map[string]models.SplitInput, error) {
	known := make(map[string]struct{}, len(participants))
	for _, userID := range participants {
		known[userID] = struct{}{}
	}

	byUser := make(map[string]models.SplitInput, len(inputs))
	for _, in := range inputs {
		if _, ok := known[in.UserID]; !ok {
			return nil, fmt.Errorf("%w: split provided for non-participant %s", models.ErrInvalidInput, in.UserID)
		}
		if _, dup := byUser[in.UserID]; dup {
			return nil, fmt.Errorf("%w: duplicate split for user %s", models.ErrInvalidInput, in.UserID)
		}
		byUser[in.UserID] = in
	}

	for _, userID := range participants {
		if _, ok := byUser[userID]; !ok {
			return nil, fmt.Errorf("%w: missing split for participant %s", models.ErrInvalidInput, userID)
		}
	}
	return byUser, nil
}

func checkDuplicates(participants []string) error {
	seen := make(map[string]struct{}, len(participants))
	for _, userID := range participants {
		if _, dup := seen[userID]; dup {
			return fmt.Errorf("%w: duplicate participant %s", models.ErrInvalidInput, userID)
		}
		seen[userID] = struct{}{}
	}
	return nil
}

// toCents converts a two-decimal amount to whole cents. Amounts with more
// than two decimal places are rejected rather than silently rounded.
func toCents(d decimal.Decimal, field string) (int64, error) {
	shifted := d.Shift(2)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("%w: %s must have at most two decimal places", models.ErrInvalidInput, field)
	}
	return shifted.IntPart(), nil
}

func fromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
