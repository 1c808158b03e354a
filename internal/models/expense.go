package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitType selects how an expense total is divided among participants.
type SplitType string

const (
	// SplitEqual divides the total evenly across all participants.
	SplitEqual SplitType = "EQUAL"

	// SplitExact uses caller-provided per-participant amounts.
	SplitExact SplitType = "EXACT"

	// SplitPercent uses caller-provided per-participant percentages.
	SplitPercent SplitType = "PERCENT"
)

// Valid reports whether t is one of the supported split types.
func (t SplitType) Valid() bool {
	switch t {
	case SplitEqual, SplitExact, SplitPercent:
		return true
	}
	return false
}

// Expense represents money spent by one user on behalf of a set of
// participants. An expense is an immutable fact: once recorded it is never
// edited, and its splits always sum exactly to Amount.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is a short human-readable label, at most 255 characters.
	Description string

	// Amount is the total spent. Always positive, two decimal places.
	Amount decimal.Decimal

	// SplitType records how the amount was divided.
	SplitType SplitType

	// PaidBy is the ID of the user who paid.
	PaidBy string

	// Splits holds one row per participant. Persisted atomically with the
	// expense itself.
	Splits []ExpenseSplit

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Date returns the expense creation date in YYYY-MM-DD form.
func (e *Expense) Date() string {
	return time.Unix(e.CreatedAt, 0).UTC().Format("2006-01-02")
}

// ExpenseSplit is one participant's owed portion of one expense.
// A user appears at most once per expense, and amounts are never negative.
type ExpenseSplit struct {
	// UserID is the participant this split belongs to.
	UserID string

	// Amount is the portion of the expense total owed by the participant.
	Amount decimal.Decimal
}

// SplitInput carries per-participant strategy parameters for expense
// recording. EXACT splits set Amount; PERCENT splits set Percent. EQUAL
// splits need no inputs.
type SplitInput struct {
	UserID  string
	Amount  decimal.Decimal
	Percent decimal.Decimal
}
