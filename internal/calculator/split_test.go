package calculator

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeSplits(t *testing.T) {
	tests := []struct {
		name         string
		total        string
		splitType    models.SplitType
		participants []string
		inputs       []models.SplitInput
		want         []string // expected amounts in participant order
		wantErr      bool
	}{
		{
			name:         "equal split divides evenly",
			total:        "90.00",
			splitType:    models.SplitEqual,
			participants: []string{"u1", "u2", "u3"},
			want:         []string{"30.00", "30.00", "30.00"},
		},
		{
			name:         "equal split assigns remainder cents to first participants",
			total:        "10.00",
			splitType:    models.SplitEqual,
			participants: []string{"u1", "u2", "u3"},
			want:         []string{"3.34", "3.33", "3.33"},
		},
		{
			name:         "equal split two remainder cents",
			total:        "1.00",
			splitType:    models.SplitEqual,
			participants: []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7"},
			want:         []string{"0.15", "0.15", "0.14", "0.14", "0.14", "0.14", "0.14"},
		},
		{
			name:         "equal split single participant",
			total:        "42.37",
			splitType:    models.SplitEqual,
			participants: []string{"u1"},
			want:         []string{"42.37"},
		},
		{
			name:         "equal split no participants",
			total:        "10.00",
			splitType:    models.SplitEqual,
			participants: []string{},
			wantErr:      true,
		},
		{
			name:         "equal split duplicate participant",
			total:        "10.00",
			splitType:    models.SplitEqual,
			participants: []string{"u1", "u1"},
			wantErr:      true,
		},
		{
			name:         "non-positive total",
			total:        "0.00",
			splitType:    models.SplitEqual,
			participants: []string{"u1"},
			wantErr:      true,
		},
		{
			name:         "total with more than two decimal places",
			total:        "10.001",
			splitType:    models.SplitEqual,
			participants: []string{"u1"},
			wantErr:      true,
		},
		{
			name:         "exact split matching total",
			total:        "100.00",
			splitType:    models.SplitExact,
			participants: []string{"u1", "u2"},
			inputs: []models.SplitInput{
				{UserID: "u1", Amount: dec("60.50")},
				{UserID: "u2", Amount: dec("39.50")},
			},
			want: []string{"60.50", "39.50"},
		},
		{
			name:         "exact split sum mismatch",
			total:        "100.00",
			splitType:    models.SplitExact,
			participants: []string{"u1", "u2"},
			inputs: []models.SplitInput{
				{UserID: "u1", Amount: dec("60.50")},
				{UserID: "u2", Amount: dec("39.49")},
			},
			wantErr: true,
		},
		{
			name:         "exact split missing participant value",
			total:        "100.00",
			splitType:    models.SplitExact,
			participants: []string{"u1", "u2"},
			inputs: []models.SplitInput{
				{UserID: "u1", Amount: dec("100.00")},
			},
			wantErr: true,
		},
		{
			name:         "exact split duplicate entry",
			total:        "100.00",
			splitType:    models.SplitExact,
			participants: []string{"u1", "u2"},
			inputs: []models.SplitInput{
				{UserID: "u1", Amount: dec("50.00")},
				{UserID: "u1", Amount: dec("50.00")},
			},
			wantErr: true,
		},
		{
			name:         "exact split entry for non-participant",
			total:        "100.00",
			splitType:    models.SplitExact,
			participants: []string{"u1"},
			inputs: []models.SplitInput{
				{UserID: "u2", Amount: dec("100.00")},
			},
			wantErr: true,
		},
		{
			name:         "exact split negative amount",
			total:        "100.00",
			splitType:    models.SplitExact,
			participants: []string{"u1", "u2"},
			inputs: []models.SplitInput{
				{UserID: "u1", Amount: dec("150.00")},
				{UserID: "u2", Amount: dec("-50.00")},
			},
			wantErr: true,
		},
		{
			name:         "exact split zero share allowed",
			total:        "100.00",
			splitType:    models.SplitExact,
			participants: []string{"u1", "u2"},
			inputs: []models.SplitInput{
				{UserID: "u1", Amount: dec("100.00")},
				{UserID: "u2", Amount: dec("0.00")},
			},
			want: []string{"100.00", "0.00"},
		},
		{
			name:         "percent split fifty fifty",
			total:        "50.00",
			splitType:    models.SplitPercent,
			participants: []string{"u1", "u2"},
			inputs: []models.SplitInput{
				{UserID: "u1", Percent: dec("50")},
				{UserID: "u2", Percent: dec("50")},
			},
			want: []string{"25.00", "25.00"},
		},
		{
			name:         "percent split sum below 100",
			total:        "50.00",
			splitType:    models.SplitPercent,
			participants: []string{"u1", "u2"},
			inputs: []models.SplitInput{
				{UserID: "u1", Percent: dec("50")},
				{UserID: "u2", Percent: dec("49")},
			},
			wantErr: true,
		},
		{
			name:         "percent split fractional percents",
			total:        "100.00",
			splitType:    models.SplitPercent,
			participants: []string{"u1", "u2", "u3"},
			inputs: []models.SplitInput{
				{UserID: "u1", Percent: dec("33.33")},
				{UserID: "u2", Percent: dec("33.33")},
				{UserID: "u3", Percent: dec("33.34")},
			},
			want: []string{"33.33", "33.33", "33.34"},
		},
		{
			name:         "percent split rounding drift goes to first participants",
			total:        "0.10",
			splitType:    models.SplitPercent,
			participants: []string{"u1", "u2", "u3"},
			inputs: []models.SplitInput{
				{UserID: "u1", Percent: dec("33")},
				{UserID: "u2", Percent: dec("33")},
				{UserID: "u3", Percent: dec("34")},
			},
			want: []string{"0.04", "0.03", "0.03"},
		},
		{
			name:         "percent split negative percent",
			total:        "50.00",
			splitType:    models.SplitPercent,
			participants: []string{"u1", "u2"},
			inputs: []models.SplitInput{
				{UserID: "u1", Percent: dec("150")},
				{UserID: "u2", Percent: dec("-50")},
			},
			wantErr: true,
		},
		{
			name:         "unknown split type",
			total:        "50.00",
			splitType:    models.SplitType("RANDOM"),
			participants: []string{"u1"},
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := ComputeSplits(dec(tt.total), tt.splitType, tt.participants, tt.inputs)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, models.ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeSplits failed: %v", err)
			}

			if len(splits) != len(tt.want) {
				t.Fatalf("got %d splits, want %d", len(splits), len(tt.want))
			}
			for i, want := range tt.want {
				if splits[i].UserID != tt.participants[i] {
					t.Errorf("split %d user = %s, want %s", i, splits[i].UserID, tt.participants[i])
				}
				if got := splits[i].Amount.StringFixed(2); got != want {
					t.Errorf("split %d amount = %s, want %s", i, got, want)
				}
			}

			assertSumEquals(t, splits, dec(tt.total))
		})
	}
}

// TestComputeSplits_SumInvariant fuzzes participant counts and totals and
// checks that every strategy's output sums exactly to the input total.
func TestComputeSplits_SumInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 500; trial++ {
		n := 1 + rng.Intn(50)
		totalCents := int64(1 + rng.Intn(1_000_000))
		total := decimal.New(totalCents, -2)

		participants := make([]string, n)
		for i := range participants {
			participants[i] = string(rune('A'+i%26)) + string(rune('a'+i/26))
		}

		splits, err := ComputeSplits(total, models.SplitEqual, participants, nil)
		if err != nil {
			t.Fatalf("equal split (n=%d total=%s) failed: %v", n, total, err)
		}
		assertSumEquals(t, splits, total)

		// random integer percent partition summing to exactly 100
		inputs := make([]models.SplitInput, n)
		remaining := int64(100)
		for i := range inputs {
			var p int64
			if i == n-1 {
				p = remaining
			} else {
				p = rng.Int63n(remaining + 1)
			}
			remaining -= p
			inputs[i] = models.SplitInput{UserID: participants[i], Percent: decimal.NewFromInt(p)}
		}
		splits, err = ComputeSplits(total, models.SplitPercent, participants, inputs)
		if err != nil {
			t.Fatalf("percent split (n=%d total=%s) failed: %v", n, total, err)
		}
		assertSumEquals(t, splits, total)
	}
}

func assertSumEquals(t *testing.T, splits []models.ExpenseSplit, total decimal.Decimal) {
	t.Helper()
	sum := decimal.Zero
	for _, s := range splits {
		if s.Amount.IsNegative() {
			t.Fatalf("negative split amount %s", s.Amount)
		}
		sum = sum.Add(s.Amount)
	}
	if !sum.Equal(total) {
		t.Fatalf("split sum = %s, want %s", sum, total)
	}
}
