package models

// User represents a registered user of the ledger.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the display name of the user.
	Name string

	// Email is the user's email address. Unique across the ledger.
	Email string

	// MobileNumber is the user's phone number: digits only, optionally
	// prefixed with "+", 9 to 15 digits.
	MobileNumber string

	// CreatedAt is the Unix timestamp when the user was registered.
	CreatedAt int64
}
