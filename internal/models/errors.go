package models

import "errors"

// ErrInvalidInput marks request data that fails domain validation: a
// non-positive amount, an unknown split type, split amounts that do not sum
// to the total, an empty participant set, and so on. Wrap it with context:
//
//	fmt.Errorf("%w: percentages must sum to 100", models.ErrInvalidInput)
var ErrInvalidInput = errors.New("invalid input")
