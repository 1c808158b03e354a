// Package models defines the core domain types for splitledger.
//
// The model is a flat ledger of three entities:
//   - User: a registered person who can pay for or participate in expenses
//   - Expense: an immutable record of money spent, split across participants
//   - ExpenseSplit: one participant's owed portion of one expense
//
// An Expense owns its splits: they are created together, persisted together,
// and removed together. A User is referenced by expenses (as payer) and by
// splits (as participant) but owns neither.
//
// All monetary amounts use shopspring decimals at two decimal places. Binary
// floating point never touches money anywhere in the module.
package models
