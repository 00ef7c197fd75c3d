package minibank

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrCorruptStore marks a persisted snapshot that exists but cannot be
	// parsed into valid account records.
	ErrCorruptStore = errors.New("account store is corrupt")

	// ErrPersistence marks a failed snapshot write. The change that
	// triggered the write must not be assumed durable.
	ErrPersistence = errors.New("account store write failed")
)

type ErrValidation struct {
	Fields map[string]string
}

func (e ErrValidation) Error() string {
	return fmt.Sprintf("missing/invalid input: %v", e.Fields)
}

type ErrDuplicateAccount struct {
	Name string
}

func (e ErrDuplicateAccount) Error() string {
	return fmt.Sprintf("an account named %q already exists", e.Name)
}

type ErrNotFound struct {
	Name string
}

func (e ErrNotFound) Error() string {
	return "account not found"
}

type ErrInsufficientFunds struct {
	Balance   decimal.Decimal
	Requested decimal.Decimal
}

func (e ErrInsufficientFunds) Error() string {
	return fmt.Sprintf("insufficient funds: balance %s, requested %s", e.Balance, e.Requested)
}
