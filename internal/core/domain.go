package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// Income is money entering the account.
	Income TxnType = "income"
	// Expenses is money leaving the account. The stored enum value is
	// plural everywhere, including category aggregation.
	Expenses TxnType = "expenses"
)

type (
	TxnType string

	// Transaction is a single dated income or expense record owned by a user.
	// Date is a sortable YYYY-MM-DD string; rows coming straight from the
	// store may still carry a time-of-day suffix until NormalizeDates runs.
	Transaction struct {
		ID          int64
		UserID      int64
		Description string
		Category    string
		Type        TxnType
		Amount      Money
		Date        string
	}

	// User owns zero or more transactions.
	User struct {
		ID           int64
		Username     string
		PasswordHash string
		CreatedAt    time.Time
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyDescription = errors.New("empty description")
)

// ParseTxnType validates a raw form value against the canonical enum.
func ParseTxnType(s string) (TxnType, error) {
	switch TxnType(s) {
	case Income, Expenses:
		return TxnType(s), nil
	default:
		return "", ErrInvalidType
	}
}

func (t TxnType) Valid() bool {
	return t == Income || t == Expenses
}

func (tx Transaction) Validate() error {
	if len(strings.TrimSpace(tx.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(tx.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if !tx.Type.Valid() {
		return ErrInvalidType
	}
	if tx.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if _, err := time.Parse("2006-01-02", DateOnly(tx.Date)); err != nil {
		return ErrInvalidDate
	}
	return nil
}
