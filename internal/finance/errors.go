package finance

import "errors"

var (
	// ErrInvalidPayment is returned when a partial payment is non-positive or exceeds the outstanding balance.
	ErrInvalidPayment = errors.New("invalid payment amount")
	// ErrInvalidFinancialYear is returned when a financial year does not end after it starts.
	ErrInvalidFinancialYear = errors.New("financial year end date must be after start date")
	// ErrUnknownCategory is returned for statement categories outside All/Savings/Loans/Shares.
	ErrUnknownCategory = errors.New("unknown statement category")
)
