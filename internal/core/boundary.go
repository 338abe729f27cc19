package core

import (
	"errors"
	"fmt"
)

// FieldError describes a single rejected field of a request body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// FieldErrors flattens an error produced by one of the Check functions back
// into its individual field errors.
func FieldErrors(err error) []*FieldError {
	if err == nil {
		return nil
	}
	var out []*FieldError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, FieldErrors(e)...)
		}
		return out
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return []*FieldError{fe}
	}
	return []*FieldError{{Field: "body", Message: err.Error()}}
}

// CheckExpenses enforces the parse boundary: strict timestamps and
// 0 <= amount < MaxAmount.
func CheckExpenses(expenses []Expense) error {
	var errs []error
	for i, e := range expenses {
		if err := ValidateTimestamp(e.Date); err != nil {
			errs = append(errs, &FieldError{Field: fmt.Sprintf("[%d].date", i), Message: ErrInvalidTimestamp.Error()})
		}
		if e.Amount < 0 || e.Amount >= MaxAmount {
			errs = append(errs, &FieldError{
				Field:   fmt.Sprintf("[%d].amount", i),
				Message: fmt.Sprintf("amount must be >= 0 and < %.0f", MaxAmount),
			})
		}
	}
	return errors.Join(errs...)
}

// CheckTransactions enforces strict timestamps on already parsed transactions.
func CheckTransactions(txs []Transaction) error {
	var errs []error
	for i, tx := range txs {
		if err := ValidateTimestamp(tx.Date); err != nil {
			errs = append(errs, &FieldError{Field: fmt.Sprintf("transactions[%d].date", i), Message: ErrInvalidTimestamp.Error()})
		}
	}
	return errors.Join(errs...)
}

// CheckPeriods enforces strict timestamps on transaction inputs and on the
// bounds of every q, p and k period.
func CheckPeriods(q []QPeriod, p []PPeriod, k []KPeriod, txs []TransactionInput) error {
	var errs []error
	checkRange := func(name string, i int, r DateRange) {
		if ValidateTimestamp(r.Start) != nil {
			errs = append(errs, &FieldError{Field: fmt.Sprintf("%s[%d].start", name, i), Message: ErrInvalidTimestamp.Error()})
		}
		if ValidateTimestamp(r.End) != nil {
			errs = append(errs, &FieldError{Field: fmt.Sprintf("%s[%d].end", name, i), Message: ErrInvalidTimestamp.Error()})
		}
	}
	for i, period := range q {
		checkRange("q", i, period.DateRange)
	}
	for i, period := range p {
		checkRange("p", i, period.DateRange)
	}
	for i, period := range k {
		checkRange("k", i, period.DateRange)
	}
	for i, tx := range txs {
		if ValidateTimestamp(tx.Date) != nil {
			errs = append(errs, &FieldError{Field: fmt.Sprintf("transactions[%d].date", i), Message: ErrInvalidTimestamp.Error()})
		}
	}
	return errors.Join(errs...)
}
