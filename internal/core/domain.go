package core

import (
	"errors"
	"strings"
)

const (
	VehicleNPS   Vehicle = "nps"
	VehicleIndex Vehicle = "index"
)

// Rejection messages. Callers match on these exact strings.
const (
	MsgNegativeAmount = "Negative amounts are not allowed"
	MsgDuplicate      = "Duplicate transaction"
	MsgAmountLimit    = "Amount exceeds maximum allowed limit"
	MsgExceedsWage    = "Transaction amount exceeds recorded wage"
)

// MaxAmount is the exclusive upper bound for a single expense.
const MaxAmount = 500000.0

type (
	// Vehicle is the investment product a projection is computed for.
	Vehicle string

	// Expense is a raw dated spend as received from the client.
	Expense struct {
		Date   string  `json:"date"`
		Amount float64 `json:"amount"`
	}

	// Transaction is an expense with its ceiling and remanent derived.
	Transaction struct {
		Date     string  `json:"date"`
		Amount   float64 `json:"amount"`
		Ceiling  float64 `json:"ceiling"`
		Remanent float64 `json:"remanent"`
	}

	InvalidTransaction struct {
		Transaction
		Message string `json:"message"`
	}

	ValidationInput struct {
		Wage         float64       `json:"wage"`
		Transactions []Transaction `json:"transactions"`
	}

	ValidationResult struct {
		Valid   []Transaction        `json:"valid"`
		Invalid []InvalidTransaction `json:"invalid"`
	}

	// TransactionInput is what filter and returns accept; ceiling and
	// remanent are tolerated on input but always recomputed.
	TransactionInput struct {
		Date     string   `json:"date"`
		Amount   float64  `json:"amount"`
		Ceiling  *float64 `json:"ceiling,omitempty"`
		Remanent *float64 `json:"remanent,omitempty"`
	}

	DateRange struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}

	// QPeriod replaces the remanent of every transaction inside the range.
	QPeriod struct {
		Fixed float64 `json:"fixed"`
		DateRange
	}

	// PPeriod adds Extra to the remanent of every transaction inside the range.
	PPeriod struct {
		Extra float64 `json:"extra"`
		DateRange
	}

	// KPeriod is a reporting bucket.
	KPeriod struct {
		DateRange
	}

	FilterInput struct {
		Q            []QPeriod          `json:"q"`
		P            []PPeriod          `json:"p"`
		K            []KPeriod          `json:"k"`
		Wage         float64            `json:"wage"`
		Transactions []TransactionInput `json:"transactions"`
	}

	FilteredTransaction struct {
		Date      string  `json:"date"`
		Amount    float64 `json:"amount"`
		Ceiling   float64 `json:"ceiling"`
		Remanent  float64 `json:"remanent"`
		InKPeriod bool    `json:"inkPeriod,omitempty"`
	}

	InvalidFilteredTransaction struct {
		Date    string  `json:"date"`
		Amount  float64 `json:"amount"`
		Message string  `json:"message"`
	}

	FilterResult struct {
		Valid   []FilteredTransaction        `json:"valid"`
		Invalid []InvalidFilteredTransaction `json:"invalid"`
	}

	ReturnsInput struct {
		Age          int                `json:"age"`
		Wage         float64            `json:"wage"`
		Inflation    float64            `json:"inflation"`
		Q            []QPeriod          `json:"q"`
		P            []PPeriod          `json:"p"`
		K            []KPeriod          `json:"k"`
		Transactions []TransactionInput `json:"transactions"`
	}

	SavingsByDate struct {
		Start      string  `json:"start"`
		End        string  `json:"end"`
		Amount     float64 `json:"amount"`
		Profit     float64 `json:"profit"`
		TaxBenefit float64 `json:"taxBenefit"`
	}

	ReturnsResult struct {
		TotalTransactionAmount float64         `json:"totalTransactionAmount"`
		TotalCeiling           float64         `json:"totalCeiling"`
		SavingsByDates         []SavingsByDate `json:"savingsByDates"`
	}
)

var ErrUnknownVehicle = errors.New("unknown investment vehicle")

// ParseVehicle accepts the canonical names plus "pension" as an alias of nps.
func ParseVehicle(s string) (Vehicle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nps", "pension":
		return VehicleNPS, nil
	case "index":
		return VehicleIndex, nil
	default:
		return "", ErrUnknownVehicle
	}
}

// InterestRate is the nominal annual rate assumed for the vehicle.
func (v Vehicle) InterestRate() float64 {
	if v == VehicleNPS {
		return 0.0711
	}
	return 0.1449
}

// TaxDeductible reports whether contributions reduce taxable income.
func (v Vehicle) TaxDeductible() bool {
	return v == VehicleNPS
}

func (v Vehicle) String() string {
	return string(v)
}
