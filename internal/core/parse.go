package core

// Parse derives ceiling and remanent for every expense. It never drops or
// rejects an element; validity is decided later by Validate.
func Parse(expenses []Expense) []Transaction {
	out := make([]Transaction, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, newTransaction(e.Date, e.Amount))
	}
	return out
}

func newTransaction(date string, amount float64) Transaction {
	return Transaction{
		Date:     date,
		Amount:   amount,
		Ceiling:  Ceiling(amount),
		Remanent: Remanent(amount),
	}
}
