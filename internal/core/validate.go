package core

// rule is one entry of a first-match-wins rejection chain.
type rule[T any] struct {
	reject  func(T) bool
	message string
}

// firstFailure returns the message of the first rule rejecting v.
func firstFailure[T any](rules []rule[T], v T) (string, bool) {
	for _, r := range rules {
		if r.reject(v) {
			return r.message, true
		}
	}
	return "", false
}

// validationRules builds the validator chain in priority order. seen holds
// the dates of transactions accepted so far in the current call.
func validationRules(wage float64, seen map[string]struct{}) []rule[Transaction] {
	return []rule[Transaction]{
		{
			reject: func(tx Transaction) bool {
				return tx.Amount < 0 || tx.Remanent < 0 || tx.Ceiling < tx.Amount
			},
			message: MsgNegativeAmount,
		},
		{
			reject: func(tx Transaction) bool {
				_, dup := seen[tx.Date]
				return dup
			},
			message: MsgDuplicate,
		},
		{
			reject:  func(tx Transaction) bool { return tx.Amount >= MaxAmount },
			message: MsgAmountLimit,
		},
		{
			reject:  func(tx Transaction) bool { return tx.Amount > wage },
			message: MsgExceedsWage,
		},
	}
}

// Validate partitions parsed transactions into valid and invalid ones.
// Only accepted dates enter the duplicate set, so a rejected transaction
// never blocks a later one with the same date.
func Validate(wage float64, txs []Transaction) ValidationResult {
	res := ValidationResult{
		Valid:   []Transaction{},
		Invalid: []InvalidTransaction{},
	}
	seen := make(map[string]struct{}, len(txs))
	rules := validationRules(wage, seen)

	for _, tx := range txs {
		if msg, failed := firstFailure(rules, tx); failed {
			res.Invalid = append(res.Invalid, InvalidTransaction{Transaction: tx, Message: msg})
			continue
		}
		res.Valid = append(res.Valid, tx)
		seen[tx.Date] = struct{}{}
	}
	return res
}
