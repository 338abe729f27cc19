package core

// Filter recomputes ceiling and remanent for each transaction and applies
// the q, p and k period rules. Negative and duplicate transactions are
// reported as invalid and skip all further processing.
func Filter(in FilterInput) FilterResult {
	res := FilterResult{
		Valid:   []FilteredTransaction{},
		Invalid: []InvalidFilteredTransaction{},
	}
	seen := make(map[string]struct{}, len(in.Transactions))
	rules := acceptanceRules(seen)

	for _, tx := range in.Transactions {
		if msg, failed := firstFailure(rules, tx); failed {
			res.Invalid = append(res.Invalid, InvalidFilteredTransaction{
				Date:    tx.Date,
				Amount:  tx.Amount,
				Message: msg,
			})
			continue
		}
		seen[tx.Date] = struct{}{}

		res.Valid = append(res.Valid, FilteredTransaction{
			Date:      tx.Date,
			Amount:    tx.Amount,
			Ceiling:   Ceiling(tx.Amount),
			Remanent:  applyPeriods(tx.Date, Remanent(tx.Amount), in.Q, in.P),
			InKPeriod: inAnyK(tx.Date, in.K),
		})
	}
	return res
}
