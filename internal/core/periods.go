package core

// bestQ picks the override period for date: the matching period with the
// latest start, ties going to the lowest index in q.
func bestQ(date string, q []QPeriod) (QPeriod, bool) {
	best := -1
	for i, period := range q {
		if !period.Contains(date) {
			continue
		}
		// Strictly greater keeps the earlier index on equal starts.
		if best < 0 || period.Start > q[best].Start {
			best = i
		}
	}
	if best < 0 {
		return QPeriod{}, false
	}
	return q[best], true
}

// extraFor sums the additions of every p period containing date.
func extraFor(date string, p []PPeriod) float64 {
	var extras []float64
	for _, period := range p {
		if period.Contains(date) {
			extras = append(extras, period.Extra)
		}
	}
	return sum(extras...)
}

func inAnyK(date string, k []KPeriod) bool {
	for _, period := range k {
		if period.Contains(date) {
			return true
		}
	}
	return false
}

// applyPeriods returns the remanent of a transaction dated date once the q
// override and the p additions have been applied, in that order.
func applyPeriods(date string, remanent float64, q []QPeriod, p []PPeriod) float64 {
	if override, ok := bestQ(date, q); ok {
		remanent = override.Fixed
	}
	return sum(remanent, extraFor(date, p))
}

// acceptanceRules are shared by Filter and ComputeReturns: reject negative
// amounts, then dates accepted earlier in the same call.
func acceptanceRules(seen map[string]struct{}) []rule[TransactionInput] {
	return []rule[TransactionInput]{
		{
			reject:  func(tx TransactionInput) bool { return tx.Amount < 0 },
			message: MsgNegativeAmount,
		},
		{
			reject: func(tx TransactionInput) bool {
				_, dup := seen[tx.Date]
				return dup
			},
			message: MsgDuplicate,
		},
	}
}
