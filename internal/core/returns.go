package core

import "math"

const (
	retirementAge = 60
	minHorizon    = 5
)

// investedTx is an accepted transaction reduced to what the k buckets need.
type investedTx struct {
	date     string
	remanent float64
}

// Horizon is the number of compounding years until retirement, never less
// than minHorizon.
func Horizon(age int) int {
	return max(retirementAge-age, minHorizon)
}

// ComputeReturns projects the inflation adjusted growth of the remanents
// swept into each k period. Negative and duplicate transactions are dropped
// silently; totals cover accepted transactions only and use the ceiling
// before any period rule.
func ComputeReturns(in ReturnsInput, vehicle Vehicle) ReturnsResult {
	years := float64(Horizon(in.Age))
	rate := vehicle.InterestRate()
	inflation := in.Inflation / 100

	var amounts, ceilings []float64
	invested := make([]investedTx, 0, len(in.Transactions))
	seen := make(map[string]struct{}, len(in.Transactions))
	rules := acceptanceRules(seen)

	for _, tx := range in.Transactions {
		if _, failed := firstFailure(rules, tx); failed {
			continue
		}
		seen[tx.Date] = struct{}{}

		amounts = append(amounts, tx.Amount)
		ceilings = append(ceilings, Ceiling(tx.Amount))
		invested = append(invested, investedTx{
			date:     tx.Date,
			remanent: applyPeriods(tx.Date, Remanent(tx.Amount), in.Q, in.P),
		})
	}

	compound := math.Pow(1+rate, years)
	deflate := math.Pow(1+inflation, years)

	savings := make([]SavingsByDate, 0, len(in.K))
	for _, k := range in.K {
		var inK []float64
		for _, tx := range invested {
			if k.Contains(tx.date) {
				inK = append(inK, tx.remanent)
			}
		}
		amount := sum(inK...)
		grown := amount * compound / deflate
		profit := grown - amount

		var benefit float64
		if vehicle.TaxDeductible() {
			benefit = TaxBenefit(in.Wage, amount)
		}

		savings = append(savings, SavingsByDate{
			Start:      k.Start,
			End:        k.End,
			Amount:     Round2(amount),
			Profit:     Round2(profit),
			TaxBenefit: Round2(benefit),
		})
	}

	return ReturnsResult{
		TotalTransactionAmount: Round2(sum(amounts...)),
		TotalCeiling:           Round2(sum(ceilings...)),
		SavingsByDates:         savings,
	}
}
