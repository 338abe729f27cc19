package core

import "time"

// CalculationRecord is one stored returns calculation: the request as
// received and the result returned to the caller.
type CalculationRecord struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	Vehicle   Vehicle       `json:"vehicle"`
	Payload   ReturnsInput  `json:"payload"`
	Result    ReturnsResult `json:"result"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Sums adds up the per period figures of a result.
func (r ReturnsResult) Sums() (amount, profit, taxBenefit float64) {
	amounts := make([]float64, 0, len(r.SavingsByDates))
	profits := make([]float64, 0, len(r.SavingsByDates))
	benefits := make([]float64, 0, len(r.SavingsByDates))
	for _, s := range r.SavingsByDates {
		amounts = append(amounts, s.Amount)
		profits = append(profits, s.Profit)
		benefits = append(benefits, s.TaxBenefit)
	}
	return Round2(sum(amounts...)), Round2(sum(profits...)), Round2(sum(benefits...))
}
