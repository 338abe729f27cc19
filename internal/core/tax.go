package core

import "math"

// taxSlab taxes the part of income above Lower at Rate. Slabs are applied
// from the top down, each capping income at its own lower bound.
type taxSlab struct {
	Lower float64
	Rate  float64
}

// incomeTaxSlabs is the simplified progressive table; income up to 700,000
// is untaxed.
var incomeTaxSlabs = []taxSlab{
	{Lower: 1500000, Rate: 0.30},
	{Lower: 1200000, Rate: 0.20},
	{Lower: 1000000, Rate: 0.15},
	{Lower: 700000, Rate: 0.10},
}

const (
	// deductionIncomeShare caps the pension deduction at 10% of annual income.
	deductionIncomeShare = 0.10
	// deductionCap is the absolute pension deduction limit.
	deductionCap = 200000.0
)

// IncomeTax computes the tax owed on an annual income.
func IncomeTax(income float64) float64 {
	var tax float64
	for _, slab := range incomeTaxSlabs {
		if income > slab.Lower {
			tax += (income - slab.Lower) * slab.Rate
			income = slab.Lower
		}
	}
	return tax
}

// TaxBenefit is the tax saved by deducting invested from the annual income
// derived from a monthly wage.
func TaxBenefit(wage, invested float64) float64 {
	annual := wage * 12
	deduction := math.Min(invested, math.Min(annual*deductionIncomeShare, deductionCap))
	return IncomeTax(annual) - IncomeTax(annual-deduction)
}
