package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func challengeReturnsInput(wage float64) ReturnsInput {
	f := challengeFilterInput()
	return ReturnsInput{
		Age:       29,
		Wage:      wage,
		Inflation: 5.5,
		Q:         f.Q,
		P:         f.P,
		K:         f.K,
		Transactions: append(f.Transactions,
			TransactionInput{Date: "2023-10-12 20:15:30", Amount: 999},
			TransactionInput{Date: "2023-11-01 10:00:00", Amount: -10},
		),
	}
}

func TestComputeReturnsNPS(t *testing.T) {
	res := ComputeReturns(challengeReturnsInput(50000), VehicleNPS)

	assert.Equal(t, 1725.0, res.TotalTransactionAmount)
	assert.Equal(t, 1900.0, res.TotalCeiling)
	require.Len(t, res.SavingsByDates, 2)

	full := res.SavingsByDates[0]
	assert.Equal(t, "2023-01-01 00:00:00", full.Start)
	assert.Equal(t, "2023-12-31 23:59:59", full.End)
	assert.Equal(t, 145.0, full.Amount)
	assert.Equal(t, 86.88, full.Profit)
	assert.Equal(t, 0.0, full.TaxBenefit)

	partial := res.SavingsByDates[1]
	assert.Equal(t, 75.0, partial.Amount)
	assert.Equal(t, 44.94, partial.Profit)
}

func TestComputeReturnsIndexHasNoTaxBenefit(t *testing.T) {
	for _, wage := range []float64{0, 50000, 100000, 1000000} {
		res := ComputeReturns(challengeReturnsInput(wage), VehicleIndex)
		require.Len(t, res.SavingsByDates, 2)
		assert.Equal(t, 1684.51, res.SavingsByDates[0].Profit)
		for _, s := range res.SavingsByDates {
			assert.Equal(t, 0.0, s.TaxBenefit, "wage %v", wage)
		}
	}
}

func TestComputeReturnsTaxBenefit(t *testing.T) {
	res := ComputeReturns(challengeReturnsInput(100000), VehicleNPS)

	require.Len(t, res.SavingsByDates, 2)
	assert.Equal(t, 21.75, res.SavingsByDates[0].TaxBenefit)
	assert.Equal(t, 11.25, res.SavingsByDates[1].TaxBenefit)
}

func TestComputeReturnsHorizonFloor(t *testing.T) {
	in := challengeReturnsInput(50000)
	in.Age = 58
	res := ComputeReturns(in, VehicleNPS)

	require.NotEmpty(t, res.SavingsByDates)
	assert.Equal(t, 11.41, res.SavingsByDates[0].Profit)
}

func TestComputeReturnsDuplicateCountedOnce(t *testing.T) {
	res := ComputeReturns(ReturnsInput{
		Age:       30,
		Wage:      50000,
		Inflation: 0,
		K:         []KPeriod{{DateRange{Start: "2023-01-01 00:00:00", End: "2023-12-31 23:59:59"}}},
		Transactions: []TransactionInput{
			{Date: "2023-04-04 04:04:04", Amount: 40},
			{Date: "2023-04-04 04:04:04", Amount: 70},
		},
	}, VehicleIndex)

	assert.Equal(t, 40.0, res.TotalTransactionAmount)
	assert.Equal(t, 100.0, res.TotalCeiling)
	require.Len(t, res.SavingsByDates, 1)
	assert.Equal(t, 60.0, res.SavingsByDates[0].Amount)
}

func TestComputeReturnsWithoutKPeriods(t *testing.T) {
	res := ComputeReturns(ReturnsInput{
		Age:          40,
		Wage:         10000,
		Transactions: []TransactionInput{{Date: "2023-01-01 10:00:00", Amount: 10}},
	}, VehicleNPS)

	assert.Equal(t, 10.0, res.TotalTransactionAmount)
	assert.NotNil(t, res.SavingsByDates)
	assert.Empty(t, res.SavingsByDates)
}

func TestHorizon(t *testing.T) {
	assert.Equal(t, 31, Horizon(29))
	assert.Equal(t, 5, Horizon(55))
	assert.Equal(t, 5, Horizon(58))
	assert.Equal(t, 5, Horizon(75))
	assert.Equal(t, 6, Horizon(54))
}

func TestIncomeTax(t *testing.T) {
	cases := map[float64]float64{
		600000:  0,
		700000:  0,
		800000:  10000,
		1100000: 45000,
		1300000: 80000,
		2000000: 270000,
	}
	for income, want := range cases {
		assert.InDelta(t, want, IncomeTax(income), 1e-6, "income %v", income)
	}
}

func TestTaxBenefitDeductionCaps(t *testing.T) {
	// income below the first slab owes nothing either way
	assert.InDelta(t, 0.0, TaxBenefit(50000, 145), 1e-9)
	// absolute 200,000 cap
	assert.InDelta(t, 60000.0, TaxBenefit(1000000, 300000), 1e-6)
}

func TestParseVehicle(t *testing.T) {
	v, err := ParseVehicle("pension")
	require.NoError(t, err)
	assert.Equal(t, VehicleNPS, v)

	v, err = ParseVehicle("NPS")
	require.NoError(t, err)
	assert.Equal(t, VehicleNPS, v)

	v, err = ParseVehicle("index")
	require.NoError(t, err)
	assert.Equal(t, VehicleIndex, v)

	_, err = ParseVehicle("crypto")
	assert.ErrorIs(t, err, ErrUnknownVehicle)
}

func TestComputeReturnsRoundsExactTiesToEven(t *testing.T) {
	in := ReturnsInput{
		Age:          29,
		Wage:         50000,
		Inflation:    5.5,
		K:            []KPeriod{{DateRange{Start: "2023-01-01 00:00:00", End: "2023-12-31 23:59:59"}}},
		Transactions: []TransactionInput{{Date: "2023-10-12 20:15:30", Amount: 99.875}},
	}

	res := ComputeReturns(in, VehicleIndex)

	require.Len(t, res.SavingsByDates, 1)
	assert.Equal(t, 0.12, res.SavingsByDates[0].Amount)
}
