// Package core implements the round-up savings engine.
//
// This file contains the monetary primitives shared by every operation:
// rounding an amount up to the next hundred, deriving the remanent and
// rounding values for emission.
package core

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Ceiling rounds amount up to the nearest multiple of 100.
//
// Examples:
//
//	Ceiling(1519) -> 1600
//	Ceiling(250)  -> 300
//	Ceiling(300)  -> 300
func Ceiling(amount float64) float64 {
	c, _ := decimal.NewFromFloat(amount).Div(hundred).Ceil().Mul(hundred).Float64()
	return c
}

// Remanent returns Ceiling(amount) - amount. The subtraction is carried out
// in decimal so that 300 - 250.3 yields 49.7 rather than 49.69999999999999.
func Remanent(amount float64) float64 {
	c := decimal.NewFromFloat(Ceiling(amount))
	r, _ := c.Sub(decimal.NewFromFloat(amount)).Float64()
	return r
}

// Round2 rounds the exact binary value of x to two decimal places, ties to
// even. 0.125 becomes 0.12 and 2.675, stored as 2.67499..., becomes 2.67.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	exact := new(big.Rat).SetFloat64(x)
	d := decimal.NewFromBigInt(exact.Num(), 0).DivRound(decimal.NewFromBigInt(exact.Denom(), 0), 40)
	r, _ := d.RoundBank(2).Float64()
	return r
}

// sum adds values in decimal to keep totals free of binary drift.
func sum(values ...float64) float64 {
	acc := decimal.Zero
	for _, v := range values {
		acc = acc.Add(decimal.NewFromFloat(v))
	}
	f, _ := acc.Float64()
	return f
}
