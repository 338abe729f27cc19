package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCeilingAndRemanent(t *testing.T) {
	cases := []struct {
		amount   float64
		ceiling  float64
		remanent float64
	}{
		{1519, 1600, 81},
		{250, 300, 50},
		{300, 300, 0},
		{0, 0, 0},
		{0.5, 100, 99.5},
		{250.3, 300, 49.7},
		{499999.99, 500000, 0.01},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ceiling, Ceiling(tc.amount), "ceiling of %v", tc.amount)
		assert.Equal(t, tc.remanent, Remanent(tc.amount), "remanent of %v", tc.amount)
	}
}

func TestRemanentStaysBelowHundred(t *testing.T) {
	for a := 0.0; a < MaxAmount; a += 997.37 {
		r := Remanent(a)
		assert.GreaterOrEqual(t, r, 0.0, "amount %v", a)
		assert.Less(t, r, 100.0, "amount %v", a)
		assert.InDelta(t, Ceiling(a)-a, r, 1e-6, "amount %v", a)
	}
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		86.8848376752461:   86.88,
		1684.5149810481555: 1684.51,
		1.005:              1.0,
		-2.345:             -2.35,
		0.125:              0.12,
		0.375:              0.38,
		2.675:              2.67,
		0:                  0,
		145:                145,
	}
	for in, want := range cases {
		assert.Equal(t, want, Round2(in), "Round2(%v)", in)
	}
}
