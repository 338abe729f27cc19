package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	got := Parse([]Expense{
		{Date: "2021-10-01 20:15:00", Amount: 1519},
		{Date: "2023-10-12 20:15:30", Amount: 250},
	})

	require.Len(t, got, 2)
	assert.Equal(t, Transaction{Date: "2021-10-01 20:15:00", Amount: 1519, Ceiling: 1600, Remanent: 81}, got[0])
	assert.Equal(t, Transaction{Date: "2023-10-12 20:15:30", Amount: 250, Ceiling: 300, Remanent: 50}, got[1])
}

func TestParseEmpty(t *testing.T) {
	got := Parse(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestValidateSeparatesValidAndInvalid(t *testing.T) {
	res := Validate(50000, []Transaction{
		{Date: "2023-01-15 10:30:00", Amount: 2000, Ceiling: 2100, Remanent: 100},
		{Date: "2023-01-15 10:30:00", Amount: 250, Ceiling: 300, Remanent: 50},
		{Date: "2023-12-17 08:09:45", Amount: -480, Ceiling: -400, Remanent: 80},
		{Date: "2023-07-10 09:15:00", Amount: 250, Ceiling: 200, Remanent: 30},
	})

	require.Len(t, res.Valid, 1)
	require.Len(t, res.Invalid, 3)
	assert.Equal(t, 2000.0, res.Valid[0].Amount)

	var messages []string
	for _, inv := range res.Invalid {
		messages = append(messages, inv.Message)
	}
	assert.Equal(t, []string{MsgDuplicate, MsgNegativeAmount, MsgNegativeAmount}, messages)
	assert.Equal(t, 250.0, res.Invalid[0].Amount)
	assert.Equal(t, 300.0, res.Invalid[0].Ceiling)
}

func TestValidateRuleOrder(t *testing.T) {
	tests := []struct {
		name string
		wage float64
		txs  []Transaction
		want []string
	}{
		{
			name: "negative reported before duplicate",
			wage: 50000,
			txs: []Transaction{
				{Date: "2023-01-01 00:00:00", Amount: 100, Ceiling: 100, Remanent: 0},
				{Date: "2023-01-01 00:00:00", Amount: -1, Ceiling: 0, Remanent: 1},
			},
			want: []string{MsgNegativeAmount},
		},
		{
			name: "negative remanent",
			wage: 50000,
			txs:  []Transaction{{Date: "2023-01-01 00:00:00", Amount: 100, Ceiling: 100, Remanent: -1}},
			want: []string{MsgNegativeAmount},
		},
		{
			name: "amount limit before wage",
			wage: 100,
			txs:  []Transaction{{Date: "2023-01-01 00:00:00", Amount: 500000, Ceiling: 500000, Remanent: 0}},
			want: []string{MsgAmountLimit},
		},
		{
			name: "exceeds wage",
			wage: 100,
			txs:  []Transaction{{Date: "2023-01-01 00:00:00", Amount: 150, Ceiling: 200, Remanent: 50}},
			want: []string{MsgExceedsWage},
		},
		{
			name: "amount equal to wage is accepted",
			wage: 150,
			txs:  []Transaction{{Date: "2023-01-01 00:00:00", Amount: 150, Ceiling: 200, Remanent: 50}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.wage, tt.txs)
			var got []string
			for _, inv := range res.Invalid {
				got = append(got, inv.Message)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateRejectedDateDoesNotBlockLater(t *testing.T) {
	res := Validate(50000, []Transaction{
		{Date: "2023-05-05 10:00:00", Amount: -20, Ceiling: 0, Remanent: 20},
		{Date: "2023-05-05 10:00:00", Amount: 120, Ceiling: 200, Remanent: 80},
	})

	require.Len(t, res.Valid, 1)
	assert.Equal(t, 120.0, res.Valid[0].Amount)
	require.Len(t, res.Invalid, 1)
	assert.Equal(t, MsgNegativeAmount, res.Invalid[0].Message)
}

func TestValidateDuplicateKeepsFirst(t *testing.T) {
	res := Validate(50000, Parse([]Expense{
		{Date: "2023-03-03 03:03:03", Amount: 10},
		{Date: "2023-03-03 03:03:03", Amount: 20},
	}))

	require.Len(t, res.Valid, 1)
	assert.Equal(t, 10.0, res.Valid[0].Amount)
	require.Len(t, res.Invalid, 1)
	assert.Equal(t, 20.0, res.Invalid[0].Amount)
	assert.Equal(t, MsgDuplicate, res.Invalid[0].Message)
}
