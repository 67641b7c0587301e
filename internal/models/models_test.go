package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartition_Counts(t *testing.T) {
	t.Run("empty partition", func(t *testing.T) {
		counts := Partition{}.Counts()
		assert.Equal(t, 0, counts.Matched)
		assert.Nil(t, counts.ByRule)
		assert.Equal(t, 0, counts.BankOnly)
		assert.Equal(t, 0, counts.InternalOnly)
	})

	t.Run("counts by rule", func(t *testing.T) {
		p := Partition{
			Matched: []MatchRecord{
				{Rule: "E2E=Invoice"},
				{Rule: "E2E=Invoice"},
				{Rule: "Amount±0.01, Date±0d"},
			},
			BankOnly:     []BankTransaction{{Index: 3}},
			InternalOnly: []InternalTransaction{{Index: 4}, {Index: 5}},
		}
		counts := p.Counts()
		assert.Equal(t, 3, counts.Matched)
		assert.Equal(t, 2, counts.ByRule["E2E=Invoice"])
		assert.Equal(t, 1, counts.ByRule["Amount±0.01, Date±0d"])
		assert.Equal(t, 1, counts.BankOnly)
		assert.Equal(t, 2, counts.InternalOnly)
	})
}

func TestDirection_IsDebit(t *testing.T) {
	assert.True(t, DirectionDebit.IsDebit())
	assert.False(t, DirectionCredit.IsDebit())
	assert.False(t, Direction("").IsDebit())
}

func TestBalanceCheck_OK(t *testing.T) {
	assert.True(t, BalanceCheck{Status: BalanceOK}.OK())
	assert.False(t, BalanceCheck{Status: BalanceMismatch}.OK())
	assert.False(t, BalanceCheck{Status: BalanceUndetermined}.OK())
}
