package services

import (
	"testing"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGLValidator_ValidateLines(t *testing.T) {
	v := NewGLValidator()
	line := func(account, debit, credit string) domain.GLLine {
		return domain.GLLine{AccountID: account, Debit: dec(debit), Credit: dec(credit)}
	}

	t.Run("numbers lines and totals", func(t *testing.T) {
		out, debit, credit, err := v.ValidateLines([]domain.GLLine{
			line("a", "10.50", "0"),
			line("b", "0", "4.25"),
			line("c", "0", "6.25"),
		})
		require.NoError(t, err)
		assert.True(t, debit.Equal(dec("10.50")))
		assert.True(t, credit.Equal(dec("10.50")))
		for i, l := range out {
			assert.Equal(t, i+1, l.LineNo)
		}
	})

	tests := []struct {
		name  string
		lines []domain.GLLine
	}{
		{"empty", nil},
		{"unbalanced", []domain.GLLine{line("a", "10", "0"), line("b", "0", "9.99")}},
		{"both sides", []domain.GLLine{line("a", "5", "5")}},
		{"neither side", []domain.GLLine{line("a", "0", "0"), line("b", "0", "0")}},
		{"negative", []domain.GLLine{line("a", "-5", "0"), line("b", "0", "-5")}},
		{"no account", []domain.GLLine{line("", "5", "0"), line("b", "0", "5")}},
		{"sub-cent", []domain.GLLine{line("a", "5.001", "0"), line("b", "0", "5.001")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := v.ValidateLines(tt.lines)
			assert.ErrorIs(t, err, apperrors.ErrLedgerImbalance)
			assert.ErrorIs(t, err, apperrors.ErrInvariant)
		})
	}
}

func TestGLValidator_ImbalanceReportsTotals(t *testing.T) {
	_, _, _, err := NewGLValidator().ValidateLines([]domain.GLLine{
		{AccountID: "a", Debit: dec("10"), Credit: decimal.Zero},
		{AccountID: "b", Debit: decimal.Zero, Credit: dec("7")},
	})
	var imbalance *apperrors.LedgerImbalanceError
	require.ErrorAs(t, err, &imbalance)
	assert.True(t, imbalance.TotalDebit.Equal(dec("10")))
	assert.True(t, imbalance.TotalCredit.Equal(dec("7")))
}
