package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriodExpression_Single(t *testing.T) {
	expr, err := ParsePeriodExpression("3")
	require.NoError(t, err)
	assert.Equal(t, PeriodSingle, expr.Kind)
	assert.Equal(t, "3", expr.Single)

	expr, err = ParsePeriodExpression("lunch")
	require.NoError(t, err)
	assert.Equal(t, PeriodSingle, expr.Kind)
}

func TestParsePeriodExpression_List(t *testing.T) {
	expr, err := ParsePeriodExpression("3,5,1")
	require.NoError(t, err)
	assert.Equal(t, PeriodList, expr.Kind)
	assert.Equal(t, []string{"3", "5", "1"}, expr.Tokens)
}

func TestParsePeriodExpression_Range(t *testing.T) {
	expr, err := ParsePeriodExpression("1-4")
	require.NoError(t, err)
	assert.Equal(t, PeriodRange, expr.Kind)
	assert.Equal(t, "1", expr.From)
	assert.Equal(t, "4", expr.To)
}

func TestParsePeriodExpression_Invalid(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"unknown token", "7"},
		{"unknown token in list", "1,2,zzz"},
		{"reversed range", "5-2"},
		{"dangling comma", "1,"},
		{"dangling dash", "3-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePeriodExpression(tt.expr)
			assert.Error(t, err)
		})
	}
}

func TestNormalizePeriodExpression(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{"3", []string{"3"}},
		{"3,1,5", []string{"1", "3", "5"}},
		{"3,3,3", []string{"3"}},
		{"1-4", []string{"1", "2", "3", "4"}},
		{"4-5", []string{"4", "lunch", "5"}},
		{"6-after", []string{"6", "after"}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := NormalizePeriodExpression(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortPeriods(t *testing.T) {
	tokens := []string{"after", "1", "lunch", "0", "5"}
	SortPeriods(tokens)
	assert.Equal(t, []string{"0", "1", "lunch", "5", "after"}, tokens)
}

func TestArePeriodsContiguous(t *testing.T) {
	assert.True(t, ArePeriodsContiguous([]string{"3"}))
	assert.True(t, ArePeriodsContiguous([]string{"1", "2", "3"}))
	// lunch стоит между "4" и "5" в порядке дня
	assert.True(t, ArePeriodsContiguous([]string{"4", "lunch", "5"}))
	assert.False(t, ArePeriodsContiguous([]string{"1", "3"}))
	assert.False(t, ArePeriodsContiguous([]string{"4", "5"}))
}

func TestValidatePeriods(t *testing.T) {
	assert.NoError(t, ValidatePeriods([]string{"1", "2"}))
	assert.Error(t, ValidatePeriods(nil))
	assert.Error(t, ValidatePeriods([]string{"1", "bogus"}))
	assert.Error(t, ValidatePeriods([]string{"2", "2"}))
}
