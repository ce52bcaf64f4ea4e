// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/document-template-engine/backend/internal/render"
)

/*
TestCurrencyToWords covers gender agreement (одна тысяча / один миллион),
ruble form selection by the last digits, and the numeric kopeck tail.
*/
func TestCurrencyToWords(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"1.00", "один рубль, 00 копеек"},
		{"2", "два рубля, 00 копеек"},
		{"3.24", "три рубля, 24 копейки"},
		{"4", "четыре рубля, 00 копеек"},
		{"5", "пять рублей, 00 копеек"},
		{"6", "шесть рублей, 00 копеек"},
		{"7", "семь рублей, 00 копеек"},
		{"1021", "одна тысяча двадцать один рубль, 00 копеек"},
		{"2135", "две тысячи сто тридцать пять рублей, 00 копеек"},
		{"1001000", "один миллион одна тысяча рублей, 00 копеек"},
		{"1000000001", "один миллиард один рубль, 00 копеек"},
		{"0", "ноль рублей, 00 копеек"},
		{"11", "одиннадцать рублей, 00 копеек"},
		{"100.01", "сто рублей, 01 копейка"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got, err := render.CurrencyToWords(tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrencyToWords_FractionNormalization(t *testing.T) {
	// One fractional digit means tens of kopecks.
	got, err := render.CurrencyToWords("3.2")
	require.NoError(t, err)
	assert.Equal(t, "три рубля, 20 копеек", got)

	// Extra precision is truncated.
	got, err = render.CurrencyToWords("3.249")
	require.NoError(t, err)
	assert.Equal(t, "три рубля, 24 копейки", got)

	// Comma works as a decimal separator too.
	got, err = render.CurrencyToWords("3,24")
	require.NoError(t, err)
	assert.Equal(t, "три рубля, 24 копейки", got)
}

func TestCurrencyToWords_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		amount string
	}{
		{"empty", ""},
		{"not_a_number", "сто"},
		{"negative", "-5"},
		{"too_large", "1000000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := render.CurrencyToWords(tt.amount)
			assert.Error(t, err)
		})
	}
}
