package money

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruenderwerk/businessplan-backend/internal/domain"
)

func TestFormatEUR(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1234.56", "1.234,56 €"},
		{"0", "0,00 €"},
		{"7.5", "7,50 €"},
		{"999", "999,00 €"},
		{"1000", "1.000,00 €"},
		{"40500", "40.500,00 €"},
		{"1234567.89", "1.234.567,89 €"},
		{"-1234.56", "-1.234,56 €"},
	}

	for _, tc := range cases {
		in, err := decimal.NewFromString(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, FormatEUR(in), "FormatEUR(%s)", tc.in)
	}
}

func TestParseEUR(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.234,56 €", "1234.56"},
		{"1234,56 €", "1234.56"}, // missing thousands separator
		{"1.234,56", "1234.56"},  // missing euro sign
		{"999,00 €", "999"},
		{"0,00 €", "0"},
		{"-1.234,56 €", "-1234.56"},
		{"1.234.567,89 €", "1234567.89"},
	}

	for _, tc := range cases {
		want, err := decimal.NewFromString(tc.want)
		require.NoError(t, err)

		got, err := ParseEUR(tc.in)
		require.NoError(t, err, "ParseEUR(%q)", tc.in)
		assert.True(t, want.Equal(got), "ParseEUR(%q) = %s, want %s", tc.in, got, want)
	}
}

func TestParseEUR_RejectsMalformedInput(t *testing.T) {
	for _, in := range []string{"", "€", "abc", "1,2345 €"} {
		_, err := ParseEUR(in)
		require.Error(t, err, "ParseEUR(%q)", in)
		assert.True(t, domain.IsValidationError(err))
	}
}

func TestFormatEUR_RoundTrip(t *testing.T) {
	// deterministic seed: identical inputs must yield identical outputs
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		cents := rng.Int63n(2_000_000_000) - 1_000_000_000
		original := decimal.New(cents, -2)

		parsed, err := ParseEUR(FormatEUR(original))
		require.NoError(t, err)
		assert.True(t, original.Equal(parsed), "round trip of %s via %q", original, FormatEUR(original))
	}
}
