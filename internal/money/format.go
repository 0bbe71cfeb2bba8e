package money

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gruenderwerk/businessplan-backend/internal/domain"
)

// FormatEUR renders an amount in the German locale expected by BA documents:
// thousands separated by '.', decimal comma, always two fraction digits and a
// trailing euro sign, e.g. "1.234,56 €".
func FormatEUR(d decimal.Decimal) string {
	fixed := Round2(d).StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	intPart := fixed[:len(fixed)-3]
	fracPart := fixed[len(fixed)-2:]

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	b.WriteString(" €")
	return b.String()
}

// ParseEUR is the inverse of FormatEUR for values with at most two fraction
// digits. It tolerates a missing euro sign and missing thousands separators.
func ParseEUR(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimSuffix(cleaned, "€")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero, domain.NewValidationError("betrag", "empty amount")
	}

	// German notation: '.' groups thousands, ',' is the decimal separator.
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, domain.NewValidationError("betrag", "not a valid amount: "+s)
	}
	if d.Exponent() < -2 {
		return decimal.Zero, domain.NewValidationError("betrag", "more than two fraction digits: "+s)
	}
	return d, nil
}
