package money

import (
	"github.com/shopspring/decimal"

	"github.com/gruenderwerk/businessplan-backend/internal/domain"
)

// Context carries the decimal configuration for all calculators.
// It is constructed once at process start and passed by reference into every
// engine; the shopspring package-level settings are never touched, so
// concurrent workshops cannot corrupt each other's precision.
type Context struct {
	// DivisionPrecision is the number of fractional digits kept by Div.
	// Intermediate results keep full precision; only division rounds.
	DivisionPrecision int32
}

// NewContext returns a Context with the precision used across the product.
// 16 fractional digits keep every documented amount cent-exact after the
// final Round2.
func NewContext() *Context {
	return &Context{DivisionPrecision: 16}
}

// Add returns a + b
func (c *Context) Add(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b)
}

// Sub returns a - b
func (c *Context) Sub(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b)
}

// Mul returns a * b
func (c *Context) Mul(a, b decimal.Decimal) decimal.Decimal {
	return a.Mul(b)
}

// Div returns a / b rounded to the context's division precision.
// A zero divisor is a ValidationError, never a panic.
func (c *Context) Div(a, b decimal.Decimal) (decimal.Decimal, error) {
	if c == nil {
		panic("money: nil Context")
	}
	if b.IsZero() {
		return decimal.Zero, domain.NewValidationError("divisor", "division by zero")
	}
	return a.DivRound(b, c.DivisionPrecision), nil
}

// Pct returns pct percent of a. The division by 100 is a pure decimal shift,
// so the result is exact.
func (c *Context) Pct(a, pct decimal.Decimal) decimal.Decimal {
	return a.Mul(pct).Shift(-2)
}

// Round2 rounds to two decimals, half away from zero (kaufmännisches Runden).
// Every amount that leaves the core goes through this.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CheckPercentRange validates that p lies inside [min, max]
func CheckPercentRange(field string, p, min, max decimal.Decimal) error {
	if p.LessThan(min) || p.GreaterThan(max) {
		return domain.NewValidationError(field, "percentage outside allowed range")
	}
	return nil
}

// CheckNonNegative validates that the amount is not negative
func CheckNonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return domain.NewValidationError(field, "amount must not be negative")
	}
	return nil
}
