package currency

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrUnknownCurrency is returned when a conversion involves a currency
// code with no registered rate. Use with errors.Is.
var ErrUnknownCurrency = errors.New("unknown currency code")

// Converter converts amounts between currencies through a single base
// currency. Rates are base units per one unit of the keyed currency,
// so converting X to Y is always toBase(X) then fromBase(Y) and the
// cross-rate is consistent regardless of which pair is requested.
type Converter struct {
	base  string
	rates map[string]decimal.Decimal
}

// NewConverter creates a converter with the given base code and rate
// table. The base currency itself always has an implicit rate of 1.
func NewConverter(base string, rates map[string]decimal.Decimal) *Converter {
	table := make(map[string]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		table[code] = rate
	}
	table[base] = decimal.NewFromInt(1)
	return &Converter{base: base, rates: table}
}

// Base returns the base currency code.
func (c *Converter) Base() string {
	return c.base
}

// Known reports whether a rate is registered for the code.
func (c *Converter) Known(code string) bool {
	_, ok := c.rates[code]
	return ok
}

// Convert converts an amount between two currencies. Same-currency
// conversions are identity operations and never touch the rate table,
// so they carry no rounding drift. Unknown codes fail with
// ErrUnknownCurrency rather than defaulting.
func (c *Converter) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	fromRate, ok := c.rates[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCurrency, from)
	}
	toRate, ok := c.rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCurrency, to)
	}

	if amount.IsZero() {
		return decimal.Zero, nil
	}

	inBase := amount.Mul(fromRate)
	return inBase.Div(toRate), nil
}

// Format renders an amount with the currency symbol conventions of the
// given BCP 47 locale. Any failure (unparseable locale, non-ISO code)
// falls back to the plain "<amount> <code>" form instead of erroring,
// because formatting sits on display paths.
func (c *Converter) Format(amount decimal.Decimal, code, locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return plainFormat(amount, code)
	}
	unit, err := xcurrency.ParseISO(code)
	if err != nil {
		return plainFormat(amount, code)
	}

	value, _ := amount.Float64()
	p := message.NewPrinter(tag)
	return p.Sprintf("%v", xcurrency.Symbol(unit.Amount(value)))
}

func plainFormat(amount decimal.Decimal, code string) string {
	return fmt.Sprintf("%s %s", amount.String(), code)
}
