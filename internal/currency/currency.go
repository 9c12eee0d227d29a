// Package currency converts an amount between a fixed set of currencies
// using the open exchange-rate API.
package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carlosfiori/conversor-clima/internal/fetch"
)

type Code string

const (
	BRL Code = "BRL"
	USD Code = "USD"
	EUR Code = "EUR"

	DefaultFrom = BRL
	DefaultTo   = USD
)

// Supported lists the codes offered by the form, in display order.
var Supported = []Code{BRL, USD, EUR}

const (
	MsgInvalidAmount         = "enter a valid amount"
	MsgUnsupportedCurrency   = "unsupported currency"
	MsgRateUnavailable       = "could not obtain exchange rate"
	MsgConversionUnavailable = "conversion unavailable right now"
)

// Form is the raw input as typed by the user.
type Form struct {
	Amount string `json:"amount"`
	From   string `json:"from"`
	To     string `json:"to"`
}

type ConversionRequest struct {
	Amount decimal.Decimal `json:"amount"`
	// Input is the amount as typed, echoed back by Render.
	Input string `json:"input"`
	From   Code            `json:"from"`
	To     Code            `json:"to"`
}

type ConversionResult struct {
	Request   ConversionRequest `json:"request"`
	Rate      decimal.Decimal   `json:"rate"`
	Converted decimal.Decimal   `json:"converted"`
}

func ParseCode(s string) (Code, error) {
	code := Code(strings.ToUpper(strings.TrimSpace(s)))
	for _, c := range Supported {
		if c == code {
			return c, nil
		}
	}
	return "", fetch.Validation(MsgUnsupportedCurrency)
}

// Bounds on a parsed amount. Exponent notation can otherwise describe
// numbers whose decimal rendering runs to megabytes.
const (
	maxAmountDigits = 18
	maxAmountScale  = 8
)

// ParseRequest validates f locally. Empty currency fields take the form
// defaults; the amount must be a positive decimal within the bounds above.
func ParseRequest(f Form) (ConversionRequest, error) {
	input := strings.TrimSpace(f.Amount)
	amount, err := decimal.NewFromString(input)
	if err != nil || !amount.IsPositive() || !withinBounds(amount) {
		return ConversionRequest{}, fetch.Validation(MsgInvalidAmount)
	}

	from, to := f.From, f.To
	if strings.TrimSpace(from) == "" {
		from = string(DefaultFrom)
	}
	if strings.TrimSpace(to) == "" {
		to = string(DefaultTo)
	}

	src, err := ParseCode(from)
	if err != nil {
		return ConversionRequest{}, err
	}
	dst, err := ParseCode(to)
	if err != nil {
		return ConversionRequest{}, err
	}

	return ConversionRequest{Amount: amount, Input: input, From: src, To: dst}, nil
}

// withinBounds checks integer digits and scale from the exponent alone,
// without expanding the coefficient.
func withinBounds(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp < -maxAmountScale || exp > maxAmountDigits {
		return false
	}
	return d.NumDigits()+int(exp) <= maxAmountDigits
}

// Convert multiplies without rounding; rounding happens only in Render.
func Convert(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate)
}

// Render formats a result as "10 BRL = 2.00 USD", echoing the amount as typed.
func Render(r ConversionResult) string {
	amount := r.Request.Input
	if amount == "" {
		amount = r.Request.Amount.String()
	}
	return fmt.Sprintf("%s %s = %s %s", amount, r.Request.From, r.Converted.StringFixed(2), r.Request.To)
}
