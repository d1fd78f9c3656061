package domain

import (
	"github.com/shopspring/decimal"
)

// Money is an amount in Shopify's wire format: a decimal string plus an ISO
// currency code (e.g. {"amount": "12.50", "currencyCode": "USD"}).
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Decimal parses the amount. Fails on malformed upstream data.
func (m Money) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(m.Amount)
}

// IsZero reports whether the money value is unset or parses to zero.
func (m Money) IsZero() bool {
	if m.Amount == "" {
		return true
	}
	d, err := m.Decimal()
	return err == nil && d.IsZero()
}

// LinesTotal sums the line costs of a cart using exact decimal arithmetic.
// Lines with malformed amounts are skipped; the currency is taken from the
// first line. Used for the cost consistency check against the reported
// subtotal.
func (c *Cart) LinesTotal() Money {
	total := decimal.Zero
	currency := ""
	for _, line := range c.Lines {
		d, err := line.Cost.TotalAmount.Decimal()
		if err != nil {
			continue
		}
		total = total.Add(d)
		if currency == "" {
			currency = line.Cost.TotalAmount.CurrencyCode
		}
	}
	return Money{Amount: total.String(), CurrencyCode: currency}
}

// SumQuantities returns the sum of all line quantities.
func (c *Cart) SumQuantities() int {
	sum := 0
	for _, line := range c.Lines {
		sum += line.Quantity
	}
	return sum
}
