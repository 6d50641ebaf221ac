package common

import "github.com/shopspring/decimal"

// NewDecimalFromString converts a string to a decimal.Decimal pointer.
// If the input string is empty, it returns nil.
func NewDecimalFromString(data string) (*decimal.Decimal, error) {
	if data != "" {
		amount, err := decimal.NewFromString(data)
		if err != nil {
			return nil, err
		}
		return &amount, nil
	}
	return nil, nil
}

// SumDecimal returns the sum of values, zero when empty.
func SumDecimal(values ...decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(values[0], values[1:]...)
}
