package service

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

// maxAmountDigits bounds the integer digits of a cent amount; 2^53 has 16.
const maxAmountDigits = 16

// ToMinorUnits converts a currency amount to cents. Amounts must be positive
// and carry at most two decimal places.
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	if !amount.IsPositive() {
		return 0, errors.InvalidInput("amount", "amount must be a positive number")
	}
	amount, err := normalizeAmount(amount)
	if err != nil {
		return 0, err
	}
	if !amount.Equal(amount.Round(2)) {
		return 0, errors.InvalidInput("amount", "amount cannot have more than two decimal places")
	}
	minor := amount.Mul(hundred)
	if !minor.IsInteger() || minor.GreaterThan(decimal.NewFromInt(1<<53)) {
		return 0, errors.InvalidInput("amount", "amount is too large")
	}
	return minor.IntPart(), nil
}

// normalizeAmount drops trailing zeros from the coefficient and rejects
// exponents outside the cent range. Rounding or comparing a decimal with an
// extreme exponent rescales it to a huge big.Int, so this runs on the
// coefficient digits alone.
func normalizeAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	digits := amount.Coefficient().String()
	trimmed := strings.TrimRight(digits, "0")
	exp := int64(amount.Exponent()) + int64(len(digits)-len(trimmed))

	if exp < -2 {
		return decimal.Zero, errors.InvalidInput("amount", "amount cannot have more than two decimal places")
	}
	if exp+int64(len(trimmed)) > maxAmountDigits-2 {
		return decimal.Zero, errors.InvalidInput("amount", "amount is too large")
	}
	coef, _ := new(big.Int).SetString(trimmed, 10)
	return decimal.NewFromBigInt(coef, int32(exp)), nil
}

// ParseDecimal parses a decimal string such as "5000" or "12.50".
func ParseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.InvalidInput("amount", "amount must be a number")
	}
	return d, nil
}

// ParseAmount parses a decimal string into cents.
func ParseAmount(s string) (int64, error) {
	d, err := ParseDecimal(s)
	if err != nil {
		return 0, err
	}
	return ToMinorUnits(d)
}

// FormatAmount renders cents with two decimals, e.g. 500000 → "5000.00".
func FormatAmount(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}
