package invoice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads a monetary amount given either as a JSON number or as a
// numeric JSON string.
func ParseAmount(raw []byte) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", ErrValidation)
	}
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: amount must be numeric", ErrValidation)
		}
		s = strings.TrimSpace(unquoted)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount must be numeric", ErrValidation)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}
	return amount, nil
}

// FormatAmount renders exactly two decimals without thousands separators.
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
