package seeder

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidPrice is returned for price which can't be converted to cents.
var ErrInvalidPrice = errors.New("invalid price")

var hundred = decimal.NewFromInt(100)

// ToCents converts price to integer number of cents rounding half up.
// Missing price is zero.
func ToCents(price *float64) (int64, error) {
	if price == nil {
		return 0, nil
	}
	if math.IsNaN(*price) || math.IsInf(*price, 0) || *price < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPrice, *price)
	}

	return decimal.NewFromFloat(*price).Mul(hundred).Round(0).IntPart(), nil
}
