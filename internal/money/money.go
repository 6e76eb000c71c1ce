package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amounts cross the wire as decimal strings in major units and are held
// internally as int64 minor units, so balance arithmetic is exact integer
// arithmetic. ARC carries two decimal places.
const scale = 2

// ToMinorUnits converts a wire amount to minor units. It rejects amounts with
// more precision than the currency carries and amounts outside the int64
// range.
func ToMinorUnits(d decimal.Decimal) (int64, error) {
	shifted := d.Shift(scale)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("amount %s has more than %d decimal places", d.String(), scale)
	}
	if !shifted.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount %s out of range", d.String())
	}
	return shifted.IntPart(), nil
}

// FromMinorUnits converts minor units back to a wire amount.
func FromMinorUnits(n int64) decimal.Decimal {
	return decimal.New(n, -scale)
}
