package calculator

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// centPlaces is the number of decimal places in the smallest currency unit.
const centPlaces = 2

var oneCent = decimal.New(1, -centPlaces)

// ValidateAmount rejects negative amounts and amounts finer than one cent.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: amount %s is negative", ErrValidation, amount)
	}
	if !amount.Equal(amount.Round(centPlaces)) {
		return fmt.Errorf("%w: amount %s has more than %d decimal places", ErrValidation, amount, centPlaces)
	}
	return nil
}

// SplitExpense divides amount equally among participants in whole cents.
//
// Every participant gets floor(cents / n). The leftover cents go one each to
// participants in ID order, starting at position offset mod n, so the shares
// always add up to amount exactly. Callers pass the expense's position in the
// ledger as offset so leftover cents rotate across members instead of always
// landing on the same person.
func SplitExpense(amount decimal.Decimal, participants []string, offset int) (map[string]decimal.Decimal, error) {
	if len(participants) == 0 {
		return nil, fmt.Errorf("%w: must have at least one participant", ErrInvalidGroupState)
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}

	ordered := slices.Clone(participants)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)

	n := len(ordered)
	cents := amount.Shift(centPlaces)
	quotient, remainder := cents.QuoRem(decimal.NewFromInt(int64(n)), 0)
	base := quotient.Shift(-centPlaces)

	shares := make(map[string]decimal.Decimal, n)
	for _, p := range ordered {
		shares[p] = base
	}

	if offset < 0 {
		offset = -offset
	}
	leftover := int(remainder.IntPart())
	for k := 0; k < leftover; k++ {
		p := ordered[(offset+k)%n]
		shares[p] = shares[p].Add(oneCent)
	}

	return shares, nil
}
