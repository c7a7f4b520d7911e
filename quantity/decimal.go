package quantity

import (
	"errors"
	"fmt"

	govalues "github.com/govalues/decimal"
	aobig "github.com/martonlederer/ao-tokens/internal/big"
	"github.com/shopspring/decimal"
)

var errDecimalPrecision = errors.New("value does not fit in a decimal without rounding")

// Decimal converts q to a github.com/govalues/decimal value.
// It fails if q carries more significant digits than that type can hold.
func (q *Quantity) Decimal() (govalues.Decimal, error) {
	d, err := govalues.Parse(q.String())
	if err != nil {
		return govalues.Decimal{}, fmt.Errorf("converting %s to decimal: %w", q, err)
	}

	back, err := Parse(d.String(), q.denomination)
	if err != nil || !Eq(back, q) {
		return govalues.Decimal{}, fmt.Errorf("converting %s to decimal: %w", q, errDecimalPrecision)
	}

	return d, nil
}

// FromDecimal returns a Quantity with the given denomination holding the value of d,
// truncating digits that do not fit in the denomination.
func FromDecimal(d govalues.Decimal, denomination uint) (*Quantity, error) {
	q, err := Parse(d.String(), denomination)
	if err != nil {
		return nil, fmt.Errorf("converting decimal %s: %w", d, err)
	}

	return q, nil
}

// ShopspringDecimal converts q to a github.com/shopspring/decimal value. The conversion is exact.
func (q *Quantity) ShopspringDecimal() decimal.Decimal {
	return decimal.NewFromBigInt(q.rawInt(), -int32(q.denomination)) //nolint:gosec
}

// FromShopspringDecimal returns a Quantity with the given denomination holding the value of d,
// truncating digits that do not fit in the denomination.
func FromShopspringDecimal(d decimal.Decimal, denomination uint) *Quantity {
	exp := d.Exponent()
	if exp >= 0 {
		q := &Quantity{raw: d.Coefficient(), denomination: 0}
		q.raw.Mul(q.raw, aobig.Pow10(uint(exp)))

		return q.Convert(denomination)
	}

	return Convert(&Quantity{raw: d.Coefficient(), denomination: uint(-exp)}, denomination)
}
