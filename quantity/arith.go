package quantity

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"

	aobig "github.com/martonlederer/ao-tokens/internal/big"
)

var (
	// ErrDivisionByZero is returned when dividing by zero or raising zero to a negative power.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrDenominationOverflow is returned when a result denomination does not fit in a uint.
	ErrDenominationOverflow = errors.New("denomination overflow")
)

// Convert returns a copy of q rescaled to the given denomination.
// Lowering the denomination truncates the dropped digits toward zero.
func Convert(q *Quantity, denomination uint) *Quantity {
	return &Quantity{
		raw:          rescale(q.rawInt(), q.denomination, denomination),
		denomination: denomination,
	}
}

// Convert rescales q to the given denomination in place.
func (q *Quantity) Convert(denomination uint) *Quantity {
	return q.set(Convert(q, denomination))
}

// SameDenomination returns copies of a and b converted to the larger of their denominations.
func SameDenomination(a, b *Quantity) (*Quantity, *Quantity) {
	denomination := max(a.denomination, b.denomination)

	return Convert(a, denomination), Convert(b, denomination)
}

// Add returns a + b at the larger of the two denominations.
func Add(a, b *Quantity) *Quantity {
	x, y := SameDenomination(a, b)
	x.raw.Add(x.raw, y.raw)

	return x
}

// Add sets q to q + b, keeping the denomination of q.
func (q *Quantity) Add(b *Quantity) *Quantity {
	return q.setAt(Add(q, b))
}

// Sub returns a - b at the larger of the two denominations.
func Sub(a, b *Quantity) *Quantity {
	x, y := SameDenomination(a, b)
	x.raw.Sub(x.raw, y.raw)

	return x
}

// Sub sets q to q - b, keeping the denomination of q.
func (q *Quantity) Sub(b *Quantity) *Quantity {
	return q.setAt(Sub(q, b))
}

// Mul returns a * b. The result is exact: its denomination is the sum of
// the denominations of a and b.
func Mul(a, b *Quantity) *Quantity {
	return &Quantity{
		raw:          new(big.Int).Mul(a.rawInt(), b.rawInt()),
		denomination: a.denomination + b.denomination,
	}
}

// Mul sets q to q * b, keeping the denomination of q.
func (q *Quantity) Mul(b *Quantity) *Quantity {
	return q.setAt(Mul(q, b))
}

// Div returns a / b at the larger of the two denominations, truncating any
// digits beyond it toward zero.
func Div(a, b *Quantity) (*Quantity, error) {
	x, y := SameDenomination(a, b)
	if y.raw.Sign() == 0 {
		return nil, fmt.Errorf("dividing %s: %w", a, ErrDivisionByZero)
	}

	x.raw.Mul(x.raw, aobig.Pow10(x.denomination))
	x.raw.Quo(x.raw, y.raw)

	return x, nil
}

// Div sets q to q / b, keeping the denomination of q. On error, q is left unchanged.
func (q *Quantity) Div(b *Quantity) (*Quantity, error) {
	res, err := Div(q, b)
	if err != nil {
		return nil, err
	}

	return q.setAt(res), nil
}

// Pow returns q raised to the given power.
//
// A non-negative exponent is exact: raw^exponent at denomination*exponent.
// A negative exponent yields 1 / q^-exponent, computed with Div at the
// denomination of q^-exponent. ErrDenominationOverflow is returned when
// denomination*|exponent| does not fit in a uint.
func Pow(q *Quantity, exponent int) (*Quantity, error) {
	if exponent >= 0 {
		return powUint(q, uint(exponent))
	}

	// -(exponent+1)+1 avoids overflowing on math.MinInt
	positive, err := powUint(q, uint(-(exponent+1))+1)
	if err != nil {
		return nil, err
	}
	if positive.IsZero() {
		return nil, fmt.Errorf("raising %s to %d: %w", q, exponent, ErrDivisionByZero)
	}

	one := &Quantity{raw: aobig.Pow10(positive.denomination), denomination: positive.denomination}

	return Div(one, positive)
}

// Pow sets q to q^exponent, keeping the denomination of q. On error, q is left unchanged.
func (q *Quantity) Pow(exponent int) (*Quantity, error) {
	res, err := Pow(q, exponent)
	if err != nil {
		return nil, err
	}

	return q.setAt(res), nil
}

// Trunc returns a copy of q with its fractional part removed.
// The denomination is unchanged.
func Trunc(q *Quantity) *Quantity {
	raw := q.rawInt()
	rem := new(big.Int).Rem(raw, aobig.Pow10(q.denomination))

	return &Quantity{
		raw:          rem.Sub(raw, rem),
		denomination: q.denomination,
	}
}

// Trunc removes the fractional part of q in place.
func (q *Quantity) Trunc() *Quantity {
	return q.set(Trunc(q))
}

func powUint(q *Quantity, exponent uint) (*Quantity, error) {
	hi, denomination := bits.Mul(q.denomination, exponent)
	if hi != 0 {
		return nil, fmt.Errorf(
			"denomination %d raised to %d: %w",
			q.denomination,
			exponent,
			ErrDenominationOverflow,
		)
	}

	return &Quantity{
		raw:          new(big.Int).Exp(q.rawInt(), new(big.Int).SetUint64(uint64(exponent)), nil),
		denomination: denomination,
	}, nil
}

func rescale(raw *big.Int, from, to uint) *big.Int {
	switch {
	case to > from:
		return new(big.Int).Mul(raw, aobig.Pow10(to-from))
	case to < from:
		return new(big.Int).Quo(raw, aobig.Pow10(from-to))
	default:
		return new(big.Int).Set(raw)
	}
}
