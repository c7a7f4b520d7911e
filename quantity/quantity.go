// Package quantity implements Quantity, an exact fixed-point decimal used to
// represent token amounts with a configurable number of fractional digits.
//
// Every operator comes in two forms: a package-level function that returns a
// new Quantity and never touches its arguments, and a method of the same name
// that mutates its receiver and returns it for chaining. The arithmetic methods
// keep the denomination of their receiver, truncating the exact result toward
// zero where it carries more fractional digits.
package quantity

import (
	"math/big"
	"strconv"
	"strings"

	aobig "github.com/martonlederer/ao-tokens/internal/big"
)

// Quantity is a decimal value stored as raw / 10^denomination.
// Its zero value represents 0 with a denomination of 0.
// A Quantity must not be mutated from multiple goroutines at once.
type Quantity struct {
	raw          *big.Int // the unscaled value
	denomination uint     // the number of fractional decimal digits encoded in raw
}

// New returns a Quantity representing raw / 10^denomination.
// A nil raw value is treated as 0, to be populated later by FromString or FromNumber.
func New(raw *big.Int, denomination uint) *Quantity {
	q := &Quantity{
		raw:          new(big.Int),
		denomination: denomination,
	}
	if raw != nil {
		q.raw.Set(raw)
	}

	return q
}

// Raw returns a copy of the unscaled integer backing q.
func (q *Quantity) Raw() *big.Int {
	return new(big.Int).Set(q.rawInt())
}

// Denomination returns the number of fractional digits q encodes.
func (q *Quantity) Denomination() uint {
	return q.denomination
}

// Integer returns the integer part of q, truncated toward zero.
func (q *Quantity) Integer() *big.Int {
	return new(big.Int).Quo(q.rawInt(), aobig.Pow10(q.denomination))
}

// Fractional returns the fractional digits of q as a non-negative integer.
// For a negative quantity this is the magnitude of the fractional part.
func (q *Quantity) Fractional() *big.Int {
	frac := new(big.Int).Rem(q.rawInt(), aobig.Pow10(q.denomination))

	return frac.Abs(frac)
}

// Sign returns -1, 0 or +1 depending on the sign of q.
func (q *Quantity) Sign() int {
	return q.rawInt().Sign()
}

// IsZero reports whether q represents 0.
func (q *Quantity) IsZero() bool {
	return q.Sign() == 0
}

// Clone returns an independent copy of q.
func (q *Quantity) Clone() *Quantity {
	return New(q.rawInt(), q.denomination)
}

// String formats q as a plain decimal: no grouping, trailing fractional zeros
// removed and no decimal point when the fractional part is zero.
func (q *Quantity) String() string {
	raw := q.rawInt()
	if q.denomination == 0 {
		return raw.String()
	}

	digits := new(big.Int).Abs(raw).String()
	width := int(q.denomination)
	if len(digits) <= width {
		digits = strings.Repeat("0", width-len(digits)+1) + digits
	}

	var sb strings.Builder
	if raw.Sign() < 0 {
		sb.WriteByte('-')
	}
	sb.WriteString(digits[:len(digits)-width])

	if frac := strings.TrimRight(digits[len(digits)-width:], "0"); frac != "" {
		sb.WriteByte('.')
		sb.WriteString(frac)
	}

	return sb.String()
}

// Float64 returns the nearest float64 to q.
// Precision is lost when q carries more significant digits than a float64 can hold,
// and values out of range become ±Inf.
func (q *Quantity) Float64() float64 {
	f, _ := strconv.ParseFloat(q.String(), 64)

	return f
}

// MarshalText implements encoding.TextMarshaler.
func (q *Quantity) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Like FromString, it keeps the denomination already configured on q.
func (q *Quantity) UnmarshalText(text []byte) error {
	return q.FromString(string(text))
}

func (q *Quantity) rawInt() *big.Int {
	if q.raw == nil {
		return new(big.Int)
	}

	return q.raw
}

// setAt replaces the value of q with that of r converted to the denomination of q.
func (q *Quantity) setAt(r *Quantity) *Quantity {
	q.raw = rescale(r.rawInt(), r.denomination, q.denomination)

	return q
}

// set replaces the state of q with that of r, which must not be used afterwards.
func (q *Quantity) set(r *Quantity) *Quantity {
	q.raw = r.raw
	q.denomination = r.denomination

	return q
}
