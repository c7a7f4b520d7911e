package quantity

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	aobig "github.com/martonlederer/ao-tokens/internal/big"
)

var (
	// ErrMalformedInput is returned when a string or number is not a valid decimal literal.
	ErrMalformedInput = errors.New("malformed decimal input")
	// ErrPrecisionOverflow is returned by the strict parser when digits beyond the denomination would be dropped.
	ErrPrecisionOverflow = errors.New("more fractional digits than the denomination holds")
)

// Parse returns a Quantity with the given denomination holding the value of s.
// See FromString for the accepted format.
func Parse(s string, denomination uint) (*Quantity, error) {
	q := New(nil, denomination)
	if err := q.FromString(s); err != nil {
		return nil, err
	}

	return q, nil
}

// MustParse is like Parse but panics if s cannot be parsed.
func MustParse(s string, denomination uint) *Quantity {
	q, err := Parse(s, denomination)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q, %d) failed: %v", s, denomination, err))
	}

	return q
}

// FromString sets q to the value of s, keeping the denomination of q.
//
// The accepted format is [sign] integer-part ['.' fractional-digits]. The integer
// part may contain thousands separators (commas, underscores, spaces, apostrophes
// and no-break spaces), which are ignored. Fractional digits beyond the
// denomination are silently truncated; use FromStringStrict to reject them.
// On error, q is left unchanged.
func (q *Quantity) FromString(s string) error {
	raw, err := parseRaw(s, q.denomination, false)
	if err != nil {
		return err
	}
	q.raw = raw

	return nil
}

// FromStringStrict is like FromString but returns ErrPrecisionOverflow instead of
// dropping non-zero fractional digits that do not fit in the denomination.
func (q *Quantity) FromStringStrict(s string) error {
	raw, err := parseRaw(s, q.denomination, true)
	if err != nil {
		return err
	}
	q.raw = raw

	return nil
}

// FromNumber sets q to the value of n, keeping the denomination of q.
// The shortest decimal representation of n is parsed, not its binary value,
// so FromNumber(0.1) yields exactly 0.1 when the denomination allows it.
func (q *Quantity) FromNumber(n float64) error {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return fmt.Errorf("%w: %v", ErrMalformedInput, n)
	}

	return q.FromString(strconv.FormatFloat(n, 'f', -1, 64))
}

func parseRaw(s string, denomination uint, strict bool) (*big.Int, error) {
	str := strings.TrimSpace(s)

	negative := false
	if str != "" && (str[0] == '-' || str[0] == '+') {
		negative = str[0] == '-'
		str = str[1:]
	}

	intPart, fracPart, hasPoint := strings.Cut(str, ".")
	if strings.Contains(fracPart, ".") {
		return nil, fmt.Errorf("%w: multiple decimal points in %q", ErrMalformedInput, s)
	}

	if !aobig.IsWellGrouped(intPart) {
		return nil, fmt.Errorf("%w: misplaced digit separator in %q", ErrMalformedInput, s)
	}
	intPart = aobig.StripGrouping(intPart)
	if intPart == "" {
		// ".5" is accepted, "" and "." are not
		if !hasPoint || fracPart == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedInput, s)
		}
		intPart = "0"
	}
	if !aobig.IsDigits(intPart) {
		return nil, fmt.Errorf("%w: invalid integer part in %q", ErrMalformedInput, s)
	}
	if fracPart != "" && !aobig.IsDigits(fracPart) {
		return nil, fmt.Errorf("%w: invalid fractional part in %q", ErrMalformedInput, s)
	}

	if uint(len(fracPart)) > denomination {
		if strict && strings.TrimRight(fracPart[denomination:], "0") != "" {
			return nil, fmt.Errorf(
				"%w: %q has %d fractional digits, denomination is %d",
				ErrPrecisionOverflow,
				s,
				len(fracPart),
				denomination,
			)
		}
		fracPart = fracPart[:denomination]
	}
	// right-pad so the digits land at their positional magnitude
	fracPart += strings.Repeat("0", int(denomination)-len(fracPart)) //nolint:gosec

	raw, err := aobig.BigIntFromString(intPart)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	raw.Mul(raw, aobig.Pow10(denomination))

	if fracPart != "" {
		frac, err := aobig.BigIntFromString(fracPart)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
		}
		raw.Add(raw, frac)
	}

	if negative {
		raw.Neg(raw)
	}

	return raw, nil
}
