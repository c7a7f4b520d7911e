package quantity

// Denominator is implemented by anything with a canonical denomination,
// such as token details resolved from a registry.
type Denominator interface {
	Denomination() uint
}

// Cmp compares the values of a and b and returns -1, 0 or +1.
// Quantities with different denominations are compared by value.
func Cmp(a, b *Quantity) int {
	x, y := SameDenomination(a, b)

	return x.raw.Cmp(y.raw)
}

// Eq reports whether a and b represent the same value.
func Eq(a, b *Quantity) bool {
	return Cmp(a, b) == 0
}

// Lt reports whether a < b.
func Lt(a, b *Quantity) bool {
	return Cmp(a, b) < 0
}

// Le reports whether a <= b.
func Le(a, b *Quantity) bool {
	return Cmp(a, b) <= 0
}

// Gt reports whether a > b.
func Gt(a, b *Quantity) bool {
	return !Le(a, b)
}

// Ge reports whether a >= b.
func Ge(a, b *Quantity) bool {
	return !Lt(a, b)
}

// Min returns the smallest of the given quantities, or false if none are given.
// The returned pointer is one of the arguments, not a copy.
func Min(quantities ...*Quantity) (*Quantity, bool) {
	return pick(quantities, Lt)
}

// Max returns the largest of the given quantities, or false if none are given.
// The returned pointer is one of the arguments, not a copy.
func Max(quantities ...*Quantity) (*Quantity, bool) {
	return pick(quantities, Gt)
}

// IsQuantityOf reports whether q is expressed in the canonical denomination of token.
// This checks the precision format only, not the value.
func IsQuantityOf(q *Quantity, token Denominator) bool {
	if q == nil || token == nil {
		return false
	}

	return q.denomination == token.Denomination()
}

func pick(quantities []*Quantity, better func(a, b *Quantity) bool) (*Quantity, bool) {
	if len(quantities) == 0 {
		return nil, false
	}

	res := quantities[0]
	for _, q := range quantities[1:] {
		if better(q, res) {
			res = q
		}
	}

	return res, true
}
