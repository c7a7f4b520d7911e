package big

import (
	"fmt"
	"math/big"
	"strings"
	"sync"
)

const (
	base10 = 10

	// pow10CacheSize is the number of powers of ten kept around; token
	// denominations rarely go above 18 but sums of them (multiplication) do.
	pow10CacheSize = 64
)

// groupingReplacer removes the thousands separators accepted on input: commas,
// underscores, spaces, apostrophes and the (narrow) no-break spaces some locales emit.
var groupingReplacer = strings.NewReplacer(
	",", "",
	"_", "",
	" ", "",
	"'", "",
	"\u00a0", "",
	"\u202f", "",
)

var (
	pow10Once  sync.Once
	pow10Cache [pow10CacheSize]*big.Int
)

// StripGrouping removes any thousands separators from the given string.
func StripGrouping(s string) string {
	return groupingReplacer.Replace(s)
}

// BigIntFromString converts a string to a *big.Int.
func BigIntFromString(s string) (*big.Int, error) {
	bigInt, isValid := new(big.Int).SetString(StripGrouping(s), base10)
	if !isValid {
		return nil, fmt.Errorf("invalid integer string: %s", s)
	}

	return bigInt, nil
}

// IsWellGrouped reports whether every thousands separator in s sits between two
// digits. Leading, trailing and repeated separators are rejected.
func IsWellGrouped(s string) bool {
	prevSeparator := true
	for _, r := range s {
		separator := isGroupingRune(r)
		if separator && prevSeparator {
			return false
		}
		prevSeparator = separator
	}

	return !prevSeparator || s == ""
}

func isGroupingRune(r rune) bool {
	switch r {
	case ',', '_', ' ', '\'', '\u00a0', '\u202f':
		return true
	default:
		return false
	}
}

// IsDigits reports whether s is non-empty and consists only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// Pow10 returns 10^n. The returned value is always a fresh *big.Int that the caller may modify.
func Pow10(n uint) *big.Int {
	pow10Once.Do(func() {
		p := big.NewInt(1)
		for i := range pow10Cache {
			pow10Cache[i] = new(big.Int).Set(p)
			p.Mul(p, big.NewInt(base10))
		}
	})

	if n < pow10CacheSize {
		return new(big.Int).Set(pow10Cache[n])
	}

	return new(big.Int).Exp(big.NewInt(base10), new(big.Int).SetUint64(uint64(n)), nil)
}
