package quantity_test

import (
	"math"
	"math/big"

	"github.com/martonlederer/ao-tokens/quantity"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Arithmetic", func() {
	Context("Convert", func() {
		It("scales the raw value up", func() {
			base := big.NewInt(15529585725794)
			q := quantity.New(base, 10)

			converted := quantity.Convert(q, 12)

			Expect(converted.Raw()).To(Equal(new(big.Int).Mul(base, big.NewInt(100))))
			Expect(converted.Denomination()).To(Equal(uint(12)))
			Expect(q.Raw()).To(Equal(base), "the input must not be mutated")
		})

		It("scales in place", func() {
			q := quantity.New(big.NewInt(873576), 5)

			q.Convert(7)

			Expect(q.Raw()).To(Equal(big.NewInt(87357600)))
			Expect(q.Denomination()).To(Equal(uint(7)))
		})

		It("truncates when scaling down", func() {
			Expect(quantity.Convert(quantity.New(big.NewInt(12345), 3), 1).Raw()).To(Equal(big.NewInt(123)))
			Expect(quantity.Convert(quantity.New(big.NewInt(-12345), 3), 1).Raw()).To(Equal(big.NewInt(-123)))
		})
	})

	Context("SameDenomination", func() {
		It("brings both quantities to the larger denomination", func() {
			a := quantity.New(big.NewInt(425256), 4)
			b := quantity.New(big.NewInt(495858998), 6)

			x, y := quantity.SameDenomination(a, b)

			Expect(x.Raw()).To(Equal(big.NewInt(42525600)))
			Expect(y.Raw()).To(Equal(big.NewInt(495858998)))
			Expect(x.Denomination()).To(Equal(uint(6)))
			Expect(y.Denomination()).To(Equal(uint(6)))
			Expect(a.Denomination()).To(Equal(uint(4)), "the inputs must not be mutated")
		})
	})

	Context("Add", func() {
		It("adds quantities of different denominations exactly", func() {
			a := quantity.MustParse("23.84", 2)
			b := quantity.MustParse("556.2345", 4)

			res := quantity.Add(a, b)

			Expect(res.String()).To(Equal("580.0745"))
			Expect(res.Denomination()).To(Equal(uint(4)))
			Expect(a.String()).To(Equal("23.84"))
			Expect(b.String()).To(Equal("556.2345"))
		})

		It("adds in place", func() {
			q := quantity.MustParse("44.56", 2)

			q.Add(quantity.MustParse("29.731", 3))

			Expect(q.String()).To(Equal("74.29"))
			Expect(q.Denomination()).To(Equal(uint(2)))
		})

		It("truncates an in-place sum toward zero", func() {
			q := quantity.MustParse("1", 2)

			q.Add(quantity.MustParse("-0.005", 3))

			Expect(q.String()).To(Equal("0.99"))
			Expect(q.Denomination()).To(Equal(uint(2)))
		})

		It("handles the receiver being its own argument", func() {
			q := quantity.MustParse("1.5", 1)

			q.Add(q)

			Expect(q.String()).To(Equal("3"))
		})
	})

	Context("Sub", func() {
		It("subtracts quantities of different denominations exactly", func() {
			res := quantity.Sub(quantity.MustParse("22.5", 12), quantity.MustParse("8.25", 3))

			Expect(res.String()).To(Equal("14.25"))
			Expect(res.Denomination()).To(Equal(uint(12)))
		})

		It("subtracts in place", func() {
			q := quantity.MustParse("95.75", 6)

			q.Sub(quantity.MustParse("23.13", 3))

			Expect(q.String()).To(Equal("72.62"))
			Expect(q.Denomination()).To(Equal(uint(6)))
		})

		It("can go below zero", func() {
			Expect(quantity.Sub(quantity.MustParse("1", 2), quantity.MustParse("1.25", 2)).String()).To(Equal("-0.25"))
		})
	})

	Context("Mul", func() {
		It("sums the denominations of the operands", func() {
			res := quantity.Mul(quantity.MustParse("1.25", 4), quantity.MustParse("0.5", 3))

			Expect(res.String()).To(Equal("0.625"))
			Expect(res.Denomination()).To(Equal(uint(7)))
		})

		It("multiplies in place", func() {
			q := quantity.MustParse("456", 12)

			q.Mul(quantity.MustParse("2.5", 9))

			Expect(q.String()).To(Equal("1140"))
			Expect(q.Denomination()).To(Equal(uint(12)))
		})
	})

	Context("Div", func() {
		It("truncates to the larger denomination", func() {
			res, err := quantity.Div(quantity.MustParse("456.82", 11), quantity.MustParse("2.2", 12))

			Expect(err).ToNot(HaveOccurred())
			Expect(res.String()).To(Equal("207.645454545454"))
			Expect(res.Denomination()).To(Equal(uint(12)))
		})

		It("divides in place", func() {
			q := quantity.MustParse("456", 4)

			res, err := q.Div(quantity.MustParse("2.5", 5))

			Expect(err).ToNot(HaveOccurred())
			Expect(res).To(BeIdenticalTo(q))
			Expect(q.String()).To(Equal("182.4"))
			Expect(q.Denomination()).To(Equal(uint(4)))
		})

		It("rejects a zero divisor", func() {
			res, err := quantity.Div(quantity.MustParse("1", 2), quantity.New(nil, 8))

			Expect(res).To(BeNil())
			Expect(err).To(MatchError(quantity.ErrDivisionByZero))
		})

		It("leaves the receiver unchanged on error", func() {
			q := quantity.MustParse("7.5", 1)

			_, err := q.Div(quantity.New(nil, 3))

			Expect(err).To(MatchError(quantity.ErrDivisionByZero))
			Expect(q.String()).To(Equal("7.5"))
			Expect(q.Denomination()).To(Equal(uint(1)))
		})
	})

	Context("Pow", func() {
		It("raises to a positive power exactly", func() {
			res, err := quantity.Pow(quantity.MustParse("4.5", 8), 2)

			Expect(err).ToNot(HaveOccurred())
			Expect(res.String()).To(Equal("20.25"))
			Expect(res.Denomination()).To(Equal(uint(16)))
		})

		It("takes the reciprocal for a negative power", func() {
			res, err := quantity.Pow(quantity.MustParse("5", 4), -3)

			Expect(err).ToNot(HaveOccurred())
			Expect(res.String()).To(Equal("0.008"))
		})

		It("truncates non-terminating reciprocals", func() {
			res, err := quantity.Pow(quantity.MustParse("3", 2), -1)

			Expect(err).ToNot(HaveOccurred())
			Expect(res.String()).To(Equal("0.33"))
		})

		It("returns one for a zero exponent", func() {
			res, err := quantity.Pow(quantity.MustParse("123.456", 3), 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(res.String()).To(Equal("1"))
		})

		It("raises in place", func() {
			q := quantity.New(big.NewInt(250), 2)

			_, err := q.Pow(2)

			Expect(err).ToNot(HaveOccurred())
			Expect(q.String()).To(Equal("6.25"))
			Expect(q.Denomination()).To(Equal(uint(2)))
		})

		It("truncates an in-place power to the receiver denomination", func() {
			q := quantity.MustParse("1.5", 1)

			_, err := q.Pow(2)

			Expect(err).ToNot(HaveOccurred())
			Expect(q.String()).To(Equal("2.2"))
			Expect(q.Denomination()).To(Equal(uint(1)))
		})

		It("rejects powers whose denomination does not fit", func() {
			q := quantity.New(big.NewInt(1), math.MaxUint)

			res, err := quantity.Pow(q, 2)

			Expect(res).To(BeNil())
			Expect(err).To(MatchError(quantity.ErrDenominationOverflow))

			_, err = q.Pow(-2)

			Expect(err).To(MatchError(quantity.ErrDenominationOverflow))
			Expect(q.Denomination()).To(Equal(uint(math.MaxUint)))
		})

		It("rejects negative powers of zero", func() {
			q := quantity.New(nil, 2)

			_, err := q.Pow(-2)

			Expect(err).To(MatchError(quantity.ErrDivisionByZero))
			Expect(q.IsZero()).To(BeTrue())
		})
	})

	Context("Trunc", func() {
		It("removes the fractional part", func() {
			q := quantity.New(big.NewInt(5411), 2)

			res := quantity.Trunc(q)

			Expect(res.Raw()).To(Equal(big.NewInt(5400)))
			Expect(res.Denomination()).To(Equal(uint(2)))
			Expect(q.Raw()).To(Equal(big.NewInt(5411)))
		})

		It("truncates in place", func() {
			q := quantity.New(big.NewInt(89340385), 4)

			q.Trunc()

			Expect(q.Raw()).To(Equal(big.NewInt(89340000)))
		})

		It("truncates negative values toward zero", func() {
			Expect(quantity.Trunc(quantity.New(big.NewInt(-5411), 2)).Raw()).To(Equal(big.NewInt(-5400)))
		})
	})
})
