package token_test

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	tokenpkg "github.com/martonlederer/ao-tokens/internal/token"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// countingDetailsService is a DetailsService that records how often it is asked.
type countingDetailsService struct {
	details map[string]*tokenpkg.Details
	err     error
	calls   int
}

func (c *countingDetailsService) GetTokenDetails(_ context.Context, processID string) (*tokenpkg.Details, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}

	return c.details[processID], nil
}

var _ = Describe("CachingDetailsService", func() {
	var (
		db   *badger.DB
		next *countingDetailsService
	)

	BeforeEach(func() {
		var err error
		db, err = tokenpkg.OpenCache("")
		Expect(err).ToNot(HaveOccurred())

		next = &countingDetailsService{
			details: map[string]*tokenpkg.Details{
				"pnts": {ProcessID: "pnts", Name: "Points", Ticker: "PNTS", Decimals: 3},
			},
		}
	})

	AfterEach(func() {
		Expect(db.Close()).To(Succeed())
	})

	It("only asks the decorated service once for a known token", func() {
		svc := tokenpkg.NewCachingDetailsService(db, next, 0)

		for i := 0; i < 3; i++ {
			d, err := svc.GetTokenDetails(context.Background(), "pnts")
			Expect(err).ToNot(HaveOccurred())
			Expect(d).ToNot(BeNil())
			Expect(d.Decimals).To(Equal(uint(3)))
			Expect(d.Ticker).To(Equal("PNTS"))
		}

		Expect(next.calls).To(Equal(1))
	})

	It("does not cache unknown tokens", func() {
		svc := tokenpkg.NewCachingDetailsService(db, next, time.Hour)

		for i := 0; i < 2; i++ {
			d, err := svc.GetTokenDetails(context.Background(), "unknown")
			Expect(err).ToNot(HaveOccurred())
			Expect(d).To(BeNil())
		}

		Expect(next.calls).To(Equal(2))
	})

	It("propagates errors of the decorated service", func() {
		next.err = errors.New("compute unit unavailable")
		svc := tokenpkg.NewCachingDetailsService(db, next, time.Hour)

		_, err := svc.GetTokenDetails(context.Background(), "pnts")
		Expect(err).To(MatchError(next.err))
	})

	It("persists entries across service instances sharing a database", func() {
		first := tokenpkg.NewCachingDetailsService(db, next, time.Hour)
		_, err := first.GetTokenDetails(context.Background(), "pnts")
		Expect(err).ToNot(HaveOccurred())

		second := tokenpkg.NewCachingDetailsService(db, &countingDetailsService{}, time.Hour)
		d, err := second.GetTokenDetails(context.Background(), "pnts")
		Expect(err).ToNot(HaveOccurred())
		Expect(d).ToNot(BeNil())
		Expect(d.Name).To(Equal("Points"))
	})
})
