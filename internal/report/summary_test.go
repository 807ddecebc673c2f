package report

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Periods", func() {
	wednesday := time.Date(2026, time.October, 14, 15, 30, 0, 0, time.UTC)

	It("starts weeks on monday", func() {
		Expect(PeriodStart(wednesday, PeriodWeek)).To(Equal(time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC)))

		sunday := time.Date(2026, time.October, 18, 23, 0, 0, 0, time.UTC)
		Expect(PeriodStart(sunday, PeriodWeek)).To(Equal(time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC)))
	})

	It("starts months on the first", func() {
		Expect(PeriodStart(wednesday, PeriodMonth)).To(Equal(time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)))
	})

	It("truncates to the day otherwise", func() {
		Expect(PeriodStart(wednesday, PeriodDay)).To(Equal(time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC)))
	})

	It("groups checkouts by iso week across a year boundary", func() {
		rows := []ApprovedCheckout{
			{CheckoutID: 1, Quantity: 2, ResolvedAt: time.Date(2026, time.December, 31, 9, 0, 0, 0, time.UTC)},
			{CheckoutID: 2, Quantity: 3, ResolvedAt: time.Date(2027, time.January, 2, 9, 0, 0, 0, time.UTC)},
			{CheckoutID: 3, Quantity: 1, ResolvedAt: time.Date(2027, time.January, 4, 9, 0, 0, 0, time.UTC)},
		}

		weekly := summarize(rows, PeriodWeek)
		Expect(weekly).To(Equal([]Bucket{
			{Period: "2027-W01", Checkouts: 1, Units: 1},
			{Period: "2026-W53", Checkouts: 2, Units: 5},
		}))

		monthly := summarize(rows, PeriodMonth)
		Expect(monthly).To(Equal([]Bucket{
			{Period: "2027-01", Checkouts: 2, Units: 4},
			{Period: "2026-12", Checkouts: 1, Units: 2},
		}))
	})

	It("returns an empty slice when nothing was approved", func() {
		Expect(summarize(nil, PeriodDay)).To(BeEmpty())
	})
})
