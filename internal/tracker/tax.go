package tracker

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TaxEstimate summarizes paid earnings for one calendar quarter.
type TaxEstimate struct {
	QuarterStart  Date
	QuarterEnd    Date
	TotalEarnings decimal.Decimal
	Tax           decimal.Decimal
}

// QuarterlyTax sums the totals of invoices paid within the calendar quarter
// containing now (inclusive bounds) and applies the given percentage. Pure
// function of its inputs; callers recompute on every query because now moves
// the quarter window.
func QuarterlyTax(invoices []Invoice, ratePercent decimal.Decimal, now time.Time) TaxEstimate {
	start, end := QuarterBounds(now)

	paid := lo.Filter(invoices, func(inv Invoice, _ int) bool {
		return inv.Status == InvoicePaid &&
			inv.PaidDate != nil &&
			!inv.PaidDate.Before(start.Time) &&
			!inv.PaidDate.After(end.Time)
	})

	earnings := lo.Reduce(paid, func(sum decimal.Decimal, inv Invoice, _ int) decimal.Decimal {
		return sum.Add(inv.TotalAmount)
	}, decimal.Zero)

	return TaxEstimate{
		QuarterStart:  start,
		QuarterEnd:    end,
		TotalEarnings: earnings,
		Tax:           earnings.Mul(ratePercent).Div(decimal.NewFromInt(100)),
	}
}

// QuarterBounds returns the first and last civil dates of the calendar
// quarter containing t.
func QuarterBounds(t time.Time) (Date, Date) {
	quarterMonth := time.Month((int(t.Month())-1)/3*3 + 1)
	start := time.Date(t.Year(), quarterMonth, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, -1)
	return Date{start}, Date{end}
}
