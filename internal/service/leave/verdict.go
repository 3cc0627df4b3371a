package leave

import (
	"time"

	"github.com/cordia-hr/leave-planner-go/internal/calendar"
	"github.com/cordia-hr/leave-planner-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// verdictInput is everything the per-date verdict needs, prefetched so the
// evaluation itself is pure and order-stable.
type verdictInput struct {
	Dates         []string
	Existing      []calendar.DateRange
	Holidays      calendar.DateSet
	Today         string
	AllowBackdate bool

	// HasQuota=false disables balance warnings entirely.
	HasQuota  bool
	Available decimal.Decimal
}

// evaluateDates produces one ValidationResult per requested date, in input
// order. A date is a conflict when it can never be booked as-is (overlap,
// holiday, duplicate, forbidden backdate) and a warning when it is bookable
// but advisory (weekend, allowed backdate, balance overrun).
func evaluateDates(in verdictInput) []leave.ValidationResult {
	results := make([]leave.ValidationResult, 0, len(in.Dates))
	seen := make(calendar.DateSet, len(in.Dates))

	// Balance overruns are charged in input order: the first Available dates
	// are covered, everything past them draws the balance negative.
	countable := decimal.Zero
	one := decimal.NewFromInt(1)

	for _, date := range in.Dates {
		res := leave.ValidationResult{
			Date:     date,
			Status:   leave.ValidationStatusValid,
			Errors:   []string{},
			Warnings: []string{},
		}

		if seen.Contains(date) {
			res.Errors = append(res.Errors, "date appears more than once in the batch")
		}
		seen[date] = struct{}{}

		for _, r := range in.Existing {
			if r.Contains(date) {
				res.Errors = append(res.Errors, "overlaps an existing leave request")
				break
			}
		}
		if in.Holidays.Contains(date) {
			res.Errors = append(res.Errors, "falls on a public holiday")
		}
		if in.Today != "" && date < in.Today {
			if in.AllowBackdate {
				res.Warnings = append(res.Warnings, "date is in the past")
			} else {
				res.Errors = append(res.Errors, "backdated dates are not permitted for this leave type")
			}
		}
		if t, err := calendar.ParseDate(date); err == nil {
			if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
				res.Warnings = append(res.Warnings, "falls on a weekend")
			}
		}

		if len(res.Errors) == 0 {
			countable = countable.Add(one)
			if in.HasQuota && countable.GreaterThan(in.Available) {
				res.Warnings = append(res.Warnings, "exceeds the available leave balance")
			}
		}

		switch {
		case len(res.Errors) > 0:
			res.Status = leave.ValidationStatusConflict
		case len(res.Warnings) > 0:
			res.Status = leave.ValidationStatusWarning
		}
		results = append(results, res)
	}

	return results
}

// balanceImpact projects the batch against the current balance. The
// remaining balance may legitimately go negative; that is a display fact for
// the client, not an error.
func balanceImpact(leaveTypeName string, in verdictInput) leave.BalanceImpact {
	requested := decimal.NewFromInt(int64(len(in.Dates)))

	impact := leave.BalanceImpact{
		LeaveType:     leaveTypeName,
		RequestedDays: requested.InexactFloat64(),
	}
	if in.HasQuota {
		impact.CurrentBalance = in.Available.InexactFloat64()
		impact.RemainingBalance = in.Available.Sub(requested).InexactFloat64()
	}
	return impact
}
