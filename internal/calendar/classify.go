package calendar

import "time"

// DateRange is an inclusive range of canonical dates.
type DateRange struct {
	From string
	To   string
}

// Contains reports whether date falls inside the range. String comparison on
// canonical YYYY-MM-DD is equivalent to chronological comparison.
func (r DateRange) Contains(date string) bool {
	return r.From <= date && date <= r.To
}

// DateSet is a membership set of canonical dates.
type DateSet map[string]struct{}

func NewDateSet(dates ...string) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

func (s DateSet) Contains(date string) bool {
	_, ok := s[date]
	return ok
}

// Context carries the external facts a day cell is classified against.
// Everything in here is read-only to the classifier.
type Context struct {
	Selection      Selection
	ExistingLeaves []DateRange
	Holidays       DateSet
	MinDate        string // empty = unbounded
	MaxDate        string // empty = unbounded
	Today          string
	Loading        bool
}

// DayStatus is the derived status tuple for one day cell.
type DayStatus struct {
	Selectable    bool
	Selected      bool
	Holiday       bool
	ExistingLeave bool
	Weekend       bool
	Today         bool
	CurrentMonth  bool
}

// Classify derives the status of a single cell. Cells outside the current
// month are non-selectable with no further checks. Past dates are allowed:
// bulk requests may be filed retroactively.
func Classify(cell DayCell, cx Context) DayStatus {
	st := DayStatus{CurrentMonth: cell.CurrentMonth}
	if !cell.CurrentMonth {
		return st
	}

	st.Selected = cx.Selection.Contains(cell.Date)
	st.Holiday = cx.Holidays.Contains(cell.Date)
	st.Today = cx.Today != "" && cell.Date == cx.Today
	for _, r := range cx.ExistingLeaves {
		if r.Contains(cell.Date) {
			st.ExistingLeave = true
			break
		}
	}
	if t, err := ParseDate(cell.Date); err == nil {
		wd := t.Weekday()
		st.Weekend = wd == time.Saturday || wd == time.Sunday
	}

	st.Selectable = !cx.Loading &&
		!st.ExistingLeave &&
		!st.Holiday &&
		(cx.MinDate == "" || cell.Date >= cx.MinDate) &&
		(cx.MaxDate == "" || cell.Date <= cx.MaxDate)
	return st
}

// DayKind is the presentation class of a cell. It is derived from DayStatus
// by fixed priority and does not feed back into selectability.
type DayKind int

const (
	KindPlain DayKind = iota
	KindWeekend
	KindToday
	KindHoliday
	KindExistingLeave
	KindSelected
)

func (k DayKind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindWeekend:
		return "weekend"
	case KindToday:
		return "today"
	case KindHoliday:
		return "holiday"
	case KindExistingLeave:
		return "existing_leave"
	case KindSelected:
		return "selected"
	}
	return "unknown"
}

// Kind resolves the presentation priority:
// selected > existing leave > holiday > today > weekend > plain.
func (st DayStatus) Kind() DayKind {
	switch {
	case st.Selected:
		return KindSelected
	case st.ExistingLeave:
		return KindExistingLeave
	case st.Holiday:
		return KindHoliday
	case st.Today:
		return KindToday
	case st.Weekend:
		return KindWeekend
	default:
		return KindPlain
	}
}
