package calendar

import "time"

// DateFormat is the canonical wire format for calendar dates. All date
// comparison and set membership in this package happens on this string form,
// which sorts lexicographically in chronological order.
const DateFormat = "2006-01-02"

// DateOf normalizes a time to its canonical YYYY-MM-DD form in the time's
// own location. Callers must never compare time.Time values directly.
func DateOf(t time.Time) string {
	return t.Format(DateFormat)
}

// ParseDate parses a canonical YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// DayCell is one cell of the month grid. Cells are recomputed wholesale on
// every month change and never mutated in place.
type DayCell struct {
	Day          int
	CurrentMonth bool
	Date         string
}

// GridSize is the fixed number of cells in a month grid: six full weeks.
// Months never render partial rows, so the grid height is stable regardless
// of month length or starting weekday.
const GridSize = 42

// MonthGrid returns the 42 day cells for the given month, Sunday-first.
// Leading cells overflow into the previous month and trailing cells into the
// next month.
func MonthGrid(year int, month time.Month) []DayCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	cells := make([]DayCell, 0, GridSize)
	for i := 0; i < GridSize; i++ {
		d := start.AddDate(0, 0, i)
		cells = append(cells, DayCell{
			Day:          d.Day(),
			CurrentMonth: d.Year() == year && d.Month() == month,
			Date:         DateOf(d),
		})
	}
	return cells
}
