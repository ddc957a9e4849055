package feed

import "time"

// Window decides whether an entry's publication instant belongs to the run.
type Window interface {
	Contains(t time.Time) bool
}

// DateWindow accepts entries whose local calendar date, after conversion to
// the window's zone, equals the target date.
type DateWindow struct {
	year  int
	month time.Month
	day   int
	loc   *time.Location
}

// NewDateWindow builds a window for the calendar date of target in loc.
func NewDateWindow(target time.Time, loc *time.Location) DateWindow {
	y, m, d := target.In(loc).Date()
	return DateWindow{year: y, month: m, day: d, loc: loc}
}

func (w DateWindow) Contains(t time.Time) bool {
	y, m, d := t.In(w.loc).Date()
	return y == w.year && m == w.month && d == w.day
}

// RangeWindow accepts entries inside the half-open UTC interval [Start, End).
type RangeWindow struct {
	Start time.Time
	End   time.Time
}

// NewDayRange builds the UTC range covering the calendar day of target in
// loc, i.e. local midnight to the following local midnight.
func NewDayRange(target time.Time, loc *time.Location) RangeWindow {
	local := target.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return RangeWindow{
		Start: start.UTC(),
		End:   start.AddDate(0, 0, 1).UTC(),
	}
}

func (w RangeWindow) Contains(t time.Time) bool {
	ut := t.UTC()
	return !ut.Before(w.Start) && ut.Before(w.End)
}
