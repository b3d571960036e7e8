package dashboard

import "time"

// DateRange is a concrete [Start, End] window in epoch milliseconds.
type DateRange struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// timeNow is swapped out in tests.
var timeNow = time.Now

const dayMs = int64(24 * time.Hour / time.Millisecond)

// ResolveDateRange maps a symbolic range keyword (plus optional explicit
// bounds for "custom") to a concrete window ending now. Months, quarters
// and years are fixed 30/90/365-day multiples, not calendar-aware; this
// matches what widget consumers expect and must not be changed silently.
func ResolveDateRange(keyword string, customStart, customEnd *int64) DateRange {
	now := timeNow()
	nowMs := now.UnixMilli()

	switch keyword {
	case "today":
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return DateRange{Start: midnight.UnixMilli(), End: nowMs}
	case "week":
		return DateRange{Start: nowMs - 7*dayMs, End: nowMs}
	case "month":
		return DateRange{Start: nowMs - 30*dayMs, End: nowMs}
	case "quarter":
		return DateRange{Start: nowMs - 90*dayMs, End: nowMs}
	case "year":
		return DateRange{Start: nowMs - 365*dayMs, End: nowMs}
	case "custom":
		r := DateRange{Start: nowMs - 30*dayMs, End: nowMs}
		if customStart != nil {
			r.Start = *customStart
		}
		if customEnd != nil {
			r.End = *customEnd
		}
		return r
	default:
		// "all" and unrecognized keywords mean everything up to now.
		return DateRange{Start: 0, End: nowMs}
	}
}

// PreviousPeriod returns the equal-length window immediately preceding r,
// used for period-over-period comparisons.
func PreviousPeriod(r DateRange) DateRange {
	length := r.End - r.Start
	return DateRange{Start: r.Start - length, End: r.Start}
}

// Contains reports whether the millisecond timestamp ts falls inside r.
func (r DateRange) Contains(ts int64) bool {
	return ts >= r.Start && ts <= r.End
}
