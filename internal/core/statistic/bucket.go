package statistic

import (
	"time"
)

// Window is an inclusive time range [Start, End].
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the window, both bounds inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Overlaps reports whether the two windows share at least one instant.
func (w Window) Overlaps(other Window) bool {
	return !w.End.Before(other.Start) && !other.End.Before(w.Start)
}

// BucketStart normalizes t to the start of its bucket for the given precision.
// Calendar boundaries are evaluated in loc; a nil loc means UTC.
// Example: BucketStart(2024-03-01T09:41:12, Day, UTC) → 2024-03-01T00:00:00
func BucketStart(t time.Time, precision Precision, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	y, m, d := lt.Date()

	switch precision {
	case Hour:
		// Computed on the instant so the repeated fall-back hour stays a separate bucket.
		return lt.Add(-(time.Duration(lt.Minute())*time.Minute +
			time.Duration(lt.Second())*time.Second +
			time.Duration(lt.Nanosecond())))
	case Month:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
}

// DayBucket returns the start of the calendar day containing t.
func DayBucket(t time.Time, loc *time.Location) time.Time {
	return BucketStart(t, Day, loc)
}

// DayWindow returns [00:00:00.000, 23:59:59.999] of the calendar day containing t, on the
// wall clock of loc. The window is 23 or 25 hours long on DST transition days.
func DayWindow(t time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Window{
		Start: time.Date(y, m, d, 0, 0, 0, 0, loc),
		End:   time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc),
	}
}

// ComparisonWindows returns the day windows for a comparison query.
// Two dates on the same calendar day produce a single window.
func ComparisonWindows(first, second time.Time, loc *time.Location) []Window {
	a := DayWindow(first, loc)
	b := DayWindow(second, loc)
	if a.Start.Equal(b.Start) {
		return []Window{a}
	}
	if b.Start.Before(a.Start) {
		a, b = b, a
	}
	return []Window{a, b}
}
