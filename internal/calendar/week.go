package calendar

import "time"

// Week is a 7-day interval [Start, End) aligned to the anchor weekday.
type Week struct {
	Start Date `json:"startDate"`
	End   Date `json:"endDate"`
}

// PartitionWeeks splits [start, end] into consecutive 7-day weeks whose
// boundaries fall on anchor.
//
// Rules:
// - The lower bound snaps backward to the most recent anchor weekday (no-op when start already falls on it).
// - The upper bound snaps forward to the next anchor weekday (no-op when end already falls on it).
// - The snapped span is always an exact multiple of 7 days, so the walk terminates exactly at the upper bound.
//
// The returned weeks are contiguous, sorted ascending, and their union covers
// the full requested range. Output is never empty for a valid range.
func PartitionWeeks(start, end Date, anchor time.Weekday) ([]Week, error) {
	if start.After(end) {
		return nil, ValidationError{Code: CodeInvalidRange, Message: "start date must not be after end date"}
	}

	lower := snapBackward(start, anchor)
	upper := snapForward(end, anchor)
	if lower.Equal(upper) {
		// Range collapses onto a single anchor day; it still occupies one week.
		upper = upper.AddDays(7)
	}

	var weeks []Week
	for cursor := lower; cursor.Before(upper); cursor = cursor.AddDays(7) {
		weeks = append(weeks, Week{Start: cursor, End: cursor.AddDays(7)})
	}
	return weeks, nil
}

func snapBackward(d Date, anchor time.Weekday) Date {
	offset := (int(d.Weekday()) - int(anchor) + 7) % 7
	return d.AddDays(-offset)
}

func snapForward(d Date, anchor time.Weekday) Date {
	offset := (int(anchor) - int(d.Weekday()) + 7) % 7
	return d.AddDays(offset)
}
