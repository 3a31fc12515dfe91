package calendar

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}

func TestPartitionWeeks_SundayAnchoredFixture(t *testing.T) {
	// 2025-01-05 and 2025-01-19 are both Sundays: neither bound snaps.
	start := mustDate(t, "2025-01-05")
	end := mustDate(t, "2025-01-19")

	weeks, err := PartitionWeeks(start, end, time.Sunday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(weeks))
	}
	if weeks[0].Start.String() != "2025-01-05" || weeks[0].End.String() != "2025-01-12" {
		t.Fatalf("week 1 mismatch: [%s, %s)", weeks[0].Start, weeks[0].End)
	}
	if weeks[1].Start.String() != "2025-01-12" || weeks[1].End.String() != "2025-01-19" {
		t.Fatalf("week 2 mismatch: [%s, %s)", weeks[1].Start, weeks[1].End)
	}
}

func TestPartitionWeeks_SnapsBothBoundsOutward(t *testing.T) {
	// 2025-01-08 is a Wednesday, 2025-01-16 a Thursday. With a Sunday
	// anchor the lower bound snaps back to 2025-01-05 and the upper bound
	// forward to 2025-01-19.
	weeks, err := PartitionWeeks(mustDate(t, "2025-01-08"), mustDate(t, "2025-01-16"), time.Sunday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(weeks))
	}
	if weeks[0].Start.String() != "2025-01-05" {
		t.Fatalf("lower snap mismatch: %s", weeks[0].Start)
	}
	if weeks[len(weeks)-1].End.String() != "2025-01-19" {
		t.Fatalf("upper snap mismatch: %s", weeks[len(weeks)-1].End)
	}
}

func TestPartitionWeeks_CoversRequestedRange(t *testing.T) {
	cases := []struct {
		start, end string
		anchor     time.Weekday
	}{
		{"2025-01-01", "2025-01-01", time.Sunday},
		{"2025-01-06", "2025-03-02", time.Monday},
		{"2024-12-28", "2025-01-04", time.Sunday}, // year boundary
		{"2024-02-26", "2024-03-04", time.Sunday}, // leap February
	}
	for _, tc := range cases {
		start, end := mustDate(t, tc.start), mustDate(t, tc.end)
		weeks, err := PartitionWeeks(start, end, tc.anchor)
		if err != nil {
			t.Fatalf("%s..%s: unexpected error: %v", tc.start, tc.end, err)
		}
		if len(weeks) == 0 {
			t.Fatalf("%s..%s: expected non-empty output", tc.start, tc.end)
		}
		if weeks[0].Start.After(start) {
			t.Fatalf("%s..%s: first week starts after range start: %s", tc.start, tc.end, weeks[0].Start)
		}
		if weeks[len(weeks)-1].End.Before(end) {
			t.Fatalf("%s..%s: last week ends before range end: %s", tc.start, tc.end, weeks[len(weeks)-1].End)
		}
		for i, w := range weeks {
			if w.Start.Weekday() != tc.anchor {
				t.Fatalf("%s..%s: week %d starts on %s, want %s", tc.start, tc.end, i, w.Start.Weekday(), tc.anchor)
			}
			if w.Start.DaysUntil(w.End) != 7 {
				t.Fatalf("%s..%s: week %d spans %d days", tc.start, tc.end, i, w.Start.DaysUntil(w.End))
			}
			if i > 0 && !weeks[i-1].End.Equal(w.Start) {
				t.Fatalf("%s..%s: gap between week %d and %d", tc.start, tc.end, i-1, i)
			}
		}
	}
}

func TestPartitionWeeks_Idempotent(t *testing.T) {
	weeks, err := PartitionWeeks(mustDate(t, "2025-04-09"), mustDate(t, "2025-05-21"), time.Sunday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Re-partitioning the already-snapped bounds reproduces the sequence.
	again, err := PartitionWeeks(weeks[0].Start, weeks[len(weeks)-1].End.AddDays(-1), time.Sunday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(again) != len(weeks) {
		t.Fatalf("expected %d weeks, got %d", len(weeks), len(again))
	}
	for i := range weeks {
		if !weeks[i].Start.Equal(again[i].Start) || !weeks[i].End.Equal(again[i].End) {
			t.Fatalf("week %d differs on re-partition", i)
		}
	}
}

func TestPartitionWeeks_NoPhantomTrailingWeek(t *testing.T) {
	// End exactly on the anchor weekday must not add a week past it.
	weeks, err := PartitionWeeks(mustDate(t, "2025-01-06"), mustDate(t, "2025-01-19"), time.Sunday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last := weeks[len(weeks)-1].End; last.String() != "2025-01-19" {
		t.Fatalf("expected last week to end at 2025-01-19, got %s", last)
	}
	if len(weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(weeks))
	}
}

func TestPartitionWeeks_SingleWindowYieldsOneWeek(t *testing.T) {
	// Tuesday to Friday within one Sunday-to-Sunday window.
	weeks, err := PartitionWeeks(mustDate(t, "2025-01-07"), mustDate(t, "2025-01-10"), time.Sunday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(weeks) != 1 {
		t.Fatalf("expected 1 week, got %d", len(weeks))
	}
}

func TestPartitionWeeks_SingleAnchorDay(t *testing.T) {
	d := mustDate(t, "2025-01-05") // Sunday
	weeks, err := PartitionWeeks(d, d, time.Sunday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(weeks) != 1 {
		t.Fatalf("expected 1 week, got %d", len(weeks))
	}
	if !weeks[0].Start.Equal(d) {
		t.Fatalf("expected week to start at %s, got %s", d, weeks[0].Start)
	}
}

func TestPartitionWeeks_StartAfterEnd(t *testing.T) {
	_, err := PartitionWeeks(mustDate(t, "2025-01-19"), mustDate(t, "2025-01-05"), time.Sunday)
	if err == nil {
		t.Fatalf("expected error")
	}
	ve, ok := err.(ValidationError)
	if !ok || ve.Code != CodeInvalidRange {
		t.Fatalf("expected %s, got %v", CodeInvalidRange, err)
	}
}
