package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"stagebook/internal/calendar"
)

// weekcheck is a standalone regression fixture for the week partitioner:
// it partitions a literal date range and verifies the week count.
//
// The defaults encode a known case: 2025-01-05 and 2025-01-19 are both
// Sundays, so with a Sunday anchor the range splits into exactly 2 weeks
// with no snapping on either bound.
func main() {
	var (
		start  = flag.String("start", "2025-01-05", "range start (YYYY-MM-DD)")
		end    = flag.String("end", "2025-01-19", "range end (YYYY-MM-DD)")
		anchor = flag.String("anchor", "Sunday", "anchor weekday")
		expect = flag.Int("expect", 2, "expected week count (-1 to skip the assertion)")
	)
	flag.Parse()

	startDate, err := calendar.ParseDate(*start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start: %v\n", err)
		os.Exit(2)
	}
	endDate, err := calendar.ParseDate(*end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "end: %v\n", err)
		os.Exit(2)
	}
	weekday, err := parseWeekday(*anchor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "anchor: %v\n", err)
		os.Exit(2)
	}

	weeks, err := calendar.PartitionWeeks(startDate, endDate, weekday)
	if err != nil {
		fmt.Fprintf(os.Stderr, "partition: %v\n", err)
		os.Exit(1)
	}

	for i, w := range weeks {
		fmt.Printf("week %d: [%s, %s)\n", i+1, w.Start, w.End)
	}

	if *expect >= 0 && len(weeks) != *expect {
		fmt.Fprintf(os.Stderr, "expected %d weeks, got %d\n", *expect, len(weeks))
		os.Exit(1)
	}
	fmt.Printf("ok: %d weeks\n", len(weeks))
}

func parseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), s) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
