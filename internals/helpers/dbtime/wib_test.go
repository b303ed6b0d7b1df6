package dbtime

import (
	"testing"
	"time"
)

func TestParseWIBForm(t *testing.T) {
	got, err := ParseWIBForm("2025-03-10T09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 3, 10, 2, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", got.Location())
	}
	if back := FormatWIBForm(got); back != "2025-03-10T09:30" {
		t.Fatalf("expected round trip, got %q", back)
	}

	if _, err := ParseWIBForm("10/03/2025"); err == nil {
		t.Fatalf("expected error for invalid layout")
	}
	if _, err := ParseWIBForm(" "); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestPresentationHelpers(t *testing.T) {
	ts := time.Date(2025, 1, 31, 20, 15, 0, 0, time.UTC) // 1 Feb 03:15 WIB

	if got := ClockWIB(ts); got != "03:15" {
		t.Fatalf("ClockWIB: got %q", got)
	}
	if got := DateLongWIB(ts); got != "01 Februari 2025" {
		t.Fatalf("DateLongWIB: got %q", got)
	}
	if got := DayMonthWIB(ts); got != "01 Februari" {
		t.Fatalf("DayMonthWIB: got %q", got)
	}
}

func TestRanges(t *testing.T) {
	start, end := MonthRangeWIB(2025, time.March)
	if !start.Equal(time.Date(2025, 2, 28, 17, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected month start %v", start)
	}
	if !end.Equal(time.Date(2025, 3, 31, 17, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected month end %v", end)
	}

	dayStart, dayEnd := UTCDayRange(time.Date(2025, 5, 5, 23, 59, 0, 0, time.UTC))
	if !dayStart.Equal(time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)) || !dayEnd.Equal(time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected day range %v - %v", dayStart, dayEnd)
	}
}
