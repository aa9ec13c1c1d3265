package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseEpochMillis(t *testing.T) {
	cases := map[string]time.Time{
		"1730000000000": time.UnixMilli(1730000000000).UTC(),
		"1.73E+12":      time.UnixMilli(1730000000000).UTC(),
	}
	for in, want := range cases {
		got, ok := ParseEpochMillis(in)
		if !ok {
			t.Fatalf("%q: expected ok", in)
		}
		if !got.Equal(want) {
			t.Fatalf("%q: got %v want %v", in, got, want)
		}
	}
	for _, bad := range []string{"soon", "NaN", "nan", "Inf", "-Inf", "1e300"} {
		if _, ok := ParseEpochMillis(bad); ok {
			t.Fatalf("%q: expected failure", bad)
		}
	}
}

func TestIsNumericAndMissing(t *testing.T) {
	if !IsNumeric("1.73E+12") || IsNumeric("NaN") || IsNumeric("inf") {
		t.Fatalf("IsNumeric must accept only finite numbers")
	}
	for _, s := range []string{"", " ", "NaN", "nan", "N/A", "null"} {
		if !IsMissing(s) {
			t.Fatalf("%q: expected missing", s)
		}
	}
	if IsMissing("0") || IsMissing("bogus") {
		t.Fatalf("values must not read as missing")
	}
}

func TestParseDayFirst(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"02-12-2024 22:50", time.Date(2024, 12, 2, 22, 50, 0, 0, time.UTC)},
		{"02-12-2024", time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC)},
		{"2-12-2024 22:50:15", time.Date(2024, 12, 2, 22, 50, 15, 0, time.UTC)},
		{"2/12/2024 09:05:30", time.Date(2024, 12, 2, 9, 5, 30, 0, time.UTC)},
		{"02.12.2024 22:50:15", time.Date(2024, 12, 2, 22, 50, 15, 0, time.UTC)},
		{"5/3/2023", time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"2018-02-01", time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"2018-02-01 13:00:00", time.Date(2018, 2, 1, 13, 0, 0, 0, time.UTC)},
		{"1517443200", time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, ok := ParseDayFirst(c.in)
		if !ok {
			t.Fatalf("%q: expected ok", c.in)
		}
		if !got.Equal(c.want) {
			t.Fatalf("%q: got %v want %v", c.in, got, c.want)
		}
	}
	for _, bad := range []string{"", "yesterday", "31-31-2024"} {
		if _, ok := ParseDayFirst(bad); ok {
			t.Fatalf("%q: expected failure", bad)
		}
	}
}

func TestDateKey(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	in := time.Date(2024, 3, 9, 23, 59, 0, 0, ist)
	got := DateKey(in)
	want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
