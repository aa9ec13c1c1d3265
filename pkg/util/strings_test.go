package util

import "testing"

func TestNormalizeHeader(t *testing.T) {
	if got := NormalizeHeader("  Closed PnL "); got != "closed pnl" {
		t.Fatalf("got %q", got)
	}
	if got := NormalizeHeader("\ufeffAccount"); got != "account" {
		t.Fatalf("got %q", got)
	}
}

func TestParseMoney(t *testing.T) {
	cases := map[string]string{
		"$1,234.50": "1234.5",
		"-12.3":     "-12.3",
		" 0 ":       "0",
		"$-7":       "-7",
	}
	for in, want := range cases {
		got, err := ParseMoney(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got.String() != want {
			t.Fatalf("%q: got %s want %s", in, got, want)
		}
	}
	for _, bad := range []string{"", "n/a", "$", "NaN", "Inf"} {
		if _, err := ParseMoney(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}

func TestParseNumber(t *testing.T) {
	if v, ok := ParseNumber(" 20 "); !ok || v != 20 {
		t.Fatalf("got %v %v", v, ok)
	}
	if v, ok := ParseNumber("1.5e1"); !ok || v != 15 {
		t.Fatalf("got %v %v", v, ok)
	}
	for _, bad := range []string{"", "high", "2x", "NaN", "nan", "Inf", "+Inf", "-inf", "Infinity"} {
		if _, ok := ParseNumber(bad); ok {
			t.Fatalf("%q: expected failure", bad)
		}
	}
}
