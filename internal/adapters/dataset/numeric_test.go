package dataset

import (
	"testing"
)

func TestToNum_Sentinels(t *testing.T) {
	cases := []string{
		"not applicable", "Not Applicable", "NOT AVAILABLE",
		"na", "NA", "n/a", "N/A", "nan", "NaN", "", "   ", " n/a ",
	}
	for _, c := range cases {
		if _, ok := ToNum(c); ok {
			t.Errorf("ToNum(%q) should report no value", c)
		}
	}
}

func TestToNum_Numeric(t *testing.T) {
	cases := map[string]float64{
		"0":       0,
		"1.5":     1.5,
		"-2.75":   -2.75,
		"  42  ":  42,
		"1e3":     1000,
		"0.88":    0.88,
		"100.000": 100,
	}
	for raw, want := range cases {
		got, ok := ToNum(raw)
		if !ok {
			t.Errorf("ToNum(%q) should parse", raw)
			continue
		}
		if got != want {
			t.Errorf("ToNum(%q) = %f, want %f", raw, got, want)
		}
	}
}

func TestToNum_Garbage(t *testing.T) {
	cases := []string{"high", "12 minutes", "--", "1.2.3", "inf", "+Inf"}
	for _, c := range cases {
		if _, ok := ToNum(c); ok {
			t.Errorf("ToNum(%q) should report no value", c)
		}
	}
}

func TestIsSentinel(t *testing.T) {
	if !IsSentinel(" Not Available ") {
		t.Error("expected sentinel")
	}
	if IsSentinel("medium") {
		t.Error("categorical text is not a sentinel")
	}
}

func TestRound(t *testing.T) {
	if got := Round(1.23456, 3); got != 1.235 {
		t.Errorf("Round(1.23456, 3) = %f", got)
	}
	if got := Round(87.1, 2); got != 87.1 {
		t.Errorf("Round(87.1, 2) = %f", got)
	}
	if got := Round(2.0, 3); got != 2.0 {
		t.Errorf("Round(2.0, 3) = %f", got)
	}
}
