package utils

import "testing"

func TestRoundCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.125, 0.12}, // half-to-even rounds down to the even cent
		{0.375, 0.38}, // and up to the even cent here
		{0.1 + 0.2, 0.3},
		{10.234, 10.23},
		{99.999, 100.0},
		{8300, 8300},
	}
	for _, c := range cases {
		if got := RoundCurrency(c.in); got != c.want {
			t.Errorf("RoundCurrency(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRoundPct(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{2.00004, 2.0},
		{2.00006, 2.0001},
		{0.77777, 0.7778},
		{20.0, 20.0},
	}
	for _, c := range cases {
		if got := RoundPct(c.in); got != c.want {
			t.Errorf("RoundPct(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
