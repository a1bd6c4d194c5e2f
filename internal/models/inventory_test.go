package models

import "testing"

func TestRoundPriceToFive(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1, 0},
		{2.4, 0},
		{2.5, 5}, // half rounds away from zero
		{11, 10},
		{12.5, 15},
		{13, 15},
		{47.5, 50},
		{-2.5, -5},
		{-11, -10},
	}
	for _, c := range cases {
		if got := RoundPriceToFive(c.in); got != c.want {
			t.Errorf("RoundPriceToFive(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestMakeItemIDStable(t *testing.T) {
	a := MakeItemID("Milk", "Dairy")
	b := MakeItemID("  milk ", "DAIRY")
	if a != b {
		t.Errorf("item id should ignore case and surrounding spaces: %s != %s", a, b)
	}
	if len(a) != 12 {
		t.Errorf("item id length = %d, want 12", len(a))
	}
	if a == MakeItemID("Milk", "Grocery") {
		t.Errorf("different categories should yield different ids")
	}
}
