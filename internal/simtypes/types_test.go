package simtypes

import "testing"

func TestSideOpposite(t *testing.T) {
	if Buy.Opposite() != Sell {
		t.Errorf("expected Buy opposite to be Sell")
	}
	if Sell.Opposite() != Buy {
		t.Errorf("expected Sell opposite to be Buy")
	}
}

func TestIsValidPrice(t *testing.T) {
	cases := []struct {
		price Price
		want  bool
	}{
		{0, false},
		{-5, false},
		{1, true},
		{10000, true},
	}
	for _, c := range cases {
		if got := IsValidPrice(c.price); got != c.want {
			t.Errorf("IsValidPrice(%d) = %v, want %v", c.price, got, c.want)
		}
	}
}

func TestIsValidQuantity(t *testing.T) {
	if IsValidQuantity(0) || IsValidQuantity(-1) {
		t.Errorf("non-positive quantities must be invalid")
	}
	if !IsValidQuantity(1) {
		t.Errorf("positive quantity must be valid")
	}
}

func TestMidPrice(t *testing.T) {
	if got := MidPrice(100, 200); got != 150 {
		t.Errorf("MidPrice(100,200) = %d, want 150", got)
	}
	if got := MidPrice(0, 200); got != 0 {
		t.Errorf("MidPrice with missing bid should be 0, got %d", got)
	}
	if got := MidPrice(100, 0); got != 0 {
		t.Errorf("MidPrice with missing ask should be 0, got %d", got)
	}
}

func TestSpread(t *testing.T) {
	if got := Spread(100, 110); got != 10 {
		t.Errorf("Spread(100,110) = %d, want 10", got)
	}
	if got := Spread(0, 110); got != 0 {
		t.Errorf("Spread with missing bid should be 0, got %d", got)
	}
}
