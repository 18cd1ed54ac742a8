package mathx

import "testing"

func Test_Round(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0.5, 1},
		{1.49, 1},
		{-2.5, -2},
		{-2.51, -3},
		{99.99, 100},
	}
	for _, c := range cases {
		if got := Round(c.in); got != c.want {
			t.Fatalf("Round(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func Test_Clamp(t *testing.T) {
	if Clamp(120, 0, 100) != 100 || Clamp(-5, 0, 100) != 0 || Clamp(42, 0, 100) != 42 {
		t.Fatal("clamp out of range")
	}
}
