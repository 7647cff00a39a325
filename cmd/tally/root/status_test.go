package root

import "testing"

func TestWeekLabel(t *testing.T) {
	cases := []struct {
		i    int
		want string
	}{
		{0, "today"},
		{1, "1d ago"},
		{6, "6d ago"},
	}
	for _, c := range cases {
		if got := weekLabel(c.i); got != c.want {
			t.Fatalf("weekLabel(%d)=%q, want %q", c.i, got, c.want)
		}
	}
}
