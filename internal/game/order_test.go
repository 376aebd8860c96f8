package game

import "testing"

func TestNextEligible(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		from       int
		numSeats   int
		ineligible []bool
		want       int
	}{
		{"next seat", 0, 3, nil, 1},
		{"wraps around", 2, 3, nil, 0},
		{"skips ineligible", 0, 4, []bool{false, true, true, false}, 3},
		{"skips and wraps", 2, 4, []bool{true, false, false, true}, 1},
		{"only own seat eligible", 1, 4, []bool{true, false, true, true}, NoSeat},
		{"everything ineligible", 0, 3, []bool{true, true, true}, NoSeat},
		{"short mask counts as eligible", 0, 3, []bool{false, true}, 2},
		{"no previous seat starts at zero", NoSeat, 3, nil, 0},
		{"no previous seat skips ineligible", NoSeat, 3, []bool{true, false, false}, 1},
		{"no seats", 0, 0, nil, NoSeat},
		{"single seat", 0, 1, nil, NoSeat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextEligible(tt.from, tt.numSeats, tt.ineligible)
			if got != tt.want {
				t.Errorf("NextEligible(%d, %d, %v) = %d, want %d", tt.from, tt.numSeats, tt.ineligible, got, tt.want)
			}
		})
	}
}

func TestNextEligibleAllButCallerIneligible(t *testing.T) {
	t.Parallel()
	for n := 2; n <= MaxSeats; n++ {
		for from := 0; from < n; from++ {
			mask := make([]bool, n)
			for i := range mask {
				mask[i] = i != from
			}
			if got := NextEligible(from, n, mask); got != NoSeat {
				t.Errorf("n=%d from=%d: got %d, want NoSeat", n, from, got)
			}
		}
	}
}
