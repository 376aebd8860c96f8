package game

// NextEligible walks the seats circularly starting at from+1 and returns the
// first seat whose ineligible flag is false. The walk stops before coming
// back to from, so NoSeat means every other seat is ineligible. A from
// outside the table searches every seat from 0. Seats beyond the end of
// ineligible count as eligible.
func NextEligible(from, numSeats int, ineligible []bool) int {
	if numSeats <= 0 {
		return NoSeat
	}
	blocked := func(seat int) bool {
		return seat < len(ineligible) && ineligible[seat]
	}

	if from < 0 || from >= numSeats {
		for seat := 0; seat < numSeats; seat++ {
			if !blocked(seat) {
				return seat
			}
		}
		return NoSeat
	}

	for step := 1; step < numSeats; step++ {
		seat := (from + step) % numSeats
		if !blocked(seat) {
			return seat
		}
	}
	return NoSeat
}
