package booking

import "time"

// OverlapWindow is the exclusion period around an existing booking.
// Reservations last two hours, so a second booking closer than this to
// an existing one would double-book the user.
const OverlapWindow = 2 * time.Hour

// HasConflict reports whether any existing booked start time lies
// strictly within window of desired, in either direction. Times
// exactly window apart do not conflict (back-to-back seatings are
// allowed). Repeated bookings at the same instant count once.
func HasConflict(existing []time.Time, desired time.Time, window time.Duration) bool {
	seen := make(map[int64]struct{}, len(existing))
	for _, t := range existing {
		key := t.UnixNano()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		diff := t.Sub(desired)
		if diff < 0 {
			diff = -diff
		}
		if diff < window {
			return true
		}
	}
	return false
}
