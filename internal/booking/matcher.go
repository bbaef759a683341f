package booking

import (
	"context"
	"sort"
	"time"
)

// ProximityWindow is the tolerance used when matching a desired time to
// candidate slots. A slot starting within fifteen minutes of the
// desired time, either side, qualifies.
const ProximityWindow = 15 * time.Minute

// Matcher produces the ranked list of reservation slots satisfying a
// group's aggregated diet constraint and time proximity.
type Matcher struct {
	reservations ReservationStore
}

// NewMatcher returns a Matcher backed by the given reservation store.
func NewMatcher(reservations ReservationStore) *Matcher {
	return &Matcher{reservations: reservations}
}

// FindCandidates queries available slots near desired that satisfy the
// diet constraint and orders them closest match first; ties break on
// ascending restaurant ID so results are deterministic. No qualifying
// slot yields an empty slice, not an error.
func (m *Matcher) FindCandidates(ctx context.Context, diets []string, desired time.Time) ([]Candidate, error) {
	cands, err := m.reservations.FindCandidates(ctx, diets, desired, ProximityWindow)
	if err != nil {
		return nil, err
	}
	for i := range cands {
		cands[i].TimeDiffMinutes = int64(desired.Sub(cands[i].StartTime) / time.Minute)
	}
	sort.SliceStable(cands, func(i, j int) bool {
		di, dj := absMinutes(cands[i].TimeDiffMinutes), absMinutes(cands[j].TimeDiffMinutes)
		if di != dj {
			return di < dj
		}
		return cands[i].RestaurantID < cands[j].RestaurantID
	})
	if cands == nil {
		cands = []Candidate{}
	}
	return cands, nil
}

func absMinutes(m int64) int64 {
	if m < 0 {
		return -m
	}
	return m
}
