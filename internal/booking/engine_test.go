package booking_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

type fakeRestaurant struct {
	name  string
	diets []string
}

// fakeStore is an in-memory implementation of both engine stores. Its
// BookReservation performs the same conditional claim the SQL layer
// does, guarded by a mutex, so concurrency behaviour can be exercised
// without a database.
type fakeStore struct {
	mu           sync.Mutex
	users        map[uint64][]string
	restaurants  map[uint64]fakeRestaurant
	reservations map[uint64]*model.Reservation
	assoc        map[uint64][]uint64
	unavailable  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        make(map[uint64][]string),
		restaurants:  make(map[uint64]fakeRestaurant),
		reservations: make(map[uint64]*model.Reservation),
		assoc:        make(map[uint64][]uint64),
	}
}

func (s *fakeStore) storageErr() error {
	return fmt.Errorf("%w: connection refused", booking.ErrStorageUnavailable)
}

// gate mirrors the SQL layer's failure surface: a flagged outage and a
// dead context both come back wrapped in ErrStorageUnavailable.
func (s *fakeStore) gate(ctx context.Context) error {
	if s.unavailable {
		return s.storageErr()
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", booking.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *fakeStore) CountExisting(ctx context.Context, ids []uint64) (int, error) {
	if err := s.gate(ctx); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, id := range ids {
		if _, ok := s.users[id]; ok {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) DietRestrictions(ctx context.Context, ids []uint64) ([][]string, error) {
	if err := s.gate(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sets := make([][]string, 0, len(ids))
	for _, id := range ids {
		sets = append(sets, s.users[id])
	}
	return sets, nil
}

func (s *fakeStore) BookedStartTimes(ctx context.Context, ids []uint64) ([]time.Time, error) {
	if err := s.gate(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var times []time.Time
	for resID, members := range s.assoc {
		for _, uid := range members {
			if _, ok := want[uid]; ok {
				times = append(times, s.reservations[resID].StartTime)
				break
			}
		}
	}
	return times, nil
}

func (s *fakeStore) FindCandidates(ctx context.Context, diets []string, desired time.Time, proximity time.Duration) ([]booking.Candidate, error) {
	if err := s.gate(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []booking.Candidate
	for _, res := range s.reservations {
		if !res.Available {
			continue
		}
		diff := res.StartTime.Sub(desired)
		if diff < 0 {
			diff = -diff
		}
		if diff > proximity {
			continue
		}
		rest := s.restaurants[res.RestaurantID]
		if !supportsAll(rest.diets, diets) {
			continue
		}
		out = append(out, booking.Candidate{
			ReservationID:  res.ID,
			RestaurantID:   res.RestaurantID,
			RestaurantName: rest.name,
			StartTime:      res.StartTime,
			NumSeats:       res.NumSeats,
			SupportedDiets: rest.diets,
		})
	}
	return out, nil
}

func supportsAll(supported, required []string) bool {
	for _, tag := range required {
		found := false
		for _, s := range supported {
			if s == tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s *fakeStore) GetReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	if err := s.gate(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.reservations[id]
	if !ok {
		return nil, booking.ErrReservationNotFound
	}
	cp := *res
	return &cp, nil
}

func (s *fakeStore) BookReservation(ctx context.Context, id uint64, userIDs []uint64) error {
	if err := s.gate(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.reservations[id]
	if !ok {
		return booking.ErrReservationNotFound
	}
	if !res.Available {
		return booking.ErrAlreadyBooked
	}
	res.Available = false
	s.assoc[id] = append([]uint64(nil), userIDs...)
	return nil
}

func (s *fakeStore) CancelReservation(ctx context.Context, id uint64) error {
	if err := s.gate(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.reservations[id]
	if !ok {
		return booking.ErrReservationNotFound
	}
	res.Available = true
	delete(s.assoc, id)
	return nil
}

// invariantHolds verifies the core guarantee: a reservation is
// available exactly when it has no association rows.
func (s *fakeStore) invariantHolds() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, res := range s.reservations {
		if res.Available != (len(s.assoc[id]) == 0) {
			return false
		}
	}
	return true
}

func (s *fakeStore) addUser(id uint64, diets ...string) {
	s.users[id] = diets
}

func (s *fakeStore) addRestaurant(id uint64, name string, diets ...string) {
	s.restaurants[id] = fakeRestaurant{name: name, diets: diets}
}

func (s *fakeStore) addSlot(id, restaurantID uint64, start time.Time, seats uint32) {
	s.reservations[id] = &model.Reservation{
		ID:           id,
		RestaurantID: restaurantID,
		StartTime:    start,
		NumSeats:     seats,
		Available:    true,
	}
}

func TestFindReservations_EmptyGroup(t *testing.T) {
	engine := booking.NewEngine(newFakeStore(), newFakeStore())

	_, err := engine.FindReservations(context.Background(), nil, at(19, 0))

	assert.ErrorIs(t, err, booking.ErrEmptyGroup)
}

func TestFindReservations_UnknownUser(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	engine := booking.NewEngine(store, store)

	_, err := engine.FindReservations(context.Background(), []uint64{1, 999}, at(19, 0))

	assert.ErrorIs(t, err, booking.ErrUnknownUser)
}

func TestFindReservations_DuplicateIDsValidateOnce(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	engine := booking.NewEngine(store, store)

	_, err := engine.FindReservations(context.Background(), []uint64{1, 1, 1}, at(19, 0))

	assert.NoError(t, err)
}

func TestFindReservations_TimeConflictShortCircuits(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.addUser(2)
	store.addRestaurant(10, "Verdura")
	store.addSlot(100, 10, at(19, 0), 4)
	engine := booking.NewEngine(store, store)

	// User 2 books the 19:00 slot, then the group asks for 20:30.
	require.NoError(t, engine.BookReservation(context.Background(), 100, []uint64{2}))

	_, err := engine.FindReservations(context.Background(), []uint64{1, 2}, at(20, 30))

	assert.ErrorIs(t, err, booking.ErrTimeConflict)
}

func TestFindReservations_FiltersByGroupDietUnion(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, model.DietVegan)
	store.addUser(2) // no restrictions
	store.addRestaurant(10, "Verdura", model.DietVegan, model.DietVegetarian)
	store.addRestaurant(11, "Smokehouse", model.DietPaleo)
	store.addSlot(100, 10, at(19, 5), 4)
	store.addSlot(101, 11, at(19, 0), 4)
	engine := booking.NewEngine(store, store)

	cands, err := engine.FindReservations(context.Background(), []uint64{1, 2}, at(19, 0))

	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, uint64(100), cands[0].ReservationID)
	assert.Equal(t, "Verdura", cands[0].RestaurantName)
	assert.Equal(t, int64(-5), cands[0].TimeDiffMinutes)
}

func TestFindReservations_RanksByProximity(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.addRestaurant(10, "Verdura")
	store.addRestaurant(11, "Smokehouse")
	store.addRestaurant(12, "Trattoria")
	store.addSlot(100, 11, at(18, 50), 4) // 10 minutes out
	store.addSlot(101, 10, at(19, 5), 2)  // 5 minutes out: closest
	store.addSlot(102, 12, at(19, 15), 6) // boundary: still included
	store.addSlot(103, 12, at(19, 16), 6) // outside the window
	engine := booking.NewEngine(store, store)

	cands, err := engine.FindReservations(context.Background(), []uint64{1}, at(19, 0))

	require.NoError(t, err)
	require.Len(t, cands, 3)
	assert.Equal(t, uint64(101), cands[0].ReservationID)
	assert.Equal(t, uint64(100), cands[1].ReservationID)
	assert.Equal(t, uint64(102), cands[2].ReservationID)
}

func TestFindReservations_TiesBreakOnRestaurantID(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.addRestaurant(20, "Beta")
	store.addRestaurant(10, "Alpha")
	store.addSlot(200, 20, at(19, 10), 4)
	store.addSlot(201, 10, at(18, 50), 4) // same 10-minute distance
	engine := booking.NewEngine(store, store)

	cands, err := engine.FindReservations(context.Background(), []uint64{1}, at(19, 0))

	require.NoError(t, err)
	require.Len(t, cands, 2)
	assert.Equal(t, uint64(10), cands[0].RestaurantID)
	assert.Equal(t, uint64(20), cands[1].RestaurantID)
}

func TestFindReservations_NoMatchIsEmptyNotError(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	engine := booking.NewEngine(store, store)

	cands, err := engine.FindReservations(context.Background(), []uint64{1}, at(19, 0))

	require.NoError(t, err)
	assert.NotNil(t, cands)
	assert.Empty(t, cands)
}

func TestFindReservations_StorageUnavailable(t *testing.T) {
	store := newFakeStore()
	store.unavailable = true
	engine := booking.NewEngine(store, store)

	_, err := engine.FindReservations(context.Background(), []uint64{1}, at(19, 0))

	assert.ErrorIs(t, err, booking.ErrStorageUnavailable)
}

func TestFindReservations_DeadlineSurfacesAsStorageUnavailable(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	engine := booking.NewEngine(store, store)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := engine.FindReservations(ctx, []uint64{1}, at(19, 0))

	assert.ErrorIs(t, err, booking.ErrStorageUnavailable)
}

func TestBookReservation_DeadlineSurfacesAsStorageUnavailable(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.addRestaurant(10, "Verdura")
	store.addSlot(100, 10, at(19, 0), 4)
	engine := booking.NewEngine(store, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := engine.BookReservation(ctx, 100, []uint64{1})

	assert.ErrorIs(t, err, booking.ErrStorageUnavailable)
	assert.True(t, store.invariantHolds())
	res, getErr := store.GetReservation(context.Background(), 100)
	require.NoError(t, getErr)
	assert.True(t, res.Available)
}

func TestBookReservation_Success(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.addUser(2)
	store.addRestaurant(10, "Verdura")
	store.addSlot(100, 10, at(19, 0), 4)
	engine := booking.NewEngine(store, store)

	err := engine.BookReservation(context.Background(), 100, []uint64{1, 2})

	require.NoError(t, err)
	assert.False(t, store.reservations[100].Available)
	assert.ElementsMatch(t, []uint64{1, 2}, store.assoc[100])
	assert.True(t, store.invariantHolds())
}

func TestBookReservation_NotFound(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	engine := booking.NewEngine(store, store)

	err := engine.BookReservation(context.Background(), 999, []uint64{1})

	assert.ErrorIs(t, err, booking.ErrReservationNotFound)
}

func TestBookReservation_AlreadyBooked(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.addUser(2)
	store.addRestaurant(10, "Verdura")
	store.addSlot(100, 10, at(19, 0), 4)
	engine := booking.NewEngine(store, store)

	require.NoError(t, engine.BookReservation(context.Background(), 100, []uint64{1}))

	err := engine.BookReservation(context.Background(), 100, []uint64{2})

	assert.ErrorIs(t, err, booking.ErrAlreadyBooked)
	assert.ElementsMatch(t, []uint64{1}, store.assoc[100])
	assert.True(t, store.invariantHolds())
}

func TestBookReservation_RejectsStaleCandidate(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.addRestaurant(10, "Verdura")
	store.addSlot(100, 10, at(19, 0), 2)
	store.addSlot(101, 10, at(20, 0), 2)
	engine := booking.NewEngine(store, store)

	// The user books 19:00, then tries to book a slot an hour later
	// that was matched before the first booking existed.
	require.NoError(t, engine.BookReservation(context.Background(), 100, []uint64{1}))

	err := engine.BookReservation(context.Background(), 101, []uint64{1})

	assert.ErrorIs(t, err, booking.ErrTimeConflict)
	assert.True(t, store.reservations[101].Available)
	assert.True(t, store.invariantHolds())
}

func TestBookReservation_ConcurrentSingleWinner(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.addUser(2)
	store.addRestaurant(10, "Verdura")
	store.addSlot(100, 10, at(19, 0), 4)
	engine := booking.NewEngine(store, store)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, uid := range []uint64{1, 2} {
		wg.Add(1)
		go func(uid uint64) {
			defer wg.Done()
			errs <- engine.BookReservation(context.Background(), 100, []uint64{uid})
		}(uid)
	}
	wg.Wait()
	close(errs)

	var ok, conflict int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, booking.ErrAlreadyBooked):
			conflict++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflict)
	assert.Len(t, store.assoc[100], 1)
	assert.True(t, store.invariantHolds())
}

func TestCancelReservation_Idempotent(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.addRestaurant(10, "Verdura")
	store.addSlot(100, 10, at(19, 0), 4)
	engine := booking.NewEngine(store, store)

	require.NoError(t, engine.BookReservation(context.Background(), 100, []uint64{1}))

	require.NoError(t, engine.CancelReservation(context.Background(), 100))
	require.NoError(t, engine.CancelReservation(context.Background(), 100))

	assert.True(t, store.reservations[100].Available)
	assert.Empty(t, store.assoc[100])
	assert.True(t, store.invariantHolds())
}

func TestCancelReservation_NotFound(t *testing.T) {
	store := newFakeStore()
	engine := booking.NewEngine(store, store)

	err := engine.CancelReservation(context.Background(), 999)

	assert.ErrorIs(t, err, booking.ErrReservationNotFound)
}

func TestCancelThenRebook(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.addUser(2)
	store.addRestaurant(10, "Verdura")
	store.addSlot(100, 10, at(19, 0), 4)
	engine := booking.NewEngine(store, store)

	require.NoError(t, engine.BookReservation(context.Background(), 100, []uint64{1}))
	require.NoError(t, engine.CancelReservation(context.Background(), 100))

	err := engine.BookReservation(context.Background(), 100, []uint64{2})

	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{2}, store.assoc[100])
	assert.True(t, store.invariantHolds())
}

func TestBookedSlotExcludedFromLaterFind(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, model.DietVegan)
	store.addUser(2)
	store.addUser(3)
	store.addRestaurant(10, "Verdura", model.DietVegan)
	store.addSlot(100, 10, at(19, 0), 4)
	engine := booking.NewEngine(store, store)

	cands, err := engine.FindReservations(context.Background(), []uint64{1, 2}, at(19, 0))
	require.NoError(t, err)
	require.Len(t, cands, 1)

	require.NoError(t, engine.BookReservation(context.Background(), cands[0].ReservationID, []uint64{1, 2}))

	// A different group searching the same time no longer sees the slot.
	cands, err = engine.FindReservations(context.Background(), []uint64{3}, at(19, 0))
	require.NoError(t, err)
	assert.Empty(t, cands)
}
