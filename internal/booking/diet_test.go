package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

func TestAggregateDiets_Union(t *testing.T) {
	got := booking.AggregateDiets(
		[]string{model.DietVegan},
		[]string{model.DietPaleo},
	)

	assert.Equal(t, []string{model.DietPaleo, model.DietVegan}, got)
}

func TestAggregateDiets_AllEmpty(t *testing.T) {
	// A group with no restrictions recorded constrains nothing: any
	// restaurant qualifies.
	got := booking.AggregateDiets([]string{}, []string{})

	assert.Empty(t, got)
}

func TestAggregateDiets_Deduplicates(t *testing.T) {
	got := booking.AggregateDiets(
		[]string{model.DietVegan, model.DietGlutenFree},
		[]string{model.DietVegan},
		[]string{model.DietGlutenFree, model.DietVegan},
	)

	assert.Equal(t, []string{model.DietGlutenFree, model.DietVegan}, got)
}

func TestAggregateDiets_NoInput(t *testing.T) {
	assert.Empty(t, booking.AggregateDiets())
}
