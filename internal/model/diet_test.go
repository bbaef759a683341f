package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

func TestCanonicalDiet(t *testing.T) {
	got, ok := model.CanonicalDiet("vegan")
	assert.True(t, ok)
	assert.Equal(t, model.DietVegan, got)

	got, ok = model.CanonicalDiet("GLUTEN FREE")
	assert.True(t, ok)
	assert.Equal(t, model.DietGlutenFree, got)

	_, ok = model.CanonicalDiet("carnivore")
	assert.False(t, ok)
}

func TestParseDietSet(t *testing.T) {
	assert.Equal(t, []string{"Vegan", "Paleo"}, model.ParseDietSet("Vegan,Paleo"))
	assert.Empty(t, model.ParseDietSet(""))
}

func TestFormatDietSetRoundTrip(t *testing.T) {
	in := []string{"Vegetarian", "Gluten Free"}
	assert.Equal(t, in, model.ParseDietSet(model.FormatDietSet(in)))
}
