package model

import "strings"

// Diet tags recognised by the service.  They mirror the SET column
// definition on the users.diet_restrictions and restaurants.diet_support
// columns, so any tag written to the database must be one of these.
const (
	DietVegan      = "Vegan"
	DietGlutenFree = "Gluten Free"
	DietVegetarian = "Vegetarian"
	DietPaleo      = "Paleo"
)

// KnownDiets lists every valid diet tag in column order.
var KnownDiets = []string{DietVegan, DietGlutenFree, DietVegetarian, DietPaleo}

// IsKnownDiet reports whether tag matches one of the recognised diet
// tags.  Comparison is case-insensitive; callers should store the
// canonical casing returned by CanonicalDiet.
func IsKnownDiet(tag string) bool {
	_, ok := canonicalDiet(tag)
	return ok
}

// CanonicalDiet maps a tag to its canonical casing ("vegan" -> "Vegan").
// The boolean is false when the tag is not recognised.
func CanonicalDiet(tag string) (string, bool) { return canonicalDiet(tag) }

func canonicalDiet(tag string) (string, bool) {
	t := strings.TrimSpace(tag)
	for _, known := range KnownDiets {
		if strings.EqualFold(t, known) {
			return known, true
		}
	}
	return "", false
}

// ParseDietSet splits a MySQL SET value ("Vegan,Paleo") into a slice of
// tags.  Empty input yields an empty slice, never nil, so callers can
// range over the result without a nil check.
func ParseDietSet(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// FormatDietSet joins tags into the comma-separated form expected by a
// MySQL SET column.
func FormatDietSet(tags []string) string { return strings.Join(tags, ",") }
