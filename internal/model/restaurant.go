package model

import "time"

// Restaurant is static reference data describing a venue and the diet
// tags its kitchen can accommodate.  A restaurant qualifies for a group
// only when it supports every tag in the group's aggregated constraint.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the restaurant.
//  Diets     – diet tags the kitchen supports.
//  CreatedAt – timestamp of creation.
type Restaurant struct {
	ID        uint64    // restaurants.restaurant_id
	Name      string    // restaurants.name
	Diets     []string  // restaurants.diet_support (SET column)
	CreatedAt time.Time // restaurants.created_at
}
