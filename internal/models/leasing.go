package models

import "time"

// Leasing is the canonical rental-unit record. ID and CreatedAt are owned by
// the store: ID is assigned on insert (0 is reserved as the "unassigned"
// sentinel, real ids start at 1) and CreatedAt is stamped once. Every other
// field is reachable through a partial update, which also bumps UpdatedAt.
type Leasing struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Details       string    `json:"details"`
	ImageURL      string    `json:"image_url"`
	Amenity       string    `json:"amenity"`
	Occupancy     int       `json:"occupancy"`
	SquareFootage int       `json:"square_footage"`
	Rate          float64   `json:"rate"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LeasingChangeSet lists the columns a commit should write. Nil fields are
// left untouched, so repositories persist exactly the changed columns
// instead of rewriting the full row.
type LeasingChangeSet struct {
	Name          *string
	Details       *string
	ImageURL      *string
	Amenity       *string
	Occupancy     *int
	SquareFootage *int
	Rate          *float64
}

// Empty reports whether the change set names no column at all.
func (c LeasingChangeSet) Empty() bool {
	return c.Name == nil && c.Details == nil && c.ImageURL == nil &&
		c.Amenity == nil && c.Occupancy == nil && c.SquareFootage == nil &&
		c.Rate == nil
}
