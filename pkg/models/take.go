package models

import "time"

// Take records a quantity of an item moved away from its default
// location. It stays open until DateReturned is set; returns settle it
// one unit at a time.
type Take struct {
	ID           int        `json:"id" db:"id"`
	ItemID       int        `json:"-" db:"item_id"`
	UserID       int        `json:"user" db:"user_id"`
	Quantity     int        `json:"quantity" db:"quantity"`
	LocationID   int        `json:"location" db:"location_id"`
	DateTook     time.Time  `json:"dateTook" db:"date_took"`
	DateReturned *time.Time `json:"dateReturned,omitempty" db:"date_returned"`
}

func (t *Take) Outstanding() bool {
	return t.DateReturned == nil
}
