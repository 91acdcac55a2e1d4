package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOutstandingQuantity(t *testing.T) {
	now := time.Now()
	returnedAt := now.Add(-time.Hour)

	item := Item{
		Quantity: 10,
		Taken: []Take{
			{UserID: 1, Quantity: 2, LocationID: 3, DateTook: now},
			{UserID: 2, Quantity: 3, LocationID: 4, DateTook: now},
			{UserID: 1, Quantity: 5, LocationID: 3, DateTook: now, DateReturned: &returnedAt},
		},
	}

	assert.Equal(t, 5, item.OutstandingQuantity())
}

func TestTransformToItem(t *testing.T) {
	record := FlatItemRecord{
		ID:           1,
		ItemType:     "orodje",
		Code:         "lop-stih",
		Name:         "Lopata - štiharca",
		Quantity:     4,
		LocationID:   2,
		LocationName: "Skladišče Rakovnik",
	}

	item := record.TransformToItem()

	assert.Equal(t, "Lopata - štiharca", item.Name)
	assert.Equal(t, 2, item.DefaultLocation.ID)
	assert.Equal(t, "Skladišče Rakovnik", item.DefaultLocation.Name)
	assert.NotNil(t, item.Taken)
	assert.Empty(t, item.Taken)
}

func TestTransformToLocation(t *testing.T) {
	record := FlatLocationRecord{
		ID:           2,
		Name:         "Skladišče Rakovnik",
		Address:      "Rakovniška ulica 6, Ljubljana",
		Lat:          46.036856,
		Lng:          14.525942,
		LocationType: "permanent",
	}

	location := record.TransformToLocation()

	assert.Equal(t, []float64{46.036856, 14.525942}, location.Coordinates)
	assert.Equal(t, LocationPermanent, location.LocationType)
	assert.NotNil(t, location.Items)
}
