package takes

import (
	"testing"
	"time"

	"kjejekaj/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestSettleReturn(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-time.Hour)

	t.Run("settles one unit from the first matching take", func(t *testing.T) {
		taken := []models.Take{
			{ID: 1, UserID: 7, Quantity: 2, LocationID: 3, DateTook: earlier},
		}

		settled, remaining := settleReturn(taken, 3, 7, now)

		assert.NotNil(t, settled)
		assert.Equal(t, 1, settled.Quantity)
		assert.Nil(t, settled.DateReturned)
		assert.Equal(t, 1, remaining)
	})

	t.Run("closes the take when its quantity reaches zero", func(t *testing.T) {
		taken := []models.Take{
			{ID: 1, UserID: 7, Quantity: 1, LocationID: 3, DateTook: earlier},
		}

		settled, remaining := settleReturn(taken, 3, 7, now)

		assert.NotNil(t, settled)
		assert.Equal(t, 0, settled.Quantity)
		assert.NotNil(t, settled.DateReturned)
		assert.Equal(t, now, *settled.DateReturned)
		assert.Equal(t, 0, remaining)
	})

	t.Run("settles the oldest take first", func(t *testing.T) {
		taken := []models.Take{
			{ID: 1, UserID: 7, Quantity: 1, LocationID: 3, DateTook: earlier},
			{ID: 2, UserID: 7, Quantity: 2, LocationID: 3, DateTook: now},
		}

		settled, remaining := settleReturn(taken, 3, 7, now)

		assert.Equal(t, 1, settled.ID)
		assert.Equal(t, 2, remaining)
		assert.Equal(t, 2, taken[1].Quantity)
	})

	t.Run("skips takes at other locations and returned takes", func(t *testing.T) {
		returnedAt := earlier
		taken := []models.Take{
			{ID: 1, UserID: 7, Quantity: 5, LocationID: 9, DateTook: earlier},
			{ID: 2, UserID: 7, Quantity: 3, LocationID: 3, DateTook: earlier, DateReturned: &returnedAt},
			{ID: 3, UserID: 7, Quantity: 2, LocationID: 3, DateTook: now},
		}

		settled, remaining := settleReturn(taken, 3, 7, now)

		assert.Equal(t, 3, settled.ID)
		assert.Equal(t, 1, remaining)
	})

	t.Run("no take by the user is a silent no-op", func(t *testing.T) {
		taken := []models.Take{
			{ID: 1, UserID: 8, Quantity: 2, LocationID: 3, DateTook: earlier},
		}

		settled, remaining := settleReturn(taken, 3, 7, now)

		assert.Nil(t, settled)
		assert.Equal(t, 2, remaining)
		assert.Equal(t, 2, taken[0].Quantity)
	})

	t.Run("other users' outstanding takes keep the location occupied", func(t *testing.T) {
		taken := []models.Take{
			{ID: 1, UserID: 7, Quantity: 1, LocationID: 3, DateTook: earlier},
			{ID: 2, UserID: 8, Quantity: 1, LocationID: 3, DateTook: earlier},
		}

		settled, remaining := settleReturn(taken, 3, 7, now)

		assert.NotNil(t, settled.DateReturned)
		assert.Equal(t, 1, remaining)
	})
}

func TestFilterAvailable(t *testing.T) {
	now := time.Now()

	t.Run("items without takes pass through unchanged", func(t *testing.T) {
		itemList := []models.Item{
			{ID: 1, Name: "Lopata - štiharca", Quantity: 4, Taken: []models.Take{}},
		}

		available := filterAvailable(itemList)

		assert.Len(t, available, 1)
		assert.Equal(t, 4, available[0].Quantity)
	})

	t.Run("outstanding takes reduce the reported quantity", func(t *testing.T) {
		itemList := []models.Item{
			{ID: 1, Quantity: 4, Taken: []models.Take{
				{UserID: 7, Quantity: 2, LocationID: 3, DateTook: now},
			}},
		}

		available := filterAvailable(itemList)

		assert.Len(t, available, 1)
		assert.Equal(t, 2, available[0].Quantity)
	})

	t.Run("returned takes do not count", func(t *testing.T) {
		returnedAt := now
		itemList := []models.Item{
			{ID: 1, Quantity: 4, Taken: []models.Take{
				{UserID: 7, Quantity: 3, LocationID: 3, DateTook: now, DateReturned: &returnedAt},
				{UserID: 7, Quantity: 1, LocationID: 3, DateTook: now},
			}},
		}

		available := filterAvailable(itemList)

		assert.Len(t, available, 1)
		assert.Equal(t, 3, available[0].Quantity)
	})

	t.Run("fully taken items are dropped", func(t *testing.T) {
		itemList := []models.Item{
			{ID: 1, Quantity: 2, Taken: []models.Take{
				{UserID: 7, Quantity: 2, LocationID: 3, DateTook: now},
			}},
			{ID: 2, Quantity: 1, Taken: []models.Take{}},
		}

		available := filterAvailable(itemList)

		assert.Len(t, available, 1)
		assert.Equal(t, 2, available[0].ID)
	})
}
