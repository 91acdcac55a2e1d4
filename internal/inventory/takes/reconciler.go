package takes

import (
	"time"

	"kjejekaj/pkg/models"
)

// settleReturn walks the item's takes in append order and settles one
// unit for the given user at the given location. While scanning it
// accumulates the quantity still outstanding at that location, so the
// caller knows when the location holds nothing of this item anymore.
//
// The first outstanding take at the location that belongs to the user
// loses one unit; at zero it is closed with DateReturned. Later takes
// by the same user are left alone. If the user has no outstanding take
// there, nothing is settled and the remaining total is unchanged.
func settleReturn(taken []models.Take, locationID, userID int, now time.Time) (*models.Take, int) {
	var settled *models.Take
	remaining := 0

	for i := range taken {
		take := &taken[i]
		if take.LocationID != locationID || !take.Outstanding() {
			continue
		}

		remaining += take.Quantity
		if settled == nil && take.UserID == userID {
			take.Quantity--
			remaining--
			if take.Quantity == 0 {
				take.DateReturned = &now
			}
			settled = take
		}
	}

	return settled, remaining
}

// filterAvailable reduces each item's quantity by its outstanding
// takes and drops items with nothing left to take. Items that were
// never taken pass through untouched.
func filterAvailable(itemList []models.Item) []models.Item {
	available := make([]models.Item, 0, len(itemList))

	for _, item := range itemList {
		if len(item.Taken) == 0 {
			available = append(available, item)
			continue
		}

		item.Quantity -= item.OutstandingQuantity()
		if item.Quantity > 0 {
			available = append(available, item)
		}
	}

	return available
}
