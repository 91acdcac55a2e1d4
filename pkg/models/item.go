package models

type Item struct {
	ID              int      `json:"id" db:"id"`
	ItemType        string   `json:"itemType" db:"item_type"`
	Code            string   `json:"code" db:"code"`
	Name            string   `json:"name" db:"name"`
	Description     *string  `json:"description" db:"description"`
	Quantity        int      `json:"quantity" db:"quantity"`
	Taken           []Take   `json:"taken"`
	DefaultLocation Location `json:"defaultLocation"`
}

// FlatItemRecord is the joined row shape returned by item queries,
// before the default location is folded back into the Item.
type FlatItemRecord struct {
	ID           int     `db:"item_id"`
	ItemType     string  `db:"item_type"`
	Code         string  `db:"code"`
	Name         string  `db:"name"`
	Description  *string `db:"description"`
	Quantity     int     `db:"quantity"`
	LocationID   int     `db:"location_id"`
	LocationName string  `db:"location_name"`
}

func (fi *FlatItemRecord) TransformToItem() Item {
	return Item{
		ID:          fi.ID,
		ItemType:    fi.ItemType,
		Code:        fi.Code,
		Name:        fi.Name,
		Description: fi.Description,
		Quantity:    fi.Quantity,
		Taken:       []Take{},
		DefaultLocation: Location{
			ID:   fi.LocationID,
			Name: fi.LocationName,
		},
	}
}

func (i *Item) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   i.ID,
		ResourceType: "item",
	}
}

// OutstandingQuantity sums the not-yet-returned takes, regardless of
// where they went. The available count at the default location is
// Quantity minus this sum.
func (i *Item) OutstandingQuantity() int {
	var sum int
	for _, take := range i.Taken {
		if take.Outstanding() {
			sum += take.Quantity
		}
	}
	return sum
}
