package models

type LocationType string

const (
	LocationPermanent LocationType = "permanent"
	LocationTemporary LocationType = "temporary"
)

type Location struct {
	ID           int          `json:"id" db:"id"`
	Name         string       `json:"name" db:"name"`
	Description  *string      `json:"description" db:"description"`
	Address      string       `json:"location" db:"address"`
	Coordinates  []float64    `json:"coordinates"`
	LocationType LocationType `json:"locationType" db:"location_type"`
	Items        []Item       `json:"items"`
}

type FlatLocationRecord struct {
	ID           int     `db:"id"`
	Name         string  `db:"name"`
	Description  *string `db:"description"`
	Address      string  `db:"address"`
	Lat          float64 `db:"lat"`
	Lng          float64 `db:"lng"`
	LocationType string  `db:"location_type"`
}

func (fl *FlatLocationRecord) TransformToLocation() Location {
	return Location{
		ID:           fl.ID,
		Name:         fl.Name,
		Description:  fl.Description,
		Address:      fl.Address,
		Coordinates:  []float64{fl.Lat, fl.Lng},
		LocationType: LocationType(fl.LocationType),
		Items:        []Item{},
	}
}

func (l *Location) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   l.ID,
		ResourceType: "location",
	}
}
