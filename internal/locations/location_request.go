package locations

import "kjejekaj/pkg/models"

// LocationRequest is the body of POST /api/location. The location key
// holds the human-readable address.
type LocationRequest struct {
	Name         string              `json:"name" binding:"required"`
	Description  *string             `json:"description"`
	Address      string              `json:"location" binding:"required"`
	Coordinates  []float64           `json:"coordinates" binding:"required,len=2"`
	LocationType models.LocationType `json:"locationType" binding:"required,oneof=permanent temporary"`
}

func (req LocationRequest) ToLocation() models.Location {
	return models.Location{
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		Coordinates:  req.Coordinates,
		LocationType: req.LocationType,
		Items:        []models.Item{},
	}
}
