package locations

import (
	"database/sql"
	"errors"
	"fmt"

	"kjejekaj/internal/repository"
	custom_error "kjejekaj/pkg/errors"
	"kjejekaj/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

var ErrLocationNotFound = errors.New("location not found")

type LocationRepository struct {
	Repository *repository.Repository
}

func NewLocationRepository(r *repository.Repository) *LocationRepository {
	return &LocationRepository{Repository: r}
}

func (r *LocationRepository) GetLocations() ([]models.Location, error) {
	return r.getLocationsWhere(nil)
}

func (r *LocationRepository) GetLocationsByType(locationType models.LocationType) ([]models.Location, error) {
	return r.getLocationsWhere(goqu.Ex{"location_type": string(locationType)})
}

func (r *LocationRepository) GetLocation(locationID int) (*models.Location, error) {
	var flat models.FlatLocationRecord
	query := r.locationQuery().Where(goqu.Ex{"id": locationID})

	found, err := query.Executor().ScanStruct(&flat)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}
	if !found {
		return nil, ErrLocationNotFound
	}

	location := flat.TransformToLocation()
	locations := []models.Location{location}
	if err := r.loadItems(locations); err != nil {
		return nil, err
	}

	return &locations[0], nil
}

func (r *LocationRepository) PersistLocation(req LocationRequest) (*models.Location, error) {
	location := req.ToLocation()

	query := r.Repository.GoquDBWrapper.Insert("locations").
		Rows(goqu.Record{
			"name":          location.Name,
			"description":   location.Description,
			"address":       location.Address,
			"lat":           req.Coordinates[0],
			"lng":           req.Coordinates[1],
			"location_type": string(location.LocationType),
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&location.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("location name must be unique", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert location record: %w", err)
	}

	return &location, nil
}

func (r *LocationRepository) RemoveLocation(locationID int) error {
	result, err := r.Repository.GoquDBWrapper.
		Delete("locations").
		Where(goqu.Ex{"id": locationID}).
		Executor().Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("location is still in use", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete location: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrLocationNotFound
	}

	return nil
}

// AddItemToLocation links an item into the location's items set.
// Linking twice is a no-op.
func (r *LocationRepository) AddItemToLocation(locationID, itemID int) error {
	query := r.Repository.GoquDBWrapper.Insert("location_items").
		Rows(goqu.Record{
			"location_id": locationID,
			"item_id":     itemID,
		}).
		OnConflict(goqu.DoNothing())

	if _, err := query.Executor().Exec(); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("unable to link item to location", string(pqErr.Code))
		}
		return fmt.Errorf("failed to link item %d to location %d: %w", itemID, locationID, err)
	}

	return nil
}

func (r *LocationRepository) RemoveItemFromLocation(locationID, itemID int) error {
	_, err := r.Repository.GoquDBWrapper.
		Delete("location_items").
		Where(goqu.Ex{"location_id": locationID, "item_id": itemID}).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to unlink item %d from location %d: %w", itemID, locationID, err)
	}

	return nil
}

func (r *LocationRepository) locationQuery() *goqu.SelectDataset {
	return r.Repository.GoquDBWrapper.
		Select("id", "name", "description", "address", "lat", "lng", "location_type").
		From("locations").
		Order(goqu.I("id").Asc())
}

func (r *LocationRepository) getLocationsWhere(condition goqu.Ex) ([]models.Location, error) {
	query := r.locationQuery()
	if condition != nil {
		query = query.Where(condition)
	}

	var flats []models.FlatLocationRecord
	if err := query.Executor().ScanStructs(&flats); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	locations := make([]models.Location, 0, len(flats))
	for _, flat := range flats {
		locations = append(locations, flat.TransformToLocation())
	}

	if err := r.loadItems(locations); err != nil {
		return nil, err
	}

	return locations, nil
}

// loadItems populates each location's items set from location_items,
// takes included, the way the API has always returned locations.
func (r *LocationRepository) loadItems(locations []models.Location) error {
	if len(locations) == 0 {
		return nil
	}

	locationIDs := make([]int, len(locations))
	index := make(map[int]*models.Location, len(locations))
	for i := range locations {
		locationIDs[i] = locations[i].ID
		index[locations[i].ID] = &locations[i]
	}

	query := r.Repository.GoquDBWrapper.
		From(goqu.T("location_items").As("li")).
		Select(
			goqu.I("li.location_id"),
			goqu.I("i.id"),
			goqu.I("i.item_type"),
			goqu.I("i.code"),
			goqu.I("i.name"),
			goqu.I("i.description"),
			goqu.I("i.quantity"),
			goqu.I("l.id"),
			goqu.I("l.name"),
		).
		Join(goqu.T("items").As("i"), goqu.On(goqu.Ex{"li.item_id": goqu.I("i.id")})).
		LeftJoin(goqu.T("locations").As("l"), goqu.On(goqu.Ex{"i.default_location_id": goqu.I("l.id")})).
		Where(goqu.Ex{"li.location_id": locationIDs}).
		Order(goqu.I("i.id").Asc())

	rows, err := query.Executor().Query()
	if err != nil {
		return fmt.Errorf("error executing SQL statement: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var linkLocationID int
		var flat models.FlatItemRecord
		if err := rows.Scan(
			&linkLocationID,
			&flat.ID,
			&flat.ItemType,
			&flat.Code,
			&flat.Name,
			&flat.Description,
			&flat.Quantity,
			&flat.LocationID,
			&flat.LocationName,
		); err != nil {
			return fmt.Errorf("unable to fetch location item row: %w", err)
		}

		location := index[linkLocationID]
		location.Items = append(location.Items, flat.TransformToItem())
	}

	// Index only after every append: growing an items slice reallocates
	// its backing array, which would leave earlier pointers stale.
	return r.loadTakes(indexLocationItems(locations))
}

func indexLocationItems(locations []models.Location) map[int][]*models.Item {
	itemIndex := make(map[int][]*models.Item)
	for i := range locations {
		items := locations[i].Items
		for j := range items {
			itemIndex[items[j].ID] = append(itemIndex[items[j].ID], &items[j])
		}
	}
	return itemIndex
}

func (r *LocationRepository) loadTakes(itemIndex map[int][]*models.Item) error {
	if len(itemIndex) == 0 {
		return nil
	}

	itemIDs := make([]int, 0, len(itemIndex))
	for id := range itemIndex {
		itemIDs = append(itemIDs, id)
	}

	var takes []models.Take
	query := r.Repository.GoquDBWrapper.
		Select("id", "item_id", "user_id", "quantity", "location_id", "date_took", "date_returned").
		From("takes").
		Where(goqu.Ex{"item_id": itemIDs}).
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&takes); err != nil {
		return fmt.Errorf("unable to fetch takes: %w", err)
	}

	attachTakes(itemIndex, takes)

	return nil
}

// attachTakes fans each take out to every populated copy of its item.
// The same item shows up under several locations when linked to more
// than one.
func attachTakes(itemIndex map[int][]*models.Item, takes []models.Take) {
	for _, take := range takes {
		for _, item := range itemIndex[take.ItemID] {
			item.Taken = append(item.Taken, take)
		}
	}
}
