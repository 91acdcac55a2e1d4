package items

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

var ErrItemNotFound = errors.New("item not found")

type ItemRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *ItemRepository {
	return &ItemRepository{repository: r}
}

func (r *ItemRepository) GetItems() ([]models.Item, error) {
	return r.getItemsWhere(nil)
}

// GetItemsByDefaultLocation feeds the availability computation: all
// items that live at the given location, takes included.
func (r *ItemRepository) GetItemsByDefaultLocation(locationID int) ([]models.Item, error) {
	return r.getItemsWhere(goqu.Ex{"i.default_location_id": locationID})
}

func (r *ItemRepository) GetItem(itemID int) (*models.Item, error) {
	items, err := r.getItemsWhere(goqu.Ex{"i.id": itemID})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrItemNotFound
	}

	return &items[0], nil
}

func (r *ItemRepository) PersistItem(req ItemRequest) (*models.Item, error) {
	item := models.Item{
		ItemType:    req.ItemType,
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.EffectiveQuantity(),
		Taken:       []models.Take{},
		DefaultLocation: models.Location{
			ID: req.DefaultLocation,
		},
	}

	query := r.repository.GoquDBWrapper.Insert("items").
		Rows(goqu.Record{
			"item_type":           item.ItemType,
			"code":                item.Code,
			"name":                item.Name,
			"description":         item.Description,
			"quantity":            item.Quantity,
			"default_location_id": item.DefaultLocation.ID,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&item.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("item code and name must be unique", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert item record: %w", err)
	}

	return &item, nil
}

func (r *ItemRepository) UpdateItem(itemID int, req ItemRequest) (*models.Item, error) {
	query := r.repository.GoquDBWrapper.
		Update("items").
		Set(goqu.Record{
			"item_type":           req.ItemType,
			"code":                req.Code,
			"name":                req.Name,
			"description":         req.Description,
			"quantity":            req.EffectiveQuantity(),
			"default_location_id": req.DefaultLocation,
		}).
		Where(goqu.Ex{"id": itemID})

	result, err := query.Executor().Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("item code and name must be unique", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrItemNotFound
	}

	return r.GetItem(itemID)
}

// RemoveItem deletes the item together with its takes and location
// links. The takes are owned by the item, so they go with it.
func (r *ItemRepository) RemoveItem(itemID int) error {
	var rowsAffected int64

	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		if _, err := tx.Delete("takes").Where(goqu.Ex{"item_id": itemID}).Executor().Exec(); err != nil {
			return fmt.Errorf("failed to delete takes for item: %w", err)
		}

		if _, err := tx.Delete("location_items").Where(goqu.Ex{"item_id": itemID}).Executor().Exec(); err != nil {
			return fmt.Errorf("failed to unlink item from locations: %w", err)
		}

		result, err := tx.Delete("items").Where(goqu.Ex{"id": itemID}).Executor().Exec()
		if err != nil {
			return fmt.Errorf("failed to delete item: %w", err)
		}

		rowsAffected, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not retrieve rows affected: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// LocationExists answers whether a location row is present. Kept here
// so item creation can validate its default location without pulling
// in the locations package.
func (r *ItemRepository) LocationExists(locationID int) (bool, error) {
	var id int
	query := r.repository.GoquDBWrapper.
		Select("id").
		From("locations").
		Where(goqu.Ex{"id": locationID})

	found, err := query.Executor().ScanVal(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("unable to check location: %w", err)
	}

	return found, nil
}

func (r *ItemRepository) getItemsWhere(condition goqu.Ex) ([]models.Item, error) {
	query := r.repository.GoquDBWrapper.
		From(goqu.T("items").As("i")).
		Select(
			goqu.I("i.id").As("item_id"),
			goqu.I("i.item_type").As("item_type"),
			goqu.I("i.code").As("code"),
			goqu.I("i.name").As("name"),
			goqu.I("i.description").As("description"),
			goqu.I("i.quantity").As("quantity"),
			goqu.I("l.id").As("location_id"),
			goqu.I("l.name").As("location_name"),
		).
		LeftJoin(
			goqu.T("locations").As("l"),
			goqu.On(goqu.Ex{"i.default_location_id": goqu.I("l.id")}),
		).
		Order(goqu.I("i.id").Asc())
	if condition != nil {
		query = query.Where(condition)
	}

	var flats []models.FlatItemRecord
	if err := query.Executor().ScanStructs(&flats); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	items := make([]models.Item, 0, len(flats))
	index := make(map[int]*models.Item, len(flats))
	itemIDs := make([]int, 0, len(flats))
	for _, flat := range flats {
		items = append(items, flat.TransformToItem())
		index[flat.ID] = &items[len(items)-1]
		itemIDs = append(itemIDs, flat.ID)
	}

	if len(itemIDs) > 0 {
		var takes []models.Take
		takeQuery := r.repository.GoquDBWrapper.
			Select("id", "item_id", "user_id", "quantity", "location_id", "date_took", "date_returned").
			From("takes").
			Where(goqu.Ex{"item_id": itemIDs}).
			Order(goqu.I("id").Asc())

		if err := takeQuery.Executor().ScanStructs(&takes); err != nil {
			return nil, fmt.Errorf("unable to fetch takes: %w", err)
		}

		for _, take := range takes {
			item := index[take.ItemID]
			item.Taken = append(item.Taken, take)
		}
	}

	return items, nil
}
