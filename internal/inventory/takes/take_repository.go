package takes

import (
	"fmt"

	"kjejekaj/internal/repository"
	"kjejekaj/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type TakeRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *TakeRepository {
	return &TakeRepository{repository: r}
}

// InsertTake appends a take record to the item's history. Every call
// creates a new row; there is no dedup key, so retries double-book.
func (r *TakeRepository) InsertTake(take models.Take) (int, error) {
	var takeID int
	query := r.repository.GoquDBWrapper.Insert("takes").
		Rows(goqu.Record{
			"item_id":     take.ItemID,
			"user_id":     take.UserID,
			"quantity":    take.Quantity,
			"location_id": take.LocationID,
			"date_took":   take.DateTook,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&takeID); err != nil {
		return 0, fmt.Errorf("failed to insert take record: %w", err)
	}

	return takeID, nil
}

// UpdateTake writes back a settled take: reduced quantity and, once it
// reaches zero, the return timestamp.
func (r *TakeRepository) UpdateTake(take models.Take) error {
	query := r.repository.GoquDBWrapper.
		Update("takes").
		Set(goqu.Record{
			"quantity":      take.Quantity,
			"date_returned": take.DateReturned,
		}).
		Where(goqu.Ex{"id": take.ID})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to update take record: %w", err)
	}

	return nil
}
