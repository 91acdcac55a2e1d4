package takes

import (
	"time"

	"kjejekaj/pkg/auditlog"
	"kjejekaj/pkg/models"
)

type ItemStore interface {
	GetItem(itemID int) (*models.Item, error)
	GetItemsByDefaultLocation(locationID int) ([]models.Item, error)
}

type LocationStore interface {
	GetLocation(locationID int) (*models.Location, error)
	GetLocationsByType(locationType models.LocationType) ([]models.Location, error)
	AddItemToLocation(locationID, itemID int) error
	RemoveItemFromLocation(locationID, itemID int) error
}

type TakeStore interface {
	InsertTake(take models.Take) (int, error)
	UpdateTake(take models.Take) error
}

// TakeService is the take/return bookkeeping. Item, take and location
// writes happen as separate statements with no transaction around
// them: concurrent takes and returns on the same item race, and the
// last write wins, exactly as the API has always behaved.
type TakeService struct {
	takes     TakeStore
	items     ItemStore
	locations LocationStore
	auditLog  *auditlog.Auditlog
}

func NewService(takeRepo TakeStore, itemRepo ItemStore, locationRepo LocationStore, auditLog *auditlog.Auditlog) *TakeService {
	return &TakeService{
		takes:     takeRepo,
		items:     itemRepo,
		locations: locationRepo,
		auditLog:  auditLog,
	}
}

// TakeItems appends one take per requested item and links each item
// into the destination location's items set.
func (s *TakeService) TakeItems(req models.TakeRequest, user *models.User) error {
	if _, err := s.locations.GetLocation(req.ToLocation); err != nil {
		return err
	}

	for _, requested := range req.Items {
		item, err := s.items.GetItem(requested.ID)
		if err != nil {
			return err
		}

		take := models.Take{
			ItemID:     item.ID,
			UserID:     user.ID,
			Quantity:   requested.Quantity,
			LocationID: req.ToLocation,
			DateTook:   time.Now(),
		}

		if take.ID, err = s.takes.InsertTake(take); err != nil {
			return err
		}

		if err := s.locations.AddItemToLocation(req.ToLocation, item.ID); err != nil {
			return err
		}

		s.auditLog.Log("take", take, item, &user.ID)
	}

	return nil
}

// ReturnItem settles one unit of the user's oldest outstanding take of
// the item at the location. Once nothing of the item is outstanding at
// that location anymore, the item is removed from its items set. A
// return with no matching take settles nothing and is not an error.
func (s *TakeService) ReturnItem(req models.ReturnRequest, user *models.User) error {
	item, err := s.items.GetItem(req.Item)
	if err != nil {
		return err
	}

	settled, remaining := settleReturn(item.Taken, req.Location, user.ID, time.Now())

	if settled != nil {
		if err := s.takes.UpdateTake(*settled); err != nil {
			return err
		}
	}

	if remaining == 0 {
		if err := s.locations.RemoveItemFromLocation(req.Location, item.ID); err != nil {
			return err
		}
	}

	if settled != nil {
		s.auditLog.Log("return", settled, item, &user.ID)
	}

	return nil
}

// AvailableItems lists what can still be taken from a location: every
// item whose default location it is, minus outstanding takes.
func (s *TakeService) AvailableItems(locationID int) ([]models.Item, error) {
	itemList, err := s.items.GetItemsByDefaultLocation(locationID)
	if err != nil {
		return nil, err
	}

	return filterAvailable(itemList), nil
}

// MyItems returns every temporary location with its items and their
// takes. Narrowing down to the calling user's outstanding takes is
// done client-side.
func (s *TakeService) MyItems() ([]models.Location, error) {
	return s.locations.GetLocationsByType(models.LocationTemporary)
}
