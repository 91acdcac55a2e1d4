package seed

import (
	"database/sql"
	"fmt"

	"kjejekaj/internal/repository"

	"github.com/doug-martin/goqu/v9"
)

type fixtureLocation struct {
	name         string
	description  string
	address      string
	lat, lng     float64
	locationType string
}

type fixtureItem struct {
	itemType string
	code     string
	name     string
	quantity int
}

var fixtureLocations = []fixtureLocation{
	{
		name:         "Skladišče Rakovnik",
		description:  "Skladišče Rakovnik - stalno",
		address:      "Rakovniška ulica 6, 1000 Ljubljana",
		lat:          46.036856,
		lng:          14.525942,
		locationType: "permanent",
	},
	{
		name:         "Tabor IV 2022",
		description:  "Taborna lokacije veje IV, julij 2022",
		address:      "Ševlje",
		lat:          46.200932,
		lng:          14.248036,
		locationType: "temporary",
	},
}

var fixtureItems = []fixtureItem{
	{itemType: "orodje", code: "lop-stih", name: "Lopata - štiharca", quantity: 4},
	{itemType: "orodje", code: "zaga-vel", name: "Žaga - velika", quantity: 4},
	{itemType: "orodje", code: "zaga-mala", name: "Žaga - mala", quantity: 3},
	{itemType: "taborno", code: "jamboree", name: "Jamboree set 1", quantity: 1},
}

// Reset empties every domain table. Development helper, never wired
// into a route.
func Reset(db *sql.DB) error {
	repo := repository.NewRepository(db)

	return repository.WithTransaction(repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		for _, table := range []string{"takes", "location_items", "audit_logs", "items", "locations"} {
			if _, err := tx.Delete(table).Executor().Exec(); err != nil {
				return fmt.Errorf("failed to empty %s: %w", table, err)
			}
		}
		return nil
	})
}

// Fill resets the domain tables and loads the test fixtures: the
// Rakovnik warehouse, one camp location and a handful of tools, all
// stored at the warehouse.
func Fill(db *sql.DB) error {
	if err := Reset(db); err != nil {
		return err
	}

	repo := repository.NewRepository(db)

	return repository.WithTransaction(repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var warehouseID int
		for _, loc := range fixtureLocations {
			query := tx.Insert("locations").
				Rows(goqu.Record{
					"name":          loc.name,
					"description":   loc.description,
					"address":       loc.address,
					"lat":           loc.lat,
					"lng":           loc.lng,
					"location_type": loc.locationType,
				}).
				Returning("id")

			var id int
			if _, err := query.Executor().ScanVal(&id); err != nil {
				return fmt.Errorf("failed to insert fixture location %q: %w", loc.name, err)
			}
			if loc.locationType == "permanent" {
				warehouseID = id
			}
		}

		for _, itm := range fixtureItems {
			query := tx.Insert("items").
				Rows(goqu.Record{
					"item_type":           itm.itemType,
					"code":                itm.code,
					"name":                itm.name,
					"quantity":            itm.quantity,
					"default_location_id": warehouseID,
				})

			if _, err := query.Executor().Exec(); err != nil {
				return fmt.Errorf("failed to insert fixture item %q: %w", itm.name, err)
			}
		}

		return nil
	})
}
