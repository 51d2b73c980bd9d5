package database

import (
	"context"
	"database/sql"

	"github.com/jask/foodboard/internal/food"
)

// DefaultFoods is the menu a fresh database starts with.
var DefaultFoods = []food.Draft{
	{
		Name:        "Ao molho",
		Description: "Macarrão ao molho branco, fughi e cheiro verde das montanhas.",
		Price:       19.90,
		Available:   true,
		Image:       "images/ao-molho.png",
	},
	{
		Name:        "Veggie",
		Description: "Macarrão com pimentão, ervilha e ervas finas colhidas no himalaia.",
		Price:       21.90,
		Available:   true,
		Image:       "images/veggie.png",
	},
	{
		Name:        "A la Camarón",
		Description: "Macarrão com vegetais de primeira linha e camarão dos 7 mares.",
		Price:       25.90,
		Available:   false,
		Image:       "images/a-la-camaron.png",
	},
}

// SeedDefaults fills an empty foods table with DefaultFoods.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM foods`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		for _, d := range DefaultFoods {
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO foods(name, description, price, available, image)
			VALUES (?, ?, ?, ?, ?)`, d.Name, d.Description, d.Price, d.Available, d.Image); err != nil {
				return err
			}
		}
		return nil
	})
}
