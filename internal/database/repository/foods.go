package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jask/foodboard/internal/food"
)

// ErrNotFound is returned when no row has the requested id.
var ErrNotFound = errors.New("not found")

// FoodRepo handles the foods table.
type FoodRepo struct {
	db *sql.DB
}

func NewFoodRepo(db *sql.DB) *FoodRepo { return &FoodRepo{db: db} }

const foodColumns = `id, name, description, price, available, image`

// List returns every food in insertion order.
func (r *FoodRepo) List(ctx context.Context) ([]food.Food, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+foodColumns+` FROM foods ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []food.Food{}
	for rows.Next() {
		var f food.Food
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.Price, &f.Available, &f.Image); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FoodRepo) Get(ctx context.Context, id int64) (food.Food, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+foodColumns+` FROM foods WHERE id = ?`, id)
	var f food.Food
	if err := row.Scan(&f.ID, &f.Name, &f.Description, &f.Price, &f.Available, &f.Image); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return food.Food{}, fmt.Errorf("food %d: %w", id, ErrNotFound)
		}
		return food.Food{}, err
	}
	return f, nil
}

// Create inserts d and returns it with the assigned id.
func (r *FoodRepo) Create(ctx context.Context, d food.Draft) (food.Food, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO foods(name, description, price, available, image)
	VALUES (?, ?, ?, ?, ?)`, d.Name, d.Description, d.Price, d.Available, d.Image)
	if err != nil {
		return food.Food{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return food.Food{}, err
	}
	return d.WithID(id), nil
}

// Update overwrites every field of the food at id and returns the stored row.
func (r *FoodRepo) Update(ctx context.Context, id int64, d food.Draft) (food.Food, error) {
	res, err := r.db.ExecContext(ctx, `
	UPDATE foods SET name=?, description=?, price=?, available=?, image=?, updated_at=CURRENT_TIMESTAMP
	WHERE id=?`, d.Name, d.Description, d.Price, d.Available, d.Image, id)
	if err != nil {
		return food.Food{}, err
	}
	if err := expectOne(res, id); err != nil {
		return food.Food{}, err
	}
	return r.Get(ctx, id)
}

func (r *FoodRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM foods WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectOne(res, id)
}

func expectOne(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("food %d: %w", id, ErrNotFound)
	}
	return nil
}
