package food

// Food is a catalogue entry as stored by the backend.
type Food struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Available   bool    `json:"available"`
	Image       string  `json:"image"`
}

// Draft is a food that has not been assigned an id yet.
type Draft struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Available   bool    `json:"available"`
	Image       string  `json:"image"`
}

// Patch carries the fields submitted by an edit. Nil fields are left alone.
type Patch struct {
	Name        *string
	Description *string
	Price       *float64
	Available   *bool
	Image       *string
}

// Merge applies p over f. The id always comes from f.
func Merge(f Food, p Patch) Food {
	out := f
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Price != nil {
		out.Price = *p.Price
	}
	if p.Available != nil {
		out.Available = *p.Available
	}
	if p.Image != nil {
		out.Image = *p.Image
	}
	return out
}

// WithID turns the draft into a stored food.
func (d Draft) WithID(id int64) Food {
	return Food{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Available:   d.Available,
		Image:       d.Image,
	}
}

// Draft returns f without its id.
func (f Food) Draft() Draft {
	return Draft{
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Available:   f.Available,
		Image:       f.Image,
	}
}
