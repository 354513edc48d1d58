package entities

import "time"

// CatalogEntry is a reference-data pair used to fill dropdowns (areas,
// defects). (Category, Value) is unique.
type CatalogEntry struct {
	ID        int64     `json:"id" db:"id"`
	Category  string    `json:"category" db:"category"`
	Value     string    `json:"value" db:"value"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
