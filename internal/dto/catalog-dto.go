package dto

import (
	"time"

	"service-desk/internal/entities"
)

type CreateCatalogEntryDTO struct {
	Category string `json:"category" validate:"required,catalog_category"`
	Value    string `json:"value" validate:"required,max=255"`
}

type UpsertCatalogDTO struct {
	Entries []CreateCatalogEntryDTO `json:"entries" validate:"required,min=1,max=1000,dive"`
}

type UpsertCatalogResultDTO struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

type CatalogEntryResponseDTO struct {
	ID        int64  `json:"id"`
	Category  string `json:"category"`
	Value     string `json:"value"`
	CreatedAt string `json:"created_at"`
}

func NewCatalogEntryResponse(e entities.CatalogEntry) CatalogEntryResponseDTO {
	return CatalogEntryResponseDTO{
		ID:        e.ID,
		Category:  e.Category,
		Value:     e.Value,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}
