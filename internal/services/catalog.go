package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"service-desk/internal/dto"
	"service-desk/internal/entities"
	"service-desk/internal/repositories"
	apperrors "service-desk/pkg/errors"
	"service-desk/pkg/utils"
)

type CatalogServiceInterface interface {
	GetEntries(ctx context.Context, actor entities.Actor, category string) ([]entities.CatalogEntry, error)
	CreateEntry(ctx context.Context, actor entities.Actor, payload dto.CreateCatalogEntryDTO) (*entities.CatalogEntry, error)
	UpsertEntries(ctx context.Context, actor entities.Actor, payload dto.UpsertCatalogDTO) (*dto.UpsertCatalogResultDTO, error)
	DeleteEntry(ctx context.Context, actor entities.Actor, id int64) error
}

type CatalogService struct {
	repo      repositories.CatalogRepositoryInterface
	txManager repositories.TxManagerInterface
	logger    *zap.Logger
}

func NewCatalogService(
	repo repositories.CatalogRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) CatalogServiceInterface {
	return &CatalogService{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

func normalizeEntry(category, value string) (entities.CatalogEntry, error) {
	e := entities.CatalogEntry{Category: utils.Slug(category), Value: strings.TrimSpace(value)}
	if e.Category == "" || e.Value == "" {
		return e, apperrors.NewInvalidInputError("category and value are required")
	}
	return e, nil
}

func requireAdmin(actor entities.Actor, what string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: only admins can %s", apperrors.ErrForbidden, what)
	}
	return nil
}

func (s *CatalogService) GetEntries(ctx context.Context, actor entities.Actor, category string) ([]entities.CatalogEntry, error) {
	if !actor.Role.Valid() {
		return nil, apperrors.ErrUnauthorized
	}
	return s.repo.List(ctx, utils.Slug(category))
}

// CreateEntry fails with ErrConflictDuplicate when the pair exists.
func (s *CatalogService) CreateEntry(ctx context.Context, actor entities.Actor, payload dto.CreateCatalogEntryDTO) (*entities.CatalogEntry, error) {
	if err := requireAdmin(actor, "edit the catalog"); err != nil {
		return nil, err
	}
	entry, err := normalizeEntry(payload.Category, payload.Value)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	s.logger.Info("catalog entry created", zap.String("category", created.Category), zap.String("value", created.Value))
	return created, nil
}

// UpsertEntries inserts every missing pair in one transaction; existing pairs
// are skipped.
func (s *CatalogService) UpsertEntries(ctx context.Context, actor entities.Actor, payload dto.UpsertCatalogDTO) (*dto.UpsertCatalogResultDTO, error) {
	if err := requireAdmin(actor, "edit the catalog"); err != nil {
		return nil, err
	}
	entries := make([]entities.CatalogEntry, 0, len(payload.Entries))
	for _, p := range payload.Entries {
		e, err := normalizeEntry(p.Category, p.Value)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	result := &dto.UpsertCatalogResultDTO{}
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		result.Inserted, result.Skipped = 0, 0
		for _, e := range entries {
			inserted, err := s.repo.Upsert(ctx, tx, e)
			if err != nil {
				return err
			}
			if inserted {
				result.Inserted++
			} else {
				result.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("upsert catalog: %w", err)
	}
	s.logger.Info("catalog upserted", zap.Int("inserted", result.Inserted), zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *CatalogService) DeleteEntry(ctx context.Context, actor entities.Actor, id int64) error {
	if err := requireAdmin(actor, "edit the catalog"); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
