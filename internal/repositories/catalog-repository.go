package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-desk/internal/entities"
	apperrors "service-desk/pkg/errors"
)

const (
	catalogTable  = "catalog_entries"
	catalogFields = "id, category, value, created_at"
)

type CatalogRepositoryInterface interface {
	List(ctx context.Context, category string) ([]entities.CatalogEntry, error)
	Create(ctx context.Context, entry entities.CatalogEntry) (*entities.CatalogEntry, error)
	// Upsert inserts the pair unless it already exists and reports whether a
	// row was written.
	Upsert(ctx context.Context, tx pgx.Tx, entry entities.CatalogEntry) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type catalogRepository struct {
	storage *pgxpool.Pool
	psql    sq.StatementBuilderType
}

func NewCatalogRepository(storage *pgxpool.Pool) CatalogRepositoryInterface {
	return &catalogRepository{
		storage: storage,
		psql:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *catalogRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanCatalogEntry(row pgx.Row) (*entities.CatalogEntry, error) {
	var e entities.CatalogEntry
	if err := row.Scan(&e.ID, &e.Category, &e.Value, &e.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan catalog entry: %w", err)
	}
	return &e, nil
}

func (r *catalogRepository) List(ctx context.Context, category string) ([]entities.CatalogEntry, error) {
	builder := r.psql.Select(catalogFields).From(catalogTable)
	if category != "" {
		builder = builder.Where(sq.Eq{"category": category})
	}
	query, args, err := builder.OrderBy("category", "value").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list catalog: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	defer rows.Close()

	out := make([]entities.CatalogEntry, 0)
	for rows.Next() {
		e, err := scanCatalogEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *catalogRepository) Create(ctx context.Context, entry entities.CatalogEntry) (*entities.CatalogEntry, error) {
	query, args, err := r.psql.Insert(catalogTable).
		Columns("category", "value").
		Values(entry.Category, entry.Value).
		Suffix("RETURNING " + catalogFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert catalog: %w", err)
	}

	created, err := scanCatalogEntry(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, fmt.Errorf("%w: %s/%s", apperrors.ErrConflictDuplicate, entry.Category, entry.Value)
		}
		return nil, err
	}
	return created, nil
}

func (r *catalogRepository) Upsert(ctx context.Context, tx pgx.Tx, entry entities.CatalogEntry) (bool, error) {
	query, args, err := r.psql.Insert(catalogTable).
		Columns("category", "value").
		Values(entry.Category, entry.Value).
		Suffix("ON CONFLICT (category, value) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build upsert catalog: %w", err)
	}
	tag, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("upsert catalog entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *catalogRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.psql.Delete(catalogTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete catalog: %w", err)
	}
	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete catalog entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
