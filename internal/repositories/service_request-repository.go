package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-desk/internal/entities"
	db "service-desk/internal/infrastructure/bd"
	"service-desk/pkg/constants"
	apperrors "service-desk/pkg/errors"
	"service-desk/pkg/types"
)

const (
	serviceRequestTable  = "service_requests"
	serviceRequestFields = `id, title, client, address, description, quantity, type, status, requested_by,
		assigned_technician_id, assigned_technician_name, admin_response, price::float8,
		attachment_name, attachment_mime, attachment IS NOT NULL, created_at, updated_at`
)

type ServiceRequestRepositoryInterface interface {
	Create(ctx context.Context, req entities.ServiceRequest, att *entities.Attachment) (string, error)
	FindByID(ctx context.Context, id string) (*entities.ServiceRequest, error)
	FindAttachment(ctx context.Context, id string) (*entities.Attachment, error)
	List(ctx context.Context, query types.RequestQuery) ([]entities.ServiceRequest, error)
	ApplyTransition(ctx context.Context, id string, patch entities.RequestPatch) (*entities.ServiceRequest, error)
	Delete(ctx context.Context, id string) error
}

type serviceRequestRepository struct {
	storage *pgxpool.Pool
	psql    sq.StatementBuilderType
}

func NewServiceRequestRepository(storage *pgxpool.Pool) ServiceRequestRepositoryInterface {
	return &serviceRequestRepository{
		storage: storage,
		psql:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// parseID maps a malformed id to ErrNotFound; no row can carry it.
func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, apperrors.ErrNotFound
	}
	return uid, nil
}

func scanServiceRequest(row pgx.Row) (*entities.ServiceRequest, error) {
	var (
		r        entities.ServiceRequest
		id       uuid.UUID
		status   string
		techID   null.Int64
		techName null.String
	)
	err := row.Scan(
		&id, &r.Title, &r.Client, &r.Address, &r.Description, &r.Quantity, &r.Type, &status, &r.RequestedBy,
		&techID, &techName, &r.AdminResponse, &r.Price,
		&r.AttachmentName, &r.AttachmentMime, &r.HasAttachment, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan service request: %w", err)
	}
	r.ID = id.String()
	r.Status = constants.RequestStatus(status)
	if techID.Valid || techName.Valid {
		r.AssignedTechnician = &entities.Technician{ID: techID, Name: techName.String}
	}
	return &r, nil
}

func (r *serviceRequestRepository) Create(ctx context.Context, req entities.ServiceRequest, att *entities.Attachment) (string, error) {
	id := uuid.New()

	var (
		data           []byte
		attName, attMT null.String
	)
	if att != nil && len(att.Data) > 0 {
		data = att.Data
		attName = null.StringFrom(att.FileName)
		attMT = null.StringFrom(att.MimeType)
	}

	query, args, err := r.psql.Insert(serviceRequestTable).
		Columns("id", "title", "client", "address", "description", "quantity", "type", "status", "requested_by",
			"attachment", "attachment_name", "attachment_mime").
		Values(id, req.Title, req.Client, req.Address, req.Description, req.Quantity, req.Type, constants.StatusPending.String(), req.RequestedBy,
			data, attName, attMT).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert service request: %w", err)
	}
	if _, err := r.storage.Exec(ctx, query, args...); err != nil {
		return "", fmt.Errorf("insert service request: %w", err)
	}
	return id.String(), nil
}

func (r *serviceRequestRepository) FindByID(ctx context.Context, id string) (*entities.ServiceRequest, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	query, args, err := r.psql.Select(serviceRequestFields).From(serviceRequestTable).Where(sq.Eq{"id": uid}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select service request: %w", err)
	}
	return scanServiceRequest(r.storage.QueryRow(ctx, query, args...))
}

func (r *serviceRequestRepository) FindAttachment(ctx context.Context, id string) (*entities.Attachment, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	query, args, err := r.psql.Select("attachment", "attachment_name", "attachment_mime").
		From(serviceRequestTable).
		Where(sq.Eq{"id": uid}).
		Where("attachment IS NOT NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select attachment: %w", err)
	}

	var (
		att      entities.Attachment
		name, mt null.String
	)
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&att.Data, &name, &mt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan attachment: %w", err)
	}
	att.FileName = name.String
	att.MimeType = mt.String
	return &att, nil
}

// List returns rows newest first. Role scoping is not applied here.
func (r *serviceRequestRepository) List(ctx context.Context, filter types.RequestQuery) ([]entities.ServiceRequest, error) {
	builder := db.ApplyRequestQuery(r.psql.Select(serviceRequestFields).From(serviceRequestTable), filter)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list service requests: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list service requests: %w", err)
	}
	defer rows.Close()

	out := make([]entities.ServiceRequest, 0)
	for rows.Next() {
		req, err := scanServiceRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate service requests: %w", err)
	}
	return out, nil
}

// ApplyTransition writes status, assignment and quote fields in one
// statement. There is no version check: concurrent writers resolve
// last-write-wins.
func (r *serviceRequestRepository) ApplyTransition(ctx context.Context, id string, patch entities.RequestPatch) (*entities.ServiceRequest, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	builder := r.psql.Update(serviceRequestTable).
		Set("status", patch.Status.String()).
		Set("admin_response", patch.AdminResponse).
		Set("price", patch.Price).
		Set("updated_at", sq.Expr("now()"))

	if patch.SetAssignment {
		var techID null.Int64
		var techName null.String
		if patch.AssignedTechnician != nil {
			techID = patch.AssignedTechnician.ID
			techName = null.StringFrom(patch.AssignedTechnician.Name)
		}
		builder = builder.Set("assigned_technician_id", techID).Set("assigned_technician_name", techName)
	}

	query, args, err := builder.Where(sq.Eq{"id": uid}).Suffix("RETURNING " + serviceRequestFields).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build transition update: %w", err)
	}
	return scanServiceRequest(r.storage.QueryRow(ctx, query, args...))
}

func (r *serviceRequestRepository) Delete(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	query, args, err := r.psql.Delete(serviceRequestTable).Where(sq.Eq{"id": uid}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete service request: %w", err)
	}
	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete service request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
