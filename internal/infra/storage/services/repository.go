package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

var serviceColumns = []string{
	"id",
	"owner_id",
	"kind",
	"title",
	"price_per_hour",
	"start_date",
	"end_date",
	"interval",
	"exception_dates",
	"created_at",
	"updated_at",
}

// Repository репозиторий услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет услугу и заполняет ID и временные метки
func (r *Repository) Create(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns(
			"owner_id",
			"kind",
			"title",
			"price_per_hour",
			"start_date",
			"end_date",
			"interval",
			"exception_dates",
		).
		Values(
			service.OwnerID,
			service.Kind,
			service.Title,
			service.PricePerHour,
			service.StartDate,
			service.EndDate,
			service.Interval,
			pq.Array(datesToStrings(service.ExceptionDates)),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return service, nil
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		service          domain.Service
		exceptionStrings pq.StringArray
		createdAt        sql.NullTime
		updatedAt        sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.OwnerID,
		&service.Kind,
		&service.Title,
		&service.PricePerHour,
		&service.StartDate,
		&service.EndDate,
		&service.Interval,
		&exceptionStrings,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	service.ExceptionDates, err = stringsToDates(exceptionStrings)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - parse exception dates: %v", ErrScanRow, err)
	}
	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}

// ListByOwner получает услуги провайдера
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("start_date DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Service, 0)
	for rows.Next() {
		var (
			service          domain.Service
			exceptionStrings pq.StringArray
			createdAt        sql.NullTime
			updatedAt        sql.NullTime
		)
		if err := rows.Scan(
			&service.ID,
			&service.OwnerID,
			&service.Kind,
			&service.Title,
			&service.PricePerHour,
			&service.StartDate,
			&service.EndDate,
			&service.Interval,
			&exceptionStrings,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByOwner - scan row: %v", ErrScanRow, err)
		}
		if service.ExceptionDates, err = stringsToDates(exceptionStrings); err != nil {
			return nil, fmt.Errorf("%w: ListByOwner - parse exception dates: %v", ErrScanRow, err)
		}
		service.CreatedAt = createdAt.Time
		service.UpdatedAt = updatedAt.Time
		result = append(result, &service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func datesToStrings(dates []types.Date) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	return out
}

func stringsToDates(values []string) ([]types.Date, error) {
	out := make([]types.Date, 0, len(values))
	for _, v := range values {
		d, err := types.ParseDate(v)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
