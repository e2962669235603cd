package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/pgerr"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

var recordColumns = []string{
	"id",
	"service_id",
	"date",
	"status",
	"start_time",
	"end_time",
	"weekday",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей о датах услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByServiceAndRange возвращает записи услуги на даты [from, to], включая exception
func (r *Repository) ListByServiceAndRange(ctx context.Context, serviceID int64, from, to types.Date) ([]*domain.AvailabilityRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(recordColumns...).
		From("availability").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByServiceAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByServiceAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRecords(rows)
}

// EnsureForUpdate возвращает запись не-exception на (услуга, дата), создавая ее как available при отсутствии.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) EnsureForUpdate(ctx context.Context, serviceID int64, date types.Date) (*domain.AvailabilityRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	record := domain.NewAvailabilityRecord(serviceID, date, domain.AvailabilityAvailable)

	insertQuery, insertArgs, err := psqlbuilder.Insert("availability").
		Columns("service_id", "date", "status", "weekday").
		Values(record.ServiceID, record.Date, record.Status, record.Weekday).
		Suffix("ON CONFLICT (service_id, date) WHERE status <> 'exception' DO NOTHING").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: EnsureForUpdate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: EnsureForUpdate: %v", ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: EnsureForUpdate - execute insert: %v", ErrExecQuery, err)
	}

	selectBuilder := psqlbuilder.Select(recordColumns...).
		From("availability").
		Where(squirrel.Eq{"service_id": serviceID, "date": date}).
		Where(squirrel.NotEq{"status": domain.AvailabilityException})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: EnsureForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	found, err := r.scanRecord(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("EnsureForUpdate: %w", err)
	}
	return found, nil
}

// GetByID получает запись по ID. Внутри транзакции строка блокируется.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(recordColumns...).
		From("availability").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	found, err := r.scanRecord(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return found, nil
}

// MarkReserved переводит запись в reserved с границами часов подтвержденной заявки
func (r *Repository) MarkReserved(ctx context.Context, id int64, start, end types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability").
		Set("status", domain.AvailabilityReserved).
		Set("start_time", start).
		Set("end_time", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.AvailabilityAvailable}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkReserved - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsConflict(err) {
			return fmt.Errorf("%w: MarkReserved: %v", ErrConflict, err)
		}
		return fmt.Errorf("%w: MarkReserved - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkReserved - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// CreateExceptions сохраняет exception записи на даты услуги
func (r *Repository) CreateExceptions(ctx context.Context, serviceID int64, dates []types.Date) error {
	if len(dates) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("availability").
		Columns("service_id", "date", "status", "weekday")

	for _, d := range dates {
		rec := domain.NewAvailabilityRecord(serviceID, d, domain.AvailabilityException)
		builder = builder.Values(rec.ServiceID, rec.Date, rec.Status, rec.Weekday)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateExceptions - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateExceptions - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) scanRecord(row *sql.Row) (*domain.AvailabilityRecord, error) {
	var (
		rec                  domain.AvailabilityRecord
		startTime, endTime   types.TimeString
		weekday              sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&rec.ID,
		&rec.ServiceID,
		&rec.Date,
		&rec.Status,
		&startTime,
		&endTime,
		&weekday,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: scan record: %v", ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: scan record: %v", ErrScanRow, err)
	}

	rec.StartTime = startTime.OrNil()
	rec.EndTime = endTime.OrNil()
	rec.Weekday = weekday.String
	rec.CreatedAt = createdAt.Time
	rec.UpdatedAt = updatedAt.Time

	return &rec, nil
}

func (r *Repository) scanRecords(rows *sql.Rows) ([]*domain.AvailabilityRecord, error) {
	records := make([]*domain.AvailabilityRecord, 0)

	for rows.Next() {
		var (
			rec                  domain.AvailabilityRecord
			startTime, endTime   types.TimeString
			weekday              sql.NullString
			createdAt, updatedAt sql.NullTime
		)

		if err := rows.Scan(
			&rec.ID,
			&rec.ServiceID,
			&rec.Date,
			&rec.Status,
			&startTime,
			&endTime,
			&weekday,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanRecords - scan row: %v", ErrScanRow, err)
		}

		rec.StartTime = startTime.OrNil()
		rec.EndTime = endTime.OrNil()
		rec.Weekday = weekday.String
		rec.CreatedAt = createdAt.Time
		rec.UpdatedAt = updatedAt.Time

		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRecords - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}
