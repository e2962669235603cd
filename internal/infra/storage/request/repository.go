package request

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/pgerr"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/psqlbuilder"
)

var requestColumns = []string{
	"id",
	"service_id",
	"requester_id",
	"availability_id",
	"booking_date",
	"start_time",
	"end_time",
	"hours",
	"total_price",
	"deposit_amount",
	"status",
	"payment_correlation_id",
	"created_at",
	"updated_at",
	"resolved_at",
}

// Repository репозиторий заявок на бронирование и связей заявителей со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет заявку.
// Нарушение уникальности активной заявки на слот и конфликт сериализации возвращаются как ErrSlotConflict.
func (r *Repository) Create(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_requests").
		Columns(
			"service_id",
			"requester_id",
			"availability_id",
			"booking_date",
			"start_time",
			"end_time",
			"hours",
			"total_price",
			"deposit_amount",
			"status",
			"payment_correlation_id",
		).
		Values(
			req.ServiceID,
			req.RequesterID,
			req.AvailabilityID,
			req.BookingDate,
			req.StartTime,
			req.EndTime,
			req.Hours,
			req.TotalPrice,
			req.DepositAmount,
			req.Status,
			req.PaymentCorrelationID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&req.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: Create: %v", ErrSlotConflict, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// GetByID получает заявку по ID. Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("booking_requests").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var req domain.BookingRequest
	var createdAt, updatedAt, resolvedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&req.ID,
		&req.ServiceID,
		&req.RequesterID,
		&req.AvailabilityID,
		&req.BookingDate,
		&req.StartTime,
		&req.EndTime,
		&req.Hours,
		&req.TotalPrice,
		&req.DepositAmount,
		&req.Status,
		&req.PaymentCorrelationID,
		&createdAt,
		&updatedAt,
		&resolvedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: GetByID: %v", ErrSlotConflict, err)
		}
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	fillTimes(&req, createdAt, updatedAt, resolvedAt)

	return &req, nil
}

// List получает заявки по фильтру.
// Пример: активные заявки услуги на дату
//
//	filter := domain.RequestFilter{ServiceID: &id, Statuses: domain.ActiveRequestStatuses, From: &date, To: &date}
func (r *Repository) List(ctx context.Context, filter domain.RequestFilter) ([]*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("booking_requests")

	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.RequesterID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"requester_id": *filter.RequesterID})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.To})
	}

	selectBuilder = selectBuilder.OrderBy("booking_date ASC, start_time ASC, id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: List: %v", ErrSlotConflict, err)
		}
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRequests(rows)
}

// UpdateStatus переводит заявку из статуса from в статус to.
// Если статус уже не from, возвращает ErrStatusConflict.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.RequestStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("booking_requests").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from})

	if to.IsTerminal() {
		updateBuilder = updateBuilder.Set("resolved_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsConflict(err) {
			return fmt.Errorf("%w: UpdateStatus: %v", ErrSlotConflict, err)
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// CreateRequester сохраняет связь заявителя с записью даты
func (r *Repository) CreateRequester(ctx context.Context, sr *domain.SlotRequester) (*domain.SlotRequester, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_requesters").
		Columns("availability_id", "request_id", "requester_id", "status").
		Values(sr.AvailabilityID, sr.RequestID, sr.RequesterID, sr.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateRequester - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&sr.ID, &createdAt, &updatedAt)
	if err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: CreateRequester: %v", ErrSlotConflict, err)
		}
		return nil, fmt.Errorf("%w: CreateRequester - execute insert: %v", ErrExecQuery, err)
	}

	sr.CreatedAt = createdAt.Time
	sr.UpdatedAt = updatedAt.Time

	return sr, nil
}

// UpdateRequesterStatus синхронизирует статус связи со статусом заявки
func (r *Repository) UpdateRequesterStatus(ctx context.Context, requestID int64, status domain.RequestStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot_requesters").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"request_id": requestID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateRequesterStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateRequesterStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateRequesterStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

func (r *Repository) scanRequests(rows *sql.Rows) ([]*domain.BookingRequest, error) {
	requests := make([]*domain.BookingRequest, 0)

	for rows.Next() {
		var req domain.BookingRequest
		var createdAt, updatedAt, resolvedAt sql.NullTime

		err := rows.Scan(
			&req.ID,
			&req.ServiceID,
			&req.RequesterID,
			&req.AvailabilityID,
			&req.BookingDate,
			&req.StartTime,
			&req.EndTime,
			&req.Hours,
			&req.TotalPrice,
			&req.DepositAmount,
			&req.Status,
			&req.PaymentCorrelationID,
			&createdAt,
			&updatedAt,
			&resolvedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRequests - scan row: %v", ErrScanRow, err)
		}

		fillTimes(&req, createdAt, updatedAt, resolvedAt)
		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRequests - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

func fillTimes(req *domain.BookingRequest, createdAt, updatedAt, resolvedAt sql.NullTime) {
	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time
	if resolvedAt.Valid {
		t := resolvedAt.Time
		req.ResolvedAt = &t
	}
}
