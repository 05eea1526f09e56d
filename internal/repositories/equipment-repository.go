package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"roombook/internal/entities"
	"roombook/internal/infrastructure/bd"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/types"
)

var equipmentMap = map[string]string{
	"id":         "e.id",
	"name":       "e.name",
	"quantity":   "e.quantity",
	"mobile":     "e.mobile",
	"created_at": "e.created_at",
	"updated_at": "e.updated_at",
}

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, equipment entities.Equipment) (uint64, error)
	UpdateEquipment(ctx context.Context, id uint64, equipment entities.Equipment) error
	DeleteEquipment(ctx context.Context, id uint64) error
	SetImageURL(ctx context.Context, id uint64, imageURL *string) error

	GetMobileEquipments(ctx context.Context) ([]entities.Equipment, error)
	// BookedQuantities sums reserved quantities of mobile equipment whose
	// reservation sub-interval overlaps [start, end), keyed by equipment id.
	// Bookings listed in excludeBookingIDs are ignored.
	BookedQuantities(ctx context.Context, start, end time.Time, excludeBookingIDs []uint64) (map[uint64]int, error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Quantity, &e.Mobile, &e.ImageURL, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan equipment: %w", err)
	}
	return &e, nil
}

const equipmentColumns = "e.id, e.name, e.description, e.quantity, e.mobile, e.image_url, e.created_at, e.updated_at"

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			return b.Where(sq.ILike{"e.name": "%" + filter.Search + "%"})
		}
		return b
	}

	countBuilder := applySearch(psql.Select("COUNT(e.id)").From("equipments AS e"))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, equipmentMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Equipment{}, 0, nil
	}

	baseBuilder := applySearch(psql.Select(equipmentColumns).From("equipments AS e"))
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("e.name ASC")
	}
	baseBuilder = bd.ApplyListParams(baseBuilder, filter, equipmentMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	equipments := make([]entities.Equipment, 0, filter.Limit)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		equipments = append(equipments, *e)
	}
	return equipments, total, rows.Err()
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(equipmentColumns).From("equipments AS e").Where(sq.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanEquipment(r.storage.QueryRow(ctx, query, args...))
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, equipment entities.Equipment) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO equipments (name, description, quantity, mobile) VALUES ($1, $2, $3, $4) RETURNING id`,
		equipment.Name, equipment.Description, equipment.Quantity, equipment.Mobile,
	).Scan(&id)
	return id, err
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, id uint64, equipment entities.Equipment) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE equipments
		 SET name = $1, description = $2, quantity = $3, mobile = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		equipment.Name, equipment.Description, equipment.Quantity, equipment.Mobile, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM equipments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) SetImageURL(ctx context.Context, id uint64, imageURL *string) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE equipments SET image_url = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		imageURL, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) GetMobileEquipments(ctx context.Context) ([]entities.Equipment, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(equipmentColumns).
		From("equipments AS e").
		Where(sq.Eq{"e.mobile": true}).
		OrderBy("e.name ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var equipments []entities.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		equipments = append(equipments, *e)
	}
	return equipments, rows.Err()
}

func (r *EquipmentRepository) BookedQuantities(ctx context.Context, start, end time.Time, excludeBookingIDs []uint64) (map[uint64]int, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	// A reservation without its own sub-interval occupies the whole
	// booking window.
	builder := psql.Select("be.equipment_id", "COALESCE(SUM(be.quantity), 0)").
		From("booking_equipments AS be").
		Join("bookings b ON b.id = be.booking_id").
		Where("COALESCE(be.start_time, b.start_time) < ?", end).
		Where("COALESCE(be.end_time, b.end_time) > ?", start).
		GroupBy("be.equipment_id")
	if len(excludeBookingIDs) > 0 {
		builder = builder.Where(sq.NotEq{"be.booking_id": excludeBookingIDs})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	booked := make(map[uint64]int)
	for rows.Next() {
		var equipmentID uint64
		var quantity int
		if err := rows.Scan(&equipmentID, &quantity); err != nil {
			return nil, err
		}
		booked[equipmentID] = quantity
	}
	return booked, rows.Err()
}
