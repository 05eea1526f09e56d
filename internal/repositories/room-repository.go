package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"roombook/internal/entities"
	"roombook/internal/infrastructure/bd"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/types"
)

var roomMap = map[string]string{
	"id":         "r.id",
	"name":       "r.name",
	"capacity":   "r.capacity",
	"created_at": "r.created_at",
	"updated_at": "r.updated_at",
}

type RoomRepositoryInterface interface {
	GetRooms(ctx context.Context, filter types.Filter) ([]entities.Room, uint64, error)
	FindRoom(ctx context.Context, id uint64) (*entities.Room, error)
	CreateRoom(ctx context.Context, tx pgx.Tx, room entities.Room) (uint64, error)
	UpdateRoom(ctx context.Context, tx pgx.Tx, id uint64, room entities.Room, replaceEquipments bool) error
	DeleteRoom(ctx context.Context, id uint64) error
	SetImageURL(ctx context.Context, id uint64, imageURL *string) error
}

type RoomRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRoomRepository(storage *pgxpool.Pool, logger *zap.Logger) RoomRepositoryInterface {
	return &RoomRepository{storage: storage, logger: logger}
}

func scanRoom(row pgx.Row) (*entities.Room, error) {
	var r entities.Room
	err := row.Scan(&r.ID, &r.Name, &r.Capacity, &r.ImageURL, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan room: %w", err)
	}
	return &r, nil
}

func (r *RoomRepository) GetRooms(ctx context.Context, filter types.Filter) ([]entities.Room, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			return b.Where(sq.ILike{"r.name": "%" + filter.Search + "%"})
		}
		return b
	}

	countBuilder := applySearch(psql.Select("COUNT(r.id)").From("rooms AS r"))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, roomMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Room{}, 0, nil
	}

	baseBuilder := applySearch(psql.Select(
		"r.id", "r.name", "r.capacity", "r.image_url", "r.created_at", "r.updated_at",
	).From("rooms AS r"))

	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("r.name ASC")
	}
	baseBuilder = bd.ApplyListParams(baseBuilder, filter, roomMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	rooms := make([]entities.Room, 0, filter.Limit)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, 0, err
		}
		rooms = append(rooms, *room)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachEquipments(ctx, rooms); err != nil {
		return nil, 0, err
	}

	return rooms, total, nil
}

// attachEquipments loads the fixed equipment associations for a page of
// rooms in one query.
func (r *RoomRepository) attachEquipments(ctx context.Context, rooms []entities.Room) error {
	if len(rooms) == 0 {
		return nil
	}

	ids := make([]uint64, 0, len(rooms))
	index := make(map[uint64]int, len(rooms))
	for i := range rooms {
		ids = append(ids, rooms[i].ID)
		index[rooms[i].ID] = i
		rooms[i].Equipments = []entities.RoomEquipment{}
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(
		"re.room_id", "re.equipment_id", "e.name", "e.mobile", "re.quantity",
	).From("room_equipments AS re").
		Join("equipments e ON e.id = re.equipment_id").
		Where(sq.Eq{"re.room_id": ids}).
		OrderBy("re.room_id", "re.equipment_id").
		ToSql()
	if err != nil {
		return err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var roomID uint64
		var re entities.RoomEquipment
		if err := rows.Scan(&roomID, &re.EquipmentID, &re.EquipmentName, &re.Mobile, &re.Quantity); err != nil {
			return err
		}
		if i, ok := index[roomID]; ok {
			rooms[i].Equipments = append(rooms[i].Equipments, re)
		}
	}
	return rows.Err()
}

func (r *RoomRepository) FindRoom(ctx context.Context, id uint64) (*entities.Room, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(
		"r.id", "r.name", "r.capacity", "r.image_url", "r.created_at", "r.updated_at",
	).From("rooms AS r").Where(sq.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	room, err := scanRoom(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	rooms := []entities.Room{*room}
	if err := r.attachEquipments(ctx, rooms); err != nil {
		return nil, err
	}
	return &rooms[0], nil
}

func (r *RoomRepository) CreateRoom(ctx context.Context, tx pgx.Tx, room entities.Room) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx,
		`INSERT INTO rooms (name, capacity) VALUES ($1, $2) RETURNING id`,
		room.Name, room.Capacity,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	if err := r.replaceEquipments(ctx, tx, id, room.Equipments); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *RoomRepository) UpdateRoom(ctx context.Context, tx pgx.Tx, id uint64, room entities.Room, replaceEquipments bool) error {
	result, err := tx.Exec(ctx,
		`UPDATE rooms SET name = $1, capacity = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`,
		room.Name, room.Capacity, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if replaceEquipments {
		return r.replaceEquipments(ctx, tx, id, room.Equipments)
	}
	return nil
}

func (r *RoomRepository) replaceEquipments(ctx context.Context, tx pgx.Tx, roomID uint64, equipments []entities.RoomEquipment) error {
	if _, err := tx.Exec(ctx, `DELETE FROM room_equipments WHERE room_id = $1`, roomID); err != nil {
		return err
	}
	for _, re := range equipments {
		_, err := tx.Exec(ctx,
			`INSERT INTO room_equipments (room_id, equipment_id, quantity) VALUES ($1, $2, $3)`,
			roomID, re.EquipmentID, re.Quantity,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *RoomRepository) DeleteRoom(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RoomRepository) SetImageURL(ctx context.Context, id uint64, imageURL *string) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE rooms SET image_url = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
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
