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

	"roombook/internal/availability"
	"roombook/internal/entities"
	"roombook/internal/infrastructure/bd"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/types"
)

var bookingMap = map[string]string{
	"id":         "b.id",
	"title":      "b.title",
	"start_time": "b.start_time",
	"end_time":   "b.end_time",
	"organizer":  "b.organizer",
	"room_id":    "b.room_id",
	"attendees":  "b.attendees",
	"created_at": "b.created_at",
}

type BookingRepositoryInterface interface {
	GetBookings(ctx context.Context, filter types.Filter) ([]entities.Booking, uint64, error)
	FindBooking(ctx context.Context, id uint64) (*entities.Booking, error)
	CreateBooking(ctx context.Context, tx pgx.Tx, booking entities.Booking) (uint64, error)
	UpdateBooking(ctx context.Context, tx pgx.Tx, id uint64, booking entities.Booking) error
	DeleteBooking(ctx context.Context, id uint64) error

	// GetRoomWindows returns the occupied windows of a room, excluding the
	// booking with excludeID when non-zero. Pass the transaction used for a
	// create or update so the conflict check sees its own writes.
	GetRoomWindows(ctx context.Context, q Querier, roomID, excludeID uint64) ([]availability.Booking, error)
	FindStartingBetween(ctx context.Context, from, to time.Time) ([]entities.Booking, error)
	DistinctOrganizers(ctx context.Context) ([]string, error)
}

type BookingRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewBookingRepository(storage *pgxpool.Pool, logger *zap.Logger) BookingRepositoryInterface {
	return &BookingRepository{storage: storage, logger: logger}
}

const bookingColumns = "b.id, b.title, b.start_time, b.end_time, b.attendees, b.organizer, b.room_id, b.created_at, b.updated_at, r.id, r.name, r.capacity"

func scanBooking(row pgx.Row) (*entities.Booking, error) {
	var b entities.Booking
	var room entities.Room
	err := row.Scan(
		&b.ID, &b.Title, &b.StartTime, &b.EndTime, &b.Attendees, &b.Organizer,
		&b.RoomID, &b.CreatedAt, &b.UpdatedAt,
		&room.ID, &room.Name, &room.Capacity,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan booking: %w", err)
	}
	b.Room = &room
	return &b, nil
}

func (r *BookingRepository) GetBookings(ctx context.Context, filter types.Filter) ([]entities.Booking, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"b.title": pattern},
				sq.ILike{"b.organizer": pattern},
			})
		}
		return b
	}

	countBuilder := applySearch(psql.Select("COUNT(b.id)").
		From("bookings AS b").
		Join("rooms r ON r.id = b.room_id"))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, bookingMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Booking{}, 0, nil
	}

	baseBuilder := applySearch(psql.Select(bookingColumns).
		From("bookings AS b").
		Join("rooms r ON r.id = b.room_id"))
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("b.start_time ASC")
	}
	baseBuilder = bd.ApplyListParams(baseBuilder, filter, bookingMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bookings := make([]entities.Booking, 0, filter.Limit)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachEquipments(ctx, bookings); err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *BookingRepository) attachEquipments(ctx context.Context, bookings []entities.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]uint64, 0, len(bookings))
	index := make(map[uint64]int, len(bookings))
	for i := range bookings {
		ids = append(ids, bookings[i].ID)
		index[bookings[i].ID] = i
		bookings[i].Equipments = []entities.BookingEquipment{}
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(
		"be.id", "be.booking_id", "be.equipment_id", "e.name", "be.quantity", "be.start_time", "be.end_time",
	).From("booking_equipments AS be").
		Join("equipments e ON e.id = be.equipment_id").
		Where(sq.Eq{"be.booking_id": ids}).
		OrderBy("be.booking_id", "be.id").
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
		var be entities.BookingEquipment
		if err := rows.Scan(&be.ID, &be.BookingID, &be.EquipmentID, &be.EquipmentName, &be.Quantity, &be.StartTime, &be.EndTime); err != nil {
			return err
		}
		if i, ok := index[be.BookingID]; ok {
			bookings[i].Equipments = append(bookings[i].Equipments, be)
		}
	}
	return rows.Err()
}

func (r *BookingRepository) FindBooking(ctx context.Context, id uint64) (*entities.Booking, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(bookingColumns).
		From("bookings AS b").
		Join("rooms r ON r.id = b.room_id").
		Where(sq.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	booking, err := scanBooking(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	bookings := []entities.Booking{*booking}
	if err := r.attachEquipments(ctx, bookings); err != nil {
		return nil, err
	}
	return &bookings[0], nil
}

func (r *BookingRepository) CreateBooking(ctx context.Context, tx pgx.Tx, booking entities.Booking) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx,
		`INSERT INTO bookings (title, start_time, end_time, attendees, organizer, room_id)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		booking.Title, booking.StartTime, booking.EndTime, booking.Attendees, booking.Organizer, booking.RoomID,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	if err := r.replaceEquipments(ctx, tx, id, booking.Equipments); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *BookingRepository) UpdateBooking(ctx context.Context, tx pgx.Tx, id uint64, booking entities.Booking) error {
	result, err := tx.Exec(ctx,
		`UPDATE bookings
		 SET title = $1, start_time = $2, end_time = $3, attendees = $4, organizer = $5,
		     room_id = $6, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7`,
		booking.Title, booking.StartTime, booking.EndTime, booking.Attendees, booking.Organizer,
		booking.RoomID, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return r.replaceEquipments(ctx, tx, id, booking.Equipments)
}

func (r *BookingRepository) replaceEquipments(ctx context.Context, tx pgx.Tx, bookingID uint64, equipments []entities.BookingEquipment) error {
	if _, err := tx.Exec(ctx, `DELETE FROM booking_equipments WHERE booking_id = $1`, bookingID); err != nil {
		return err
	}
	for _, be := range equipments {
		_, err := tx.Exec(ctx,
			`INSERT INTO booking_equipments (booking_id, equipment_id, quantity, start_time, end_time)
			 VALUES ($1, $2, $3, $4, $5)`,
			bookingID, be.EquipmentID, be.Quantity, be.StartTime, be.EndTime,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *BookingRepository) DeleteBooking(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *BookingRepository) GetRoomWindows(ctx context.Context, q Querier, roomID, excludeID uint64) ([]availability.Booking, error) {
	if q == nil {
		q = r.storage
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select("b.id", "b.room_id", "b.start_time", "b.end_time").
		From("bookings AS b").
		Where(sq.Eq{"b.room_id": roomID})
	if excludeID != 0 {
		builder = builder.Where(sq.NotEq{"b.id": excludeID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var windows []availability.Booking
	for rows.Next() {
		var w availability.Booking
		if err := rows.Scan(&w.ID, &w.RoomID, &w.Start, &w.End); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

func (r *BookingRepository) FindStartingBetween(ctx context.Context, from, to time.Time) ([]entities.Booking, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(bookingColumns).
		From("bookings AS b").
		Join("rooms r ON r.id = b.room_id").
		Where(sq.GtOrEq{"b.start_time": from}).
		Where(sq.Lt{"b.start_time": to}).
		OrderBy("b.start_time ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []entities.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) DistinctOrganizers(ctx context.Context) ([]string, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT DISTINCT organizer FROM bookings WHERE organizer <> '' ORDER BY organizer ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var organizers []string
	for rows.Next() {
		var organizer string
		if err := rows.Scan(&organizer); err != nil {
			return nil, err
		}
		organizers = append(organizers, organizer)
	}
	return organizers, rows.Err()
}
