package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"roombook/internal/availability"
	"roombook/internal/entities"
	"roombook/internal/repositories"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/types"
)

func listAllFilter() types.Filter {
	return types.Filter{Limit: 100}
}

type fakeBookingRepo struct {
	bookings   []entities.Booking
	organizers []string
}

func (f *fakeBookingRepo) GetBookings(ctx context.Context, filter types.Filter) ([]entities.Booking, uint64, error) {
	return f.bookings, uint64(len(f.bookings)), nil
}

func (f *fakeBookingRepo) FindBooking(ctx context.Context, id uint64) (*entities.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			return &f.bookings[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeBookingRepo) CreateBooking(ctx context.Context, tx pgx.Tx, booking entities.Booking) (uint64, error) {
	booking.ID = uint64(len(f.bookings) + 1)
	f.bookings = append(f.bookings, booking)
	return booking.ID, nil
}

func (f *fakeBookingRepo) UpdateBooking(ctx context.Context, tx pgx.Tx, id uint64, booking entities.Booking) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			booking.ID = id
			f.bookings[i] = booking
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeBookingRepo) DeleteBooking(ctx context.Context, id uint64) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeBookingRepo) GetRoomWindows(ctx context.Context, q repositories.Querier, roomID, excludeID uint64) ([]availability.Booking, error) {
	var windows []availability.Booking
	for _, b := range f.bookings {
		if b.RoomID != roomID || b.ID == excludeID {
			continue
		}
		windows = append(windows, availability.Booking{
			ID: b.ID, RoomID: b.RoomID, Start: b.StartTime, End: b.EndTime,
		})
	}
	return windows, nil
}

func (f *fakeBookingRepo) FindStartingBetween(ctx context.Context, from, to time.Time) ([]entities.Booking, error) {
	var out []entities.Booking
	for _, b := range f.bookings {
		if !b.StartTime.Before(from) && b.StartTime.Before(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) DistinctOrganizers(ctx context.Context) ([]string, error) {
	return f.organizers, nil
}

type fakeUserRepo struct {
	users []entities.User
}

func (f *fakeUserRepo) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	return f.users, uint64(len(f.users)), nil
}

func (f *fakeUserRepo) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	for i := range f.users {
		if f.users[i].Username == username {
			return &f.users[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := f.FindByUsername(ctx, username)
	return err == nil, nil
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user entities.User) (uint64, error) {
	user.ID = uint64(len(f.users) + 1)
	f.users = append(f.users, user)
	return user.ID, nil
}

func (f *fakeUserRepo) SetEnabled(ctx context.Context, id uint64, enabled bool) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Enabled = enabled
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeUserRepo) SetPasswordHash(ctx context.Context, id uint64, hash string) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].PasswordHash = hash
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeUserRepo) GetEnabledUserIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	for _, u := range f.users {
		if u.Enabled {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

type fakeNotificationRepo struct {
	notifications []entities.Notification
	nextID        uint64
}

func (f *fakeNotificationRepo) GetForUser(ctx context.Context, userID uint64, filter types.Filter) ([]entities.Notification, uint64, error) {
	var out []entities.Notification
	for _, n := range f.notifications {
		if n.UserID == userID && !n.Deleted {
			out = append(out, n)
		}
	}
	return out, uint64(len(out)), nil
}

func (f *fakeNotificationRepo) GetAll(ctx context.Context, filter types.Filter) ([]entities.Notification, uint64, error) {
	return f.notifications, uint64(len(f.notifications)), nil
}

func (f *fakeNotificationRepo) FindForUser(ctx context.Context, userID, id uint64) (*entities.Notification, error) {
	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].UserID == userID && !f.notifications[i].Deleted {
			return &f.notifications[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID uint64) (uint64, error) {
	var count uint64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.Read && !n.Deleted {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) SetRead(ctx context.Context, userID, id uint64, read bool) error {
	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].UserID == userID && !f.notifications[i].Deleted {
			f.notifications[i].Read = read
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID uint64) error {
	for i := range f.notifications {
		if f.notifications[i].UserID == userID && !f.notifications[i].Deleted {
			f.notifications[i].Read = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) MarkAllReadGlobal(ctx context.Context) (int64, error) {
	var count int64
	for i := range f.notifications {
		if !f.notifications[i].Read {
			f.notifications[i].Read = true
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) SoftDelete(ctx context.Context, userID, id uint64) error {
	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].UserID == userID && !f.notifications[i].Deleted {
			f.notifications[i].Deleted = true
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeNotificationRepo) HardDelete(ctx context.Context, id uint64) error {
	for i := range f.notifications {
		if f.notifications[i].ID == id {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n entities.Notification) (uint64, error) {
	f.nextID++
	n.ID = f.nextID
	f.notifications = append(f.notifications, n)
	return n.ID, nil
}

func (f *fakeNotificationRepo) CreateBatch(ctx context.Context, notifications []entities.Notification) error {
	for _, n := range notifications {
		if _, err := f.Create(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeNotificationRepo) ExistsForBooking(ctx context.Context, userID, bookingID uint64, notificationType string) (bool, error) {
	for _, n := range f.notifications {
		if n.UserID == userID && n.BookingID != nil && *n.BookingID == bookingID && n.Type == notificationType {
			return true, nil
		}
	}
	return false, nil
}

type fakeEquipmentRepo struct {
	equipments []entities.Equipment
	booked     map[uint64]int
}

func (f *fakeEquipmentRepo) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	return f.equipments, uint64(len(f.equipments)), nil
}

func (f *fakeEquipmentRepo) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	for i := range f.equipments {
		if f.equipments[i].ID == id {
			return &f.equipments[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeEquipmentRepo) CreateEquipment(ctx context.Context, equipment entities.Equipment) (uint64, error) {
	equipment.ID = uint64(len(f.equipments) + 1)
	f.equipments = append(f.equipments, equipment)
	return equipment.ID, nil
}

func (f *fakeEquipmentRepo) UpdateEquipment(ctx context.Context, id uint64, equipment entities.Equipment) error {
	for i := range f.equipments {
		if f.equipments[i].ID == id {
			equipment.ID = id
			f.equipments[i] = equipment
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeEquipmentRepo) DeleteEquipment(ctx context.Context, id uint64) error {
	for i := range f.equipments {
		if f.equipments[i].ID == id {
			f.equipments = append(f.equipments[:i], f.equipments[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeEquipmentRepo) SetImageURL(ctx context.Context, id uint64, imageURL *string) error {
	for i := range f.equipments {
		if f.equipments[i].ID == id {
			f.equipments[i].ImageURL = imageURL
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeEquipmentRepo) GetMobileEquipments(ctx context.Context) ([]entities.Equipment, error) {
	var out []entities.Equipment
	for _, e := range f.equipments {
		if e.Mobile {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEquipmentRepo) BookedQuantities(ctx context.Context, start, end time.Time, excludeBookingIDs []uint64) (map[uint64]int, error) {
	return f.booked, nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent    []sentMail
	failAll bool
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if f.failAll {
		return fmt.Errorf("smtp unavailable")
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

type fakeCache struct {
	store map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string]string{}}
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.store[key] = fmt.Sprintf("%v", value)
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.store[key]
	if !ok {
		return "", fmt.Errorf("cache miss")
	}
	return v, nil
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.store, k)
	}
	return nil
}
