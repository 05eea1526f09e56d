package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"roombook/internal/availability"
	"roombook/internal/dto"
	"roombook/internal/entities"
	"roombook/internal/repositories"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/types"
	"roombook/pkg/utils"
)

type BookingService struct {
	storage                *pgxpool.Pool
	bookingRepository      repositories.BookingRepositoryInterface
	roomRepository         repositories.RoomRepositoryInterface
	equipmentRepository    repositories.EquipmentRepositoryInterface
	notificationRepository repositories.NotificationRepositoryInterface
	logger                 *zap.Logger
}

func NewBookingService(
	storage *pgxpool.Pool,
	bookingRepository repositories.BookingRepositoryInterface,
	roomRepository repositories.RoomRepositoryInterface,
	equipmentRepository repositories.EquipmentRepositoryInterface,
	notificationRepository repositories.NotificationRepositoryInterface,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		storage:                storage,
		bookingRepository:      bookingRepository,
		roomRepository:         roomRepository,
		equipmentRepository:    equipmentRepository,
		notificationRepository: notificationRepository,
		logger:                 logger,
	}
}

func mapBookingToDTO(b entities.Booking) dto.BookingDTO {
	equipments := make([]dto.BookingEquipmentDTO, 0, len(b.Equipments))
	for _, be := range b.Equipments {
		item := dto.BookingEquipmentDTO{
			EquipmentID: be.EquipmentID,
			Name:        be.EquipmentName,
			Quantity:    be.Quantity,
		}
		if be.StartTime != nil {
			s := utils.FormatDateTimeLocal(*be.StartTime)
			item.StartTime = &s
		}
		if be.EndTime != nil {
			e := utils.FormatDateTimeLocal(*be.EndTime)
			item.EndTime = &e
		}
		equipments = append(equipments, item)
	}

	result := dto.BookingDTO{
		ID:         b.ID,
		Title:      b.Title,
		StartTime:  utils.FormatDateTimeLocal(b.StartTime),
		EndTime:    utils.FormatDateTimeLocal(b.EndTime),
		Attendees:  b.Attendees,
		Organizer:  b.Organizer,
		Equipments: equipments,
		CreatedAt:  utils.FormatDateTimeLocal(b.CreatedAt),
	}
	if b.Room != nil {
		result.Room = dto.ShortRoomDTO{ID: b.Room.ID, Name: b.Room.Name, Capacity: b.Room.Capacity}
	}
	return result
}

func (s *BookingService) GetBookings(ctx context.Context, filter types.Filter) ([]dto.BookingDTO, uint64, error) {
	bookings, total, err := s.bookingRepository.GetBookings(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.BookingDTO, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, mapBookingToDTO(b))
	}
	return result, total, nil
}

func (s *BookingService) FindBooking(ctx context.Context, id uint64) (*dto.BookingDTO, error) {
	booking, err := s.bookingRepository.FindBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	bookingDTO := mapBookingToDTO(*booking)
	return &bookingDTO, nil
}

func parseWindow(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := utils.ParseDateTimeLocal(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewInvalidInputError("invalid start_time: %s", startRaw)
	}
	end, err := utils.ParseDateTimeLocal(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewInvalidInputError("invalid end_time: %s", endRaw)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, apperrors.NewInvalidInputError("end_time must be after start_time")
	}
	return start, end, nil
}

func (s *BookingService) buildEquipments(start, end time.Time, inputs []dto.BookingEquipmentInput) ([]entities.BookingEquipment, error) {
	equipments := make([]entities.BookingEquipment, 0, len(inputs))
	for _, in := range inputs {
		be := entities.BookingEquipment{
			EquipmentID: in.EquipmentID,
			Quantity:    in.Quantity,
		}
		if in.StartTime != nil {
			t, err := utils.ParseDateTimeLocal(*in.StartTime)
			if err != nil {
				return nil, apperrors.NewInvalidInputError("invalid equipment start_time: %s", *in.StartTime)
			}
			be.StartTime = &t
		}
		if in.EndTime != nil {
			t, err := utils.ParseDateTimeLocal(*in.EndTime)
			if err != nil {
				return nil, apperrors.NewInvalidInputError("invalid equipment end_time: %s", *in.EndTime)
			}
			be.EndTime = &t
		}

		// Sub-intervals stay inside the booking window.
		effStart, effEnd := start, end
		if be.StartTime != nil {
			effStart = *be.StartTime
		}
		if be.EndTime != nil {
			effEnd = *be.EndTime
		}
		if effStart.Before(start) || effEnd.After(end) || !effEnd.After(effStart) {
			return nil, apperrors.NewInvalidInputError("equipment reservation interval must lie within the booking window")
		}
		equipments = append(equipments, be)
	}
	return equipments, nil
}

// checkEquipmentQuantities verifies each requested mobile equipment still
// has enough free units within the booking window.
func (s *BookingService) checkEquipmentQuantities(ctx context.Context, start, end time.Time, equipments []entities.BookingEquipment, excludeBookingID uint64) error {
	if len(equipments) == 0 {
		return nil
	}

	var exclude []uint64
	if excludeBookingID != 0 {
		exclude = []uint64{excludeBookingID}
	}
	booked, err := s.equipmentRepository.BookedQuantities(ctx, start, end, exclude)
	if err != nil {
		return err
	}

	for _, be := range equipments {
		equipment, err := s.equipmentRepository.FindEquipment(ctx, be.EquipmentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewInvalidInputError("equipment %d does not exist", be.EquipmentID)
			}
			return err
		}
		if !equipment.Mobile {
			return apperrors.NewInvalidInputError("equipment %q is not bookable per time slot", equipment.Name)
		}
		if booked[be.EquipmentID]+be.Quantity > equipment.Quantity {
			return apperrors.NewInvalidInputError("not enough units of %q available in the requested window", equipment.Name)
		}
	}
	return nil
}

func (s *BookingService) validateCapacity(ctx context.Context, roomID uint64, attendees int) error {
	room, err := s.roomRepository.FindRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewInvalidInputError("room %d does not exist", roomID)
		}
		return err
	}
	if room.Capacity > 0 && attendees > room.Capacity {
		return apperrors.NewInvalidInputError("attendee count %d exceeds room capacity %d", attendees, room.Capacity)
	}
	return nil
}

// createOne inserts a booking after an authoritative overlap check against
// the room's occupied windows, both inside one transaction.
func (s *BookingService) createOne(ctx context.Context, booking entities.Booking) (uint64, error) {
	var id uint64
	err := repositories.WithTransaction(ctx, s.storage, func(tx pgx.Tx) error {
		windows, err := s.bookingRepository.GetRoomWindows(ctx, tx, booking.RoomID, 0)
		if err != nil {
			return err
		}
		if blockingID, conflict := availability.FindConflict(booking.RoomID, booking.StartTime, booking.EndTime, windows); conflict {
			return apperrors.NewConflictError(blockingID)
		}

		id, err = s.bookingRepository.CreateBooking(ctx, tx, booking)
		return err
	})
	return id, err
}

func (s *BookingService) CreateBooking(ctx context.Context, userID uint64, payload dto.CreateBookingDTO) (*dto.BookingDTO, error) {
	start, end, err := parseWindow(payload.StartTime, payload.EndTime)
	if err != nil {
		return nil, err
	}
	if err := s.validateCapacity(ctx, payload.RoomID, payload.Attendees); err != nil {
		return nil, err
	}

	equipments, err := s.buildEquipments(start, end, payload.Equipments)
	if err != nil {
		return nil, err
	}
	if err := s.checkEquipmentQuantities(ctx, start, end, equipments, 0); err != nil {
		return nil, err
	}

	booking := entities.Booking{
		Title:      payload.Title,
		StartTime:  start,
		EndTime:    end,
		Attendees:  payload.Attendees,
		Organizer:  payload.Organizer,
		RoomID:     payload.RoomID,
		Equipments: equipments,
	}

	id, err := s.createOne(ctx, booking)
	if err != nil {
		s.notifyOnConflict(ctx, userID, err, booking)
		return nil, err
	}
	return s.FindBooking(ctx, id)
}

// notifyOnConflict records a conflict alert for the requesting user when a
// create or update was rejected because the room is taken.
func (s *BookingService) notifyOnConflict(ctx context.Context, userID uint64, err error, booking entities.Booking) {
	var httpErr *apperrors.HttpError
	if userID == 0 || !errors.As(err, &httpErr) || httpErr.Code != 409 {
		return
	}

	_, createErr := s.notificationRepository.Create(ctx, entities.Notification{
		UserID: userID,
		Type:   entities.NotificationTypeConflict,
		Title:  "Booking conflict",
		Message: fmt.Sprintf("The room is already booked for %s.",
			utils.FormatRange(booking.StartTime, booking.EndTime)),
	})
	if createErr != nil {
		s.logger.Warn("failed to record conflict notification",
			zap.Uint64("user_id", userID), zap.Error(createErr))
	}
}

func (s *BookingService) UpdateBooking(ctx context.Context, userID, id uint64, payload dto.UpdateBookingDTO) (*dto.BookingDTO, error) {
	current, err := s.bookingRepository.FindBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	booking := entities.Booking{
		Title:      current.Title,
		StartTime:  current.StartTime,
		EndTime:    current.EndTime,
		Attendees:  current.Attendees,
		Organizer:  current.Organizer,
		RoomID:     current.RoomID,
		Equipments: current.Equipments,
	}
	if payload.Title != nil {
		booking.Title = *payload.Title
	}
	if payload.RoomID != nil {
		booking.RoomID = *payload.RoomID
	}
	if payload.StartTime != nil || payload.EndTime != nil {
		startRaw := utils.FormatDateTimeLocal(booking.StartTime)
		endRaw := utils.FormatDateTimeLocal(booking.EndTime)
		if payload.StartTime != nil {
			startRaw = *payload.StartTime
		}
		if payload.EndTime != nil {
			endRaw = *payload.EndTime
		}
		booking.StartTime, booking.EndTime, err = parseWindow(startRaw, endRaw)
		if err != nil {
			return nil, err
		}
	}
	if payload.Attendees != nil {
		booking.Attendees = *payload.Attendees
	}
	if err := s.validateCapacity(ctx, booking.RoomID, booking.Attendees); err != nil {
		return nil, err
	}
	if payload.Equipments != nil {
		booking.Equipments, err = s.buildEquipments(booking.StartTime, booking.EndTime, payload.Equipments)
		if err != nil {
			return nil, err
		}
	}
	if err := s.checkEquipmentQuantities(ctx, booking.StartTime, booking.EndTime, booking.Equipments, id); err != nil {
		return nil, err
	}

	err = repositories.WithTransaction(ctx, s.storage, func(tx pgx.Tx) error {
		windows, err := s.bookingRepository.GetRoomWindows(ctx, tx, booking.RoomID, id)
		if err != nil {
			return err
		}
		if blockingID, conflict := availability.FindConflict(booking.RoomID, booking.StartTime, booking.EndTime, windows); conflict {
			return apperrors.NewConflictError(blockingID)
		}
		return s.bookingRepository.UpdateBooking(ctx, tx, id, booking)
	})
	if err != nil {
		s.notifyOnConflict(ctx, userID, err, booking)
		return nil, err
	}
	return s.FindBooking(ctx, id)
}

func (s *BookingService) DeleteBooking(ctx context.Context, id uint64) error {
	return s.bookingRepository.DeleteBooking(ctx, id)
}

func mapRuleFromDTO(ruleDTO dto.RecurrenceRuleDTO) (availability.Rule, error) {
	rule := availability.Rule{
		Frequency:     availability.Frequency(ruleDTO.Frequency),
		ByOccurrences: ruleDTO.ByOccurrences,
		Occurrences:   ruleDTO.Occurrences,
	}
	if ruleDTO.EndDate != nil {
		endDate, err := time.ParseInLocation("2006-01-02", *ruleDTO.EndDate, time.Local)
		if err != nil {
			endDate, err = utils.ParseDateTimeLocal(*ruleDTO.EndDate)
			if err != nil {
				return rule, apperrors.NewInvalidInputError("invalid end_date: %s", *ruleDTO.EndDate)
			}
		}
		rule.EndDate = &endDate
	}
	for _, wd := range ruleDTO.Weekdays {
		rule.Weekdays = append(rule.Weekdays, time.Weekday(wd))
	}
	return rule, nil
}

// CreateRecurringBooking expands the rule into occurrence dates and books
// each independently. Occurrences that collide report their error in the
// result; the rest are kept.
func (s *BookingService) CreateRecurringBooking(ctx context.Context, userID uint64, payload dto.CreateRecurringBookingDTO) (*dto.RecurringBookingResultDTO, error) {
	anchorStart, anchorEnd, err := parseWindow(payload.StartTime, payload.EndTime)
	if err != nil {
		return nil, err
	}
	if err := s.validateCapacity(ctx, payload.RoomID, payload.Attendees); err != nil {
		return nil, err
	}

	rule, err := mapRuleFromDTO(payload.Rule)
	if err != nil {
		return nil, err
	}
	if err := rule.Validate(anchorStart); err != nil {
		return nil, apperrors.NewInvalidInputError("%s", err.Error())
	}

	equipments, err := s.buildEquipments(anchorStart, anchorEnd, payload.Equipments)
	if err != nil {
		return nil, err
	}

	dates := availability.GenerateDates(rule, anchorStart)
	result := &dto.RecurringBookingResultDTO{
		Requested: len(dates),
		Results:   make([]dto.OccurrenceResultDTO, 0, len(dates)),
	}

	for _, date := range dates {
		start, end := availability.ApplyTimeOfDay(date, anchorStart, anchorEnd)
		occurrence := dto.OccurrenceResultDTO{Date: utils.FormatDateTimeLocal(start)}

		shifted := shiftEquipments(equipments, anchorStart, start)
		booking := entities.Booking{
			Title:      payload.Title,
			StartTime:  start,
			EndTime:    end,
			Attendees:  payload.Attendees,
			Organizer:  payload.Organizer,
			RoomID:     payload.RoomID,
			Equipments: shifted,
		}

		if err := s.checkEquipmentQuantities(ctx, start, end, shifted, 0); err != nil {
			occurrence.Error = err.Error()
			result.Results = append(result.Results, occurrence)
			continue
		}

		id, err := s.createOne(ctx, booking)
		if err != nil {
			s.notifyOnConflict(ctx, userID, err, booking)
			occurrence.Error = conflictMessage(err)
			result.Results = append(result.Results, occurrence)
			continue
		}

		occurrence.BookingID = &id
		occurrence.Created = true
		result.Created++
		result.Results = append(result.Results, occurrence)
	}
	return result, nil
}

// shiftEquipments moves sub-interval reservations by the offset between the
// anchor occurrence and the generated one.
func shiftEquipments(equipments []entities.BookingEquipment, anchorStart, start time.Time) []entities.BookingEquipment {
	if len(equipments) == 0 {
		return nil
	}
	offset := start.Sub(anchorStart)
	shifted := make([]entities.BookingEquipment, len(equipments))
	for i, be := range equipments {
		shifted[i] = be
		if be.StartTime != nil {
			t := be.StartTime.Add(offset)
			shifted[i].StartTime = &t
		}
		if be.EndTime != nil {
			t := be.EndTime.Add(offset)
			shifted[i].EndTime = &t
		}
	}
	return shifted
}

func conflictMessage(err error) string {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	return err.Error()
}
