package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"roombook/internal/availability"
	"roombook/internal/dto"
	"roombook/internal/entities"
	apperrors "roombook/pkg/errors"
)

func TestParseWindow(t *testing.T) {
	start, end, err := parseWindow("2025-06-15T09:00", "2025-06-15T10:30")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, end.Sub(start))

	_, _, err = parseWindow("2025-06-15T10:00", "2025-06-15T10:00")
	assert.Error(t, err, "zero-length window is rejected")

	_, _, err = parseWindow("2025-06-15T11:00", "2025-06-15T10:00")
	assert.Error(t, err, "inverted window is rejected")

	_, _, err = parseWindow("yesterday", "2025-06-15T10:00")
	assert.Error(t, err)
}

func bookingFixture() *BookingService {
	equipmentRepo := &fakeEquipmentRepo{
		equipments: []entities.Equipment{
			{ID: 1, Name: "Projector", Quantity: 2, Mobile: true},
			{ID: 2, Name: "Whiteboard", Quantity: 5, Mobile: false},
		},
		booked: map[uint64]int{1: 1},
	}
	return NewBookingService(nil, &fakeBookingRepo{}, nil, equipmentRepo, &fakeNotificationRepo{}, zap.NewNop())
}

func TestBuildEquipmentsValidatesSubIntervals(t *testing.T) {
	svc := bookingFixture()
	start, end, err := parseWindow("2025-06-15T09:00", "2025-06-15T12:00")
	require.NoError(t, err)

	inside := "2025-06-15T10:00"
	insideEnd := "2025-06-15T11:00"
	equipments, err := svc.buildEquipments(start, end, []dto.BookingEquipmentInput{
		{EquipmentID: 1, Quantity: 1, StartTime: &inside, EndTime: &insideEnd},
		{EquipmentID: 2, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, equipments, 2)
	assert.NotNil(t, equipments[0].StartTime)
	assert.Nil(t, equipments[1].StartTime, "no sub-interval means the whole booking window")

	outside := "2025-06-15T13:00"
	_, err = svc.buildEquipments(start, end, []dto.BookingEquipmentInput{
		{EquipmentID: 1, Quantity: 1, StartTime: &inside, EndTime: &outside},
	})
	assert.Error(t, err, "sub-interval may not leave the booking window")
}

func TestCheckEquipmentQuantities(t *testing.T) {
	svc := bookingFixture()
	ctx := context.Background()
	start, end, err := parseWindow("2025-06-15T09:00", "2025-06-15T12:00")
	require.NoError(t, err)

	// One of two projectors is already booked in this window.
	err = svc.checkEquipmentQuantities(ctx, start, end, []entities.BookingEquipment{
		{EquipmentID: 1, Quantity: 1},
	}, 0)
	assert.NoError(t, err)

	err = svc.checkEquipmentQuantities(ctx, start, end, []entities.BookingEquipment{
		{EquipmentID: 1, Quantity: 2},
	}, 0)
	assert.Error(t, err, "requesting more than the free quantity fails")

	err = svc.checkEquipmentQuantities(ctx, start, end, []entities.BookingEquipment{
		{EquipmentID: 2, Quantity: 1},
	}, 0)
	assert.Error(t, err, "non-mobile equipment cannot be reserved per slot")

	err = svc.checkEquipmentQuantities(ctx, start, end, []entities.BookingEquipment{
		{EquipmentID: 99, Quantity: 1},
	}, 0)
	assert.Error(t, err, "unknown equipment fails")
}

func TestMapRuleFromDTO(t *testing.T) {
	rule, err := mapRuleFromDTO(dto.RecurrenceRuleDTO{
		Frequency:     "weekly",
		ByOccurrences: true,
		Occurrences:   5,
		Weekdays:      []int{1, 3},
	})
	require.NoError(t, err)
	assert.Equal(t, availability.FrequencyWeekly, rule.Frequency)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday}, rule.Weekdays)

	rule, err = mapRuleFromDTO(dto.RecurrenceRuleDTO{
		Frequency: "daily",
		EndDate:   strPtr("2025-07-01"),
	})
	require.NoError(t, err)
	require.NotNil(t, rule.EndDate)
	assert.Equal(t, time.July, rule.EndDate.Month())

	_, err = mapRuleFromDTO(dto.RecurrenceRuleDTO{
		Frequency: "daily",
		EndDate:   strPtr("not-a-date"),
	})
	assert.Error(t, err)
}

func TestShiftEquipmentsMovesSubIntervals(t *testing.T) {
	anchor := time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local)
	subStart := anchor.Add(time.Hour)
	subEnd := anchor.Add(2 * time.Hour)

	original := []entities.BookingEquipment{
		{EquipmentID: 1, Quantity: 1, StartTime: &subStart, EndTime: &subEnd},
		{EquipmentID: 2, Quantity: 1},
	}
	shifted := shiftEquipments(original, anchor, anchor.AddDate(0, 0, 7))

	require.Len(t, shifted, 2)
	assert.Equal(t, subStart.AddDate(0, 0, 7), *shifted[0].StartTime)
	assert.Equal(t, subEnd.AddDate(0, 0, 7), *shifted[0].EndTime)
	assert.Nil(t, shifted[1].StartTime)

	// The original slice is left untouched.
	assert.Equal(t, subStart, *original[0].StartTime)
}

func TestConflictErrorCarriesBlockingBooking(t *testing.T) {
	err := apperrors.NewConflictError(17)
	assert.Equal(t, 409, err.Code)

	details, ok := err.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, uint64(17), details["conflicting_booking_id"])
}
