package repository

import (
	"context"
	"errors"
	"testing"

	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/utils"
)

func seedRoom(t *testing.T, s *MemoryStore) (*models.Room, uint) {
	t.Helper()
	ctx := context.Background()
	hotel := &models.Hotel{Name: "Seaside", City: "Da Nang"}
	if err := s.CreateHotel(ctx, hotel); err != nil {
		t.Fatalf("CreateHotel() error = %v", err)
	}
	room := &models.Room{
		HotelID:     hotel.ID,
		Title:       "Deluxe",
		Price:       100,
		RoomNumbers: []models.RoomNumber{{Number: 101}, {Number: 102}},
		Cleaning:    models.InitialCleaningState(),
	}
	if err := s.CreateRoom(ctx, room); err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}
	return room, room.RoomNumbers[0].ID
}

func TestMemoryStoreAtomicRollback(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	room, rnID := seedRoom(t, s)

	day := utils.NewDay(2024, 6, 1)
	boom := errors.New("boom")
	err := s.Atomic(ctx, func(tx Tx) error {
		b := &models.Booking{UserID: 1, HotelID: room.HotelID, RoomID: room.ID, RoomNumber: 101, Status: constants.BookingStatusConfirmed}
		if err := tx.CreateBooking(ctx, b); err != nil {
			return err
		}
		if err := tx.AddReservedDays(ctx, rnID, b.ID, []utils.Day{day}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Atomic() error = %v, want %v", err, boom)
	}

	bookings, _ := s.ListBookings(ctx, BookingFilter{})
	if len(bookings) != 0 {
		t.Errorf("len(bookings) = %d, want 0 after rollback", len(bookings))
	}
	reserved, _ := s.ReservedDays(ctx, rnID, day, day)
	if reserved.Contains(day) {
		t.Errorf("reserved day survived rollback")
	}
}

func TestMemoryStoreAddReservedDaysRejectsTakenDay(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_, rnID := seedRoom(t, s)

	first := utils.DaysBetween(utils.NewDay(2024, 6, 1), utils.NewDay(2024, 6, 3))
	if err := s.AddReservedDays(ctx, rnID, 1, first); err != nil {
		t.Fatalf("AddReservedDays() error = %v", err)
	}
	overlap := utils.DaysBetween(utils.NewDay(2024, 6, 3), utils.NewDay(2024, 6, 5))
	if err := s.AddReservedDays(ctx, rnID, 2, overlap); !errors.Is(err, apperrors.ErrDayTaken) {
		t.Errorf("AddReservedDays() error = %v, want %v", err, apperrors.ErrDayTaken)
	}

	// không giữ một phần
	got, _ := s.ReservedDays(ctx, rnID, utils.NewDay(2024, 6, 4), utils.NewDay(2024, 6, 5))
	if len(got) != 0 {
		t.Errorf("partial reservation written: %v", got.Sorted())
	}
}

func TestMemoryStoreTransitionBooking(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	b := &models.Booking{UserID: 1, Status: constants.BookingStatusConfirmed}
	if err := s.CreateBooking(ctx, b); err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}

	b.Status = constants.BookingStatusCancelled
	if err := s.TransitionBooking(ctx, b, constants.BookingStatusConfirmed); err != nil {
		t.Fatalf("TransitionBooking() error = %v", err)
	}
	if err := s.TransitionBooking(ctx, b, constants.BookingStatusConfirmed); !errors.Is(err, apperrors.ErrStatusChanged) {
		t.Errorf("second TransitionBooking() error = %v, want %v", err, apperrors.ErrStatusChanged)
	}

	stored, _ := s.GetBooking(ctx, b.ID)
	if stored.Status != constants.BookingStatusCancelled {
		t.Errorf("stored status = %v, want %v", stored.Status, constants.BookingStatusCancelled)
	}
}

func TestMemoryStoreModeratorAssignedHotels(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	m := &models.Moderator{UserID: 5, HotelID: 9}
	if err := s.CreateModerator(ctx, m); err != nil {
		t.Fatalf("CreateModerator() error = %v", err)
	}
	got, err := s.GetModeratorByUser(ctx, 5)
	if err != nil {
		t.Fatalf("GetModeratorByUser() error = %v", err)
	}
	if !got.IsAssigned(9) {
		t.Errorf("AssignedHotels = %v, want to contain 9", got.AssignedHotels)
	}
	if err := s.CreateModerator(ctx, &models.Moderator{UserID: 5, HotelID: 1}); !errors.Is(err, apperrors.ErrDuplicateRecord) {
		t.Errorf("duplicate CreateModerator() error = %v, want %v", err, apperrors.ErrDuplicateRecord)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.GetRoom(ctx, 42); !errors.Is(err, apperrors.ErrRecordNotFound) {
		t.Errorf("GetRoom() error = %v, want %v", err, apperrors.ErrRecordNotFound)
	}
	if _, err := s.LockRoomNumber(ctx, 42, 101); !errors.Is(err, apperrors.ErrRecordNotFound) {
		t.Errorf("LockRoomNumber() error = %v, want %v", err, apperrors.ErrRecordNotFound)
	}
	if err := s.SetRoomCleaning(ctx, 42, models.InitialCleaningState()); !errors.Is(err, apperrors.ErrRecordNotFound) {
		t.Errorf("SetRoomCleaning() error = %v, want %v", err, apperrors.ErrRecordNotFound)
	}
}
