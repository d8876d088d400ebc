package repository

import (
	"context"

	"hotelbooking/models"
	"hotelbooking/utils"
)

// Các thao tác đơn lẻ của MemoryStore, mỗi lời gọi tự khóa và tự commit.

func (s *MemoryStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var out *models.User
	err := s.run(func(tx *memTx) error {
		var err error
		out, err = tx.GetUser(ctx, id)
		return err
	})
	return out, err
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var out *models.User
	err := s.run(func(tx *memTx) error {
		var err error
		out, err = tx.GetUserByEmail(ctx, email)
		return err
	})
	return out, err
}

func (s *MemoryStore) GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	var out *models.User
	err := s.run(func(tx *memTx) error {
		var err error
		out, err = tx.GetUserByGoogleID(ctx, googleID)
		return err
	})
	return out, err
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	return s.run(func(tx *memTx) error { return tx.CreateUser(ctx, user) })
}

func (s *MemoryStore) UpdateUserRole(ctx context.Context, userID uint, role int) error {
	return s.run(func(tx *memTx) error { return tx.UpdateUserRole(ctx, userID, role) })
}

func (s *MemoryStore) GetHotel(ctx context.Context, id uint) (*models.Hotel, error) {
	var out *models.Hotel
	err := s.run(func(tx *memTx) error {
		var err error
		out, err = tx.GetHotel(ctx, id)
		return err
	})
	return out, err
}

func (s *MemoryStore) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	var out []models.Hotel
	err := s.run(func(tx *memTx) error {
		var err error
		out, err = tx.ListHotels(ctx)
		return err
	})
	return out, err
}

func (s *MemoryStore) CreateHotel(ctx context.Context, hotel *models.Hotel) error {
	return s.run(func(tx *memTx) error { return tx.CreateHotel(ctx, hotel) })
}

func (s *MemoryStore) AddHotelPhoto(ctx context.Context, hotelID uint, url string) error {
	return s.run(func(tx *memTx) error { return tx.AddHotelPhoto(ctx, hotelID, url) })
}

func (s *MemoryStore) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	var out *models.Room
	err := s.run(func(tx *memTx) error {
		var err error
		out, err = tx.GetRoom(ctx, id)
		return err
	})
	return out, err
}

func (s *MemoryStore) ListRooms(ctx context.Context, filter RoomFilter) ([]models.Room, error) {
	var out []models.Room
	err := s.run(func(tx *memTx) error {
		var err error
		out, err = tx.ListRooms(ctx, filter)
		return err
	})
	return out, err
}

func (s *MemoryStore) CreateRoom(ctx context.Context, room *models.Room) error {
	return s.run(func(tx *memTx) error { return tx.CreateRoom(ctx, room) })
}

func (s *MemoryStore) SetRoomCleaning(ctx context.Context, roomID uint, state models.CleaningState) error {
	return s.run(func(tx *memTx) error { return tx.SetRoomCleaning(ctx, roomID, state) })
}

func (s *MemoryStore) AddCleaningRecord(ctx context.Context, record *models.CleaningRecord) error {
	return s.run(func(tx *memTx) error { return tx.AddCleaningRecord(ctx, record) })
}

func (s *MemoryStore) CleaningHistory(ctx context.Context, roomID uint) ([]models.CleaningRecord, error) {
	var out []models.CleaningRecord
	err := s.run(func(tx *memTx) error {
		var err error
		out, err = tx.CleaningHistory(ctx, roomID)
		return err
	})
	return out, err
}

func (s *MemoryStore) LockRoomNumber(ctx context.Context, roomID uint, number int) (*models.RoomNumber, error) {
	var out *models.RoomNumber
	err := s.run(func(tx *memTx) error {
		var err error
		out, err = tx.LockRoomNumber(ctx, roomID, number)
		return err
	})
	return out, err
}

func (s *MemoryStore) ReservedDays(ctx context.Context, roomNumberID uint, from, to utils.Day) (utils.DaySet, error) {
	var out utils.DaySet
	err := s.run(func(tx *memTx) error {
		var err error
		out, err = tx.ReservedDays(ctx, roomNumberID, from, to)
		return err
	})
	return out, err
}

func (s *MemoryStore) AddReservedDays(ctx context.Context, roomNumberID, bookingID uint, days []utils.Day) error {
	return s.run(func(tx *memTx) error { return tx.AddReservedDays(ctx, roomNumberID, bookingID, days) })
}

func (s *MemoryStore) RemoveReservedDays(ctx context.Context, roomNumberID uint, days []utils.Day) error {
	return s.run(func(tx *memTx) error { return tx.RemoveReservedDays(ctx, roomNumberID, days) })
}

func (s *MemoryStore) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var out *models.Booking
	err := s.run(func(tx *memTx) error {
		var err error
		out, err = tx.GetBooking(ctx, id)
		return err
	})
	return out, err
}

func (s *MemoryStore) ListBookings(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	var out []models.Booking
	err := s.run(func(tx *memTx) error {
		var err error
		out, err = tx.ListBookings(ctx, filter)
		return err
	})
	return out, err
}

func (s *MemoryStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return s.run(func(tx *memTx) error { return tx.CreateBooking(ctx, booking) })
}

func (s *MemoryStore) TransitionBooking(ctx context.Context, booking *models.Booking, from string) error {
	return s.run(func(tx *memTx) error { return tx.TransitionBooking(ctx, booking, from) })
}

func (s *MemoryStore) GetWorker(ctx context.Context, id uint) (*models.Worker, error) {
	var out *models.Worker
	err := s.run(func(tx *memTx) error {
		var err error
		out, err = tx.GetWorker(ctx, id)
		return err
	})
	return out, err
}

func (s *MemoryStore) CreateWorker(ctx context.Context, worker *models.Worker) error {
	return s.run(func(tx *memTx) error { return tx.CreateWorker(ctx, worker) })
}

func (s *MemoryStore) GetModeratorByUser(ctx context.Context, userID uint) (*models.Moderator, error) {
	var out *models.Moderator
	err := s.run(func(tx *memTx) error {
		var err error
		out, err = tx.GetModeratorByUser(ctx, userID)
		return err
	})
	return out, err
}

func (s *MemoryStore) CreateModerator(ctx context.Context, moderator *models.Moderator) error {
	return s.run(func(tx *memTx) error { return tx.CreateModerator(ctx, moderator) })
}
