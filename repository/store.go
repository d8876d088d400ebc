// Package repository là tầng lưu trữ: một bản trên gorm/postgres và một bản
// in-memory dùng cho chế độ demo và test.
package repository

import (
	"context"
	"time"

	"hotelbooking/models"
	"hotelbooking/utils"
)

// BookingFilter lọc danh sách booking; trường zero-value bị bỏ qua
type BookingFilter struct {
	UserID    uint
	HotelID   uint
	RoomID    uint
	Status    string
	EndBefore *time.Time
}

// RoomFilter lọc danh sách phòng
type RoomFilter struct {
	HotelID       uint
	NeedsCleaning *bool
}

// Tx là tập thao tác dữ liệu. Bên trong Store.Atomic mọi thao tác thuộc
// cùng một transaction; bên ngoài thì mỗi lời gọi tự commit.
type Tx interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUserRole(ctx context.Context, userID uint, role int) error

	GetHotel(ctx context.Context, id uint) (*models.Hotel, error)
	ListHotels(ctx context.Context) ([]models.Hotel, error)
	CreateHotel(ctx context.Context, hotel *models.Hotel) error
	AddHotelPhoto(ctx context.Context, hotelID uint, url string) error

	// GetRoom trả về phòng kèm RoomNumbers
	GetRoom(ctx context.Context, id uint) (*models.Room, error)
	ListRooms(ctx context.Context, filter RoomFilter) ([]models.Room, error)
	CreateRoom(ctx context.Context, room *models.Room) error
	SetRoomCleaning(ctx context.Context, roomID uint, state models.CleaningState) error
	AddCleaningRecord(ctx context.Context, record *models.CleaningRecord) error
	CleaningHistory(ctx context.Context, roomID uint) ([]models.CleaningRecord, error)

	// LockRoomNumber đọc room-number và khóa dòng đến hết transaction
	LockRoomNumber(ctx context.Context, roomID uint, number int) (*models.RoomNumber, error)
	// ReservedDays trả về các ngày đã giữ trong [from, to]
	ReservedDays(ctx context.Context, roomNumberID uint, from, to utils.Day) (utils.DaySet, error)
	// AddReservedDays trả về errors.ErrDayTaken nếu một ngày đã bị giữ
	AddReservedDays(ctx context.Context, roomNumberID, bookingID uint, days []utils.Day) error
	// RemoveReservedDays bỏ qua ngày không có
	RemoveReservedDays(ctx context.Context, roomNumberID uint, days []utils.Day) error

	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	CreateBooking(ctx context.Context, booking *models.Booking) error
	// TransitionBooking ghi status mới chỉ khi status hiện tại vẫn là from,
	// ngược lại trả về errors.ErrStatusChanged
	TransitionBooking(ctx context.Context, booking *models.Booking, from string) error

	GetWorker(ctx context.Context, id uint) (*models.Worker, error)
	CreateWorker(ctx context.Context, worker *models.Worker) error
	GetModeratorByUser(ctx context.Context, userID uint) (*models.Moderator, error)
	CreateModerator(ctx context.Context, moderator *models.Moderator) error
}

// Store là Tx cộng khả năng chạy một nhóm thao tác nguyên tử
type Store interface {
	Tx
	// Atomic chạy fn trong một transaction; fn trả lỗi thì mọi thay đổi bị hủy
	Atomic(ctx context.Context, fn func(tx Tx) error) error
}
