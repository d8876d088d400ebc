package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/utils"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore cài đặt Store trên gorm. DB cần mở với TranslateError: true
// để lỗi trùng khóa thành gorm.ErrDuplicatedKey.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate tạo/cập nhật bảng cho các model
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.Room{},
		&models.RoomNumber{},
		&models.ReservedDay{},
		&models.Booking{},
		&models.Worker{},
		&models.Moderator{},
		&models.CleaningRecord{},
	)
}

func (s *GormStore) Atomic(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// translate đổi lỗi gorm sang lỗi của repository
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrDuplicateRecord
	default:
		return err
	}
}

func (s *GormStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).Where("google_id = ?", googleID).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	return translate(s.conn(ctx).Create(user).Error)
}

func (s *GormStore) UpdateUserRole(ctx context.Context, userID uint, role int) error {
	res := s.conn(ctx).Model(&models.User{}).Where("id = ?", userID).Update("role", role)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrRecordNotFound
	}
	return nil
}

func (s *GormStore) GetHotel(ctx context.Context, id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := s.conn(ctx).First(&hotel, id).Error; err != nil {
		return nil, translate(err)
	}
	return &hotel, nil
}

func (s *GormStore) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	var hotels []models.Hotel
	if err := s.conn(ctx).Order("id").Find(&hotels).Error; err != nil {
		return nil, translate(err)
	}
	return hotels, nil
}

func (s *GormStore) CreateHotel(ctx context.Context, hotel *models.Hotel) error {
	return translate(s.conn(ctx).Create(hotel).Error)
}

func (s *GormStore) AddHotelPhoto(ctx context.Context, hotelID uint, url string) error {
	res := s.conn(ctx).Model(&models.Hotel{}).
		Where("id = ?", hotelID).
		Update("photos", gorm.Expr("array_append(photos, ?)", url))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrRecordNotFound
	}
	return nil
}

func (s *GormStore) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := s.conn(ctx).
		Preload("RoomNumbers", func(db *gorm.DB) *gorm.DB { return db.Order("number") }).
		First(&room, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (s *GormStore) ListRooms(ctx context.Context, filter RoomFilter) ([]models.Room, error) {
	tx := s.conn(ctx).Model(&models.Room{}).Preload("RoomNumbers")
	if filter.HotelID != 0 {
		tx = tx.Where("hotel_id = ?", filter.HotelID)
	}
	if filter.NeedsCleaning != nil {
		tx = tx.Where("needs_cleaning = ?", *filter.NeedsCleaning)
	}
	var rooms []models.Room
	if err := tx.Order("id").Find(&rooms).Error; err != nil {
		return nil, translate(err)
	}
	return rooms, nil
}

// CreateRoom tạo phòng và các room-number trong cùng lời gọi (gorm tự lưu association)
func (s *GormStore) CreateRoom(ctx context.Context, room *models.Room) error {
	return translate(s.conn(ctx).Create(room).Error)
}

func (s *GormStore) SetRoomCleaning(ctx context.Context, roomID uint, state models.CleaningState) error {
	res := s.conn(ctx).Model(&models.Room{}).Where("id = ?", roomID).Updates(map[string]interface{}{
		"is_cleaned":      state.IsCleaned,
		"needs_cleaning":  state.NeedsCleaning,
		"last_cleaned_at": state.LastCleanedAt,
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrRecordNotFound
	}
	return nil
}

func (s *GormStore) AddCleaningRecord(ctx context.Context, record *models.CleaningRecord) error {
	return translate(s.conn(ctx).Create(record).Error)
}

func (s *GormStore) CleaningHistory(ctx context.Context, roomID uint) ([]models.CleaningRecord, error) {
	var records []models.CleaningRecord
	if err := s.conn(ctx).Where("room_id = ?", roomID).Order("cleaned_at").Find(&records).Error; err != nil {
		return nil, translate(err)
	}
	return records, nil
}

func (s *GormStore) LockRoomNumber(ctx context.Context, roomID uint, number int) (*models.RoomNumber, error) {
	var rn models.RoomNumber
	err := s.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("room_id = ? AND number = ?", roomID, number).
		First(&rn).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rn, nil
}

func (s *GormStore) ReservedDays(ctx context.Context, roomNumberID uint, from, to utils.Day) (utils.DaySet, error) {
	var rows []models.ReservedDay
	err := s.conn(ctx).
		Where("room_number_id = ? AND day BETWEEN ? AND ?", roomNumberID, from.Time(), to.Time()).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	set := utils.NewDaySet()
	for _, row := range rows {
		set.Add(utils.DayOf(row.Day))
	}
	return set, nil
}

func (s *GormStore) AddReservedDays(ctx context.Context, roomNumberID, bookingID uint, days []utils.Day) error {
	if len(days) == 0 {
		return nil
	}
	rows := make([]models.ReservedDay, 0, len(days))
	for _, d := range days {
		rows = append(rows, models.ReservedDay{RoomNumberID: roomNumberID, Day: d.Time(), BookingID: bookingID})
	}
	err := translate(s.conn(ctx).Create(&rows).Error)
	if errors.Is(err, apperrors.ErrDuplicateRecord) {
		return apperrors.ErrDayTaken
	}
	return err
}

func (s *GormStore) RemoveReservedDays(ctx context.Context, roomNumberID uint, days []utils.Day) error {
	if len(days) == 0 {
		return nil
	}
	times := make([]time.Time, 0, len(days))
	for _, d := range days {
		times = append(times, d.Time())
	}
	err := s.conn(ctx).
		Where("room_number_id = ? AND day IN ?", roomNumberID, times).
		Delete(&models.ReservedDay{}).Error
	return translate(err)
}

func (s *GormStore) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.conn(ctx).First(&booking, id).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

func (s *GormStore) ListBookings(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	tx := s.conn(ctx).Model(&models.Booking{})
	if filter.UserID != 0 {
		tx = tx.Where("user_id = ?", filter.UserID)
	}
	if filter.HotelID != 0 {
		tx = tx.Where("hotel_id = ?", filter.HotelID)
	}
	if filter.RoomID != 0 {
		tx = tx.Where("room_id = ?", filter.RoomID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.EndBefore != nil {
		tx = tx.Where("date_end < ?", *filter.EndBefore)
	}
	var bookings []models.Booking
	if err := tx.Order("created_at DESC, id DESC").Find(&bookings).Error; err != nil {
		return nil, translate(err)
	}
	return bookings, nil
}

func (s *GormStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return translate(s.conn(ctx).Create(booking).Error)
}

func (s *GormStore) TransitionBooking(ctx context.Context, booking *models.Booking, from string) error {
	res := s.conn(ctx).Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, from).
		Updates(map[string]interface{}{
			"status":       booking.Status,
			"cancelled_at": booking.CancelledAt,
			"completed_at": booking.CompletedAt,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrStatusChanged
	}
	return nil
}

func (s *GormStore) GetWorker(ctx context.Context, id uint) (*models.Worker, error) {
	var worker models.Worker
	if err := s.conn(ctx).First(&worker, id).Error; err != nil {
		return nil, translate(err)
	}
	return &worker, nil
}

func (s *GormStore) CreateWorker(ctx context.Context, worker *models.Worker) error {
	return translate(s.conn(ctx).Create(worker).Error)
}

func (s *GormStore) GetModeratorByUser(ctx context.Context, userID uint) (*models.Moderator, error) {
	var moderator models.Moderator
	if err := s.conn(ctx).Where("user_id = ?", userID).First(&moderator).Error; err != nil {
		return nil, translate(err)
	}
	return &moderator, nil
}

func (s *GormStore) CreateModerator(ctx context.Context, moderator *models.Moderator) error {
	if moderator.AssignedHotels == nil {
		moderator.AssignedHotels = pq.Int64Array{}
	}
	return translate(s.conn(ctx).Create(moderator).Error)
}

var _ Store = (*GormStore)(nil)
