package builders

import (
	"hotelbooking/constants"
	"hotelbooking/models"
	"hotelbooking/utils"
)

// BookingBuilder giúp tạo booking theo từng bước
type BookingBuilder struct {
	booking *models.Booking
}

// NewBookingBuilder tạo builder, booking mới luôn ở trạng thái confirmed
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{Status: constants.BookingStatusConfirmed},
	}
}

// WithGuest thêm thông tin khách
func (b *BookingBuilder) WithGuest(userID uint) *BookingBuilder {
	b.booking.UserID = userID
	return b
}

// WithRoom thêm khách sạn, loại phòng và số phòng
func (b *BookingBuilder) WithRoom(hotelID, roomID uint, number int) *BookingBuilder {
	b.booking.HotelID = hotelID
	b.booking.RoomID = roomID
	b.booking.RoomNumber = number
	return b
}

// WithStay thêm ngày nhận và trả phòng
func (b *BookingBuilder) WithStay(start, end utils.Day) *BookingBuilder {
	b.booking.DateStart = start.Time()
	b.booking.DateEnd = end.Time()
	return b
}

// WithTotalPrice thêm tổng giá
func (b *BookingBuilder) WithTotalPrice(totalPrice float64) *BookingBuilder {
	b.booking.TotalPrice = totalPrice
	return b
}

// Build tạo booking hoàn chỉnh
func (b *BookingBuilder) Build() *models.Booking {
	return b.booking
}
