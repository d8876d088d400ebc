package models

import (
	"time"

	"hotelbooking/constants"
	"hotelbooking/utils"
)

type Booking struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"userId" gorm:"index;not null"`
	HotelID     uint       `json:"hotelId" gorm:"index;not null"`
	RoomID      uint       `json:"roomId" gorm:"index;not null"`
	RoomNumber  int        `json:"roomNumber" gorm:"not null"`
	DateStart   time.Time  `json:"dateStart" gorm:"type:date;not null"`
	DateEnd     time.Time  `json:"dateEnd" gorm:"type:date;index;not null"`
	TotalPrice  float64    `json:"totalPrice"`
	Status      string     `json:"status" gorm:"type:varchar(16);index;not null"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (b *Booking) StartDay() utils.Day {
	return utils.DayOf(b.DateStart)
}

func (b *Booking) EndDay() utils.Day {
	return utils.DayOf(b.DateEnd)
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == constants.BookingStatusConfirmed
}

// State trả về state tương ứng với trạng thái hiện tại
func (b *Booking) State() BookingState {
	return GetBookingState(b.Status)
}
