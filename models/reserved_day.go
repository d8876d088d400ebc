package models

import "time"

// ReservedDay là một ngày đã bị giữ của một room-number.
// Unique index (room_number_id, day) chặn double-booking ở tầng DB.
type ReservedDay struct {
	ID           uint      `gorm:"primaryKey"`
	RoomNumberID uint      `gorm:"uniqueIndex:idx_reserved_days_number_day;not null"`
	Day          time.Time `gorm:"type:date;uniqueIndex:idx_reserved_days_number_day;not null"`
	BookingID    uint      `gorm:"index;not null"`
}
