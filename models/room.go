package models

import (
	"fmt"
	"time"
)

type Room struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	HotelID         uint             `json:"hotelId" gorm:"index;not null"`
	Title           string           `json:"title" gorm:"not null"`
	Price           int              `json:"price"`
	MaxPeople       int              `json:"maxPeople"`
	Desc            string           `json:"desc"`
	RoomNumbers     []RoomNumber     `json:"roomNumbers" gorm:"foreignKey:RoomID"`
	Cleaning        CleaningState    `json:"cleaning" gorm:"embedded"`
	CleaningHistory []CleaningRecord `json:"cleaningHistory,omitempty" gorm:"foreignKey:RoomID"`
	CreatedAt       time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`
}

// RoomNumber là một phòng vật lý có thể đặt trong một loại phòng.
// Tập ngày đã giữ nằm ở bảng reserved_days.
type RoomNumber struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	RoomID uint `json:"roomId" gorm:"uniqueIndex:idx_room_numbers_room_number;not null"`
	Number int  `json:"number" gorm:"uniqueIndex:idx_room_numbers_room_number;not null"`
}

// FindNumber tìm room-number theo số phòng
func (r *Room) FindNumber(number int) (*RoomNumber, bool) {
	for i := range r.RoomNumbers {
		if r.RoomNumbers[i].Number == number {
			return &r.RoomNumbers[i], true
		}
	}
	return nil, false
}

// ValidateNumbers kiểm tra số phòng dương và không trùng
func (r *Room) ValidateNumbers() error {
	seen := make(map[int]bool, len(r.RoomNumbers))
	for _, rn := range r.RoomNumbers {
		if rn.Number <= 0 {
			return fmt.Errorf("invalid room number: %d", rn.Number)
		}
		if seen[rn.Number] {
			return fmt.Errorf("duplicate room number: %d", rn.Number)
		}
		seen[rn.Number] = true
	}
	return nil
}
