package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Moderator struct {
	ID               uint          `json:"id" gorm:"primaryKey"`
	UserID           uint          `json:"userId" gorm:"uniqueIndex;not null"`
	HotelID          uint          `json:"hotelId" gorm:"not null"`
	IsActive         bool          `json:"isActive" gorm:"default:true"`
	CanManageWorkers bool          `json:"canManageWorkers"`
	CanManageRooms   bool          `json:"canManageRooms"`
	CanViewBookings  bool          `json:"canViewBookings"`
	AssignedHotels   pq.Int64Array `json:"assignedHotels" gorm:"type:integer[]"`
	CreatedAt        time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}

// EnsureAssigned thêm HotelID vào AssignedHotels nếu chưa có
func (m *Moderator) EnsureAssigned() {
	for _, id := range m.AssignedHotels {
		if id == int64(m.HotelID) {
			return
		}
	}
	m.AssignedHotels = append(m.AssignedHotels, int64(m.HotelID))
}

func (m *Moderator) IsAssigned(hotelID uint) bool {
	for _, id := range m.AssignedHotels {
		if id == int64(hotelID) {
			return true
		}
	}
	return false
}

func (m *Moderator) BeforeSave(tx *gorm.DB) error {
	m.EnsureAssigned()
	return nil
}
