package models

import (
	"fmt"
	"time"

	"hotelbooking/constants"
)

type Worker struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	Name         string           `json:"name" gorm:"not null"`
	UserID       uint             `json:"userId" gorm:"index;not null"`
	HotelID      uint             `json:"hotelId" gorm:"index;not null"`
	Role         string           `json:"role" gorm:"type:varchar(32);not null"`
	Email        string           `json:"email" gorm:"not null"`
	Phone        string           `json:"phone"`
	IsActive     bool             `json:"isActive" gorm:"default:true"`
	CleanedRooms []CleaningRecord `json:"cleanedRooms,omitempty" gorm:"foreignKey:WorkerID"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (w *Worker) ValidateRole() error {
	for _, r := range constants.WorkerRoles {
		if w.Role == r {
			return nil
		}
	}
	return fmt.Errorf("invalid worker role: %q", w.Role)
}
