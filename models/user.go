package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Username  string    `gorm:"not null" json:"username"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `json:"-"`
	Phone     string    `json:"phone"`
	Country   string    `json:"country"`
	City      string    `json:"city"`
	Img       string    `json:"img"`
	Role      int       `gorm:"default:0" json:"role"`
	GoogleID  string    `gorm:"index" json:"-"`
}
