package models

import (
	"time"

	"github.com/lib/pq"
)

type Hotel struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Name          string         `json:"name" gorm:"not null"`
	Type          string         `json:"type"`
	City          string         `json:"city" gorm:"index"`
	Address       string         `json:"address"`
	Distance      string         `json:"distance"`
	Photos        pq.StringArray `json:"photos" gorm:"type:text[]"`
	Title         string         `json:"title"`
	Desc          string         `json:"desc"`
	Rating        float64        `json:"rating"`
	CheapestPrice int            `json:"cheapestPrice"`
	Featured      bool           `json:"featured"`
	Rooms         []Room         `json:"rooms,omitempty" gorm:"foreignKey:HotelID"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}
