package services

import (
	"context"
	"fmt"

	"hotelbooking/constants"
	"hotelbooking/models"
	"hotelbooking/repository"

	"github.com/lib/pq"
)

// DemoPassword là mật khẩu chung của các tài khoản demo
const DemoPassword = "password123"

type demoRoom struct {
	title     string
	price     int
	maxPeople int
	numbers   []int
}

var demoRooms = []demoRoom{
	{"Deluxe King Room", 299, 2, []int{101, 102, 103}},
	{"Double Queen Suite", 349, 4, []int{201, 202}},
	{"Executive Suite", 499, 2, []int{301}},
}

// SeedDemo nạp dữ liệu mẫu cho chế độ ENV=demo: hai khách sạn, các loại
// phòng, và một tài khoản cho mỗi role.
func SeedDemo(ctx context.Context, store repository.Store) error {
	hashed, err := HashPassword(DemoPassword)
	if err != nil {
		return err
	}

	return store.Atomic(ctx, func(tx repository.Tx) error {
		hotels := []*models.Hotel{
			{
				Name:          "Grand Plaza Hotel",
				Type:          "Hotel",
				City:          "New York",
				Address:       "123 Broadway Ave",
				Distance:      "500m from city center",
				Photos:        pq.StringArray{},
				Title:         "Experience luxury in the heart of Manhattan",
				Rating:        4.8,
				CheapestPrice: 299,
				Featured:      true,
			},
			{
				Name:          "Seaside Resort & Spa",
				Type:          "Resort",
				City:          "Miami",
				Address:       "789 Ocean Drive",
				Distance:      "50m from beach",
				Photos:        pq.StringArray{},
				Title:         "Beachfront paradise with world-class amenities",
				Rating:        4.6,
				CheapestPrice: 399,
				Featured:      true,
			},
		}
		for _, h := range hotels {
			if err := tx.CreateHotel(ctx, h); err != nil {
				return fmt.Errorf("seed hotel %q: %w", h.Name, err)
			}
			for _, dr := range demoRooms {
				room := &models.Room{
					HotelID:   h.ID,
					Title:     dr.title,
					Price:     dr.price,
					MaxPeople: dr.maxPeople,
					Cleaning:  models.InitialCleaningState(),
				}
				for _, n := range dr.numbers {
					room.RoomNumbers = append(room.RoomNumbers, models.RoomNumber{Number: n})
				}
				if err := tx.CreateRoom(ctx, room); err != nil {
					return fmt.Errorf("seed room %q: %w", dr.title, err)
				}
			}
		}

		users := []*models.User{
			{Username: "admin", Email: "admin@example.com", Country: "United States", City: "New York", Phone: "+1234567890", Role: constants.RoleAdmin},
			{Username: "moderator", Email: "mod@example.com", Country: "United Kingdom", City: "London", Phone: "+9876543210", Role: constants.RoleModerator},
			{Username: "worker", Email: "worker@example.com", Country: "United States", City: "New York", Phone: "+1098765432", Role: constants.RoleWorker},
			{Username: "user", Email: "user@example.com", Country: "Canada", City: "Toronto", Phone: "+1122334455", Role: constants.RoleGuest},
		}
		for _, u := range users {
			u.Password = hashed
			if err := tx.CreateUser(ctx, u); err != nil {
				return fmt.Errorf("seed user %q: %w", u.Email, err)
			}
		}

		moderator := &models.Moderator{
			UserID:           users[1].ID,
			HotelID:          hotels[0].ID,
			IsActive:         true,
			CanManageWorkers: true,
			CanManageRooms:   true,
			CanViewBookings:  true,
		}
		if err := tx.CreateModerator(ctx, moderator); err != nil {
			return fmt.Errorf("seed moderator: %w", err)
		}

		worker := &models.Worker{
			Name:     "Demo Housekeeper",
			UserID:   users[2].ID,
			HotelID:  hotels[0].ID,
			Role:     constants.WorkerRoleHousekeeper,
			Email:    users[2].Email,
			Phone:    users[2].Phone,
			IsActive: true,
		}
		if err := tx.CreateWorker(ctx, worker); err != nil {
			return fmt.Errorf("seed worker: %w", err)
		}
		return nil
	})
}
