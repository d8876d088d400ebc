package services

import (
	"context"
	"fmt"

	"hotelbooking/authz"
	"hotelbooking/dto"
	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/repository"
	"hotelbooking/services/logger"
)

// HotelService tạo và tra cứu khách sạn, loại phòng
type HotelService struct {
	store    repository.Store
	uploader PhotoUploader
	log      logger.Logger
}

func NewHotelService(store repository.Store, uploader PhotoUploader, log logger.Logger) *HotelService {
	return &HotelService{store: store, uploader: uploader, log: log}
}

func (s *HotelService) CreateHotel(ctx context.Context, actor authz.Actor, req dto.CreateHotelRequest) (*models.Hotel, error) {
	if !actor.Can(authz.ManageHotels) {
		return nil, apperrors.Forbidden("not allowed to create hotels")
	}
	hotel := &models.Hotel{
		Name:          req.Name,
		Type:          req.Type,
		City:          req.City,
		Address:       req.Address,
		Distance:      req.Distance,
		Title:         req.Title,
		Desc:          req.Desc,
		Rating:        req.Rating,
		CheapestPrice: req.CheapestPrice,
		Featured:      req.Featured,
	}
	if err := s.store.CreateHotel(ctx, hotel); err != nil {
		return nil, storeError(err, "hotel")
	}
	s.log.Info("hotel %d created by user %d", hotel.ID, actor.UserID)
	return hotel, nil
}

func (s *HotelService) GetHotel(ctx context.Context, id uint) (*models.Hotel, error) {
	hotel, err := s.store.GetHotel(ctx, id)
	if err != nil {
		return nil, storeError(err, "hotel")
	}
	return hotel, nil
}

func (s *HotelService) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	hotels, err := s.store.ListHotels(ctx)
	if err != nil {
		return nil, storeError(err, "hotel")
	}
	return hotels, nil
}

func (s *HotelService) Search(ctx context.Context, query string) ([]ScoredHotel, error) {
	hotels, err := s.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	return SearchHotels(query, hotels), nil
}

// AddPhoto tải ảnh lên và thêm URL vào khách sạn
func (s *HotelService) AddPhoto(ctx context.Context, actor authz.Actor, hotelID uint, file interface{}) (string, error) {
	if !actor.Can(authz.ManageHotels) && !actor.Can(authz.ManageRooms) {
		return "", apperrors.Forbidden("not allowed to upload hotel photos")
	}
	if _, err := s.store.GetHotel(ctx, hotelID); err != nil {
		return "", storeError(err, "hotel")
	}
	if s.uploader == nil {
		return "", apperrors.Internal("photo upload is not configured", nil)
	}

	url, err := s.uploader.Upload(ctx, file, fmt.Sprintf("hotels/%d", hotelID))
	if err != nil {
		return "", apperrors.Internal("photo upload failed", err)
	}
	if err := s.store.AddHotelPhoto(ctx, hotelID, url); err != nil {
		return "", storeError(err, "hotel")
	}
	return url, nil
}

// CreateRoom tạo loại phòng cùng các số phòng; mỗi số phòng bắt đầu với
// sổ ngày trống, phòng mới coi như đã dọn.
func (s *HotelService) CreateRoom(ctx context.Context, actor authz.Actor, hotelID uint, req dto.CreateRoomRequest) (*models.Room, error) {
	if !actor.Can(authz.ManageRooms) {
		return nil, apperrors.Forbidden("not allowed to create rooms")
	}
	room := &models.Room{
		HotelID:   hotelID,
		Title:     req.Title,
		Price:     req.Price,
		MaxPeople: req.MaxPeople,
		Desc:      req.Desc,
		Cleaning:  models.InitialCleaningState(),
	}
	for _, n := range req.RoomNumbers {
		room.RoomNumbers = append(room.RoomNumbers, models.RoomNumber{Number: n})
	}
	if err := room.ValidateNumbers(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	err := s.store.Atomic(ctx, func(tx repository.Tx) error {
		if _, err := tx.GetHotel(ctx, hotelID); err != nil {
			return storeError(err, "hotel")
		}
		return storeError(tx.CreateRoom(ctx, room), "room")
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("room %d created in hotel %d with %d numbers", room.ID, hotelID, len(room.RoomNumbers))
	return room, nil
}

func (s *HotelService) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.store.GetRoom(ctx, id)
	if err != nil {
		return nil, storeError(err, "room")
	}
	return room, nil
}

func (s *HotelService) ListRooms(ctx context.Context, hotelID uint) ([]models.Room, error) {
	if _, err := s.store.GetHotel(ctx, hotelID); err != nil {
		return nil, storeError(err, "hotel")
	}
	rooms, err := s.store.ListRooms(ctx, repository.RoomFilter{HotelID: hotelID})
	if err != nil {
		return nil, storeError(err, "room")
	}
	return rooms, nil
}
