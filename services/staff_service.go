package services

import (
	"context"
	"errors"

	"hotelbooking/authz"
	"hotelbooking/constants"
	"hotelbooking/dto"
	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/repository"
	"hotelbooking/services/logger"
)

// StaffService tạo worker và moderator, đổi role của user tương ứng
type StaffService struct {
	store repository.Store
	log   logger.Logger
}

func NewStaffService(store repository.Store, log logger.Logger) *StaffService {
	return &StaffService{store: store, log: log}
}

func (s *StaffService) CreateWorker(ctx context.Context, actor authz.Actor, req dto.CreateWorkerRequest) (*models.Worker, error) {
	if !actor.Can(authz.ManageWorkers) {
		return nil, apperrors.Forbidden("not allowed to manage workers")
	}
	worker := &models.Worker{
		Name:     req.Name,
		UserID:   req.UserID,
		HotelID:  req.HotelID,
		Role:     req.Role,
		Email:    req.Email,
		Phone:    req.Phone,
		IsActive: true,
	}
	if err := worker.ValidateRole(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	err := s.store.Atomic(ctx, func(tx repository.Tx) error {
		user, err := tx.GetUser(ctx, req.UserID)
		if err != nil {
			return storeError(err, "user")
		}
		if _, err := tx.GetHotel(ctx, req.HotelID); err != nil {
			return storeError(err, "hotel")
		}
		if err := tx.CreateWorker(ctx, worker); err != nil {
			return storeError(err, "worker")
		}
		// không hạ quyền moderator/admin
		if user.Role == constants.RoleGuest {
			return storeError(tx.UpdateUserRole(ctx, user.ID, constants.RoleWorker), "user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("worker %d created for user %d in hotel %d", worker.ID, worker.UserID, worker.HotelID)
	return worker, nil
}

func (s *StaffService) GetWorker(ctx context.Context, id uint) (*models.Worker, error) {
	worker, err := s.store.GetWorker(ctx, id)
	if err != nil {
		return nil, storeError(err, "worker")
	}
	return worker, nil
}

func (s *StaffService) CreateModerator(ctx context.Context, actor authz.Actor, req dto.CreateModeratorRequest) (*models.Moderator, error) {
	if !actor.Can(authz.ManageModerators) {
		return nil, apperrors.Forbidden("not allowed to manage moderators")
	}
	flags := authz.DefaultModeratorFlags()
	if req.CanManageWorkers != nil {
		flags.CanManageWorkers = *req.CanManageWorkers
	}
	if req.CanManageRooms != nil {
		flags.CanManageRooms = *req.CanManageRooms
	}
	if req.CanViewBookings != nil {
		flags.CanViewBookings = *req.CanViewBookings
	}
	moderator := &models.Moderator{
		UserID:           req.UserID,
		HotelID:          req.HotelID,
		IsActive:         true,
		CanManageWorkers: flags.CanManageWorkers,
		CanManageRooms:   flags.CanManageRooms,
		CanViewBookings:  flags.CanViewBookings,
	}

	err := s.store.Atomic(ctx, func(tx repository.Tx) error {
		if _, err := tx.GetUser(ctx, req.UserID); err != nil {
			return storeError(err, "user")
		}
		if _, err := tx.GetHotel(ctx, req.HotelID); err != nil {
			return storeError(err, "hotel")
		}
		if err := tx.CreateModerator(ctx, moderator); err != nil {
			if errors.Is(err, apperrors.ErrDuplicateRecord) {
				return apperrors.Conflict("user is already a moderator")
			}
			return storeError(err, "moderator")
		}
		return storeError(tx.UpdateUserRole(ctx, req.UserID, constants.RoleModerator), "user")
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("moderator %d created for user %d", moderator.ID, moderator.UserID)
	return moderator, nil
}
