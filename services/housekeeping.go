package services

import (
	"context"
	"time"

	"hotelbooking/authz"
	apperrors "hotelbooking/errors"
	"hotelbooking/metrics"
	"hotelbooking/models"
	"hotelbooking/repository"
	"hotelbooking/services/logger"
	"hotelbooking/services/notification"
)

// Housekeeping quản lý trạng thái dọn phòng
type Housekeeping struct {
	store    repository.Store
	notifier notification.Service
	metrics  *metrics.Metrics
	log      logger.Logger
	now      func() time.Time
}

type HousekeepingOptions struct {
	Store    repository.Store
	Notifier notification.Service
	Metrics  *metrics.Metrics
	Logger   logger.Logger
	Clock    func() time.Time
}

func NewHousekeeping(opts HousekeepingOptions) *Housekeeping {
	h := &Housekeeping{
		store:    opts.Store,
		notifier: opts.Notifier,
		metrics:  opts.Metrics,
		log:      opts.Logger,
		now:      opts.Clock,
	}
	if h.notifier == nil {
		h.notifier = notification.Noop{}
	}
	if h.metrics == nil {
		h.metrics = metrics.New()
	}
	if h.log == nil {
		h.log = logger.Discard{}
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// MarkNeedsCleaning chuyển phòng sang cần dọn trong transaction tx.
// Được gọi từ luồng hủy và trả phòng.
func (h *Housekeeping) MarkNeedsCleaning(ctx context.Context, tx repository.Tx, roomID uint) error {
	room, err := tx.GetRoom(ctx, roomID)
	if err != nil {
		return storeError(err, "room")
	}
	if err := tx.SetRoomCleaning(ctx, roomID, room.Cleaning.Dirty()); err != nil {
		return storeError(err, "room")
	}
	return nil
}

// markCleaned đặt phòng về đã dọn và ghi một dòng lịch sử
func (h *Housekeeping) markCleaned(ctx context.Context, tx repository.Tx, roomID, workerID uint, at time.Time) (*models.Room, error) {
	room, err := tx.GetRoom(ctx, roomID)
	if err != nil {
		return nil, storeError(err, "room")
	}
	room.Cleaning = room.Cleaning.Cleaned(at)
	if err := tx.SetRoomCleaning(ctx, roomID, room.Cleaning); err != nil {
		return nil, storeError(err, "room")
	}
	record := &models.CleaningRecord{RoomID: roomID, WorkerID: workerID, CleanedAt: at}
	if err := tx.AddCleaningRecord(ctx, record); err != nil {
		return nil, storeError(err, "cleaning record")
	}
	return room, nil
}

// MarkCleaned ghi nhận worker đã dọn phòng. Worker chỉ được ghi cho chính
// mình; admin/moderator ghi được cho bất kỳ worker nào.
func (h *Housekeeping) MarkCleaned(ctx context.Context, actor authz.Actor, roomID, workerID uint) (*models.Room, error) {
	if !actor.Can(authz.MarkRoomCleaned) {
		return nil, apperrors.Forbidden("not allowed to mark rooms cleaned")
	}

	var room *models.Room
	err := h.store.Atomic(ctx, func(tx repository.Tx) error {
		worker, err := tx.GetWorker(ctx, workerID)
		if err != nil {
			return storeError(err, "worker")
		}
		if worker.UserID != actor.UserID && !actor.Can(authz.RecordCleaningForOthers) {
			return apperrors.Forbidden("workers can only record their own cleaning")
		}
		if !worker.IsActive {
			return apperrors.InvalidState("worker is not active")
		}

		room, err = h.markCleaned(ctx, tx, roomID, workerID, h.now())
		return err
	})
	if err != nil {
		h.log.Error("mark room %d cleaned by worker %d: %v", roomID, workerID, err)
		return nil, err
	}

	h.metrics.RoomsCleaned.Inc()
	h.log.Info("room %d cleaned by worker %d", roomID, workerID)
	if err := h.notifier.Publish(notification.NewMessageBuilder(notification.EventRoomCleaned).Room(roomID).Build()); err != nil {
		h.log.Debug("publish room.cleaned: %v", err)
	}
	return room, nil
}

// RoomsNeedingCleaning liệt kê phòng cần dọn của một khách sạn (0 = tất cả)
func (h *Housekeeping) RoomsNeedingCleaning(ctx context.Context, actor authz.Actor, hotelID uint) ([]models.Room, error) {
	if !actor.Can(authz.MarkRoomCleaned) {
		return nil, apperrors.Forbidden("not allowed to view housekeeping")
	}
	needs := true
	rooms, err := h.store.ListRooms(ctx, repository.RoomFilter{HotelID: hotelID, NeedsCleaning: &needs})
	if err != nil {
		return nil, storeError(err, "room")
	}
	return rooms, nil
}

// History trả về lịch sử dọn của phòng theo thứ tự thời gian
func (h *Housekeeping) History(ctx context.Context, roomID uint) ([]models.CleaningRecord, error) {
	if _, err := h.store.GetRoom(ctx, roomID); err != nil {
		return nil, storeError(err, "room")
	}
	records, err := h.store.CleaningHistory(ctx, roomID)
	if err != nil {
		return nil, storeError(err, "room")
	}
	return records, nil
}
