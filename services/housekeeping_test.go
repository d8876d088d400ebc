package services

import (
	"context"
	"testing"
	"time"

	"hotelbooking/authz"
	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/repository"
)

func TestMarkCleaned(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	hk := f.facade.housekeeping

	// phòng bẩn sau khi hủy
	b, _ := f.facade.CreateBooking(ctx, f.input(f.guestA, 101, june(1), june(3)))
	if _, err := f.facade.CancelBooking(ctx, f.actor(f.guestA), b.ID); err != nil {
		t.Fatalf("CancelBooking() error = %v", err)
	}

	room, err := hk.MarkCleaned(ctx, f.worker, f.room.ID, f.workerID)
	if err != nil {
		t.Fatalf("MarkCleaned() error = %v", err)
	}
	if !room.Cleaning.IsCleaned || room.Cleaning.NeedsCleaning {
		t.Errorf("cleaning = %+v, want isCleaned=true needsCleaning=false", room.Cleaning)
	}
	if room.Cleaning.LastCleanedAt == nil || !room.Cleaning.LastCleanedAt.Equal(fixedNow) {
		t.Errorf("LastCleanedAt = %v, want %v", room.Cleaning.LastCleanedAt, fixedNow)
	}

	// dọn lại phòng sạch vẫn được, thêm một dòng lịch sử
	if _, err := hk.MarkCleaned(ctx, f.mod, f.room.ID, f.workerID); err != nil {
		t.Fatalf("second MarkCleaned() error = %v", err)
	}
	history, err := hk.History(ctx, f.room.ID)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("len(history) = %d, want 2", len(history))
	}
	for _, rec := range history {
		if rec.WorkerID != f.workerID {
			t.Errorf("history WorkerID = %d, want %d", rec.WorkerID, f.workerID)
		}
	}
}

func TestMarkCleanedAuthorization(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	hk := f.facade.housekeeping

	other := &models.Worker{Name: "Oscar", UserID: 999, HotelID: f.hotel.ID, Role: constants.WorkerRoleHousekeeper, IsActive: true}
	if err := f.store.CreateWorker(ctx, other); err != nil {
		t.Fatalf("CreateWorker() error = %v", err)
	}

	tests := []struct {
		name     string
		actor    authz.Actor
		roomID   uint
		workerID uint
		wantCode apperrors.ErrorCode
	}{
		{"guest", f.actor(f.guestA), f.room.ID, f.workerID, apperrors.ErrCodeForbidden},
		{"worker for someone else", f.worker, f.room.ID, other.ID, apperrors.ErrCodeForbidden},
		{"admin for any worker", f.admin, f.room.ID, other.ID, ""},
		{"unknown worker", f.admin, f.room.ID, 4242, apperrors.ErrCodeNotFound},
		{"unknown room", f.worker, 4242, f.workerID, apperrors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hk.MarkCleaned(ctx, tt.actor, tt.roomID, tt.workerID)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("MarkCleaned() error = %v", err)
				}
				return
			}
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Errorf("MarkCleaned() error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestMarkNeedsCleaningKeepsLastCleaned(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	hk := NewHousekeeping(HousekeepingOptions{Store: store, Clock: func() time.Time { return fixedNow }})

	hotel := &models.Hotel{Name: "Seaside"}
	store.CreateHotel(ctx, hotel)
	room := &models.Room{HotelID: hotel.ID, Title: "Twin", Cleaning: models.InitialCleaningState().Cleaned(fixedNow)}
	if err := store.CreateRoom(ctx, room); err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}

	err := store.Atomic(ctx, func(tx repository.Tx) error {
		return hk.MarkNeedsCleaning(ctx, tx, room.ID)
	})
	if err != nil {
		t.Fatalf("MarkNeedsCleaning() error = %v", err)
	}

	got, _ := store.GetRoom(ctx, room.ID)
	if got.Cleaning.IsCleaned || !got.Cleaning.NeedsCleaning {
		t.Errorf("cleaning = %+v, want isCleaned=false needsCleaning=true", got.Cleaning)
	}
	if got.Cleaning.LastCleanedAt == nil {
		t.Errorf("LastCleanedAt cleared, want kept")
	}

	dirty, err := hk.RoomsNeedingCleaning(ctx, authz.NewActor(1, authz.RoleWorker, nil), hotel.ID)
	if err != nil || len(dirty) != 1 || dirty[0].ID != room.ID {
		t.Errorf("RoomsNeedingCleaning() = %v, %v; want [room %d]", dirty, err, room.ID)
	}
}
