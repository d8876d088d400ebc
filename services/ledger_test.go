package services

import (
	"context"
	"testing"

	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/repository"
	"hotelbooking/utils"
)

// june trả về ngày trong tháng 6/2024
func june(day int) utils.Day {
	return utils.NewDay(2024, 6, day)
}

func newLedgerFixture(t *testing.T) (*repository.MemoryStore, uint) {
	t.Helper()
	ctx := context.Background()
	store := repository.NewMemoryStore()
	hotel := &models.Hotel{Name: "Seaside"}
	if err := store.CreateHotel(ctx, hotel); err != nil {
		t.Fatalf("CreateHotel() error = %v", err)
	}
	room := &models.Room{HotelID: hotel.ID, Title: "Deluxe", RoomNumbers: []models.RoomNumber{{Number: 101}}}
	if err := store.CreateRoom(ctx, room); err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}
	return store, room.RoomNumbers[0].ID
}

func TestParseRangeMode(t *testing.T) {
	tests := []struct {
		in      string
		want    RangeMode
		wantErr bool
	}{
		{"", RangeInclusive, false},
		{"inclusive", RangeInclusive, false},
		{"Half-Open", RangeHalfOpen, false},
		{"halfopen", RangeHalfOpen, false},
		{"weekly", RangeInclusive, true},
	}
	for _, tt := range tests {
		got, err := ParseRangeMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRangeMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRangeMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLedgerStayDays(t *testing.T) {
	tests := []struct {
		name     string
		mode     RangeMode
		start    utils.Day
		end      utils.Day
		wantLen  int
		wantCode apperrors.ErrorCode
	}{
		{"inclusive three days", RangeInclusive, june(1), june(3), 3, ""},
		{"inclusive same day", RangeInclusive, june(1), june(1), 1, ""},
		{"inclusive reversed", RangeInclusive, june(3), june(1), 0, apperrors.ErrCodeValidation},
		{"half-open two nights", RangeHalfOpen, june(1), june(3), 2, ""},
		{"half-open same day", RangeHalfOpen, june(1), june(1), 0, apperrors.ErrCodeValidation},
		{"missing start", RangeInclusive, utils.Day{}, june(1), 0, apperrors.ErrCodeValidation},
		{"across month end", RangeInclusive, june(29), utils.NewDay(2024, 7, 2), 4, ""},
		{"inclusive longest stay", RangeInclusive, june(1), utils.NewDay(2025, 6, 1), MaxStayDays, ""},
		{"inclusive stay too long", RangeInclusive, june(1), utils.NewDay(2025, 6, 2), 0, apperrors.ErrCodeValidation},
		{"half-open longest stay", RangeHalfOpen, june(1), utils.NewDay(2025, 6, 2), MaxStayDays, ""},
		{"far future end", RangeInclusive, june(1), utils.NewDay(4999, 12, 31), 0, apperrors.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := NewLedger(tt.mode).StayDays(tt.start, tt.end)
			if tt.wantCode != "" {
				if !apperrors.HasCode(err, tt.wantCode) {
					t.Fatalf("StayDays() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("StayDays() error = %v", err)
			}
			if len(days) != tt.wantLen {
				t.Errorf("len(StayDays()) = %d, want %d", len(days), tt.wantLen)
			}
		})
	}
}

func TestLedgerCheckReserveRelease(t *testing.T) {
	ctx := context.Background()
	store, rnID := newLedgerFixture(t)
	ledger := NewLedger(RangeInclusive)

	free, err := ledger.Check(ctx, store, rnID, june(1), june(3))
	if err != nil || !free {
		t.Fatalf("Check() = %v, %v; want true, nil", free, err)
	}
	if err := ledger.Reserve(ctx, store, rnID, 1, june(1), june(3)); err != nil {
		t.Fatalf("Reserve() error = %v", err)
	}

	// ngày cuối là inclusive nên 06-03 vẫn chồng
	free, _ = ledger.Check(ctx, store, rnID, june(3), june(5))
	if free {
		t.Errorf("Check(06-03..06-05) = true, want false")
	}
	free, _ = ledger.Check(ctx, store, rnID, june(4), june(5))
	if !free {
		t.Errorf("Check(06-04..06-05) = false, want true")
	}

	err = ledger.Reserve(ctx, store, rnID, 2, june(2), june(4))
	if !apperrors.HasCode(err, apperrors.ErrCodeConflict) {
		t.Errorf("overlapping Reserve() error = %v, want Conflict", err)
	}

	if err := ledger.Release(ctx, store, rnID, june(1), june(3)); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	free, _ = ledger.Check(ctx, store, rnID, june(1), june(3))
	if !free {
		t.Errorf("Check() after Release = false, want true")
	}
}

func TestLedgerReleaseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, rnID := newLedgerFixture(t)
	ledger := NewLedger(RangeInclusive)

	if err := ledger.Reserve(ctx, store, rnID, 1, june(1), june(5)); err != nil {
		t.Fatalf("Reserve() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := ledger.Release(ctx, store, rnID, june(2), june(3)); err != nil {
			t.Fatalf("Release() #%d error = %v", i+1, err)
		}
	}

	got, _ := store.ReservedDays(ctx, rnID, june(1), june(5))
	want := []utils.Day{june(1), june(4), june(5)}
	sorted := got.Sorted()
	if len(sorted) != len(want) {
		t.Fatalf("reserved = %v, want %v", sorted, want)
	}
	for i := range want {
		if sorted[i] != want[i] {
			t.Errorf("reserved[%d] = %v, want %v", i, sorted[i], want[i])
		}
	}
}

func TestLedgerHalfOpenBackToBack(t *testing.T) {
	ctx := context.Background()
	store, rnID := newLedgerFixture(t)
	ledger := NewLedger(RangeHalfOpen)

	if err := ledger.Reserve(ctx, store, rnID, 1, june(1), june(3)); err != nil {
		t.Fatalf("Reserve() error = %v", err)
	}
	// ngày trả phòng 06-03 trống cho khách mới
	if err := ledger.Reserve(ctx, store, rnID, 2, june(3), june(5)); err != nil {
		t.Errorf("back-to-back Reserve() error = %v, want nil", err)
	}
	if got := ledger.LastDay(june(5)); got != june(4) {
		t.Errorf("LastDay() = %v, want %v", got, june(4))
	}
}
