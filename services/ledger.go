package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "hotelbooking/errors"
	"hotelbooking/repository"
	"hotelbooking/utils"
)

// RangeMode quyết định ngày trả phòng có bị giữ hay không
type RangeMode int

const (
	// RangeInclusive giữ cả ngày start và ngày end
	RangeInclusive RangeMode = iota
	// RangeHalfOpen giữ [start, end): ngày end trống cho khách check-in mới
	RangeHalfOpen
)

func (m RangeMode) String() string {
	if m == RangeHalfOpen {
		return "half-open"
	}
	return "inclusive"
}

// ParseRangeMode nhận "inclusive" (mặc định khi rỗng) hoặc "half-open"
func ParseRangeMode(s string) (RangeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inclusive":
		return RangeInclusive, nil
	case "half-open", "halfopen":
		return RangeHalfOpen, nil
	default:
		return RangeInclusive, fmt.Errorf("unknown booking range mode %q", s)
	}
}

// Ledger là sổ ngày đã giữ của từng room-number.
// Các hàm nhận Tx để chạy chung transaction với booking.
type Ledger struct {
	mode RangeMode
}

func NewLedger(mode RangeMode) *Ledger {
	return &Ledger{mode: mode}
}

func (l *Ledger) Mode() RangeMode {
	return l.mode
}

// MaxStayDays là số ngày tối đa một booking được giữ
const MaxStayDays = 366

// StayDays liệt kê các ngày bị giữ cho khoảng [start, end] theo mode
func (l *Ledger) StayDays(start, end utils.Day) ([]utils.Day, error) {
	if start.IsZero() || end.IsZero() {
		return nil, apperrors.Validation("dateStart and dateEnd are required")
	}
	switch l.mode {
	case RangeHalfOpen:
		if !start.Before(end) {
			return nil, apperrors.Validation("dateEnd must be after dateStart")
		}
	default:
		if end.Before(start) {
			return nil, apperrors.Validation("dateEnd must not be before dateStart")
		}
	}
	last := l.LastDay(end)
	// kiểm tra trước khi liệt kê ngày
	if start.DaysUntil(last)+1 > MaxStayDays {
		return nil, apperrors.Validation(fmt.Sprintf("stay must not exceed %d days", MaxStayDays))
	}
	return utils.DaysBetween(start, last), nil
}

// LastDay là ngày cuối cùng bị giữ
func (l *Ledger) LastDay(end utils.Day) utils.Day {
	if l.mode == RangeHalfOpen {
		return end.AddDays(-1)
	}
	return end
}

// Check trả về true nếu room-number trống mọi ngày trong khoảng
func (l *Ledger) Check(ctx context.Context, tx repository.Tx, roomNumberID uint, start, end utils.Day) (bool, error) {
	days, err := l.StayDays(start, end)
	if err != nil {
		return false, err
	}
	reserved, err := tx.ReservedDays(ctx, roomNumberID, days[0], days[len(days)-1])
	if err != nil {
		return false, err
	}
	_, taken := reserved.ContainsAny(days)
	return !taken, nil
}

// Reserve thêm các ngày vào tập đã giữ. Ngày đã bị giữ thì trả Conflict.
func (l *Ledger) Reserve(ctx context.Context, tx repository.Tx, roomNumberID, bookingID uint, start, end utils.Day) error {
	days, err := l.StayDays(start, end)
	if err != nil {
		return err
	}
	if err := tx.AddReservedDays(ctx, roomNumberID, bookingID, days); err != nil {
		if errors.Is(err, apperrors.ErrDayTaken) {
			return apperrors.Conflict("room is not available for the selected dates")
		}
		return err
	}
	return nil
}

// Release bỏ các ngày khỏi tập đã giữ; gọi lại nhiều lần không lỗi
func (l *Ledger) Release(ctx context.Context, tx repository.Tx, roomNumberID uint, start, end utils.Day) error {
	days, err := l.StayDays(start, end)
	if err != nil {
		return err
	}
	return tx.RemoveReservedDays(ctx, roomNumberID, days)
}
