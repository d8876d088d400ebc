package models

import (
	"fmt"
	"time"

	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
)

// BookingState định nghĩa interface cho các trạng thái booking.
// confirmed -> cancelled và confirmed -> completed; hai trạng thái sau là cuối.
type BookingState interface {
	Cancel(booking *Booking, at time.Time) error
	Complete(booking *Booking, at time.Time) error
}

// ConfirmedState trạng thái đã xác nhận
type ConfirmedState struct{}

func (s *ConfirmedState) Cancel(booking *Booking, at time.Time) error {
	booking.Status = constants.BookingStatusCancelled
	booking.CancelledAt = &at
	return nil
}

func (s *ConfirmedState) Complete(booking *Booking, at time.Time) error {
	booking.Status = constants.BookingStatusCompleted
	booking.CompletedAt = &at
	return nil
}

// terminalState dùng chung cho cancelled, completed và status lạ
type terminalState struct {
	status string
}

func (s *terminalState) Cancel(booking *Booking, _ time.Time) error {
	return apperrors.InvalidState(fmt.Sprintf("booking cannot be cancelled (current status: %s)", s.status))
}

func (s *terminalState) Complete(booking *Booking, _ time.Time) error {
	return apperrors.InvalidState(fmt.Sprintf("booking cannot be completed (current status: %s)", s.status))
}

// GetBookingState trả về state tương ứng với trạng thái booking
func GetBookingState(status string) BookingState {
	if status == constants.BookingStatusConfirmed {
		return &ConfirmedState{}
	}
	return &terminalState{status: status}
}
