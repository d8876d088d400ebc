package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelbooking/authz"
	"hotelbooking/builders"
	"hotelbooking/constants"
	"hotelbooking/dto"
	apperrors "hotelbooking/errors"
	"hotelbooking/metrics"
	"hotelbooking/models"
	"hotelbooking/repository"
	"hotelbooking/services/logger"
	"hotelbooking/services/notification"
	"hotelbooking/utils"
)

// maxCalendarDays giới hạn khoảng ngày của một lần xem lịch
const maxCalendarDays = 366

// BookingFacade điều phối vòng đời booking: tạo, hủy, trả phòng, hóa đơn.
// Mọi thay đổi booking + sổ ngày + trạng thái dọn phòng chạy trong một
// Store.Atomic; create/cancel còn giữ khóa theo room-number.
type BookingFacade struct {
	store        repository.Store
	ledger       *Ledger
	housekeeping *Housekeeping
	locker       Locker
	cache        CalendarCache
	notifier     notification.Service
	metrics      *metrics.Metrics
	log          logger.Logger
	now          func() time.Time
}

type BookingFacadeOptions struct {
	Store        repository.Store
	Ledger       *Ledger
	Housekeeping *Housekeeping
	Locker       Locker
	Cache        CalendarCache
	Notifier     notification.Service
	Metrics      *metrics.Metrics
	Logger       logger.Logger
	Clock        func() time.Time
}

// NewBookingFacade tạo instance mới của BookingFacade
func NewBookingFacade(opts BookingFacadeOptions) *BookingFacade {
	f := &BookingFacade{
		store:        opts.Store,
		ledger:       opts.Ledger,
		housekeeping: opts.Housekeeping,
		locker:       opts.Locker,
		cache:        opts.Cache,
		notifier:     opts.Notifier,
		metrics:      opts.Metrics,
		log:          opts.Logger,
		now:          opts.Clock,
	}
	if f.ledger == nil {
		f.ledger = NewLedger(RangeInclusive)
	}
	if f.locker == nil {
		f.locker = NewLocalLocker()
	}
	if f.cache == nil {
		f.cache = NoopCalendarCache{}
	}
	if f.notifier == nil {
		f.notifier = notification.Noop{}
	}
	if f.metrics == nil {
		f.metrics = metrics.New()
	}
	if f.log == nil {
		f.log = logger.Discard{}
	}
	if f.now == nil {
		f.now = time.Now
	}
	if f.housekeeping == nil {
		f.housekeeping = NewHousekeeping(HousekeepingOptions{
			Store:    f.store,
			Notifier: f.notifier,
			Metrics:  f.metrics,
			Logger:   f.log,
			Clock:    f.now,
		})
	}
	return f
}

func (f *BookingFacade) Ledger() *Ledger {
	return f.ledger
}

// Today là ngày hiện tại theo clock của facade
func (f *BookingFacade) Today() utils.Day {
	return utils.DayOf(f.now())
}

// CreateBooking tạo booking mới cho khách in.GuestID
func (f *BookingFacade) CreateBooking(ctx context.Context, in dto.CreateBookingInput) (*models.Booking, error) {
	if in.GuestID == 0 {
		return nil, apperrors.Unauthorized("guest is required")
	}
	if in.RoomNumber <= 0 {
		return nil, apperrors.Validation("roomNumber must be positive")
	}
	if in.TotalPrice < 0 {
		return nil, apperrors.Validation("totalPrice must not be negative")
	}
	if _, err := f.ledger.StayDays(in.DateStart, in.DateEnd); err != nil {
		return nil, err
	}
	if in.DateStart.Before(f.Today()) {
		return nil, apperrors.Validation("dateStart must not be in the past")
	}

	unlock, err := f.locker.Lock(ctx, RoomNumberLockKey(in.RoomID, in.RoomNumber))
	if err != nil {
		return nil, apperrors.Internal("could not lock room number", err)
	}
	defer unlock()

	var booking *models.Booking
	err = f.store.Atomic(ctx, func(tx repository.Tx) error {
		room, err := tx.GetRoom(ctx, in.RoomID)
		if err != nil {
			return storeError(err, "room")
		}
		if room.HotelID != in.HotelID {
			return apperrors.NotFound(fmt.Sprintf("room %d not found in hotel %d", in.RoomID, in.HotelID))
		}
		if _, err := tx.GetHotel(ctx, in.HotelID); err != nil {
			return storeError(err, "hotel")
		}

		rn, err := tx.LockRoomNumber(ctx, in.RoomID, in.RoomNumber)
		if err != nil {
			if errors.Is(err, apperrors.ErrRecordNotFound) {
				return apperrors.NotFound(fmt.Sprintf("room number %d not found", in.RoomNumber))
			}
			return storeError(err, "room number")
		}

		free, err := f.ledger.Check(ctx, tx, rn.ID, in.DateStart, in.DateEnd)
		if err != nil {
			return err
		}
		if !free {
			return apperrors.Conflict("room is not available for the selected dates")
		}

		booking = builders.NewBookingBuilder().
			WithGuest(in.GuestID).
			WithRoom(in.HotelID, in.RoomID, in.RoomNumber).
			WithStay(in.DateStart, in.DateEnd).
			WithTotalPrice(in.TotalPrice).
			Build()
		if err := tx.CreateBooking(ctx, booking); err != nil {
			return storeError(err, "booking")
		}

		return f.ledger.Reserve(ctx, tx, rn.ID, booking.ID, in.DateStart, in.DateEnd)
	})
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeConflict) {
			f.metrics.BookingConflicts.Inc()
		}
		f.log.Info("create booking room %d/%d %s..%s by user %d failed: %v",
			in.RoomID, in.RoomNumber, in.DateStart, in.DateEnd, in.GuestID, err)
		return nil, err
	}

	f.cache.Invalidate(ctx, booking.RoomID)
	f.metrics.BookingsCreated.Inc()
	f.log.Info("booking %d created: room %d/%d %s..%s user %d",
		booking.ID, booking.RoomID, booking.RoomNumber, in.DateStart, in.DateEnd, booking.UserID)
	f.publish(notification.EventBookingCreated, booking)
	return booking, nil
}

// CancelBooking hủy booking. Thứ tự lỗi: NotFound, Forbidden, InvalidState.
func (f *BookingFacade) CancelBooking(ctx context.Context, actor authz.Actor, bookingID uint) (*models.Booking, error) {
	current, err := f.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, storeError(err, "booking")
	}
	if !actor.OwnerOr(current.UserID, authz.CancelAnyBooking) {
		return nil, apperrors.Forbidden("not allowed to cancel this booking")
	}

	unlock, err := f.locker.Lock(ctx, RoomNumberLockKey(current.RoomID, current.RoomNumber))
	if err != nil {
		return nil, apperrors.Internal("could not lock room number", err)
	}
	defer unlock()

	var booking *models.Booking
	err = f.store.Atomic(ctx, func(tx repository.Tx) error {
		b, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return storeError(err, "booking")
		}
		from := b.Status
		if err := b.State().Cancel(b, f.now()); err != nil {
			return err
		}
		if err := tx.TransitionBooking(ctx, b, from); err != nil {
			return transitionError(err, "cancelled")
		}

		rn, err := tx.LockRoomNumber(ctx, b.RoomID, b.RoomNumber)
		if err != nil {
			if errors.Is(err, apperrors.ErrRecordNotFound) {
				return apperrors.Inconsistency(fmt.Sprintf("booking %d references missing room number %d", b.ID, b.RoomNumber), err)
			}
			return storeError(err, "room number")
		}
		if err := f.ledger.Release(ctx, tx, rn.ID, b.StartDay(), b.EndDay()); err != nil {
			return err
		}
		if err := f.housekeeping.MarkNeedsCleaning(ctx, tx, b.RoomID); err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		f.log.Info("cancel booking %d by user %d failed: %v", bookingID, actor.UserID, err)
		return nil, err
	}

	f.cache.Invalidate(ctx, booking.RoomID)
	f.metrics.BookingsCancelled.Inc()
	f.log.Info("booking %d cancelled by user %d (%s)", booking.ID, actor.UserID, actor.Role)
	f.publish(notification.EventBookingCancelled, booking)
	return booking, nil
}

// CompleteBooking trả phòng: confirmed -> completed, giữ nguyên sổ ngày,
// phòng chuyển sang cần dọn.
func (f *BookingFacade) CompleteBooking(ctx context.Context, actor authz.Actor, bookingID uint) (*models.Booking, error) {
	if _, err := f.store.GetBooking(ctx, bookingID); err != nil {
		return nil, storeError(err, "booking")
	}
	if !actor.Can(authz.CheckoutBooking) {
		return nil, apperrors.Forbidden("not allowed to check out bookings")
	}

	booking, err := f.complete(ctx, bookingID)
	if err != nil {
		f.log.Info("complete booking %d by user %d failed: %v", bookingID, actor.UserID, err)
		return nil, err
	}
	f.log.Info("booking %d completed by user %d", booking.ID, actor.UserID)
	return booking, nil
}

func (f *BookingFacade) complete(ctx context.Context, bookingID uint) (*models.Booking, error) {
	var booking *models.Booking
	err := f.store.Atomic(ctx, func(tx repository.Tx) error {
		b, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return storeError(err, "booking")
		}
		from := b.Status
		if err := b.State().Complete(b, f.now()); err != nil {
			return err
		}
		if err := tx.TransitionBooking(ctx, b, from); err != nil {
			return transitionError(err, "completed")
		}
		if err := f.housekeeping.MarkNeedsCleaning(ctx, tx, b.RoomID); err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	f.metrics.BookingsCompleted.Inc()
	f.publish(notification.EventBookingCompleted, booking)
	return booking, nil
}

// CompleteEnded trả phòng mọi booking confirmed có ngày ở cuối cùng trước today.
// Lỗi của từng booking được log và bỏ qua.
func (f *BookingFacade) CompleteEnded(ctx context.Context, today utils.Day) (dto.CompleteEndedResult, error) {
	var result dto.CompleteEndedResult

	// ngày ở cuối < today  <=>  dateEnd < cutoff
	cutoff := today
	if f.ledger.Mode() == RangeHalfOpen {
		cutoff = today.AddDays(1)
	}
	before := cutoff.Time()
	bookings, err := f.store.ListBookings(ctx, repository.BookingFilter{
		Status:    constants.BookingStatusConfirmed,
		EndBefore: &before,
	})
	if err != nil {
		return result, storeError(err, "booking")
	}

	for _, b := range bookings {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, err := f.complete(ctx, b.ID); err != nil {
			f.log.Error("checkout sweep: booking %d: %v", b.ID, err)
			result.Failed = append(result.Failed, b.ID)
			continue
		}
		result.Completed = append(result.Completed, b.ID)
	}
	f.log.Info("checkout sweep %s: %d completed, %d failed", today, len(result.Completed), len(result.Failed))
	return result, nil
}

// Receipt gom booking, khách sạn, phòng và khách. Chủ booking, admin và
// moderator được xem.
func (f *BookingFacade) Receipt(ctx context.Context, actor authz.Actor, bookingID uint) (*dto.BookingReceipt, error) {
	b, err := f.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, storeError(err, "booking")
	}
	if !actor.OwnerOr(b.UserID, authz.ViewAnyReceipt) {
		return nil, apperrors.Forbidden("not allowed to view this receipt")
	}

	hotel, err := f.store.GetHotel(ctx, b.HotelID)
	if err != nil {
		return nil, storeError(err, "hotel")
	}
	room, err := f.store.GetRoom(ctx, b.RoomID)
	if err != nil {
		return nil, storeError(err, "room")
	}
	guest, err := f.store.GetUser(ctx, b.UserID)
	if err != nil {
		return nil, storeError(err, "guest")
	}

	days := 0
	if stay, err := f.ledger.StayDays(b.StartDay(), b.EndDay()); err == nil {
		days = len(stay)
	}

	return &dto.BookingReceipt{
		Booking: dto.NewBookingResponse(b),
		Hotel: dto.ReceiptHotel{
			ID:      hotel.ID,
			Name:    hotel.Name,
			Address: hotel.Address,
			City:    hotel.City,
		},
		Room: dto.ReceiptRoom{
			ID:     room.ID,
			Title:  room.Title,
			Price:  room.Price,
			Number: b.RoomNumber,
		},
		Guest: dto.ReceiptGuest{
			ID:    guest.ID,
			Name:  guest.Username,
			Email: guest.Email,
			Phone: guest.Phone,
		},
		Days: days,
	}, nil
}

// ListAll liệt kê mọi booking, lọc theo status nếu có
func (f *BookingFacade) ListAll(ctx context.Context, actor authz.Actor, status string) ([]models.Booking, error) {
	if !actor.Can(authz.ViewAllBookings) {
		return nil, apperrors.Forbidden("not allowed to view all bookings")
	}
	return f.list(ctx, repository.BookingFilter{Status: status})
}

func (f *BookingFacade) ListByHotel(ctx context.Context, actor authz.Actor, hotelID uint) ([]models.Booking, error) {
	if !actor.Can(authz.ViewAllBookings) {
		return nil, apperrors.Forbidden("not allowed to view hotel bookings")
	}
	if _, err := f.store.GetHotel(ctx, hotelID); err != nil {
		return nil, storeError(err, "hotel")
	}
	return f.list(ctx, repository.BookingFilter{HotelID: hotelID})
}

func (f *BookingFacade) ListByGuest(ctx context.Context, actor authz.Actor, guestID uint) ([]models.Booking, error) {
	if !actor.OwnerOr(guestID, authz.ViewAllBookings) {
		return nil, apperrors.Forbidden("not allowed to view these bookings")
	}
	return f.list(ctx, repository.BookingFilter{UserID: guestID})
}

func (f *BookingFacade) list(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error) {
	bookings, err := f.store.ListBookings(ctx, filter)
	if err != nil {
		return nil, storeError(err, "booking")
	}
	return bookings, nil
}

// Calendar trả về các ngày đã giữ của từng số phòng trong [from, to]
func (f *BookingFacade) Calendar(ctx context.Context, roomID uint, from, to utils.Day) (*RoomCalendar, error) {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil, apperrors.Validation("invalid calendar range")
	}
	if from.DaysUntil(to)+1 > maxCalendarDays {
		return nil, apperrors.Validation(fmt.Sprintf("calendar range must not exceed %d days", maxCalendarDays))
	}

	if cal, ok := f.cache.Get(ctx, roomID, from, to); ok {
		f.metrics.CacheHits.WithLabelValues("hit").Inc()
		return cal, nil
	}
	f.metrics.CacheHits.WithLabelValues("miss").Inc()
	version := f.cache.Version(ctx, roomID)

	room, err := f.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, storeError(err, "room")
	}
	cal := &RoomCalendar{RoomID: roomID, From: from, To: to, Taken: make(map[int][]utils.Day, len(room.RoomNumbers))}
	for _, rn := range room.RoomNumbers {
		set, err := f.store.ReservedDays(ctx, rn.ID, from, to)
		if err != nil {
			return nil, storeError(err, "room number")
		}
		cal.Taken[rn.Number] = set.Sorted()
	}
	f.cache.Set(ctx, cal, version)
	return cal, nil
}

func (f *BookingFacade) publish(eventType string, b *models.Booking) {
	event := notification.NewMessageBuilder(eventType).Booking(b.ID, b.HotelID, b.RoomID, b.UserID).Build()
	if err := f.notifier.Publish(event); err != nil {
		f.log.Debug("publish %s: %v", eventType, err)
	}
}

// transitionError: status đã bị request khác đổi giữa lúc đọc và ghi
func transitionError(err error, target string) error {
	if errors.Is(err, apperrors.ErrStatusChanged) {
		return apperrors.InvalidState(fmt.Sprintf("booking can no longer be %s", target))
	}
	return storeError(err, "booking")
}
