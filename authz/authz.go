// Package authz đổi role của user thành tập quyền, một lần cho mỗi request.
package authz

import (
	"strings"

	"hotelbooking/constants"
)

type Role int

const (
	RoleGuest     Role = constants.RoleGuest
	RoleWorker    Role = constants.RoleWorker
	RoleModerator Role = constants.RoleModerator
	RoleAdmin     Role = constants.RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleWorker:
		return "worker"
	case RoleModerator:
		return "moderator"
	case RoleAdmin:
		return "admin"
	default:
		return "guest"
	}
}

// ParseRole nhận cả tên ("admin") lẫn giá trị mặc định guest khi không khớp
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "worker":
		return RoleWorker
	case "moderator":
		return RoleModerator
	case "admin":
		return RoleAdmin
	default:
		return RoleGuest
	}
}

type Capability uint32

const (
	CancelAnyBooking Capability = 1 << iota
	ViewAnyReceipt
	ViewAllBookings
	CheckoutBooking
	MarkRoomCleaned
	RecordCleaningForOthers
	ManageWorkers
	ManageRooms
	ManageHotels
	ManageModerators
)

var capabilityNames = map[Capability]string{
	CancelAnyBooking:        "cancel_any_booking",
	ViewAnyReceipt:          "view_any_receipt",
	ViewAllBookings:         "view_all_bookings",
	CheckoutBooking:         "checkout_booking",
	MarkRoomCleaned:         "mark_room_cleaned",
	RecordCleaningForOthers: "record_cleaning_for_others",
	ManageWorkers:           "manage_workers",
	ManageRooms:             "manage_rooms",
	ManageHotels:            "manage_hotels",
	ManageModerators:        "manage_moderators",
}

func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}
	return "unknown"
}

// Set là tập capability dạng bitmask
type Set uint32

func NewSet(caps ...Capability) Set {
	var s Set
	for _, c := range caps {
		s |= Set(c)
	}
	return s
}

func (s Set) Has(c Capability) bool {
	return s&Set(c) == Set(c)
}

func (s Set) With(caps ...Capability) Set {
	return s | NewSet(caps...)
}

func (s Set) Without(caps ...Capability) Set {
	return s &^ NewSet(caps...)
}

// Names trả về tên các capability, theo thứ tự bit
func (s Set) Names() []string {
	var names []string
	for c := CancelAnyBooking; c <= ManageModerators; c <<= 1 {
		if s.Has(c) {
			names = append(names, c.String())
		}
	}
	return names
}

// ModeratorFlags là các quyền được admin gán cho moderator
type ModeratorFlags struct {
	CanManageWorkers bool `json:"canManageWorkers"`
	CanManageRooms   bool `json:"canManageRooms"`
	CanViewBookings  bool `json:"canViewBookings"`
}

// DefaultModeratorFlags là quyền mặc định khi tạo moderator
func DefaultModeratorFlags() ModeratorFlags {
	return ModeratorFlags{CanManageWorkers: true, CanManageRooms: true, CanViewBookings: true}
}

var allCapabilities = NewSet(
	CancelAnyBooking, ViewAnyReceipt, ViewAllBookings, CheckoutBooking, MarkRoomCleaned,
	RecordCleaningForOthers, ManageWorkers, ManageRooms, ManageHotels, ManageModerators,
)

// Resolve tính tập capability từ role. flags chỉ có ý nghĩa với moderator;
// nil nghĩa là quyền mặc định.
func Resolve(role Role, flags *ModeratorFlags) Set {
	switch role {
	case RoleAdmin:
		return allCapabilities
	case RoleModerator:
		f := DefaultModeratorFlags()
		if flags != nil {
			f = *flags
		}
		s := NewSet(ViewAnyReceipt, CheckoutBooking, MarkRoomCleaned, RecordCleaningForOthers)
		if f.CanViewBookings {
			s = s.With(ViewAllBookings)
		}
		if f.CanManageWorkers {
			s = s.With(ManageWorkers)
		}
		if f.CanManageRooms {
			s = s.With(ManageRooms)
		}
		return s
	case RoleWorker:
		return NewSet(CheckoutBooking, MarkRoomCleaned)
	default:
		return 0
	}
}

// Actor là người dùng đang thực hiện request, đã resolve quyền
type Actor struct {
	UserID uint
	Role   Role
	Caps   Set
}

func NewActor(userID uint, role Role, flags *ModeratorFlags) Actor {
	return Actor{UserID: userID, Role: role, Caps: Resolve(role, flags)}
}

func (a Actor) Can(c Capability) bool {
	return a.Caps.Has(c)
}

// OwnerOr: actor là chủ sở hữu ownerID hoặc có capability c
func (a Actor) OwnerOr(ownerID uint, c Capability) bool {
	return (a.UserID != 0 && a.UserID == ownerID) || a.Can(c)
}
