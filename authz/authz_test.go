package authz

import "testing"

func TestResolve(t *testing.T) {
	noBookings := &ModeratorFlags{CanManageWorkers: true, CanManageRooms: false, CanViewBookings: false}

	tests := []struct {
		name  string
		role  Role
		flags *ModeratorFlags
		has   []Capability
		lacks []Capability
	}{
		{
			name:  "guest has nothing",
			role:  RoleGuest,
			lacks: []Capability{CancelAnyBooking, ViewAnyReceipt, MarkRoomCleaned},
		},
		{
			name:  "worker cleans and checks out",
			role:  RoleWorker,
			has:   []Capability{MarkRoomCleaned, CheckoutBooking},
			lacks: []Capability{RecordCleaningForOthers, ViewAnyReceipt, CancelAnyBooking},
		},
		{
			name:  "moderator defaults",
			role:  RoleModerator,
			has:   []Capability{ViewAnyReceipt, ViewAllBookings, ManageWorkers, ManageRooms, RecordCleaningForOthers},
			lacks: []Capability{CancelAnyBooking, ManageModerators, ManageHotels},
		},
		{
			name:  "moderator flags narrow defaults",
			role:  RoleModerator,
			flags: noBookings,
			has:   []Capability{ViewAnyReceipt, ManageWorkers},
			lacks: []Capability{ViewAllBookings, ManageRooms},
		},
		{
			name: "admin has everything",
			role: RoleAdmin,
			has: []Capability{
				CancelAnyBooking, ViewAnyReceipt, ViewAllBookings, CheckoutBooking, MarkRoomCleaned,
				RecordCleaningForOthers, ManageWorkers, ManageRooms, ManageHotels, ManageModerators,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Resolve(tt.role, tt.flags)
			for _, c := range tt.has {
				if !s.Has(c) {
					t.Errorf("Resolve(%v).Has(%v) = false, want true", tt.role, c)
				}
			}
			for _, c := range tt.lacks {
				if s.Has(c) {
					t.Errorf("Resolve(%v).Has(%v) = true, want false", tt.role, c)
				}
			}
		})
	}
}

func TestActorOwnerOr(t *testing.T) {
	guest := NewActor(7, RoleGuest, nil)
	if !guest.OwnerOr(7, CancelAnyBooking) {
		t.Errorf("owner check failed for own booking")
	}
	if guest.OwnerOr(8, CancelAnyBooking) {
		t.Errorf("guest passed owner check for someone else's booking")
	}

	admin := NewActor(1, RoleAdmin, nil)
	if !admin.OwnerOr(8, CancelAnyBooking) {
		t.Errorf("admin should pass via capability")
	}

	anonymous := Actor{}
	if anonymous.OwnerOr(0, CancelAnyBooking) {
		t.Errorf("zero user id must never count as owner")
	}
}

func TestSetNames(t *testing.T) {
	s := NewSet(ViewAnyReceipt, CancelAnyBooking).Without(CancelAnyBooking)
	names := s.Names()
	if len(names) != 1 || names[0] != "view_any_receipt" {
		t.Errorf("Names() = %v, want [view_any_receipt]", names)
	}
}

func TestParseRole(t *testing.T) {
	tests := map[string]Role{
		"admin":     RoleAdmin,
		" Worker ":  RoleWorker,
		"moderator": RoleModerator,
		"":          RoleGuest,
		"root":      RoleGuest,
	}
	for in, want := range tests {
		if got := ParseRole(in); got != want {
			t.Errorf("ParseRole(%q) = %v, want %v", in, got, want)
		}
	}
}
