package constants

// Booking status
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// User role, lưu trong cột users.role và trong token
const (
	RoleGuest     = 0
	RoleWorker    = 1
	RoleModerator = 2
	RoleAdmin     = 3
)

// Worker role
const (
	WorkerRoleHousekeeper  = "Housekeeper"
	WorkerRoleReceptionist = "Receptionist"
	WorkerRoleManager      = "Manager"
	WorkerRoleMaintenance  = "Maintenance"
	WorkerRoleSecurity     = "Security"
)

// WorkerRoles liệt kê các giá trị hợp lệ cho Worker.Role
var WorkerRoles = []string{
	WorkerRoleHousekeeper,
	WorkerRoleReceptionist,
	WorkerRoleManager,
	WorkerRoleMaintenance,
	WorkerRoleSecurity,
}

// Cache keys
const (
	CacheKeyRoomCalendar        = "rooms:calendar:%d"
	CacheKeyRoomCalendarVersion = "rooms:calendar:%d:ver"
)
