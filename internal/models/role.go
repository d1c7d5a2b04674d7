package models

// Role is the access tier a user signs up with. It never changes afterwards.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
	RoleRenter Role = "renter"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleAdmin, RoleOwner, RoleRenter}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleRenter:
		return true
	}
	return false
}

// Permission names an action gated by role.
type Permission string

const (
	PermViewAllUsers     Permission = "view-all-users"
	PermDeleteUsers      Permission = "delete-users"
	PermManageVehicles   Permission = "manage-vehicles"
	PermCreateBookings   Permission = "create-bookings"
	PermReviewVehicles   Permission = "review-vehicles"
	PermBookmarkVehicles Permission = "bookmark-vehicles"
	PermModerateContent  Permission = "moderate-content"
)

var grants = map[Role]map[Permission]bool{
	RoleAdmin: {
		PermViewAllUsers:    true,
		PermDeleteUsers:     true,
		PermModerateContent: true,
	},
	RoleOwner: {
		PermManageVehicles: true,
	},
	RoleRenter: {
		PermCreateBookings:   true,
		PermReviewVehicles:   true,
		PermBookmarkVehicles: true,
	},
}

// Can reports whether the role holds the permission. Unknown roles hold nothing.
func (r Role) Can(p Permission) bool {
	return grants[r][p]
}
