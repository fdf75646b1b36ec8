package domain

import "time"

// Role is the single role a user holds. There is no multi-role.
type Role string

const (
	RoleRider  Role = "RIDER"
	RoleDriver Role = "DRIVER"
	RoleAdmin  Role = "ADMIN"
)

// ValidRole reports whether the string is a member of the role enum.
func ValidRole(role Role) bool {
	return role == RoleRider || role == RoleDriver || role == RoleAdmin
}

// Availability is a driver's online/offline flag.
type Availability string

const (
	AvailabilityOnline  Availability = "ONLINE"
	AvailabilityOffline Availability = "OFFLINE"
)

// VehicleType enumerates the supported vehicle categories.
type VehicleType string

const (
	VehicleTypeCar  VehicleType = "car"
	VehicleTypeBike VehicleType = "bike"
	VehicleTypeCNG  VehicleType = "cng"
	VehicleTypeAuto VehicleType = "auto"
)

// Vehicle describes a driver's vehicle.
type Vehicle struct {
	Type  VehicleType
	Model string
	Plate string
}

// DriverRequestStatus is the state of a rider's promotion request.
type DriverRequestStatus string

const (
	DriverRequestPending  DriverRequestStatus = "pending"
	DriverRequestApproved DriverRequestStatus = "approved"
	DriverRequestRejected DriverRequestStatus = "rejected"
)

// DriverRequest is the approval sub-record gating promotion to driver.
type DriverRequest struct {
	Status      DriverRequestStatus
	Vehicle     Vehicle
	RequestedAt time.Time
	ApprovedAt  time.Time // zero unless approved
}

// User is an account record as reported by the platform API.
type User struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	Role          Role
	Blocked       bool
	Availability  Availability   // drivers only
	Vehicle       *Vehicle       // drivers only
	DriverRequest *DriverRequest // set once the user applies to drive
}

// IsDriver reports whether the user holds the driver role.
func (u *User) IsDriver() bool { return u.Role == RoleDriver }

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
