package models

const (
	RoleAdmin    = "Admin"
	RoleResident = "Resident"
	RoleStaff    = "Staff"
)

var Roles = []string{RoleAdmin, RoleResident, RoleStaff}

type User struct {
	Base
	Email        string `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password     string `json:"-" gorm:"column:password_hash;size:255;not null"`
	Role         string `json:"role" gorm:"size:50;not null;index"` // Admin, Resident, Staff
	IsSuperAdmin bool   `json:"is_super_admin"`
	FirstName    string `json:"first_name" gorm:"size:100;not null"`
	LastName     string `json:"last_name" gorm:"size:100;not null"`
	Phone        string `json:"phone" gorm:"size:20"`

	Leases   []Lease   `json:"-" gorm:"foreignKey:ResidentID"`
	Bookings []Booking `json:"-" gorm:"foreignKey:UserID"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
