package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingPending   = "Pending"
	BookingApproved  = "Approved"
	BookingRejected  = "Rejected"
	BookingConfirmed = "Confirmed"
	BookingCancelled = "Cancelled"
)

type TargetKind string

const (
	TargetUnit    TargetKind = "Unit"
	TargetAmenity TargetKind = "Amenity"
)

// BookingTarget is what a booking reserves: exactly one unit or one amenity.
type BookingTarget struct {
	Kind TargetKind
	ID   uuid.UUID
}

func UnitTarget(id uuid.UUID) BookingTarget    { return BookingTarget{Kind: TargetUnit, ID: id} }
func AmenityTarget(id uuid.UUID) BookingTarget { return BookingTarget{Kind: TargetAmenity, ID: id} }

type Booking struct {
	Base
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	UnitID    *uuid.UUID `json:"unit_id,omitempty" gorm:"type:uuid;index"`
	AmenityID *uuid.UUID `json:"amenity_id,omitempty" gorm:"type:uuid;index"`
	StartTime time.Time  `json:"start_time" gorm:"not null"`
	EndTime   time.Time  `json:"end_time" gorm:"not null"`
	Status    string     `json:"status" gorm:"size:50;not null;index"`

	User    *User    `json:"-" gorm:"foreignKey:UserID"`
	Unit    *Unit    `json:"-" gorm:"foreignKey:UnitID"`
	Amenity *Amenity `json:"-" gorm:"foreignKey:AmenityID"`
}

// NewBooking builds a Pending booking whose target columns are fixed for the
// life of the row.
func NewBooking(userID uuid.UUID, target BookingTarget, start, end time.Time) Booking {
	b := Booking{UserID: userID, StartTime: start, EndTime: end, Status: BookingPending}
	id := target.ID
	switch target.Kind {
	case TargetUnit:
		b.UnitID = &id
	case TargetAmenity:
		b.AmenityID = &id
	}
	return b
}

func (b Booking) Target() BookingTarget {
	if b.UnitID != nil {
		return UnitTarget(*b.UnitID)
	}
	if b.AmenityID != nil {
		return AmenityTarget(*b.AmenityID)
	}
	return BookingTarget{}
}

// TargetName is the display name of whatever the booking reserves. The
// matching association must be preloaded.
func (b Booking) TargetName() string {
	switch b.Target().Kind {
	case TargetUnit:
		if b.Unit != nil {
			return b.Unit.UnitNumber
		}
	case TargetAmenity:
		if b.Amenity != nil {
			return b.Amenity.Name
		}
	}
	return ""
}
