package services

import (
	"errors"
	"time"

	"residency-server/models"
	"residency-server/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LeaseTerm is the length of a unit booking request and of the lease created
// when it is approved.
const LeaseTerm = 365 * 24 * time.Hour

// DefaultMonthlyRent is the lease rent for units without a monthly_rent.
var DefaultMonthlyRent = decimal.NewFromInt(1000)

var now = func() time.Time { return time.Now().UTC() }

// BookingRequest selects exactly one target. Unit requests ignore Start and
// End and cover LeaseTerm from the moment of the request.
type BookingRequest struct {
	Target models.BookingTarget
	Start  time.Time
	End    time.Time
}

// RequestBooking records a Pending booking for the actor. A resident may hold
// only one Pending booking per target.
func RequestBooking(db *gorm.DB, actor utils.Actor, req BookingRequest) (models.Booking, error) {
	if err := utils.Authorize(actor, utils.Authenticated); err != nil {
		return models.Booking{}, err
	}

	start, end := req.Start, req.End
	switch req.Target.Kind {
	case models.TargetUnit:
		var unit models.Unit
		if err := db.First(&unit, "id = ?", req.Target.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Booking{}, utils.ErrNotFound("Unit not found")
			}
			return models.Booking{}, err
		}
		if unit.Status != models.UnitVacant {
			return models.Booking{}, utils.ErrState("Unit not available")
		}
		start = now()
		end = start.Add(LeaseTerm)

	case models.TargetAmenity:
		var amenity models.Amenity
		if err := db.First(&amenity, "id = ?", req.Target.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Booking{}, utils.ErrNotFound("Amenity not found")
			}
			return models.Booking{}, err
		}
		if !amenity.IsBookable {
			return models.Booking{}, utils.ErrState("Amenity is not bookable")
		}
		if start.IsZero() || end.IsZero() {
			return models.Booking{}, utils.ErrValidation("start_time and end_time are required for amenity bookings")
		}
		if !start.Before(end) {
			return models.Booking{}, utils.ErrValidation("start_time must be before end_time")
		}

	default:
		return models.Booking{}, utils.ErrValidation("Invalid booking request")
	}

	pending, err := hasPendingBooking(db, actor.ID, req.Target)
	if err != nil {
		return models.Booking{}, err
	}
	if pending {
		return models.Booking{}, utils.ErrConflict("You already have a pending booking for this target")
	}

	booking := models.NewBooking(actor.ID, req.Target, start.UTC(), end.UTC())
	if err := db.Create(&booking).Error; err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

// Approval is the outcome of ApproveBooking. Lease is nil for amenity
// bookings.
type Approval struct {
	Booking models.Booking
	Lease   *models.Lease
}

// ApproveBooking moves a Pending booking forward. For a unit it creates the
// lease and marks the unit Occupied; for an amenity it confirms the slot. The
// status change is conditional on the row still being Pending, so a second
// approval of the same booking changes nothing and fails.
func ApproveBooking(db *gorm.DB, actor utils.Actor, id uuid.UUID) (Approval, error) {
	if err := utils.Authorize(actor, utils.AdminOnly); err != nil {
		return Approval{}, err
	}

	booking, err := loadBooking(db, id)
	if err != nil {
		return Approval{}, err
	}
	if booking.Status != models.BookingPending {
		return Approval{}, notPending()
	}

	target := booking.Target()
	switch target.Kind {
	case models.TargetUnit:
		return approveUnitBooking(db, actor, booking)
	case models.TargetAmenity:
		if err := transition(db, &booking, models.BookingConfirmed); err != nil {
			return Approval{}, err
		}
		RecordAudit(db, actor, ActionApproveBooking, &booking.ID, map[string]string{
			"type":    string(target.Kind),
			"amenity": target.ID.String(),
		})
		return Approval{Booking: booking}, nil
	default:
		return Approval{}, utils.ErrState("Booking has no target")
	}
}

func approveUnitBooking(db *gorm.DB, actor utils.Actor, booking models.Booking) (Approval, error) {
	var unit models.Unit
	if err := db.First(&unit, "id = ?", *booking.UnitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Approval{}, utils.ErrNotFound("Unit not found")
		}
		return Approval{}, err
	}
	if unit.Status != models.UnitVacant {
		return Approval{}, utils.ErrState("Unit is no longer vacant")
	}

	if err := transition(db, &booking, models.BookingApproved); err != nil {
		return Approval{}, err
	}

	occupied := db.Model(&models.Unit{}).
		Where("id = ? AND status = ?", unit.ID, models.UnitVacant).
		Update("status", models.UnitOccupied)
	if occupied.Error != nil {
		return Approval{}, occupied.Error
	}
	if occupied.RowsAffected != 1 {
		return Approval{}, utils.ErrState("Unit is no longer vacant")
	}

	rent := unit.MonthlyRent
	if !rent.IsPositive() {
		rent = DefaultMonthlyRent
	}
	today := startOfDay(now())
	bookingID := booking.ID
	lease := models.Lease{
		UnitID:     unit.ID,
		ResidentID: booking.UserID,
		BookingID:  &bookingID,
		StartDate:  today,
		EndDate:    today.Add(LeaseTerm),
		RentAmount: rent,
		Status:     models.LeaseActive,
	}
	if err := db.Create(&lease).Error; err != nil {
		return Approval{}, conflictOr(err, "A lease already exists for this booking")
	}

	RecordAudit(db, actor, ActionApproveBooking, &booking.ID, map[string]string{
		"type":     string(models.TargetUnit),
		"unit":     unit.UnitNumber,
		"lease_id": lease.ID.String(),
		"rent":     rent.StringFixed(2),
	})
	return Approval{Booking: booking, Lease: &lease}, nil
}

// RejectBooking is allowed only from Pending.
func RejectBooking(db *gorm.DB, actor utils.Actor, id uuid.UUID) (models.Booking, error) {
	if err := utils.Authorize(actor, utils.AdminOnly); err != nil {
		return models.Booking{}, err
	}

	booking, err := loadBooking(db, id)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.Status != models.BookingPending {
		return models.Booking{}, notPending()
	}
	if err := transition(db, &booking, models.BookingRejected); err != nil {
		return models.Booking{}, err
	}

	RecordAudit(db, actor, ActionRejectBooking, &booking.ID, map[string]string{
		"type": string(booking.Target().Kind),
	})
	return booking, nil
}

// CancelBooking lets the author withdraw a booking that is still Pending.
func CancelBooking(db *gorm.DB, actor utils.Actor, id uuid.UUID) (models.Booking, error) {
	if err := utils.Authorize(actor, utils.Authenticated); err != nil {
		return models.Booking{}, err
	}

	booking, err := loadBooking(db, id)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.UserID != actor.ID {
		return models.Booking{}, utils.ErrForbidden("Only the requester can cancel a booking")
	}
	if booking.Status != models.BookingPending {
		return models.Booking{}, notPending()
	}
	if err := transition(db, &booking, models.BookingCancelled); err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

// ListBookings returns every booking to admins and only their own to anyone
// else, newest first, with the target and requester preloaded.
func ListBookings(db *gorm.DB, actor utils.Actor) ([]models.Booking, error) {
	if err := utils.Authorize(actor, utils.Authenticated); err != nil {
		return nil, err
	}

	query := db.Preload("User").Preload("Unit").Preload("Amenity").Order("created_at DESC")
	if !actor.IsAdmin() {
		query = query.Where("user_id = ?", actor.ID)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func hasPendingBooking(db *gorm.DB, userID uuid.UUID, target models.BookingTarget) (bool, error) {
	query := db.Model(&models.Booking{}).Where("user_id = ? AND status = ?", userID, models.BookingPending)
	switch target.Kind {
	case models.TargetUnit:
		query = query.Where("unit_id = ?", target.ID)
	case models.TargetAmenity:
		query = query.Where("amenity_id = ?", target.ID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// transition moves a Pending booking to status. Zero affected rows means
// another request got there first.
func transition(db *gorm.DB, booking *models.Booking, status string) error {
	res := db.Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, models.BookingPending).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return notPending()
	}
	booking.Status = status
	return nil
}

func loadBooking(db *gorm.DB, id uuid.UUID) (models.Booking, error) {
	var booking models.Booking
	if err := db.First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return booking, utils.ErrNotFound("Booking not found")
		}
		return booking, err
	}
	return booking, nil
}

func notPending() error {
	return utils.ErrState("Booking not pending")
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
