package routes

import (
	"time"

	"residency-server/models"
	"residency-server/services"
	"residency-server/storage"
	"residency-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// BookingInput names exactly one of unit_id or amenity_id. Amenity bookings
// also carry the slot.
type BookingInput struct {
	UnitID    string     `json:"unit_id" validate:"omitempty,uuid"`
	AmenityID string     `json:"amenity_id" validate:"omitempty,uuid"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

func (in BookingInput) request() (services.BookingRequest, error) {
	var req services.BookingRequest
	switch {
	case in.UnitID != "" && in.AmenityID != "":
		return req, utils.ErrValidation("Provide either unit_id or amenity_id, not both")
	case in.UnitID != "":
		id, err := uuid.Parse(in.UnitID)
		if err != nil {
			return req, utils.ErrValidation("Invalid unit_id")
		}
		req.Target = models.UnitTarget(id)
	case in.AmenityID != "":
		id, err := uuid.Parse(in.AmenityID)
		if err != nil {
			return req, utils.ErrValidation("Invalid amenity_id")
		}
		req.Target = models.AmenityTarget(id)
		if in.StartTime != nil {
			req.Start = *in.StartTime
		}
		if in.EndTime != nil {
			req.End = *in.EndTime
		}
	default:
		return req, utils.ErrValidation("Invalid booking request")
	}
	return req, nil
}

func GetBookings(ctx iris.Context) {
	bookings, err := services.ListBookings(storage.DB, utils.GetActor(ctx))
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	utils.JSONList(ctx, mapViews(bookings, newBookingView))
}

func CreateBooking(ctx iris.Context) {
	var input BookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	req, err := input.request()
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	var booking models.Booking
	err = inTx(func(tx *gorm.DB) error {
		var err error
		booking, err = services.RequestBooking(tx, utils.GetActor(ctx), req)
		return err
	})
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	utils.BookingTransitions.WithLabelValues(booking.Status).Inc()
	utils.JSONCreated(ctx, "Booking requested", booking.ID)
}

func ApproveBooking(ctx iris.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	var approval services.Approval
	err := inTx(func(tx *gorm.DB) error {
		var err error
		approval, err = services.ApproveBooking(tx, utils.GetActor(ctx), id)
		return err
	})
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	utils.BookingTransitions.WithLabelValues(approval.Booking.Status).Inc()
	if approval.Lease != nil {
		ctx.JSON(iris.Map{"message": "Booking approved, Lease created", "id": id, "lease_id": approval.Lease.ID})
		return
	}
	utils.JSONUpdated(ctx, "Booking confirmed", id)
}

func RejectBooking(ctx iris.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	err := inTx(func(tx *gorm.DB) error {
		_, err := services.RejectBooking(tx, utils.GetActor(ctx), id)
		return err
	})
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	utils.BookingTransitions.WithLabelValues(models.BookingRejected).Inc()
	utils.JSONUpdated(ctx, "Booking rejected", id)
}

func CancelBooking(ctx iris.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	err := inTx(func(tx *gorm.DB) error {
		_, err := services.CancelBooking(tx, utils.GetActor(ctx), id)
		return err
	})
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	utils.BookingTransitions.WithLabelValues(models.BookingCancelled).Inc()
	utils.JSONUpdated(ctx, "Booking cancelled", id)
}
