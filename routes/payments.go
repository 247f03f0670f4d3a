package routes

import (
	"residency-server/models"
	"residency-server/services"
	"residency-server/storage"
	"residency-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentInput struct {
	LeaseID string          `json:"lease_id" validate:"required,uuid"`
	Amount  decimal.Decimal `json:"amount"`
	Type    string          `json:"type"`
}

func GetPayments(ctx iris.Context) {
	payments, err := services.ListPayments(storage.DB, utils.GetActor(ctx))
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	utils.JSONList(ctx, mapViews(payments, newPaymentView))
}

// MakePayment records a payment as Completed; nothing is charged.
func MakePayment(ctx iris.Context) {
	var input PaymentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	leaseID, err := uuid.Parse(input.LeaseID)
	if err != nil {
		utils.WriteError(ctx, utils.ErrValidation("Invalid lease_id"))
		return
	}

	var payment models.Payment
	err = inTx(func(tx *gorm.DB) error {
		var err error
		payment, err = services.RecordPayment(tx, utils.GetActor(ctx), services.PaymentInput{
			LeaseID: leaseID,
			Amount:  input.Amount,
			Type:    input.Type,
		})
		return err
	})
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	utils.PaymentsRecorded.WithLabelValues(payment.PaymentType).Inc()
	utils.JSONCreated(ctx, "Payment successful", payment.ID)
}
