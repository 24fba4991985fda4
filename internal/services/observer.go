package services

import (
	"go.uber.org/zap"

	"khata/internal/logger"
	"khata/internal/models"
)

// voucherObserver announces that a payment voucher can be (re)generated.
// Document rendering lives outside this service; the log line is the hand-off.
type voucherObserver struct {
	log *zap.SugaredLogger
}

// NewVoucherObserver returns the default PaymentObserver.
func NewVoucherObserver() PaymentObserver {
	return &voucherObserver{log: logger.Named("voucher")}
}

func (o *voucherObserver) PaymentCommitted(event PaymentEvent, payment *models.Payment) error {
	o.log.Infow("payment voucher ready",
		"event", event,
		"payment_id", payment.ID,
		"company_id", payment.CompanyID,
		"contact_id", payment.ContactID,
		"payment_type", payment.PaymentType,
		"amount", payment.Amount.StringFixed(2),
		"allocations", len(payment.Allocations),
	)
	return nil
}
