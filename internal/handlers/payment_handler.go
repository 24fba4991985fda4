package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "khata/internal/errors"
	"khata/internal/ledger"
	"khata/internal/pagination"
	"khata/internal/services"
	"khata/internal/uuid"
)

// PaymentHandler handles payment-related requests.
type PaymentHandler struct {
	paymentService services.PaymentServicer
	auditService   services.AuditServicer
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService services.PaymentServicer, auditService services.AuditServicer) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, auditService: auditService}
}

// AllocationRequest is one allocation of a payment. transaction_id is a
// transaction UUID or "current-balance".
type AllocationRequest struct {
	TransactionID   string             `json:"transaction_id" binding:"required"`
	TransactionType ledger.Kind        `json:"transaction_type" binding:"omitempty,allocation_type"`
	Type            ledger.BalanceType `json:"type" binding:"required,balance_type"`
	PaidAmount      decimal.Decimal    `json:"paid_amount" swaggertype:"string" example:"1000.00"`
	Amount          decimal.Decimal    `json:"amount" swaggertype:"string" example:"1000.00"`
}

// PaymentRequest represents the request payload for creating or replacing a
// payment.
type PaymentRequest struct {
	ContactID       string              `json:"contact_id" binding:"required"`
	BankAccountID   string              `json:"bank_account_id" binding:"required"`
	Date            *string             `json:"date"`
	Allocations     []AllocationRequest `json:"allocations" binding:"dive"`
	AdjustmentType  string              `json:"adjustment_type" example:"discount"`
	AdjustmentValue decimal.Decimal     `json:"adjustment_value" swaggertype:"string" example:"0"`
	Description     string              `json:"description" binding:"max=500"`
}

func (r PaymentRequest) input() (services.PaymentInput, error) {
	date, err := optionalDate("date", r.Date)
	if err != nil {
		return services.PaymentInput{}, err
	}
	in := services.PaymentInput{
		ContactID:       r.ContactID,
		BankAccountID:   r.BankAccountID,
		Date:            date,
		AdjustmentType:  r.AdjustmentType,
		AdjustmentValue: r.AdjustmentValue,
		Description:     r.Description,
		Allocations:     make([]services.AllocationInput, 0, len(r.Allocations)),
	}
	for _, a := range r.Allocations {
		in.Allocations = append(in.Allocations, services.AllocationInput{
			TransactionID:   a.TransactionID,
			TransactionType: a.TransactionType,
			Type:            a.Type,
			PaidAmount:      a.PaidAmount,
			Amount:          a.Amount,
		})
	}
	return in, nil
}

func (h *PaymentHandler) bind(c *gin.Context) (services.PaymentInput, error) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return services.PaymentInput{}, bindError(err)
	}
	return req.input()
}

// CreatePayment handles the creation of a new payment
// @Summary     Create a payment
// @Description Settle one or more outstanding transactions and/or the contact's current balance with a single payment or receipt
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PaymentRequest true "Payment details"
// @Success     201 {object} models.Payment "Payment created"
// @Failure     400 {object} ErrorResponse "Invalid input, allocation or adjustment"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Contact, bank account or transaction not found"
// @Failure     409 {object} ErrorResponse "Concurrent modification, retry"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	companyID, userID, err := scope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	in, err := h.bind(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.paymentService.CreatePayment(companyID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(companyID, userID, "CREATE_PAYMENT", "payment", payment.ID, c.ClientIP(),
		map[string]interface{}{
			"contact_id":   payment.ContactID,
			"payment_type": payment.PaymentType,
			"amount":       payment.Amount.StringFixed(2),
			"allocations":  len(payment.Allocations),
		})

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// GetPayments handles the retrieval of the company's payments
// @Summary     List payments
// @Description Get a paginated list of payments with optional filters, newest first
// @Tags        payments
// @Produce     json
// @Security    BearerAuth
// @Param       page            query int    false "Page number (default 1)"
// @Param       page_size       query int    false "Items per page (default 20, max 100)"
// @Param       contact_id      query string false "Filter by contact ID"
// @Param       bank_account_id query string false "Filter by bank account ID"
// @Param       payment_type    query string false "Filter by payment type (payment, receipt)"
// @Param       from_date       query string false "Filter by start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date         query string false "Filter by end date (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} pagination.PageResponse[models.Payment] "Paginated payments"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments [get]
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	filter, err := parsePaymentFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.paymentService.GetCompanyPayments(companyID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parsePaymentFilter(c *gin.Context) (services.PaymentFilter, error) {
	var filter services.PaymentFilter

	for param, dst := range map[string]**string{
		"contact_id":      &filter.ContactID,
		"bank_account_id": &filter.BankAccountID,
	} {
		if v := c.Query(param); v != "" {
			if !uuid.IsValid(v) {
				return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid "+param)
			}
			id := v
			*dst = &id
		}
	}

	if v := c.Query("payment_type"); v != "" {
		pt := ledger.PaymentType(v)
		if !pt.Valid() {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid payment_type, must be payment or receipt")
		}
		filter.PaymentType = &pt
	}

	if v := c.Query("from_date"); v != "" {
		t, err := parseDate("from_date", v)
		if err != nil {
			return filter, err
		}
		filter.FromDate = &t
	}

	if v := c.Query("to_date"); v != "" {
		t, err := parseDate("to_date", v)
		if err != nil {
			return filter, err
		}
		filter.ToDate = &t
	}

	return filter, nil
}

// GetPaymentByID handles the retrieval of a specific payment
// @Summary     Get payment by ID
// @Description Get a payment with its allocations
// @Tags        payments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Payment ID"
// @Success     200 {object} models.Payment "Payment details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments/{id} [get]
func (h *PaymentHandler) GetPaymentByID(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.paymentService.GetPaymentByID(companyID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// UpdatePayment handles replacing a payment
// @Summary     Update payment
// @Description Reverse the payment's previous settlement and settle the new details in its place. Omitting date keeps the original date.
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Payment ID"
// @Param       request body PaymentRequest true "Replacement payment details"
// @Success     200 {object} models.Payment "Updated payment"
// @Failure     400 {object} ErrorResponse "Invalid input, allocation or adjustment"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment, contact, bank account or transaction not found"
// @Failure     409 {object} ErrorResponse "Payment deleted or concurrent modification"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments/{id} [put]
func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	companyID, userID, err := scope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	in, err := h.bind(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.paymentService.UpdatePayment(companyID, c.Param("id"), in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(companyID, userID, "UPDATE_PAYMENT", "payment", payment.ID, c.ClientIP(),
		map[string]interface{}{
			"contact_id":   payment.ContactID,
			"payment_type": payment.PaymentType,
			"amount":       payment.Amount.StringFixed(2),
			"allocations":  len(payment.Allocations),
		})

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// DeletePayment handles deleting a payment
// @Summary     Delete payment
// @Description Reverse every effect of the payment and soft-delete it
// @Tags        payments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Payment ID"
// @Success     200 {object} map[string]interface{} "Payment deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment not found"
// @Failure     409 {object} ErrorResponse "Payment already deleted or concurrent modification"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments/{id} [delete]
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	companyID, userID, err := scope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	payment, err := h.paymentService.DeletePayment(companyID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(companyID, userID, "DELETE_PAYMENT", "payment", payment.ID, c.ClientIP(),
		map[string]interface{}{
			"contact_id":  payment.ContactID,
			"amount":      payment.Amount.StringFixed(2),
			"allocations": len(payment.Allocations),
		})

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully", "payment": payment})
}
