package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "khata/internal/errors"
	"khata/internal/ledger"
	"khata/internal/models"
	"khata/internal/pagination"
	"khata/internal/services"
)

// ContactHandler handles contact-related requests.
type ContactHandler struct {
	contactService services.ContactServicer
	auditService   services.AuditServicer
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService services.ContactServicer, auditService services.AuditServicer) *ContactHandler {
	return &ContactHandler{contactService: contactService, auditService: auditService}
}

// CreateContactRequest represents the request payload for creating a contact
type CreateContactRequest struct {
	Name               string             `json:"name" binding:"required,max=200"`
	Type               models.ContactType `json:"type" binding:"omitempty,contact_type"`
	Email              string             `json:"email" binding:"omitempty,email"`
	Phone              string             `json:"phone" binding:"omitempty,max=20"`
	OpeningBalance     decimal.Decimal    `json:"opening_balance" binding:"gte=0" swaggertype:"string" example:"0"`
	OpeningBalanceType ledger.BalanceType `json:"opening_balance_type" binding:"omitempty,balance_type"`
}

// CreateContact handles the creation of a new contact
// @Summary     Create a contact
// @Description Create a customer or vendor with an optional opening balance
// @Tags        contacts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateContactRequest true "Contact details"
// @Success     201 {object} models.Contact "Contact created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Company not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts [post]
func (h *ContactHandler) CreateContact(c *gin.Context) {
	companyID, userID, err := scope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	contact, err := h.contactService.CreateContact(companyID, services.ContactInput{
		Name:               req.Name,
		Type:               req.Type,
		Email:              req.Email,
		Phone:              req.Phone,
		OpeningBalance:     req.OpeningBalance,
		OpeningBalanceType: req.OpeningBalanceType,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(companyID, userID, "CREATE_CONTACT", "contact", contact.ID, c.ClientIP(),
		map[string]interface{}{
			"name":                 contact.Name,
			"opening_balance":      contact.OpeningBalance.StringFixed(2),
			"opening_balance_type": contact.OpeningBalanceType,
		})

	c.JSON(http.StatusCreated, gin.H{"contact": contact})
}

// GetContacts handles the retrieval of the company's contacts
// @Summary     List contacts
// @Description Get a paginated list of contacts ordered by name
// @Tags        contacts
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       type      query string false "Filter by contact type (customer, vendor, both)"
// @Success     200 {object} pagination.PageResponse[models.Contact] "Paginated contacts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts [get]
func (h *ContactHandler) GetContacts(c *gin.Context) {
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

	var contactType *models.ContactType
	if v := c.Query("type"); v != "" {
		ct := models.ContactType(v)
		switch ct {
		case models.ContactTypeCustomer, models.ContactTypeVendor, models.ContactTypeBoth:
			contactType = &ct
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type, must be customer, vendor, or both"))
			return
		}
	}

	result, err := h.contactService.GetCompanyContacts(companyID, page, contactType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetContactByID handles the retrieval of a specific contact
// @Summary     Get contact by ID
// @Tags        contacts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Contact ID"
// @Success     200 {object} models.Contact "Contact details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Contact not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts/{id} [get]
func (h *ContactHandler) GetContactByID(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	contact, err := h.contactService.GetContactByID(companyID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact": contact})
}

// GetContactBalance handles computing a contact's balance
// @Summary     Get contact balance
// @Description Compute the contact's net balance from the stored baseline and every pending transaction
// @Tags        contacts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Contact ID"
// @Success     200 {object} ledger.Balance "Balance with breakdown"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Contact not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts/{id}/balance [get]
func (h *ContactHandler) GetContactBalance(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	balance, err := h.contactService.GetContactBalance(companyID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// GetPendingTransactions handles listing what a payment can settle
// @Summary     Get pending transactions
// @Description List the contact's outstanding sales, purchases, expenses and incomes, preceded by a current-balance entry when the balance is not zero
// @Tags        contacts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Contact ID"
// @Success     200 {array}  services.PendingTransaction "Pending transactions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Contact not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts/{id}/pending-transactions [get]
func (h *ContactHandler) GetPendingTransactions(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	pending, err := h.contactService.GetPendingTransactions(companyID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	if pending == nil {
		pending = []services.PendingTransaction{}
	}

	c.JSON(http.StatusOK, gin.H{"transactions": pending})
}
