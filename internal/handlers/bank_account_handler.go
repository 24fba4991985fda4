package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"khata/internal/pagination"
	"khata/internal/services"
)

// BankAccountHandler handles bank account and transfer requests.
type BankAccountHandler struct {
	bankAccountService services.BankAccountServicer
	auditService       services.AuditServicer
}

// NewBankAccountHandler creates a new BankAccountHandler.
func NewBankAccountHandler(bankAccountService services.BankAccountServicer, auditService services.AuditServicer) *BankAccountHandler {
	return &BankAccountHandler{bankAccountService: bankAccountService, auditService: auditService}
}

// CreateBankAccountRequest represents the request payload for creating a bank account
type CreateBankAccountRequest struct {
	Name           string          `json:"name" binding:"required,max=100"`
	AccountNumber  string          `json:"account_number" binding:"omitempty,max=34"`
	IFSC           string          `json:"ifsc" binding:"omitempty,ifsc"`
	Currency       string          `json:"currency" binding:"omitempty,iso4217"`
	OpeningBalance decimal.Decimal `json:"opening_balance" swaggertype:"string" example:"0"`
}

// CreateBankAccount handles the creation of a new bank account
// @Summary     Create a bank account
// @Description Create a bank account; its current balance starts at the opening balance
// @Tags        bank-accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBankAccountRequest true "Bank account details"
// @Success     201 {object} models.BankAccount "Bank account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Company not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bank-accounts [post]
func (h *BankAccountHandler) CreateBankAccount(c *gin.Context) {
	companyID, userID, err := scope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	account, err := h.bankAccountService.CreateBankAccount(companyID, req.Name, req.AccountNumber, req.IFSC, req.Currency, req.OpeningBalance)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(companyID, userID, "CREATE_BANK_ACCOUNT", "bank_account", account.ID, c.ClientIP(),
		map[string]interface{}{"name": account.Name, "opening_balance": account.OpeningBalance.StringFixed(2)})

	c.JSON(http.StatusCreated, gin.H{"bank_account": account})
}

// GetBankAccounts handles the retrieval of the company's active bank accounts
// @Summary     List bank accounts
// @Tags        bank-accounts
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.BankAccount] "Paginated bank accounts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bank-accounts [get]
func (h *BankAccountHandler) GetBankAccounts(c *gin.Context) {
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

	result, err := h.bankAccountService.GetCompanyBankAccounts(companyID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBankAccountByID handles the retrieval of a specific bank account
// @Summary     Get bank account by ID
// @Tags        bank-accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Bank account ID"
// @Success     200 {object} models.BankAccount "Bank account details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bank account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bank-accounts/{id} [get]
func (h *BankAccountHandler) GetBankAccountByID(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.bankAccountService.GetBankAccountByID(companyID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bank_account": account})
}

// UpdateBankAccountRequest represents the request payload for updating a bank account
type UpdateBankAccountRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=100"`
	AccountNumber *string `json:"account_number" binding:"omitempty,max=34"`
	IFSC          *string `json:"ifsc" binding:"omitempty,ifsc"`
	IsActive      *bool   `json:"is_active"`
}

// UpdateBankAccount handles updating a bank account
// @Summary     Update bank account
// @Description Update descriptive fields. Balances change only through payments and transfers.
// @Tags        bank-accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                   true "Bank account ID"
// @Param       request body UpdateBankAccountRequest true "Fields to update"
// @Success     200 {object} models.BankAccount "Updated bank account"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bank account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bank-accounts/{id} [put]
func (h *BankAccountHandler) UpdateBankAccount(c *gin.Context) {
	companyID, userID, err := scope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	account, err := h.bankAccountService.UpdateBankAccount(companyID, c.Param("id"), services.BankAccountUpdateFields{
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		IFSC:          req.IFSC,
		IsActive:      req.IsActive,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(companyID, userID, "UPDATE_BANK_ACCOUNT", "bank_account", account.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"bank_account": account})
}

// CreateTransferRequest represents the request payload for creating a transfer
type CreateTransferRequest struct {
	FromBankAccountID string          `json:"from_bank_account_id" binding:"required"`
	ToBankAccountID   string          `json:"to_bank_account_id" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"gt=0" swaggertype:"string" example:"500.00"`
	Description       string          `json:"description" binding:"max=500"`
	Date              *string         `json:"date"`
}

// CreateTransfer handles moving money between two bank accounts
// @Summary     Create a transfer
// @Description Transfer funds from one bank account of the company to another
// @Tags        bank-accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransferRequest true "Transfer details"
// @Success     201 {object} models.BankTransfer "Transfer created"
// @Failure     400 {object} ErrorResponse "Invalid input, same account or insufficient balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bank account not found"
// @Failure     409 {object} ErrorResponse "Concurrent modification, retry"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bank-accounts/transfers [post]
func (h *BankAccountHandler) CreateTransfer(c *gin.Context) {
	companyID, userID, err := scope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	date, err := optionalDate("date", req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transfer, err := h.bankAccountService.CreateTransfer(companyID, req.FromBankAccountID, req.ToBankAccountID, req.Amount, req.Description, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(companyID, userID, "CREATE_TRANSFER", "bank_transfer", transfer.ID, c.ClientIP(),
		map[string]interface{}{
			"from_bank_account_id": transfer.FromBankAccountID,
			"to_bank_account_id":   transfer.ToBankAccountID,
			"amount":               transfer.Amount.StringFixed(2),
		})

	c.JSON(http.StatusCreated, gin.H{"transfer": transfer})
}

// DeleteTransfer handles reversing a transfer
// @Summary     Delete transfer
// @Description Reverse both balance movements of a transfer and soft-delete it
// @Tags        bank-accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transfer ID"
// @Success     200 {object} map[string]string "Transfer deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transfer not found"
// @Failure     409 {object} ErrorResponse "Concurrent modification, retry"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bank-accounts/transfers/{id} [delete]
func (h *BankAccountHandler) DeleteTransfer(c *gin.Context) {
	companyID, userID, err := scope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transferID := c.Param("id")
	if err := h.bankAccountService.DeleteTransfer(companyID, transferID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(companyID, userID, "DELETE_TRANSFER", "bank_transfer", transferID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Transfer deleted successfully"})
}
