package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yns1000/haybank/internal/services"
)

// AccountHandler handles account-related requests.
type AccountHandler struct {
	accountService services.AccountServicer
	auditService   services.AuditServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer, auditService services.AuditServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService, auditService: auditService}
}

// CreateAccountRequest represents the request payload for creating an account
type CreateAccountRequest struct {
	Description string `json:"description" binding:"max=255"`
	BankName    string `json:"bankName" binding:"max=255"`
}

// UpdateAccountRequest represents the request payload for updating an account.
type UpdateAccountRequest struct {
	Description *string `json:"description" binding:"omitempty,max=255"`
	BankName    *string `json:"bankName" binding:"omitempty,max=255"`
}

// CreateAccount handles the creation of a new account
// @Summary     Create an account
// @Description Create a new account for the authenticated user
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAccountRequest true "Account details"
// @Success     201 {object} models.Account "Account created"
// @Failure     400 {object} ErrorResponse "Missing fields"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate account"
// @Router      /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAccountRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	account, err := h.accountService.CreateAccount(ctx, userID, req.Description, req.BankName)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, userID, "CREATE_ACCOUNT", "account", account.ID, c.ClientIP(),
		map[string]interface{}{"description": account.Description, "bankName": account.BankName})

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// GetUserAccounts lists the caller's accounts
// @Summary     List accounts
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       page     query int false "Page number"
// @Param       pageSize query int false "Page size"
// @Success     200 {array}  models.Account
// @Success     204 "No accounts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /accounts [get]
func (h *AccountHandler) GetUserAccounts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondList(c, "accounts", accounts)
}

// GetAccountByID returns one of the caller's accounts
// @Summary     Get an account
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account ID"
// @Success     200 {object} models.Account
// @Failure     403 {object} ErrorResponse "Not owned"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /accounts/{id} [get]
func (h *AccountHandler) GetAccountByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), userID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": account})
}

// UpdateAccount updates one of the caller's accounts
// @Summary     Update an account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Account ID"
// @Param       request body UpdateAccountRequest true "Fields to change"
// @Success     200 {object} models.Account
// @Success     304 "Nothing changed"
// @Failure     403 {object} ErrorResponse "Not owned"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     409 {object} ErrorResponse "Duplicate account"
// @Router      /accounts/{id} [patch]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAccountRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	account, err := h.accountService.UpdateAccount(ctx, userID, accountID, services.AccountUpdate{
		Description: req.Description,
		BankName:    req.BankName,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, userID, "UPDATE_ACCOUNT", "account", account.ID, c.ClientIP(),
		map[string]interface{}{"description": account.Description, "bankName": account.BankName})

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// DeleteAccount deletes one of the caller's accounts
// @Summary     Delete an account
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account ID"
// @Success     200 {object} MessageResponse
// @Failure     403 {object} ErrorResponse "Not owned"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     409 {object} ErrorResponse "Account in use"
// @Router      /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.accountService.DeleteAccount(ctx, userID, accountID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, userID, "DELETE_ACCOUNT", "account", accountID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Account deleted"})
}
