package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/Yns1000/haybank/internal/ledger"
	"github.com/Yns1000/haybank/internal/services"
)

// TransferHandler handles transfers between two of the caller's accounts.
type TransferHandler struct {
	transferService services.TransferServicer
	auditService    services.AuditServicer
}

// NewTransferHandler creates a new TransferHandler
func NewTransferHandler(transferService services.TransferServicer, auditService services.AuditServicer) *TransferHandler {
	return &TransferHandler{transferService: transferService, auditService: auditService}
}

// TransferRequest represents the request payload for posting a transfer.
type TransferRequest struct {
	DebitAccountID  *uint            `json:"debitAccountId"`
	CreditAccountID *uint            `json:"creditAccountId"`
	Amount          *decimal.Decimal `json:"amount" swaggertype:"number" example:"120.00"`
	Date            *string          `json:"date" example:"2024-03-01"`
	CounterpartyID  null.Int64       `json:"counterpartyId" swaggertype:"integer"`
	CategoryID      null.Int64       `json:"categoryId" swaggertype:"integer"`
}

// PatchTransferRequest represents a partial transfer update. A
// counterpartyId or categoryId of null or 0 clears the link.
type PatchTransferRequest struct {
	DebitAccountID  *uint            `json:"debitAccountId"`
	CreditAccountID *uint            `json:"creditAccountId"`
	Amount          *decimal.Decimal `json:"amount" swaggertype:"number"`
	Date            *string          `json:"date"`
	CounterpartyID  OptionalID       `json:"counterpartyId" swaggertype:"integer"`
	CategoryID      OptionalID       `json:"categoryId" swaggertype:"integer"`
}

// CreateTransfer posts a transfer
// @Summary     Post a transfer
// @Tags        transfers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransferRequest true "Transfer"
// @Success     201 {object} models.Transfer
// @Failure     400 {object} ErrorResponse "Missing fields, invalid amount or date"
// @Failure     403 {object} ErrorResponse "A leg is not owned"
// @Failure     409 {object} ErrorResponse "Same account on both legs"
// @Router      /transfers [post]
func (h *TransferHandler) CreateTransfer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransferRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	transfer, err := h.transferService.CreateTransfer(ctx, userID, ledger.TransferInput{
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		Amount:          req.Amount,
		Date:            req.Date,
		CounterpartyID:  req.CounterpartyID,
		CategoryID:      req.CategoryID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, userID, "CREATE_TRANSFER", "transfer", transfer.ID, c.ClientIP(),
		map[string]interface{}{
			"debitAccountId":  transfer.DebitAccountID,
			"creditAccountId": transfer.CreditAccountID,
			"amount":          transfer.Amount.StringFixed(2),
		})

	c.JSON(http.StatusCreated, gin.H{"transfer": transfer})
}

// GetTransfers lists transfers touching one of the caller's accounts
// @Summary     List transfers
// @Tags        transfers
// @Produce     json
// @Security    BearerAuth
// @Param       page     query int false "Page number"
// @Param       pageSize query int false "Page size"
// @Success     200 {array} models.Transfer
// @Success     204 "No transfers"
// @Router      /transfers [get]
func (h *TransferHandler) GetTransfers(c *gin.Context) {
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

	transfers, err := h.transferService.ListTransfers(c.Request.Context(), userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondList(c, "transfers", transfers)
}

// GetTransferByID returns one transfer
// @Summary     Get a transfer
// @Tags        transfers
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transfer ID"
// @Success     200 {object} models.Transfer
// @Failure     403 {object} ErrorResponse "No leg owned"
// @Failure     404 {object} ErrorResponse "Transfer not found"
// @Router      /transfers/{id} [get]
func (h *TransferHandler) GetTransferByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transfer, err := h.transferService.GetTransfer(c.Request.Context(), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transfer": transfer})
}

// UpdateTransfer patches a transfer whose two legs the caller owns
// @Summary     Update a transfer
// @Tags        transfers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Transfer ID"
// @Param       request body PatchTransferRequest true "Fields to change"
// @Success     200 {object} models.Transfer
// @Success     304 "Nothing changed"
// @Failure     403 {object} ErrorResponse "A leg is not owned"
// @Failure     404 {object} ErrorResponse "Transfer not found"
// @Failure     409 {object} ErrorResponse "Same account on both legs"
// @Router      /transfers/{id} [patch]
func (h *TransferHandler) UpdateTransfer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PatchTransferRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	transfer, err := h.transferService.UpdateTransfer(ctx, userID, id, ledger.TransferPatch{
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		Amount:          req.Amount,
		Date:            req.Date,
		CounterpartyID:  req.CounterpartyID.patch(),
		CategoryID:      req.CategoryID.patch(),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, userID, "UPDATE_TRANSFER", "transfer", transfer.ID, c.ClientIP(),
		map[string]interface{}{"amount": transfer.Amount.StringFixed(2)})

	c.JSON(http.StatusOK, gin.H{"transfer": transfer})
}

// DeleteTransfer deletes a transfer no movement refers to
// @Summary     Delete a transfer
// @Tags        transfers
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transfer ID"
// @Success     200 {object} MessageResponse
// @Failure     403 {object} ErrorResponse "A leg is not owned"
// @Failure     404 {object} ErrorResponse "Transfer not found"
// @Failure     409 {object} ErrorResponse "Transfer in use"
// @Router      /transfers/{id} [delete]
func (h *TransferHandler) DeleteTransfer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.transferService.DeleteTransfer(ctx, userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, userID, "DELETE_TRANSFER", "transfer", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Transfer deleted"})
}
