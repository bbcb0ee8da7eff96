package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/Yns1000/haybank/internal/ledger"
	"github.com/Yns1000/haybank/internal/models"
	"github.com/Yns1000/haybank/internal/services"
)

// MovementHandler handles movement posting and queries.
type MovementHandler struct {
	movementService services.MovementServicer
	auditService    services.AuditServicer
}

// NewMovementHandler creates a new MovementHandler
func NewMovementHandler(movementService services.MovementServicer, auditService services.AuditServicer) *MovementHandler {
	return &MovementHandler{movementService: movementService, auditService: auditService}
}

// MovementRequest represents the request payload for posting a movement.
// Presence and format checks are left to the ledger so that each failure
// keeps its own error code.
type MovementRequest struct {
	Date           *string          `json:"date" example:"2024-01-05"`
	AccountID      *uint            `json:"accountId"`
	CounterpartyID *uint            `json:"counterpartyId"`
	CategoryID     *uint            `json:"categoryId"`
	SubCategoryID  null.Int64       `json:"subCategoryId" swaggertype:"integer"`
	TransferID     null.Int64       `json:"transferId" swaggertype:"integer"`
	Amount         *decimal.Decimal `json:"amount" swaggertype:"number" example:"-50.00"`
	Type           *string          `json:"type" example:"D"`
}

func (r MovementRequest) input() ledger.MovementInput {
	return ledger.MovementInput{
		Date:           r.Date,
		AccountID:      r.AccountID,
		CounterpartyID: r.CounterpartyID,
		CategoryID:     r.CategoryID,
		SubCategoryID:  r.SubCategoryID,
		TransferID:     r.TransferID,
		Amount:         r.Amount,
		Type:           r.Type,
	}
}

// PatchMovementRequest represents a partial movement update. A
// subCategoryId or transferId of null or 0 clears the link.
type PatchMovementRequest struct {
	Date           *string          `json:"date"`
	AccountID      *uint            `json:"accountId"`
	CounterpartyID *uint            `json:"counterpartyId"`
	CategoryID     *uint            `json:"categoryId"`
	SubCategoryID  OptionalID       `json:"subCategoryId" swaggertype:"integer"`
	TransferID     OptionalID       `json:"transferId" swaggertype:"integer"`
	Amount         *decimal.Decimal `json:"amount" swaggertype:"number"`
	Type           *string          `json:"type"`
}

func (r PatchMovementRequest) patch() ledger.MovementPatch {
	return ledger.MovementPatch{
		Date:           r.Date,
		AccountID:      r.AccountID,
		CounterpartyID: r.CounterpartyID,
		CategoryID:     r.CategoryID,
		SubCategoryID:  r.SubCategoryID.patch(),
		TransferID:     r.TransferID.patch(),
		Amount:         r.Amount,
		Type:           r.Type,
	}
}

// MovementQuery holds the list filters.
type MovementQuery struct {
	AccountID *uint   `form:"accountId" binding:"omitempty,gt=0"`
	Type      *string `form:"type" binding:"omitempty,movement_type"`
	From      *string `form:"from" binding:"omitempty,iso_date"`
	To        *string `form:"to" binding:"omitempty,iso_date"`
}

func (q MovementQuery) filter() (services.MovementFilter, error) {
	filter := services.MovementFilter{AccountID: q.AccountID}
	if q.Type != nil {
		t := models.MovementType(*q.Type)
		filter.Type = &t
	}
	if q.From != nil {
		from, err := ledger.ParseDate(*q.From)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if q.To != nil {
		to, err := ledger.ParseDate(*q.To)
		if err != nil {
			return filter, err
		}
		filter.To = &to
	}
	return filter, nil
}

// MovementResponse wraps a movement with the optional sign advisory.
type MovementResponse struct {
	Movement *models.Movement `json:"movement"`
	Advisory string           `json:"advisory,omitempty"`
}

func (h *MovementHandler) bindFilter(c *gin.Context) (services.MovementFilter, error) {
	var query MovementQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return services.MovementFilter{}, invalidQuery(err)
	}
	return query.filter()
}

// CreateMovement posts a movement on one of the caller's accounts
// @Summary     Post a movement
// @Description A debit with a positive amount (or a credit with a negative one) is stored with the sign flipped and an advisory is returned.
// @Tags        movements
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body MovementRequest true "Movement"
// @Success     201 {object} MovementResponse
// @Failure     400 {object} ErrorResponse "Missing fields, invalid amount or date"
// @Failure     403 {object} ErrorResponse "Account not owned"
// @Failure     404 {object} ErrorResponse "Referenced resource not found"
// @Failure     409 {object} ErrorResponse "Invalid type"
// @Router      /movements [post]
func (h *MovementHandler) CreateMovement(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req MovementRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	result, err := h.movementService.CreateMovement(ctx, userID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	m := result.Movement
	h.auditService.Log(ctx, userID, "CREATE_MOVEMENT", "movement", m.ID, c.ClientIP(),
		map[string]interface{}{
			"accountId": m.AccountID,
			"amount":    m.Amount.StringFixed(2),
			"type":      string(m.Type),
			"date":      ledger.FormatDate(m.Date),
		})

	c.JSON(http.StatusCreated, MovementResponse{Movement: m, Advisory: result.Advisory})
}

// GetMovements lists the caller's movements
// @Summary     List movements
// @Tags        movements
// @Produce     json
// @Security    BearerAuth
// @Param       accountId query int    false "Account filter"
// @Param       type      query string false "D or C"
// @Param       from      query string false "First day (YYYY-MM-DD)"
// @Param       to        query string false "Last day (YYYY-MM-DD)"
// @Param       page      query int    false "Page number"
// @Param       pageSize  query int    false "Page size"
// @Success     200 {array} models.Movement
// @Success     204 "No movements"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Router      /movements [get]
func (h *MovementHandler) GetMovements(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := h.bindFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	movements, err := h.movementService.ListMovements(c.Request.Context(), userID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondList(c, "movements", movements)
}

// GetAccountMovements lists the movements of one owned account
// @Summary     List account movements
// @Tags        movements
// @Produce     json
// @Security    BearerAuth
// @Param       id       path  int    true  "Account ID"
// @Param       type     query string false "D or C"
// @Param       from     query string false "First day (YYYY-MM-DD)"
// @Param       to       query string false "Last day (YYYY-MM-DD)"
// @Param       page     query int    false "Page number"
// @Param       pageSize query int    false "Page size"
// @Success     200 {array} models.Movement
// @Success     204 "No movements"
// @Failure     403 {object} ErrorResponse "Account not owned"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /accounts/{id}/movements [get]
func (h *MovementHandler) GetAccountMovements(c *gin.Context) {
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

	filter, err := h.bindFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	movements, err := h.movementService.ListAccountMovements(c.Request.Context(), userID, accountID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondList(c, "movements", movements)
}

// GetMovementByID returns one movement
// @Summary     Get a movement
// @Tags        movements
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Movement ID"
// @Success     200 {object} models.Movement
// @Failure     403 {object} ErrorResponse "Not owned"
// @Failure     404 {object} ErrorResponse "Movement not found"
// @Router      /movements/{id} [get]
func (h *MovementHandler) GetMovementByID(c *gin.Context) {
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

	movement, err := h.movementService.GetMovement(c.Request.Context(), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"movement": movement})
}

// UpdateMovement patches one movement
// @Summary     Update a movement
// @Tags        movements
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Movement ID"
// @Param       request body PatchMovementRequest true "Fields to change"
// @Success     200 {object} MovementResponse
// @Success     304 "Nothing changed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Not owned"
// @Failure     404 {object} ErrorResponse "Movement not found"
// @Router      /movements/{id} [patch]
func (h *MovementHandler) UpdateMovement(c *gin.Context) {
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

	var req PatchMovementRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	result, err := h.movementService.UpdateMovement(ctx, userID, id, req.patch())
	if err != nil {
		respondWithError(c, err)
		return
	}

	m := result.Movement
	h.auditService.Log(ctx, userID, "UPDATE_MOVEMENT", "movement", m.ID, c.ClientIP(),
		map[string]interface{}{"amount": m.Amount.StringFixed(2), "type": string(m.Type)})

	c.JSON(http.StatusOK, MovementResponse{Movement: m, Advisory: result.Advisory})
}

// DeleteMovement deletes one movement
// @Summary     Delete a movement
// @Tags        movements
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Movement ID"
// @Success     200 {object} MessageResponse
// @Failure     403 {object} ErrorResponse "Not owned"
// @Failure     404 {object} ErrorResponse "Movement not found"
// @Router      /movements/{id} [delete]
func (h *MovementHandler) DeleteMovement(c *gin.Context) {
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
	if err := h.movementService.DeleteMovement(ctx, userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, userID, "DELETE_MOVEMENT", "movement", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Movement deleted"})
}
