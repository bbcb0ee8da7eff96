package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yns1000/haybank/internal/services"
)

// CounterpartyHandler handles counterparty requests.
type CounterpartyHandler struct {
	counterpartyService services.CounterpartyServicer
	auditService        services.AuditServicer
}

// NewCounterpartyHandler creates a new CounterpartyHandler
func NewCounterpartyHandler(counterpartyService services.CounterpartyServicer, auditService services.AuditServicer) *CounterpartyHandler {
	return &CounterpartyHandler{counterpartyService: counterpartyService, auditService: auditService}
}

// CounterpartyRequest represents the request payload for creating or renaming a counterparty.
type CounterpartyRequest struct {
	Name string `json:"name" binding:"max=255"`
}

// CreateCounterparty handles creation of a counterparty
// @Summary     Create a counterparty
// @Tags        counterparties
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CounterpartyRequest true "Counterparty"
// @Success     201 {object} models.Counterparty
// @Failure     400 {object} ErrorResponse "Name missing"
// @Failure     409 {object} ErrorResponse "Duplicate counterparty"
// @Router      /counterparties [post]
func (h *CounterpartyHandler) CreateCounterparty(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CounterpartyRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	cp, err := h.counterpartyService.CreateCounterparty(ctx, userID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, userID, "CREATE_COUNTERPARTY", "counterparty", cp.ID, c.ClientIP(),
		map[string]interface{}{"name": cp.Name})

	c.JSON(http.StatusCreated, gin.H{"counterparty": cp})
}

// GetCounterparties lists the caller's counterparties
// @Summary     List counterparties
// @Tags        counterparties
// @Produce     json
// @Security    BearerAuth
// @Param       page     query int false "Page number"
// @Param       pageSize query int false "Page size"
// @Success     200 {array} models.Counterparty
// @Success     204 "No counterparties"
// @Router      /counterparties [get]
func (h *CounterpartyHandler) GetCounterparties(c *gin.Context) {
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

	cps, err := h.counterpartyService.ListCounterparties(c.Request.Context(), userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondList(c, "counterparties", cps)
}

// GetCounterpartyByID returns one of the caller's counterparties
// @Summary     Get a counterparty
// @Tags        counterparties
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Counterparty ID"
// @Success     200 {object} models.Counterparty
// @Failure     403 {object} ErrorResponse "Not owned"
// @Failure     404 {object} ErrorResponse "Counterparty not found"
// @Router      /counterparties/{id} [get]
func (h *CounterpartyHandler) GetCounterpartyByID(c *gin.Context) {
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

	cp, err := h.counterpartyService.GetCounterparty(c.Request.Context(), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counterparty": cp})
}

// UpdateCounterparty renames one of the caller's counterparties
// @Summary     Rename a counterparty
// @Tags        counterparties
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                 true "Counterparty ID"
// @Param       request body CounterpartyRequest true "New name"
// @Success     200 {object} models.Counterparty
// @Success     304 "Same name"
// @Failure     403 {object} ErrorResponse "Not owned"
// @Failure     404 {object} ErrorResponse "Counterparty not found"
// @Failure     409 {object} ErrorResponse "Duplicate counterparty"
// @Router      /counterparties/{id} [patch]
func (h *CounterpartyHandler) UpdateCounterparty(c *gin.Context) {
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

	var req CounterpartyRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	cp, err := h.counterpartyService.UpdateCounterparty(ctx, userID, id, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, userID, "UPDATE_COUNTERPARTY", "counterparty", cp.ID, c.ClientIP(),
		map[string]interface{}{"name": cp.Name})

	c.JSON(http.StatusOK, gin.H{"counterparty": cp})
}

// DeleteCounterparty deletes an unreferenced counterparty
// @Summary     Delete a counterparty
// @Tags        counterparties
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Counterparty ID"
// @Success     200 {object} MessageResponse
// @Failure     403 {object} ErrorResponse "Not owned"
// @Failure     404 {object} ErrorResponse "Counterparty not found"
// @Failure     409 {object} ErrorResponse "Counterparty in use"
// @Router      /counterparties/{id} [delete]
func (h *CounterpartyHandler) DeleteCounterparty(c *gin.Context) {
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
	if err := h.counterpartyService.DeleteCounterparty(ctx, userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, userID, "DELETE_COUNTERPARTY", "counterparty", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Counterparty deleted"})
}
