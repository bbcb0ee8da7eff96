package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/Yns1000/haybank/internal/errors"
	"github.com/Yns1000/haybank/internal/ledger"
	"github.com/Yns1000/haybank/internal/models"
	"github.com/Yns1000/haybank/internal/pagination"
)

func setupTransferRouter(handler *TransferHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("", injectUserID(1))
	g.POST("/transfers", handler.CreateTransfer)
	g.GET("/transfers", handler.GetTransfers)
	g.GET("/transfers/:id", handler.GetTransferByID)
	g.PATCH("/transfers/:id", handler.UpdateTransfer)
	g.DELETE("/transfers/:id", handler.DeleteTransfer)
	return r
}

func TestTransferHandler_Create(t *testing.T) {
	t.Run("returns 201", func(t *testing.T) {
		var got ledger.TransferInput
		svc := &mockTransferService{
			createFn: func(_ uint, in ledger.TransferInput) (*models.Transfer, error) {
				got = in
				return &models.Transfer{Base: models.Base{ID: 2}, Amount: decimal.RequireFromString("120.50")}, nil
			},
		}
		r := setupTransferRouter(NewTransferHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transfers",
			`{"debitAccountId":1,"creditAccountId":2,"amount":"120.50","date":"2024-03-01","categoryId":null}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Amount == nil || got.Amount.String() != "120.5" {
			t.Errorf("expected amount 120.5, got %v", got.Amount)
		}
		if got.CategoryID.Valid {
			t.Error("expected null category")
		}
		transfer := parseJSON(t, rec)["transfer"].(map[string]interface{})
		if transfer["amount"] != 120.5 {
			t.Errorf("expected amount 120.5, got %v", transfer["amount"])
		}
	})

	t.Run("maps validation errors", func(t *testing.T) {
		tests := []struct {
			err    error
			status int
			code   string
		}{
			{apperrors.ErrSameAccountConflict, http.StatusConflict, "SAME_ACCOUNT_CONFLICT"},
			{apperrors.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
			{apperrors.ErrInvalidDate, http.StatusBadRequest, "INVALID_DATE"},
			{apperrors.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		}
		for _, tt := range tests {
			t.Run(tt.code, func(t *testing.T) {
				svc := &mockTransferService{
					createFn: func(_ uint, _ ledger.TransferInput) (*models.Transfer, error) {
						return nil, tt.err
					},
				}
				r := setupTransferRouter(NewTransferHandler(svc, &mockAuditService{}))

				rec := doRequest(r, "POST", "/transfers", `{"debitAccountId":1,"creditAccountId":1}`)

				if rec.Code != tt.status {
					t.Fatalf("expected %d, got %d", tt.status, rec.Code)
				}
				assertErrorCode(t, parseJSON(t, rec), tt.code)
			})
		}
	})
}

func TestTransferHandler_List(t *testing.T) {
	t.Run("returns 204 when empty", func(t *testing.T) {
		r := setupTransferRouter(NewTransferHandler(&mockTransferService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transfers", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("returns 200 with items", func(t *testing.T) {
		svc := &mockTransferService{
			listFn: func(_ uint) (*pagination.Page[models.Transfer], error) {
				return &pagination.Page[models.Transfer]{Items: []models.Transfer{{}}, Total: 1}, nil
			},
		}
		r := setupTransferRouter(NewTransferHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transfers", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rec.Header().Get("X-Total-Count") != "1" {
			t.Errorf("expected X-Total-Count 1, got %q", rec.Header().Get("X-Total-Count"))
		}
	})

	t.Run("rejects a bad page size", func(t *testing.T) {
		r := setupTransferRouter(NewTransferHandler(&mockTransferService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transfers?pageSize=abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransferHandler_Update(t *testing.T) {
	t.Run("returns 304 on a no-op", func(t *testing.T) {
		svc := &mockTransferService{
			updateFn: func(_, _ uint, _ ledger.TransferPatch) (*models.Transfer, error) {
				return nil, apperrors.ErrNotModified
			},
		}
		r := setupTransferRouter(NewTransferHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PATCH", "/transfers/2", `{"amount":120}`)

		if rec.Code != http.StatusNotModified {
			t.Fatalf("expected 304, got %d", rec.Code)
		}
	})

	t.Run("passes the patch through", func(t *testing.T) {
		var got ledger.TransferPatch
		svc := &mockTransferService{
			updateFn: func(_, id uint, patch ledger.TransferPatch) (*models.Transfer, error) {
				got = patch
				return &models.Transfer{Base: models.Base{ID: id}}, nil
			},
		}
		r := setupTransferRouter(NewTransferHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PATCH", "/transfers/2", `{"date":"2024-04-01","counterpartyId":0}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.Date == nil || *got.Date != "2024-04-01" {
			t.Errorf("expected date patch, got %v", got.Date)
		}
		if got.CounterpartyID == nil || *got.CounterpartyID != 0 {
			t.Errorf("expected counterparty cleared, got %v", got.CounterpartyID)
		}
		if got.DebitAccountID != nil {
			t.Error("expected debit account unchanged")
		}
	})

	t.Run("null clears the category", func(t *testing.T) {
		var got ledger.TransferPatch
		svc := &mockTransferService{
			updateFn: func(_, id uint, patch ledger.TransferPatch) (*models.Transfer, error) {
				got = patch
				return &models.Transfer{Base: models.Base{ID: id}}, nil
			},
		}
		r := setupTransferRouter(NewTransferHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PATCH", "/transfers/2", `{"categoryId":null}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.CategoryID == nil || *got.CategoryID != 0 {
			t.Errorf("expected category cleared, got %v", got.CategoryID)
		}
		if got.CounterpartyID != nil {
			t.Error("expected counterparty unchanged")
		}
	})
}

func TestTransferHandler_Delete(t *testing.T) {
	svc := &mockTransferService{
		deleteFn: func(_, _ uint) error {
			return apperrors.ErrTransferInUse
		},
	}
	r := setupTransferRouter(NewTransferHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "DELETE", "/transfers/2", "")

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "TRANSFER_IN_USE")
}
