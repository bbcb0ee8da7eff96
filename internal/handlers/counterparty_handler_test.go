package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Yns1000/haybank/internal/errors"
	"github.com/Yns1000/haybank/internal/models"
	"github.com/Yns1000/haybank/internal/pagination"
)

func setupCounterpartyRouter(handler *CounterpartyHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("", injectUserID(1))
	g.POST("/counterparties", handler.CreateCounterparty)
	g.GET("/counterparties", handler.GetCounterparties)
	g.GET("/counterparties/:id", handler.GetCounterpartyByID)
	g.PATCH("/counterparties/:id", handler.UpdateCounterparty)
	g.DELETE("/counterparties/:id", handler.DeleteCounterparty)
	return r
}

func TestCounterpartyHandler_Create(t *testing.T) {
	t.Run("returns 201 for the caller", func(t *testing.T) {
		var gotUser uint
		audit := &mockAuditService{}
		svc := &mockCounterpartyService{
			createFn: func(userID uint, name string) (*models.Counterparty, error) {
				gotUser = userID
				return &models.Counterparty{Base: models.Base{ID: 5}, Name: name}, nil
			},
		}
		r := setupCounterpartyRouter(NewCounterpartyHandler(svc, audit))

		rec := doRequest(r, "POST", "/counterparties", `{"name":"Grocer"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotUser != 1 {
			t.Errorf("expected user 1, got %d", gotUser)
		}
		cp, ok := parseJSON(t, rec)["counterparty"].(map[string]interface{})
		if !ok || cp["name"] != "Grocer" {
			t.Errorf("expected counterparty Grocer, got %v", cp)
		}
		if len(audit.actions) != 1 || audit.actions[0] != "CREATE_COUNTERPARTY" {
			t.Errorf("expected CREATE_COUNTERPARTY audit, got %v", audit.actions)
		}
	})

	t.Run("returns 409 on a duplicate name", func(t *testing.T) {
		svc := &mockCounterpartyService{
			createFn: func(_ uint, _ string) (*models.Counterparty, error) {
				return nil, apperrors.ErrDuplicateCounterparty
			},
		}
		r := setupCounterpartyRouter(NewCounterpartyHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/counterparties", `{"name":"Grocer"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_COUNTERPARTY")
	})

	t.Run("returns 400 on malformed JSON", func(t *testing.T) {
		r := setupCounterpartyRouter(NewCounterpartyHandler(&mockCounterpartyService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/counterparties", `{"name":`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestCounterpartyHandler_List(t *testing.T) {
	t.Run("returns 204 with a zero total when empty", func(t *testing.T) {
		r := setupCounterpartyRouter(NewCounterpartyHandler(&mockCounterpartyService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/counterparties", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if got := rec.Header().Get("X-Total-Count"); got != "0" {
			t.Errorf("expected X-Total-Count 0, got %q", got)
		}
	})

	t.Run("returns the caller's counterparties", func(t *testing.T) {
		svc := &mockCounterpartyService{
			listFn: func(userID uint) (*pagination.Page[models.Counterparty], error) {
				if userID != 1 {
					t.Errorf("expected user 1, got %d", userID)
				}
				return &pagination.Page[models.Counterparty]{Items: []models.Counterparty{{Name: "Grocer"}}, Total: 1}, nil
			},
		}
		r := setupCounterpartyRouter(NewCounterpartyHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/counterparties", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		items, ok := parseJSON(t, rec)["counterparties"].([]interface{})
		if !ok || len(items) != 1 {
			t.Errorf("expected one counterparty, got %v", items)
		}
	})
}

func TestCounterpartyHandler_Update(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "no-op", err: apperrors.ErrNotModified, wantStatus: http.StatusNotModified},
		{name: "duplicate", err: apperrors.ErrDuplicateCounterparty, wantStatus: http.StatusConflict, wantCode: "DUPLICATE_COUNTERPARTY"},
		{name: "foreign", err: apperrors.ErrForbidden, wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "absent", err: apperrors.ErrCounterpartyNotFound, wantStatus: http.StatusNotFound, wantCode: "COUNTERPARTY_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			audit := &mockAuditService{}
			svc := &mockCounterpartyService{
				updateFn: func(_, _ uint, _ string) (*models.Counterparty, error) { return nil, tt.err },
			}
			r := setupCounterpartyRouter(NewCounterpartyHandler(svc, audit))

			rec := doRequest(r, "PATCH", "/counterparties/5", `{"name":"Grocer"}`)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantCode == "" {
				if rec.Body.Len() != 0 {
					t.Errorf("expected empty body, got %q", rec.Body.String())
				}
			} else {
				assertErrorCode(t, parseJSON(t, rec), tt.wantCode)
			}
			if len(audit.actions) != 0 {
				t.Errorf("expected no audit entry, got %v", audit.actions)
			}
		})
	}
}

func TestCounterpartyHandler_Delete(t *testing.T) {
	t.Run("refuses a referenced counterparty", func(t *testing.T) {
		audit := &mockAuditService{}
		svc := &mockCounterpartyService{
			deleteFn: func(_, _ uint) error { return apperrors.ErrCounterpartyInUse },
		}
		r := setupCounterpartyRouter(NewCounterpartyHandler(svc, audit))

		rec := doRequest(r, "DELETE", "/counterparties/5", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "COUNTERPARTY_IN_USE")
		if len(audit.actions) != 0 {
			t.Errorf("expected no audit entry, got %v", audit.actions)
		}
	})

	t.Run("returns 400 on invalid id", func(t *testing.T) {
		r := setupCounterpartyRouter(NewCounterpartyHandler(&mockCounterpartyService{}, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/counterparties/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
