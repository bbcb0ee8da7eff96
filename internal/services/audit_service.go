package services

import (
	"context"
	"encoding/json"

	"github.com/Yns1000/haybank/internal/logger"
	"github.com/Yns1000/haybank/internal/models"
	"github.com/Yns1000/haybank/internal/store"
)

// auditService handles audit log recording.
type auditService struct {
	store *store.Gateway
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(gw *store.Gateway) AuditServicer {
	return &auditService{store: gw}
}

// Log records an audit event. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *auditService) Log(ctx context.Context, userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{}) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}

	if _, err := s.store.Insert(ctx, entry); err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}
