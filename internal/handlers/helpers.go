package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/volatiletech/null"

	apperrors "github.com/Yns1000/haybank/internal/errors"
	"github.com/Yns1000/haybank/internal/logger"
	"github.com/Yns1000/haybank/internal/pagination"
)

// ErrorBody is the payload of an error response.
type ErrorBody struct {
	Code    string `json:"code" example:"FORBIDDEN"`
	Message string `json:"message" example:"Access denied"`
}

// ErrorResponse is the envelope of every error response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// MessageResponse is a plain confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// OptionalID is a PATCH link field. It tells an absent key from an explicit
// null; null and values <= 0 both clear the link.
type OptionalID struct {
	Set   bool
	Value null.Int64
}

// UnmarshalJSON implements json.Unmarshaler. It also runs for a JSON null.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	return o.Value.UnmarshalJSON(data)
}

// patch returns nil when the key was absent and 0 when it clears the link.
func (o OptionalID) patch() *int64 {
	if !o.Set {
		return nil
	}
	var id int64
	if o.Value.Valid {
		id = o.Value.Int64
	}
	return &id
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (uint, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return 0, apperrors.ErrUnauthorized
	}
	id, ok := userID.(uint)
	if !ok {
		return 0, apperrors.ErrUnauthorized
	}
	return id, nil
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// bindJSON decodes the body into req, mapping decode and binding failures
// to ErrInvalidInput.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return nil
}

// bindPage reads the optional page and pageSize query parameters.
func bindPage(c *gin.Context) (pagination.PageRequest, error) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		return page, invalidQuery(err)
	}
	return page, nil
}

func invalidQuery(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// respondList writes a list under key with its total in X-Total-Count, or
// 204 when the list is empty.
func respondList[T any](c *gin.Context, key string, page *pagination.Page[T]) {
	c.Header("X-Total-Count", strconv.FormatInt(page.Total, 10))
	if page.Empty() {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{key: page.Items})
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
// NOT_MODIFIED is sent as a bare 304.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		if appErr.StatusCode == http.StatusNotModified {
			c.Status(http.StatusNotModified)
			return
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorBody{Code: appErr.Code, Message: appErr.Message}})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{Error: ErrorBody{
		Code:    apperrors.ErrInternalServer.Code,
		Message: apperrors.ErrInternalServer.Message,
	}})
}
