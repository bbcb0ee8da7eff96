package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	apperrors "github.com/Yns1000/haybank/internal/errors"
)

// ContentNegotiation rejects requests that are not JSON (415) or that do not
// accept a JSON response (406). The media type check runs first.
func ContentNegotiation() gin.HandlerFunc {
	return func(c *gin.Context) {
		contentType := c.ContentType()
		if contentType != "" && contentType != binding.MIMEJSON {
			abortWithError(c, apperrors.ErrUnsupportedMediaType)
			return
		}
		if contentType == "" && carriesBody(c.Request) {
			abortWithError(c, apperrors.ErrUnsupportedMediaType)
			return
		}

		if c.GetHeader("Accept") != "" && c.NegotiateFormat(binding.MIMEJSON) == "" {
			abortWithError(c, apperrors.ErrNotAcceptable)
			return
		}
		c.Next()
	}
}

func carriesBody(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return r.ContentLength != 0
	}
	return false
}
