package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Yns1000/haybank/internal/errors"
)

// TokenValidator resolves a bearer token to its user.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (uint, error)
}

// AuthMiddleware verifies the bearer token and sets the user in the context.
// When acceptRaw is set, a header holding the bare token is accepted too.
func AuthMiddleware(tokens TokenValidator, acceptRaw bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"), acceptRaw)
		if err != nil {
			abortWithError(c, err)
			return
		}

		userID, verr := tokens.Validate(c.Request.Context(), token)
		if verr != nil {
			c.Abort()
			render(c, verr)
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

func bearerToken(header string, acceptRaw bool) (string, *apperrors.AppError) {
	if header == "" {
		return "", apperrors.WithMessage(apperrors.ErrUnauthorized, "Authorization header is required")
	}

	parts := strings.Split(header, " ")
	if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
		return parts[1], nil
	}
	if acceptRaw && len(parts) == 1 {
		return header, nil
	}
	return "", apperrors.ErrInvalidAuthHeader
}
