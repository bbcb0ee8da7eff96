package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/Yns1000/haybank/internal/errors"
	"github.com/Yns1000/haybank/internal/models"
	"github.com/Yns1000/haybank/internal/store"
)

const tokenIssuer = "haybank-api"

// credentialService signs HS256 tokens and keeps the hash of the current
// token on the user row, so a token stops working once revoked or replaced.
type credentialService struct {
	store  *store.Gateway
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCredentialService creates a CredentialServicer. A zero ttl issues
// tokens without expiry.
func NewCredentialService(gw *store.Gateway, secret string, ttl time.Duration) CredentialServicer {
	return &credentialService{store: gw, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// HashToken returns the SHA-256 hex digest of a token string.
func HashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// Issue signs a new token for user and makes it the user's only valid one.
func (s *credentialService) Issue(ctx context.Context, user *models.User) (*Credential, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    tokenIssuer,
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	var expiresAt *time.Time
	if s.ttl > 0 {
		exp := now.Add(s.ttl)
		expiresAt = &exp
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{
		"token_hash":       HashToken(token),
		"token_expires_at": expiresAt,
	}
	if _, err := s.store.Update(ctx, &models.User{}, user.ID, updates); err != nil {
		return nil, err
	}
	return &Credential{Token: token, ExpiresAt: expiresAt}, nil
}

// Validate returns the id of the user owning token.
func (s *credentialService) Validate(ctx context.Context, token string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, apperrors.ErrTokenExpired
		}
		return 0, apperrors.ErrUnauthorized
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, apperrors.ErrUnauthorized
	}

	var user models.User
	if err := s.store.First(ctx, &user, uint(id), apperrors.ErrUnauthorized); err != nil {
		return 0, err
	}
	if user.TokenHash == "" || subtle.ConstantTimeCompare([]byte(user.TokenHash), []byte(HashToken(token))) != 1 {
		return 0, apperrors.ErrUnauthorized
	}
	if user.TokenExpiresAt != nil && !s.now().Before(*user.TokenExpiresAt) {
		return 0, apperrors.ErrTokenExpired
	}
	return user.ID, nil
}

// Revoke invalidates the current token of userID.
func (s *credentialService) Revoke(ctx context.Context, userID uint) error {
	updates := map[string]interface{}{
		"token_hash":       "",
		"token_expires_at": nil,
	}
	_, err := s.store.Update(ctx, &models.User{}, userID, updates)
	return err
}
