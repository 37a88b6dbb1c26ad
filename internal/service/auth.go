package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/types"
)

const tokenLifetime = 24 * time.Hour

// AuthService issues, validates and revokes bearer tokens.
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	blacklist TokenBlacklist
}

func NewAuthService(db *gorm.DB, jwtSecret string, blacklist TokenBlacklist) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		blacklist: blacklist,
	}
}

// IssueToken checks the credentials and returns a signed bearer token.
// A credential mismatch is reported as ErrNotFound.
func (s *AuthService) IssueToken(ctx context.Context, email, password string) (string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrNotFound
	}

	return s.GenerateToken(user.ID)
}

// GenerateToken signs a token for the given user with a fresh token ID
func (s *AuthService) GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": float64(userID),
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// RevokeToken blacklists the token's ID until the token would expire.
// Subsequent requests bearing it are treated as unauthenticated.
func (s *AuthService) RevokeToken(ctx context.Context, tokenString string) error {
	claims, expiry, err := s.parseToken(tokenString)
	if err != nil {
		return err
	}
	return s.blacklist.Revoke(ctx, claims.TokenID, time.Until(expiry))
}

// ValidateToken verifies the signature, expiry and blacklist status
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims, _, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	revoked, err := s.blacklist.IsRevoked(context.Background(), claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("blacklist lookup failed: %w", err)
	}
	if revoked {
		return nil, errors.New("token has been revoked")
	}

	return claims, nil
}

func (s *AuthService) parseToken(tokenString string) (*types.TokenClaims, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, time.Time{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, time.Time{}, errors.New("invalid token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, time.Time{}, errors.New("invalid token claims")
	}
	tokenID, ok := claims["jti"].(string)
	if !ok {
		return nil, time.Time{}, errors.New("invalid token claims")
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return nil, time.Time{}, errors.New("invalid token claims")
	}

	return &types.TokenClaims{
		UserID:  uint(userID),
		TokenID: tokenID,
	}, expiry.Time, nil
}
