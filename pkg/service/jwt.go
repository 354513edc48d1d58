package service

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"service-desk/internal/entities"
	"service-desk/pkg/constants"
	apperrors "service-desk/pkg/errors"
)

type JwtCustomClaim struct {
	UserID         int64          `json:"userId"`
	Name           string         `json:"name"`
	Role           constants.Role `json:"role"`
	IsRefreshToken bool           `json:"refresh,omitempty"`
	jwt.RegisteredClaims
}

func (c *JwtCustomClaim) Actor() entities.Actor {
	return entities.Actor{ID: c.UserID, Name: c.Name, Role: c.Role}
}

type JWTService interface {
	GenerateTokens(actor entities.Actor) (access string, refresh string, err error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
}

type jwtService struct {
	SecretKey       string
	AccessTokenExp  time.Duration
	RefreshTokenExp time.Duration
	now             func() time.Time
}

func NewJWTService(secretKey string, accessTokenExp, refreshTokenExp time.Duration) JWTService {
	return &jwtService{
		SecretKey:       secretKey,
		AccessTokenExp:  accessTokenExp,
		RefreshTokenExp: refreshTokenExp,
		now:             time.Now,
	}
}

func (service *jwtService) sign(actor entities.Actor, refresh bool, ttl time.Duration) (string, error) {
	now := service.now()
	claims := &JwtCustomClaim{
		UserID:         actor.ID,
		Name:           actor.Name,
		Role:           actor.Role,
		IsRefreshToken: refresh,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(service.SecretKey))
}

func (service *jwtService) GenerateTokens(actor entities.Actor) (string, string, error) {
	access, err := service.sign(actor, false, service.AccessTokenExp)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := service.sign(actor, true, service.RefreshTokenExp)
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}
	return access, refresh, nil
}

func (service *jwtService) GetAccessTokenTTL() time.Duration {
	return service.AccessTokenExp
}

func (service *jwtService) GetRefreshTokenTTL() time.Duration {
	return service.RefreshTokenExp
}

func (service *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaim{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return []byte(service.SecretKey), nil
	}, jwt.WithTimeFunc(service.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.ErrTokenExpired
		case errors.Is(err, apperrors.ErrInvalidSigningMethod):
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*JwtCustomClaim)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrInvalidToken, claims.Role)
	}
	return claims, nil
}
