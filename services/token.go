package services

import (
	"fmt"
	"strings"
	"time"

	"hotelbooking/authz"
	apperrors "hotelbooking/errors"

	"github.com/dgrijalva/jwt-go"
)

type UserInfo struct {
	UserId    uint                  `json:"userid"`
	Role      int                   `json:"role"`
	Moderator *authz.ModeratorFlags `json:"moderator,omitempty"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// Actor resolve quyền từ claims, một lần cho mỗi request
func (c *Claims) Actor() authz.Actor {
	return authz.NewActor(c.UserInfo.UserId, authz.Role(c.UserInfo.Role), c.UserInfo.Moderator)
}

// TokenService ký và kiểm tra access token HS256
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) GenerateToken(userInfo UserInfo) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserInfo: userInfo,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken kiểm tra chữ ký, hạn dùng và trả về claims
func (s *TokenService) ParseToken(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "missing token", apperrors.ErrInvalidToken)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "invalid token", apperrors.ErrInvalidToken)
	}
	if claims.UserInfo.UserId == 0 {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "token has no user", apperrors.ErrInvalidToken)
	}
	return claims, nil
}
