// Package jwt выпускает и проверяет токены сессии заявителя.
//
// Токен не содержит персональных данных: в нём только идентификатор сессии
// (subject) и номер заявки. Сама сессия хранится на сервере в redis.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims данные, хранящиеся в токене.
type SessionClaims struct {
	ApplicationID        int64 `json:"application_id"`
	jwt.RegisteredClaims       // Subject — идентификатор сессии
}

// SessionID идентификатор серверной сессии.
func (c *SessionClaims) SessionID() string {
	return c.Subject
}

// Maker описывает выпуск и разбор токенов сессии.
type Maker interface {
	GenerateToken(sessionID string, applicationID int64) (string, error)
	ParseToken(tokenStr string) (*SessionClaims, error)
	TTL() time.Duration
}

// MakerImpl реализует Maker на HS256 с секретным ключом.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker создаёт MakerImpl.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

// TTL время жизни токена, оно же время жизни сессии в кеше.
func (j *MakerImpl) TTL() time.Duration {
	return j.tokenTTL
}

// GenerateToken подписывает токен для сессии.
func (j *MakerImpl) GenerateToken(sessionID string, applicationID int64) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		ApplicationID: applicationID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken проверяет подпись и срок действия токена.
func (j *MakerImpl) ParseToken(tokenStr string) (*SessionClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
