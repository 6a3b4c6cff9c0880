// Package auth выпускает и проверяет bearer-токены (JWT, HS256), общие для всех сервисов.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// DefaultTokenTTL - срок жизни токена, выдаваемого при логине.
const DefaultTokenTTL = 24 * time.Hour

// Claims - полезная нагрузка токена.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Verifier проверяет заголовок Authorization и извлекает Identity.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier создаёт проверяющего с общим HMAC-секретом.
func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verify разбирает "Bearer <token>". Без токена - ErrUnauthenticated, иначе любые проблемы - ErrInvalidCredential.
func (v *Verifier) Verify(authorization string) (domain.Identity, error) {
	parts := strings.Fields(authorization)
	if len(parts) < 2 {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return domain.Identity{}, domain.ErrInvalidCredential
	}

	var claims Claims
	token, err := v.parser.ParseWithClaims(parts[1], &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrInvalidCredential, err)
	}
	if claims.UserID == "" {
		return domain.Identity{}, fmt.Errorf("%w: userId claim is missing", domain.ErrInvalidCredential)
	}

	return domain.Identity{SubjectID: claims.UserID, DisplayName: claims.Username}, nil
}

var _ domain.CredentialVerifier = (*Verifier)(nil)

// Issuer подписывает токены для пользователей.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer создаёт Issuer; ttl <= 0 заменяется на DefaultTokenTTL.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue выпускает подписанный токен с userId/username.
func (i *Issuer) Issue(user domain.User) (string, error) {
	if user.ID == "" {
		return "", errors.New("user id is required to issue a token")
	}
	now := i.now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
