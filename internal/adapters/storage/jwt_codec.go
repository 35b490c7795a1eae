package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

const identityIssuer = "intelicop-console"

// JWTCodec stores the identity as an HS256 token so a blob edited by hand
// or written by another installation is rejected on restore.
type JWTCodec struct {
	secret []byte
	now    func() time.Time
}

var _ ports.IdentityCodec = (*JWTCodec)(nil)

type identityClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func NewJWTCodec(secret string) *JWTCodec {
	return &JWTCodec{secret: []byte(secret), now: time.Now}
}

func (c *JWTCodec) Encode(id domain.Identity) (string, error) {
	if len(c.secret) == 0 {
		return "", errors.New("session secret is empty")
	}
	claims := identityClaims{
		Role: string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  id.Username,
			Issuer:   identityIssuer,
			IssuedAt: jwt.NewNumericDate(c.now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

func (c *JWTCodec) Decode(blob string) (domain.Identity, error) {
	if len(c.secret) == 0 {
		return domain.Identity{}, errors.New("session secret is empty")
	}
	var claims identityClaims
	tok, err := jwt.ParseWithClaims(blob, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	}, jwt.WithIssuer(identityIssuer))
	if err != nil {
		return domain.Identity{}, fmt.Errorf("parse identity token: %w", err)
	}
	if !tok.Valid || claims.Subject == "" {
		return domain.Identity{}, errors.New("invalid identity token")
	}
	return domain.NewIdentity(claims.Subject, claims.Role)
}
