package transport

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer signs the opaque session tokens handed to clients. A token
// carries the session id and the user it was issued to.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl, now: time.Now}
}

func (issuer *TokenIssuer) TTL() time.Duration {
	return issuer.ttl
}

func (issuer *TokenIssuer) Issue(sessionID, userID string) (string, error) {
	now := issuer.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sessionID,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(issuer.ttl)),
	})
	signed, err := token.SignedString(issuer.secret)
	return signed, errors.Wrap(err, "sign token")
}

func (issuer *TokenIssuer) Parse(tokenStr string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return issuer.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(issuer.now))
	if err != nil || !token.Valid {
		return nil, errors.Wrapf(ErrInvalidToken, "%v", err)
	}
	if claims.ID == "" {
		return nil, errors.Wrap(ErrInvalidToken, "missing session id")
	}
	return claims, nil
}
