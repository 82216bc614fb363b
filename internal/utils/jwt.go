package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// Identity is the verified subject carried by an access token: who the
// caller is and what role they hold. Handlers receive it from the auth
// middleware and never mutate it.
type Identity struct {
	ID    uint64
	Email string
	Role  model.Role
}

// AccessToken represents a signed JWT access token along with its expiry.
// Tokens are short-lived and sent in the Authorization header when
// calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user. The claims
// carry the subject id, email and role plus the standard exp/iat pair.
// TTL is expressed in minutes; the default deployment uses 60 so issued
// credentials live one hour.
func NewAccessToken(secret string, ident Identity, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   ident.ID,
		"email": ident.Email,
		"role":  string(ident.Role),
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

var errInvalidToken = errors.New("invalid access token")

// ParseAccessToken validates an HS256 token string and recovers the
// identity embedded in its claims. Tokens signed with any other method,
// expired tokens and tokens carrying an unknown role are all rejected
// with the same error.
func ParseAccessToken(secret, raw string) (Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, errInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errInvalidToken
	}
	var ident Identity
	switch sub := claims["sub"].(type) {
	case float64:
		ident.ID = uint64(sub)
	default:
		return Identity{}, errInvalidToken
	}
	if email, ok := claims["email"].(string); ok {
		ident.Email = email
	}
	role, ok := claims["role"].(string)
	if !ok || !model.Role(role).Valid() {
		return Identity{}, errInvalidToken
	}
	ident.Role = model.Role(role)
	return ident, nil
}
