package utils // package utils provides helpers for token creation, hashing and dates

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// SessionTTL is how long an issued access token stays valid.  Counter shifts
// run overnight, so tokens span a full 12-hour shift.
const SessionTTL = 12 * time.Hour

// AccessToken carries a signed JWT and its expiry.  The token embeds the
// user's id (sub), role and display name so that every request can be
// authorized without a user lookup.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Claims is the verified identity extracted from a token.
type Claims struct {
	UserID uint64
	Role   string
	Name   string
}

// NewAccessToken builds and signs an HS256 JWT asserting the given user
// identity.  The claims are sub (user id), role, name, exp and iat.
func NewAccessToken(secret string, userID uint64, role, name string) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(SessionTTL)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"name": name,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a token and returns
// its claims.  Any malformed, expired or badly signed token yields an error;
// callers translate that into a 403.
func ParseAccessToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, errors.New("invalid token")
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims")
	}
	var c Claims
	switch v := mc["sub"].(type) {
	case float64:
		c.UserID = uint64(v)
	case uint64:
		c.UserID = v
	}
	if c.UserID == 0 {
		return Claims{}, errors.New("missing subject")
	}
	c.Role, _ = mc["role"].(string)
	c.Name, _ = mc["name"].(string)
	return c, nil
}
