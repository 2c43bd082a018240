package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken represents a signed JWT access token along with its expiry.
// The token embeds the user id and admin flag; validity is determined
// purely by signature and expiry at verification time, never by a
// server-side lookup. There is no revocation list.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Identity is the decoded payload of a verified access token.
type Identity struct {
	UserID  uint64
	IsAdmin bool
}

// ErrInvalidToken is returned by ParseAccessToken for any token that cannot
// be accepted: bad signature, malformed payload or passed expiry.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for a user. Claims follow
// the registered names where they exist: sub carries the user id, adm the
// admin flag, exp and iat the usual timestamps. ttlHours is the fixed
// configured token lifetime.
func NewAccessToken(secret string, userID uint64, isAdmin bool, ttlHours int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub": userID,
		"adm": isAdmin,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a raw token string
// and returns the embedded identity. The signing method is pinned to HMAC;
// tokens signed with any other algorithm are rejected.
func ParseAccessToken(secret, raw string) (Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub < 0 {
		return Identity{}, ErrInvalidToken
	}
	adm, _ := claims["adm"].(bool)
	return Identity{UserID: uint64(sub), IsAdmin: adm}, nil
}
