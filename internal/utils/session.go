package utils // package utils provides helper functions for session tokens and hashing

import (
    "errors" // errors defines the sentinel returned for bad tokens
    "time"   // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
    "github.com/google/uuid"       // uuid generates visitor session ids
)

// ErrInvalidSession is returned when a session cookie cannot be trusted.
var ErrInvalidSession = errors.New("invalid session token")

// SessionToken is a signed visitor session.  SID keys the edit overrides and
// the booking confirmation slot; Token is what goes into the cookie.
type SessionToken struct {
    SID   string    // opaque session id (a random UUID)
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewSessionToken starts a fresh visitor session with a random id and signs
// it with HS256.  The claims carry the id as the subject plus exp and iat.
func NewSessionToken(secret string, ttl time.Duration) (SessionToken, error) {
    return SignSession(secret, uuid.NewString(), ttl)
}

// SignSession signs a token for an existing session id.  The session
// middleware uses it to slide the expiry forward.
func SignSession(secret, sid string, ttl time.Duration) (SessionToken, error) {
    now := time.Now().UTC()
    exp := now.Add(ttl)
    claims := jwt.RegisteredClaims{
        Subject:   sid,
        ExpiresAt: jwt.NewNumericDate(exp),
        IssuedAt:  jwt.NewNumericDate(now),
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{SID: sid, Token: signed, Exp: exp}, nil
}

// ParseSession validates raw and returns its session id.  Tokens signed with
// anything but HMAC, expired tokens and tokens without a subject are
// rejected with ErrInvalidSession.
func ParseSession(secret, raw string) (string, error) {
    claims := &jwt.RegisteredClaims{}
    tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
        // Only HMAC keys are accepted; anything else is a forged header.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidSession
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid || claims.Subject == "" {
        return "", ErrInvalidSession
    }
    return claims.Subject, nil
}
