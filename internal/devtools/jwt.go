package devtools

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Aidin1998/apihub/common/errors"
)

// DecodedJWT is the readable content of a token. The signature is never
// checked.
type DecodedJWT struct {
	Header            map[string]any `json:"header"`
	Claims            jwt.MapClaims  `json:"claims"`
	Algorithm         string         `json:"algorithm"`
	IssuedAt          *time.Time     `json:"issued_at,omitempty"`
	ExpiresAt         *time.Time     `json:"expires_at,omitempty"`
	Expired           bool           `json:"expired"`
	SignatureVerified bool           `json:"signature_verified"`
}

// DecodeJWT parses a compact JWT without verifying it and reports whether it
// has expired at now.
func DecodeJWT(token string, now time.Time) (DecodedJWT, error) {
	claims := jwt.MapClaims{}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return DecodedJWT{}, errors.Invalid.Explain("Invalid JWT: %s", err.Error())
	}

	out := DecodedJWT{
		Header:    parsed.Header,
		Claims:    claims,
		Algorithm: parsed.Method.Alg(),
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		t := iat.UTC()
		out.IssuedAt = &t
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return DecodedJWT{}, errors.Invalid.Explain("Invalid JWT 'exp' claim")
	}
	if exp != nil {
		t := exp.UTC()
		out.ExpiresAt = &t
		out.Expired = !now.Before(t)
	}
	return out, nil
}
