package session

import (
	"errors"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

var errNoSubject = errors.New("token has no subject")

// tokenClaims reads identity and validity from an access token without
// verifying its signature. The remote store remains the authority; this
// only decides whether a stored token is worth presenting.
func tokenClaims(raw string) (models.Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return models.Session{}, err
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return models.Session{}, err
	}
	if sub == "" {
		return models.Session{}, errNoSubject
	}

	s := models.Session{UserID: sub, RawToken: raw}
	if email, ok := claims["email"].(string); ok {
		s.Email = email
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		s.IssuedAt = iat.UTC()
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.UTC()
	}
	return s, nil
}
