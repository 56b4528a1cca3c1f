package clerk

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/exceptions"
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// SessionClaims are the claims of a Clerk session token. Role, OrgID and Email come
// from the session token template configured on the Clerk instance.
type SessionClaims struct {
	SessionID       string `json:"sid"`
	AuthorizedParty string `json:"azp,omitempty"`
	Role            string `json:"role,omitempty"`
	OrgID           string `json:"org_id,omitempty"`
	Email           string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type sessionVerifier struct {
	PublicKey         *rsa.PublicKey
	AuthorizedParties map[string]struct{}
	Leeway            time.Duration
}

// NewSessionVerifier parses the PEM encoded instance public key. authorizedParties is a CSV of
// allowed origins; an empty list accepts any azp.
func NewSessionVerifier(publicKeyPEM, authorizedParties string) (contracts.SessionVerifier, error) {
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(strings.ReplaceAll(publicKeyPEM, `\n`, "\n")))
	if err != nil {
		return nil, exceptions.ErrSessionPublicKeyInvalid(err)
	}

	parties := make(map[string]struct{})
	for _, party := range strings.Split(authorizedParties, ",") {
		party = strings.TrimSpace(party)
		if party != "" {
			parties[party] = struct{}{}
		}
	}

	return &sessionVerifier{
		PublicKey:         publicKey,
		AuthorizedParties: parties,
		Leeway:            5 * time.Second,
	}, nil
}

func (v *sessionVerifier) VerifySessionToken(token string) (*models.Session, error) {
	if token == "" {
		return nil, exceptions.ErrTokenMissing(nil)
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.PublicKey, nil
	})
	if err != nil && !v.withinLeeway(err, claims) {
		return nil, exceptions.ErrTokenInvalidOrExpired(err)
	}
	if parsed == nil || claims.Subject == "" {
		return nil, exceptions.ErrTokenInvalidOrExpired(errors.New("token has no subject"))
	}

	if len(v.AuthorizedParties) > 0 && claims.AuthorizedParty != "" {
		if _, ok := v.AuthorizedParties[claims.AuthorizedParty]; !ok {
			return nil, exceptions.ErrTokenUnauthorizedParty(fmt.Errorf("azp %s", claims.AuthorizedParty))
		}
	}

	role := claims.Role
	if role == "" {
		role = constvars.RoleCitizen
	}

	return &models.Session{
		UserID:    claims.Subject,
		SessionID: claims.SessionID,
		Role:      role,
		OrgID:     claims.OrgID,
		Email:     claims.Email,
	}, nil
}

// withinLeeway tolerates small clock skew on exp/nbf when the signature itself is valid.
func (v *sessionVerifier) withinLeeway(err error, claims *SessionClaims) bool {
	var validationErr *jwt.ValidationError
	if !errors.As(err, &validationErr) {
		return false
	}
	timingErrors := jwt.ValidationErrorExpired | jwt.ValidationErrorNotValidYet | jwt.ValidationErrorIssuedAt
	if validationErr.Errors&^timingErrors != 0 {
		return false
	}

	now := time.Now()
	if claims.ExpiresAt != nil && now.After(claims.ExpiresAt.Time.Add(v.Leeway)) {
		return false
	}
	if claims.NotBefore != nil && now.Add(v.Leeway).Before(claims.NotBefore.Time) {
		return false
	}
	return true
}
