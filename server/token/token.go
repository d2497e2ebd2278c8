// Package token issues and validates the JWTs clients use to
// authenticate compile requests. The signing key for a given client is
// never just the server secret: it also folds in that client's
// APIKeyHash, so rotating a client's API key invalidates every
// outstanding token for it without the server keeping any kind of
// revocation list.
package token

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dekarrin/slrc/server/dao"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "slrc"

// Generate returns a signed JWT asserting that the bearer is c.
func Generate(secret []byte, c dao.Client) (string, error) {
	claims := &jwt.MapClaims{
		"iss": issuer,
		"exp": time.Now().Add(time.Hour).Unix(),
		"sub": c.ID.String(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	return tok.SignedString(signKey(secret, c))
}

// Validate parses tok, looks up the client it claims to be via db, and
// returns that client only if the signature verifies against a key
// derived from that client's current APIKeyHash.
func Validate(ctx context.Context, tok string, secret []byte, db dao.ClientRepository) (dao.Client, error) {
	var client dao.Client

	_, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		subj, err := t.Claims.GetSubject()
		if err != nil {
			return nil, fmt.Errorf("cannot get subject: %w", err)
		}

		id, err := uuid.Parse(subj)
		if err != nil {
			return nil, fmt.Errorf("cannot parse subject UUID: %w", err)
		}

		client, err = db.GetByID(ctx, id)
		if err != nil {
			if err == dao.ErrNotFound {
				return nil, fmt.Errorf("subject does not exist")
			}
			return nil, fmt.Errorf("subject could not be validated")
		}

		return signKey(secret, client), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer(issuer), jwt.WithLeeway(time.Minute))

	if err != nil {
		return dao.Client{}, err
	}

	return client, nil
}

func signKey(secret []byte, c dao.Client) []byte {
	var key []byte
	key = append(key, secret...)
	key = append(key, []byte(c.APIKeyHash)...)
	key = append(key, []byte(fmt.Sprintf("%d", c.LastRotated.Unix()))...)
	return key
}

// Get extracts the bearer token from req's Authorization header.
func Get(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	authParts := strings.SplitN(authHeader, " ", 2)
	if len(authParts) != 2 {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	scheme := strings.TrimSpace(strings.ToLower(authParts[0]))
	tok := strings.TrimSpace(authParts[1])
	if scheme != "bearer" {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	return tok, nil
}
