package csvc

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/dekarrin/slrc/server/dao"
	"github.com/dekarrin/slrc/server/serr"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// apiKeyBytes is the amount of random data used for a freshly-minted API
// key, before base64 encoding.
const apiKeyBytes = 32

// Register creates a new client with the given name and returns it along
// with the plaintext API key. The key is shown to the caller exactly
// once; only its bcrypt hash is persisted.
func (svc Service) Register(ctx context.Context, name string) (dao.Client, string, error) {
	key, err := newAPIKey()
	if err != nil {
		return dao.Client{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return dao.Client{}, "", err
	}

	c, err := svc.DB.Clients().Create(ctx, dao.Client{
		Name:        name,
		APIKeyHash:  base64.StdEncoding.EncodeToString(hash),
		LastRotated: time.Now(),
	})
	if err != nil {
		if errors.Is(err, dao.ErrConstraintViolation) {
			return dao.Client{}, "", serr.New("a client with that name already exists", serr.ErrAlreadyExists)
		}
		return dao.Client{}, "", serr.WrapDB("", err)
	}

	return c, key, nil
}

// Authenticate verifies name and apiKey against the stored client and
// returns that client if they match.
//
// The returned error, if non-nil, will return true for errors.Is against
// serr.ErrBadCredentials if the credentials do not match a client, or
// serr.ErrDB if the error occurred due to an unexpected problem with the
// DB.
func (svc Service) Authenticate(ctx context.Context, name, apiKey string) (dao.Client, error) {
	client, err := svc.DB.Clients().GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Client{}, serr.ErrBadCredentials
		}
		return dao.Client{}, serr.WrapDB("", err)
	}

	hash, err := base64.StdEncoding.DecodeString(client.APIKeyHash)
	if err != nil {
		return dao.Client{}, err
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(apiKey)); err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return dao.Client{}, serr.ErrBadCredentials
		}
		return dao.Client{}, serr.WrapDB("", err)
	}

	return client, nil
}

// RotateKey issues a new API key for the client with the given ID,
// invalidating every token previously issued to it (token.Validate folds
// LastRotated into the signing key). Returns the updated client and the
// new plaintext key.
func (svc Service) RotateKey(ctx context.Context, id uuid.UUID) (dao.Client, string, error) {
	existing, err := svc.DB.Clients().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Client{}, "", serr.ErrNotFound
		}
		return dao.Client{}, "", serr.WrapDB("", err)
	}

	key, err := newAPIKey()
	if err != nil {
		return dao.Client{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return dao.Client{}, "", err
	}

	existing.APIKeyHash = base64.StdEncoding.EncodeToString(hash)
	existing.LastRotated = time.Now()

	updated, err := svc.DB.Clients().Update(ctx, id, existing)
	if err != nil {
		return dao.Client{}, "", serr.WrapDB("", err)
	}

	return updated, key, nil
}

func newAPIKey() (string, error) {
	buf := make([]byte, apiKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
