// Package dao provides data access objects for the compile-as-a-service
// artifact cache: API clients (for JWT auth) and compiled artifacts
// (TAC, symbol-table dump, and encoded parse table per submitted
// source), in the same repository-bundle-behind-a-Store shape the
// teacher uses for its own game/user persistence layer.
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrConstraintViolation = errors.New("a uniqueness constraint was violated")
	ErrNotFound            = errors.New("the requested resource was not found")
	ErrDecodingFailure     = errors.New("field could not be decoded from storage format to model format")
)

// Store holds every repository the server needs.
type Store interface {
	Clients() ClientRepository
	Artifacts() ArtifactRepository
	Close() error
}

// Client is an API consumer authorised to submit compile jobs. APIKeyHash
// plays the role the teacher's User.Password plays in JWT sign-key
// derivation: a per-subject secret component folded into the signing
// key, so rotating it invalidates every token issued before the
// rotation.
type Client struct {
	ID          uuid.UUID
	Name        string
	APIKeyHash  string
	Created     time.Time
	LastRotated time.Time
}

// ClientRepository stores API clients.
type ClientRepository interface {
	Create(ctx context.Context, c Client) (Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (Client, error)
	GetByName(ctx context.Context, name string) (Client, error)
	GetAll(ctx context.Context) ([]Client, error)
	Update(ctx context.Context, id uuid.UUID, c Client) (Client, error)
	Delete(ctx context.Context, id uuid.UUID) (Client, error)
	Close() error
}

// ArtifactStatus is the lifecycle state of a submitted compile job.
type ArtifactStatus string

const (
	StatusOK       ArtifactStatus = "ok"
	StatusConflict ArtifactStatus = "conflict"
	StatusError    ArtifactStatus = "error"
)

// Artifact is the cached result of compiling one source submission: the
// emitted TAC, the symbol-table dump, an error message (if Status !=
// StatusOK), and the REZI-encoded SLRTable used to build it.
type Artifact struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	Source      string
	Status      ArtifactStatus
	TAC         string
	SymbolDump  string
	ErrorText   string
	TableBinary []byte
	Created     time.Time
}

// ArtifactRepository stores compiled artifacts.
type ArtifactRepository interface {
	Create(ctx context.Context, a Artifact) (Artifact, error)
	GetByID(ctx context.Context, id uuid.UUID) (Artifact, error)
	GetAllByClient(ctx context.Context, clientID uuid.UUID) ([]Artifact, error)
	Delete(ctx context.Context, id uuid.UUID) (Artifact, error)
	Close() error
}
