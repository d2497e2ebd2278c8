// Package inmem is the in-memory artifact-cache backend: a process-local
// map-based Store, used for tests and for servers that do not need
// compile artifacts to survive a restart.
package inmem

import (
	"github.com/dekarrin/slrc/server/dao"
)

type store struct {
	clients   *ClientsRepository
	artifacts *ArtifactsRepository
}

// NewDatastore returns a dao.Store backed by in-process maps.
func NewDatastore() dao.Store {
	return &store{
		clients:   NewClientsRepository(),
		artifacts: NewArtifactsRepository(),
	}
}

func (s *store) Clients() dao.ClientRepository {
	return s.clients
}

func (s *store) Artifacts() dao.ArtifactRepository {
	return s.artifacts
}

func (s *store) Close() error {
	return nil
}
