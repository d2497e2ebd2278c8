package inmem

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dekarrin/slrc/server/dao"
	"github.com/google/uuid"
)

// ArtifactsRepository is a map-backed dao.ArtifactRepository.
type ArtifactsRepository struct {
	byID     map[uuid.UUID]dao.Artifact
	byClient map[uuid.UUID][]uuid.UUID
}

// NewArtifactsRepository returns an empty ArtifactsRepository.
func NewArtifactsRepository() *ArtifactsRepository {
	return &ArtifactsRepository{
		byID:     make(map[uuid.UUID]dao.Artifact),
		byClient: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (r *ArtifactsRepository) Create(ctx context.Context, a dao.Artifact) (dao.Artifact, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.Artifact{}, fmt.Errorf("could not generate ID: %w", err)
	}
	a.ID = id
	a.Created = time.Now()

	r.byID[a.ID] = a
	r.byClient[a.ClientID] = append(r.byClient[a.ClientID], a.ID)
	return a, nil
}

func (r *ArtifactsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Artifact, error) {
	a, ok := r.byID[id]
	if !ok {
		return dao.Artifact{}, dao.ErrNotFound
	}
	return a, nil
}

func (r *ArtifactsRepository) GetAllByClient(ctx context.Context, clientID uuid.UUID) ([]dao.Artifact, error) {
	ids := r.byClient[clientID]
	all := make([]dao.Artifact, 0, len(ids))
	for _, id := range ids {
		all = append(all, r.byID[id])
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Created.Before(all[j].Created) })
	return all, nil
}

func (r *ArtifactsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Artifact, error) {
	a, ok := r.byID[id]
	if !ok {
		return dao.Artifact{}, dao.ErrNotFound
	}
	delete(r.byID, id)
	ids := r.byClient[a.ClientID]
	for i, cid := range ids {
		if cid == id {
			r.byClient[a.ClientID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return a, nil
}

func (r *ArtifactsRepository) Close() error {
	return nil
}
