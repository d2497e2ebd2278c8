package inmem

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dekarrin/slrc/server/dao"
	"github.com/google/uuid"
)

// ClientsRepository is a map-backed dao.ClientRepository.
type ClientsRepository struct {
	byID   map[uuid.UUID]dao.Client
	byName map[string]uuid.UUID
}

// NewClientsRepository returns an empty ClientsRepository.
func NewClientsRepository() *ClientsRepository {
	return &ClientsRepository{
		byID:   make(map[uuid.UUID]dao.Client),
		byName: make(map[string]uuid.UUID),
	}
}

func (r *ClientsRepository) Create(ctx context.Context, c dao.Client) (dao.Client, error) {
	if _, ok := r.byName[c.Name]; ok {
		return dao.Client{}, dao.ErrConstraintViolation
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return dao.Client{}, fmt.Errorf("could not generate ID: %w", err)
	}
	c.ID = id
	c.Created = time.Now()
	c.LastRotated = c.Created

	r.byID[c.ID] = c
	r.byName[c.Name] = c.ID
	return c, nil
}

func (r *ClientsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return dao.Client{}, dao.ErrNotFound
	}
	return c, nil
}

func (r *ClientsRepository) GetByName(ctx context.Context, name string) (dao.Client, error) {
	id, ok := r.byName[name]
	if !ok {
		return dao.Client{}, dao.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *ClientsRepository) GetAll(ctx context.Context) ([]dao.Client, error) {
	all := make([]dao.Client, 0, len(r.byID))
	for _, c := range r.byID {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID.String() < all[j].ID.String() })
	return all, nil
}

func (r *ClientsRepository) Update(ctx context.Context, id uuid.UUID, c dao.Client) (dao.Client, error) {
	existing, ok := r.byID[id]
	if !ok {
		return dao.Client{}, dao.ErrNotFound
	}

	if c.Name != existing.Name {
		if _, taken := r.byName[c.Name]; taken {
			return dao.Client{}, dao.ErrConstraintViolation
		}
		delete(r.byName, existing.Name)
		r.byName[c.Name] = id
	}

	c.ID = id
	c.Created = existing.Created
	r.byID[id] = c
	return c, nil
}

func (r *ClientsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return dao.Client{}, dao.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byName, c.Name)
	return c, nil
}

func (r *ClientsRepository) Close() error {
	return nil
}
