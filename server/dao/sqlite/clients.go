package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/slrc/server/dao"
	"github.com/google/uuid"
)

// ClientsDB is a SQLite-backed dao.ClientRepository.
type ClientsDB struct {
	db *sql.DB
}

func (repo *ClientsDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS clients (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		api_key_hash TEXT NOT NULL,
		created INTEGER NOT NULL,
		last_rotated INTEGER NOT NULL
	);`)
	return wrapDBError(err)
}

func (repo *ClientsDB) Create(ctx context.Context, c dao.Client) (dao.Client, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.Client{}, fmt.Errorf("could not generate ID: %w", err)
	}
	now := time.Now()

	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO clients (id, name, api_key_hash, created, last_rotated) VALUES (?, ?, ?, ?, ?)`,
		id.String(), c.Name, c.APIKeyHash, now.Unix(), now.Unix())
	if err != nil {
		return dao.Client{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, id)
}

func (repo *ClientsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Client, error) {
	row := repo.db.QueryRowContext(ctx,
		`SELECT id, name, api_key_hash, created, last_rotated FROM clients WHERE id = ?`, id.String())
	return scanClient(row)
}

func (repo *ClientsDB) GetByName(ctx context.Context, name string) (dao.Client, error) {
	row := repo.db.QueryRowContext(ctx,
		`SELECT id, name, api_key_hash, created, last_rotated FROM clients WHERE name = ?`, name)
	return scanClient(row)
}

func (repo *ClientsDB) GetAll(ctx context.Context) ([]dao.Client, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, name, api_key_hash, created, last_rotated FROM clients ORDER BY id;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Client
	for rows.Next() {
		c, err := scanClientRow(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, c)
	}
	return all, nil
}

func (repo *ClientsDB) Update(ctx context.Context, id uuid.UUID, c dao.Client) (dao.Client, error) {
	_, err := repo.db.ExecContext(ctx,
		`UPDATE clients SET name = ?, api_key_hash = ?, last_rotated = ? WHERE id = ?`,
		c.Name, c.APIKeyHash, c.LastRotated.Unix(), id.String())
	if err != nil {
		return dao.Client{}, wrapDBError(err)
	}
	return repo.GetByID(ctx, id)
}

func (repo *ClientsDB) Delete(ctx context.Context, id uuid.UUID) (dao.Client, error) {
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return dao.Client{}, err
	}
	_, err = repo.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id.String())
	if err != nil {
		return dao.Client{}, wrapDBError(err)
	}
	return c, nil
}

func (repo *ClientsDB) Close() error {
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (dao.Client, error) {
	return scanClientRow(row)
}

func scanClientRow(row rowScanner) (dao.Client, error) {
	var c dao.Client
	var idStr string
	var created, rotated int64

	err := row.Scan(&idStr, &c.Name, &c.APIKeyHash, &created, &rotated)
	if err != nil {
		return dao.Client{}, wrapDBError(err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return dao.Client{}, dao.ErrDecodingFailure
	}
	c.ID = id
	c.Created = time.Unix(created, 0)
	c.LastRotated = time.Unix(rotated, 0)
	return c, nil
}
