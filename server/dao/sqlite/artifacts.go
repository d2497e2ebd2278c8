package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/slrc/server/dao"
	"github.com/google/uuid"
)

// ArtifactsDB is a SQLite-backed dao.ArtifactRepository. TableBinary is
// stored as a BLOB; it is already the REZI-encoded form produced by
// internal/slrtable's binary codec, so this repository stores and
// retrieves it opaquely rather than re-encoding it.
type ArtifactsDB struct {
	db *sql.DB
}

func (repo *ArtifactsDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS artifacts (
		id TEXT NOT NULL PRIMARY KEY,
		client_id TEXT NOT NULL,
		source TEXT NOT NULL,
		status TEXT NOT NULL,
		tac TEXT NOT NULL,
		symbol_dump TEXT NOT NULL,
		error_text TEXT NOT NULL,
		table_binary BLOB NOT NULL,
		created INTEGER NOT NULL
	);`)
	return wrapDBError(err)
}

func (repo *ArtifactsDB) Create(ctx context.Context, a dao.Artifact) (dao.Artifact, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.Artifact{}, fmt.Errorf("could not generate ID: %w", err)
	}
	now := time.Now()

	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO artifacts (id, client_id, source, status, tac, symbol_dump, error_text, table_binary, created)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), a.ClientID.String(), a.Source, string(a.Status), a.TAC, a.SymbolDump, a.ErrorText, a.TableBinary, now.Unix())
	if err != nil {
		return dao.Artifact{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, id)
}

func (repo *ArtifactsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Artifact, error) {
	row := repo.db.QueryRowContext(ctx,
		`SELECT id, client_id, source, status, tac, symbol_dump, error_text, table_binary, created FROM artifacts WHERE id = ?`,
		id.String())
	return scanArtifact(row)
}

func (repo *ArtifactsDB) GetAllByClient(ctx context.Context, clientID uuid.UUID) ([]dao.Artifact, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT id, client_id, source, status, tac, symbol_dump, error_text, table_binary, created FROM artifacts WHERE client_id = ? ORDER BY created`,
		clientID.String())
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Artifact
	for rows.Next() {
		a, err := scanArtifactRow(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, a)
	}
	return all, nil
}

func (repo *ArtifactsDB) Delete(ctx context.Context, id uuid.UUID) (dao.Artifact, error) {
	a, err := repo.GetByID(ctx, id)
	if err != nil {
		return dao.Artifact{}, err
	}
	_, err = repo.db.ExecContext(ctx, `DELETE FROM artifacts WHERE id = ?`, id.String())
	if err != nil {
		return dao.Artifact{}, wrapDBError(err)
	}
	return a, nil
}

func (repo *ArtifactsDB) Close() error {
	return nil
}

func scanArtifact(row rowScanner) (dao.Artifact, error) {
	return scanArtifactRow(row)
}

func scanArtifactRow(row rowScanner) (dao.Artifact, error) {
	var a dao.Artifact
	var idStr, clientIDStr, status string
	var created int64

	err := row.Scan(&idStr, &clientIDStr, &a.Source, &status, &a.TAC, &a.SymbolDump, &a.ErrorText, &a.TableBinary, &created)
	if err != nil {
		return dao.Artifact{}, wrapDBError(err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return dao.Artifact{}, dao.ErrDecodingFailure
	}
	clientID, err := uuid.Parse(clientIDStr)
	if err != nil {
		return dao.Artifact{}, dao.ErrDecodingFailure
	}

	a.ID = id
	a.ClientID = clientID
	a.Status = dao.ArtifactStatus(status)
	a.Created = time.Unix(created, 0)
	return a, nil
}
