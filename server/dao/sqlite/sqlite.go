// Package sqlite is the artifact-cache backend backed by a pure-Go
// SQLite driver, grounded on the teacher's own sqlite store: one
// *sql.DB per logical database, one repository type per table, each
// repository owning its own init() schema statement.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dekarrin/slrc/server/dao"
	_ "modernc.org/sqlite"
	"modernc.org/sqlite"
)

type store struct {
	dbFilename string
	db         *sql.DB

	clients   *ClientsDB
	artifacts *ArtifactsDB
}

// NewDatastore opens (creating if necessary) a SQLite database under
// storageDir and returns a dao.Store backed by it.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{dbFilename: "slrc.db"}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.clients = &ClientsDB{db: st.db}
	if err := st.clients.init(); err != nil {
		return nil, err
	}

	st.artifacts = &ArtifactsDB{db: st.db}
	if err := st.artifacts.init(); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *store) Clients() dao.ClientRepository {
	return s.clients
}

func (s *store) Artifacts() dao.ArtifactRepository {
	return s.artifacts
}

func (s *store) Close() error {
	return s.db.Close()
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return dao.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	}
	if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}
