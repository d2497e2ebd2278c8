package server

import (
	"fmt"
	"os"

	iconfig "github.com/dekarrin/slrc/internal/config"
	"github.com/dekarrin/slrc/server/dao"
	"github.com/dekarrin/slrc/server/dao/inmem"
	"github.com/dekarrin/slrc/server/dao/sqlite"
)

// Connect opens the persistence backend selected by cfg ("inmem" or
// "sqlite") and returns a ready-to-use dao.Store.
func Connect(cfg iconfig.Server) (dao.Store, error) {
	switch cfg.DB {
	case "inmem":
		return inmem.NewDatastore(), nil
	case "sqlite":
		if err := os.MkdirAll(cfg.DataDir, 0770); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		store, err := sqlite.NewDatastore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown database backend: %q", cfg.DB)
	}
}
