// Package config loads the TOML configuration document that drives the
// CLI and the compile-as-a-service server: which grammar file to start
// from, which table serialisation format to emit, where the assembly
// rule file lives, and the server's bind address and token secret. It
// follows the teacher's own TOML idiom (github.com/BurntSushi/toml,
// unmarshal into a plain struct) from its world-data loader.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// TableFormat names a serialisation format for a built SLRTable.
type TableFormat string

const (
	FormatJSON   TableFormat = "json"
	FormatCSV    TableFormat = "csv"
	FormatBinary TableFormat = "binary"
)

// Secret size bounds for Server.TokenSecret, matched against the raw
// byte length of the configured string.
const (
	MinSecretSize = 32
	MaxSecretSize = 64
)

const defaultTokenSecret = "DEFAULT_TOKEN_SECRET-DO_NOT_USE_IN_PROD!"

// Grammar holds the paths the compiler reads its grammar and rule files
// from.
type Grammar struct {
	// File is the path to a grammar-text file parsed by internal/grammar.
	File string

	// AsmRuleFile is an optional path to a TOML-described rule set for
	// internal/asmrw; if empty, the baseline rule set is used.
	AsmRuleFile string

	// TableFormat selects the serialisation internal/slrtable dumps a
	// built table to.
	TableFormat TableFormat
}

// Server holds bind/auth settings for the HTTP API in package server.
type Server struct {
	// BindAddress is the host:port the HTTP server listens on.
	BindAddress string

	// TokenSecret signs the JWTs server/auth.go issues. Must be between
	// MinSecretSize and MaxSecretSize bytes once decoded.
	TokenSecret string

	// DataDir is where the sqlite artifact cache stores its database
	// file, when DB is "sqlite".
	DataDir string

	// DB selects the artifact-cache backend: "sqlite" or "inmem".
	DB string
}

// Config is the top-level decoded document.
type Config struct {
	Grammar Grammar
	Server  Server
}

// Load reads and decodes the TOML document at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a TOML document already in memory.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	return cfg.FillDefaults(), nil
}

// FillDefaults returns a copy of cfg with unset fields replaced by their
// defaults.
func (cfg Config) FillDefaults() Config {
	out := cfg
	if out.Grammar.TableFormat == "" {
		out.Grammar.TableFormat = FormatJSON
	}
	if out.Server.BindAddress == "" {
		out.Server.BindAddress = ":8080"
	}
	if out.Server.DB == "" {
		out.Server.DB = "inmem"
	}
	if out.Server.TokenSecret == "" {
		out.Server.TokenSecret = defaultTokenSecret
	}
	return out
}

// Validate returns an error describing the first invalid field found, or
// nil if cfg is usable as-is (after FillDefaults).
func (cfg Config) Validate() error {
	if cfg.Grammar.File == "" {
		return fmt.Errorf("config: grammar.file is required")
	}
	switch cfg.Grammar.TableFormat {
	case FormatJSON, FormatCSV, FormatBinary:
	default:
		return fmt.Errorf("config: grammar.table_format must be one of json, csv, binary, got %q", cfg.Grammar.TableFormat)
	}
	switch cfg.Server.DB {
	case "sqlite", "inmem":
	default:
		return fmt.Errorf("config: server.db must be one of sqlite, inmem, got %q", cfg.Server.DB)
	}
	if cfg.Server.DB == "sqlite" && cfg.Server.DataDir == "" {
		return fmt.Errorf("config: server.data_dir is required when server.db is sqlite")
	}
	if len(cfg.Server.TokenSecret) < MinSecretSize || len(cfg.Server.TokenSecret) > MaxSecretSize {
		return fmt.Errorf("config: server.token_secret must be between %d and %d bytes, got %d", MinSecretSize, MaxSecretSize, len(cfg.Server.TokenSecret))
	}
	return nil
}
