package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse_FillsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
		[grammar]
		file = "baseline.grm"

		[server]
		bind_address = ""
	`))
	require.NoError(t, err)
	assert.Equal(t, "baseline.grm", cfg.Grammar.File)
	assert.Equal(t, FormatJSON, cfg.Grammar.TableFormat)
	assert.Equal(t, ":8080", cfg.Server.BindAddress)
	assert.Equal(t, "inmem", cfg.Server.DB)
}

func Test_Parse_RespectsExplicitValues(t *testing.T) {
	cfg, err := Parse([]byte(`
		[grammar]
		file = "baseline.grm"
		table_format = "csv"

		[server]
		bind_address = "127.0.0.1:9090"
		db = "sqlite"
		data_dir = "/var/lib/slrc"
	`))
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, cfg.Grammar.TableFormat)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.BindAddress)
	assert.Equal(t, "sqlite", cfg.Server.DB)
}

func Test_Validate_RequiresGrammarFile(t *testing.T) {
	cfg := Config{}.FillDefaults()
	err := cfg.Validate()
	assert.Error(t, err)
}

func Test_Validate_RequiresDataDirForSQLite(t *testing.T) {
	cfg := Config{Grammar: Grammar{File: "g.grm"}, Server: Server{DB: "sqlite"}}.FillDefaults()
	err := cfg.Validate()
	assert.Error(t, err)
}

func Test_Validate_AcceptsWellFormedConfig(t *testing.T) {
	cfg := Config{Grammar: Grammar{File: "g.grm"}}.FillDefaults()
	assert.NoError(t, cfg.Validate())
}

func Test_Load_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/to/config.toml")
	assert.Error(t, err)
}

func Test_FillDefaults_SetsTokenSecretWithinBounds(t *testing.T) {
	cfg := Config{Grammar: Grammar{File: "g.grm"}}.FillDefaults()
	assert.GreaterOrEqual(t, len(cfg.Server.TokenSecret), MinSecretSize)
	assert.LessOrEqual(t, len(cfg.Server.TokenSecret), MaxSecretSize)
	assert.NoError(t, cfg.Validate())
}

func Test_Validate_RejectsShortTokenSecret(t *testing.T) {
	cfg := Config{Grammar: Grammar{File: "g.grm"}, Server: Server{TokenSecret: "too-short"}}.FillDefaults()
	assert.Error(t, cfg.Validate())
}
