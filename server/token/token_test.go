package token

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dekarrin/slrc/server/dao"
	"github.com/dekarrin/slrc/server/dao/inmem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func Test_GenerateAndValidate_RoundTrips(t *testing.T) {
	ctx := context.Background()
	repo := inmem.NewClientsRepository()

	c, err := repo.Create(ctx, dao.Client{Name: "alice", APIKeyHash: "hash1", LastRotated: time.Now()})
	require.NoError(t, err)

	tok, err := Generate(testSecret, c)
	require.NoError(t, err)

	got, err := Validate(ctx, tok, testSecret, repo)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
}

func Test_Validate_RejectsAfterKeyRotation(t *testing.T) {
	ctx := context.Background()
	repo := inmem.NewClientsRepository()

	c, err := repo.Create(ctx, dao.Client{Name: "alice", APIKeyHash: "hash1", LastRotated: time.Now()})
	require.NoError(t, err)

	tok, err := Generate(testSecret, c)
	require.NoError(t, err)

	c.APIKeyHash = "hash2"
	c.LastRotated = time.Now().Add(time.Second)
	_, err = repo.Update(ctx, c.ID, c)
	require.NoError(t, err)

	_, err = Validate(ctx, tok, testSecret, repo)
	assert.Error(t, err)
}

func Test_Validate_RejectsUnknownSubject(t *testing.T) {
	ctx := context.Background()
	repo := inmem.NewClientsRepository()

	other, err := repo.Create(ctx, dao.Client{Name: "ghost", APIKeyHash: "hash1"})
	require.NoError(t, err)
	tok, err := Generate(testSecret, other)
	require.NoError(t, err)

	_, err = repo.Delete(ctx, other.ID)
	require.NoError(t, err)

	_, err = Validate(ctx, tok, testSecret, repo)
	assert.Error(t, err)
}

func Test_Get_ExtractsBearerToken(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")

	tok, err := Get(req)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)
}

func Test_Get_RejectsMissingHeader(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)

	_, err = Get(req)
	assert.Error(t, err)
}

func Test_Get_RejectsNonBearerScheme(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Basic abc123")

	_, err = Get(req)
	assert.Error(t, err)
}
