package csvc

import (
	"context"
	"errors"
	"testing"

	"github.com/dekarrin/slrc/server/dao/inmem"
	"github.com/dekarrin/slrc/server/serr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() Service {
	return Service{DB: inmem.NewDatastore()}
}

func Test_Register_ReturnsWorkingCredentials(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	c, key, err := svc.Register(ctx, "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, key)

	authed, err := svc.Authenticate(ctx, "alice", key)
	require.NoError(t, err)
	assert.Equal(t, c.ID, authed.ID)
}

func Test_Register_RejectsDuplicateName(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "alice")
	assert.ErrorIs(t, err, serr.ErrAlreadyExists)
}

func Test_Authenticate_RejectsWrongKey(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "alice", "not-the-real-key")
	assert.True(t, errors.Is(err, serr.ErrBadCredentials))
}

func Test_Authenticate_RejectsUnknownClient(t *testing.T) {
	svc := newTestService()
	_, err := svc.Authenticate(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, serr.ErrBadCredentials)
}

func Test_RotateKey_InvalidatesOldKey(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	c, oldKey, err := svc.Register(ctx, "alice")
	require.NoError(t, err)

	updated, newKey, err := svc.RotateKey(ctx, c.ID)
	require.NoError(t, err)
	assert.NotEqual(t, oldKey, newKey)

	_, err = svc.Authenticate(ctx, "alice", oldKey)
	assert.ErrorIs(t, err, serr.ErrBadCredentials)

	authed, err := svc.Authenticate(ctx, "alice", newKey)
	require.NoError(t, err)
	assert.Equal(t, updated.ID, authed.ID)
}
