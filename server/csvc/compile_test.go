package csvc

import (
	"context"
	"testing"

	"github.com/dekarrin/slrc/server/dao"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerTestClient(t *testing.T, svc Service) dao.Client {
	c, _, err := svc.Register(context.Background(), "alice")
	require.NoError(t, err)
	return c
}

func Test_Compile_ValidSourceYieldsOKArtifact(t *testing.T) {
	svc := newTestService()
	client := registerTestClient(t, svc)

	a, err := svc.Compile(context.Background(), client, "int a; print a;")
	require.NoError(t, err)
	assert.Equal(t, dao.StatusOK, a.Status)
	assert.NotEmpty(t, a.TAC)
	assert.NotEmpty(t, a.TableBinary)
}

func Test_Compile_InvalidSourceYieldsErrorArtifactNotServiceError(t *testing.T) {
	svc := newTestService()
	client := registerTestClient(t, svc)

	a, err := svc.Compile(context.Background(), client, "this is not a program")
	require.NoError(t, err)
	assert.Equal(t, dao.StatusError, a.Status)
	assert.NotEmpty(t, a.ErrorText)
}

func Test_GetArtifact_RejectsOtherClientsArtifact(t *testing.T) {
	svc := newTestService()
	owner := registerTestClient(t, svc)
	other, _, err := svc.Register(context.Background(), "bob")
	require.NoError(t, err)

	a, err := svc.Compile(context.Background(), owner, "int a; print a;")
	require.NoError(t, err)

	_, err = svc.GetArtifact(context.Background(), other, a.ID)
	assert.Error(t, err)
}

func Test_ListArtifacts_OnlyReturnsClientsOwn(t *testing.T) {
	svc := newTestService()
	alice := registerTestClient(t, svc)
	bob, _, err := svc.Register(context.Background(), "bob")
	require.NoError(t, err)

	_, err = svc.Compile(context.Background(), alice, "int a; print a;")
	require.NoError(t, err)
	_, err = svc.Compile(context.Background(), bob, "int b; print b;")
	require.NoError(t, err)

	aliceArtifacts, err := svc.ListArtifacts(context.Background(), alice)
	require.NoError(t, err)
	assert.Len(t, aliceArtifacts, 1)
}

func Test_RenderTable_ProducesNonEmptyOutput(t *testing.T) {
	svc := newTestService()
	client := registerTestClient(t, svc)

	a, err := svc.Compile(context.Background(), client, "int a; print a;")
	require.NoError(t, err)

	out, err := svc.RenderTable(context.Background(), client, a.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
