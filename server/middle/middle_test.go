package middle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dekarrin/slrc/server/dao"
	"github.com/dekarrin/slrc/server/dao/inmem"
	"github.com/dekarrin/slrc/server/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func echoAuthState(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loggedIn, _ := r.Context().Value(AuthLoggedIn).(bool)
		if loggedIn {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusTeapot)
		}
	})
}

func Test_RequireAuth_RejectsMissingToken(t *testing.T) {
	repo := inmem.NewClientsRepository()
	h := RequireAuth(repo, testSecret, 0)(echoAuthState(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func Test_RequireAuth_AcceptsValidToken(t *testing.T) {
	repo := inmem.NewClientsRepository()
	c, err := repo.Create(context.Background(), dao.Client{Name: "alice", APIKeyHash: "hash", LastRotated: time.Now()})
	require.NoError(t, err)

	tok, err := token.Generate(testSecret, c)
	require.NoError(t, err)

	h := RequireAuth(repo, testSecret, 0)(echoAuthState(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func Test_OptionalAuth_PassesThroughWithoutToken(t *testing.T) {
	repo := inmem.NewClientsRepository()
	h := OptionalAuth(repo, testSecret, 0)(echoAuthState(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
}

func Test_DontPanic_RecoversAndReturns500(t *testing.T) {
	h := DontPanic()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
