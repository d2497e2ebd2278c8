package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dekarrin/slrc/server/dao/inmem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	srv := New(":0", inmem.NewDatastore(), []byte("0123456789abcdef0123456789abcdef"), 0)
	return httptest.NewServer(srv.httpServer.Handler)
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body interface{}, token string) *http.Response {
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func getWithAuth(t *testing.T, ts *httptest.Server, path, token string) *http.Response {
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func Test_Server_FullClientLifecycle(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	resp := postJSON(t, ts, "/api/v1/clients", map[string]string{"name": "alice"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var registered struct {
		ID     string `json:"id"`
		APIKey string `json:"api_key"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&registered))
	resp.Body.Close()
	require.NotEmpty(t, registered.APIKey)

	resp = postJSON(t, ts, "/api/v1/login", map[string]string{"name": "alice", "api_key": registered.APIKey}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	resp.Body.Close()
	require.NotEmpty(t, login.Token)

	resp = postJSON(t, ts, "/api/v1/artifacts", map[string]string{"source": "int a; print a;"}, login.Token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var artifact struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&artifact))
	resp.Body.Close()
	assert.Equal(t, "ok", artifact.Status)

	resp = getWithAuth(t, ts, "/api/v1/artifacts/"+artifact.ID, login.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = getWithAuth(t, ts, "/api/v1/artifacts", login.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = getWithAuth(t, ts, "/api/v1/artifacts/"+artifact.ID+"/table", login.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func Test_Server_RejectsArtifactAccessWithoutToken(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	resp := getWithAuth(t, ts, "/api/v1/artifacts", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func Test_Server_RejectsLoginWithWrongKey(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	resp := postJSON(t, ts, "/api/v1/clients", map[string]string{"name": "bob"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, ts, "/api/v1/login", map[string]string{"name": "bob", "api_key": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func Test_Server_DuplicateClientNameConflicts(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	resp := postJSON(t, ts, "/api/v1/clients", map[string]string{"name": "carol"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, ts, "/api/v1/clients", map[string]string{"name": "carol"}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}
