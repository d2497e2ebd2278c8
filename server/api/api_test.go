package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dekarrin/slrc/server/csvc"
	"github.com/dekarrin/slrc/server/dao/inmem"
	"github.com/dekarrin/slrc/server/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI() API {
	return API{
		Backend:     csvc.Service{DB: inmem.NewDatastore()},
		Secret:      []byte("0123456789abcdef0123456789abcdef"),
		UnauthDelay: 0,
	}
}

func Test_EpRegisterClient_RejectsMissingName(t *testing.T) {
	api := newTestAPI()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	r := api.epRegisterClient(req)
	assert.Equal(t, http.StatusBadRequest, r.Status)
}

func Test_EpRegisterClient_RejectsWrongContentType(t *testing.T) {
	api := newTestAPI()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", bytes.NewReader([]byte(`{"name":"alice"}`)))
	req.Header.Set("Content-Type", "text/plain")

	r := api.epRegisterClient(req)
	assert.Equal(t, http.StatusBadRequest, r.Status)
}

func Test_EpRegisterClient_SucceedsWithValidBody(t *testing.T) {
	api := newTestAPI()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", bytes.NewReader([]byte(`{"name":"alice"}`)))
	req.Header.Set("Content-Type", "application/json")

	r := api.epRegisterClient(req)
	require.Equal(t, http.StatusCreated, r.Status)
}

func Test_EpCreateLogin_RejectsMissingAPIKey(t *testing.T) {
	api := newTestAPI()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewReader([]byte(`{"name":"alice"}`)))
	req.Header.Set("Content-Type", "application/json")

	r := api.epCreateLogin(req)
	assert.Equal(t, http.StatusBadRequest, r.Status)
}

func Test_HttpEndpoint_RecoversPanicAsInternalServerError(t *testing.T) {
	api := newTestAPI()

	h := api.httpEndpoint(func(req *http.Request) result.Result {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
