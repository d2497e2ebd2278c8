package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/slrc/server/result"
	"github.com/dekarrin/slrc/server/serr"
	"github.com/dekarrin/slrc/server/token"
)

// RegisterRequest is the body of a POST to the clients collection.
type RegisterRequest struct {
	Name string `json:"name"`
}

// RegisterResponse carries the one-time plaintext API key. It is never
// shown again after this response.
type RegisterResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	APIKey string `json:"api_key"`
}

// HTTPRegisterClient returns a HandlerFunc that creates a new client and
// returns its one-time API key.
func (api API) HTTPRegisterClient() http.HandlerFunc {
	return api.httpEndpoint(api.epRegisterClient)
}

func (api API) epRegisterClient(req *http.Request) result.Result {
	var body RegisterRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if body.Name == "" {
		return result.BadRequest("name: property is empty or missing from request", "empty name")
	}

	client, key, err := api.Backend.Register(req.Context(), body.Name)
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return result.Conflict(err.Error(), "register client %q: %s", body.Name, err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	resp := RegisterResponse{ID: client.ID.String(), Name: client.Name, APIKey: key}
	return result.Created(resp, "client %q registered", client.Name)
}

// LoginRequest is the body of a POST to the login endpoint.
type LoginRequest struct {
	Name   string `json:"name"`
	APIKey string `json:"api_key"`
}

// LoginResponse carries the JWT a client uses to authenticate subsequent
// requests.
type LoginResponse struct {
	Token    string `json:"token"`
	ClientID string `json:"client_id"`
}

// HTTPCreateLogin returns a HandlerFunc that exchanges a client's name and
// API key for a signed JWT.
func (api API) HTTPCreateLogin() http.HandlerFunc {
	return api.httpEndpoint(api.epCreateLogin)
}

func (api API) epCreateLogin(req *http.Request) result.Result {
	var body LoginRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if body.Name == "" {
		return result.BadRequest("name: property is empty or missing from request", "empty name")
	}
	if body.APIKey == "" {
		return result.BadRequest("api_key: property is empty or missing from request", "empty api_key")
	}

	client, err := api.Backend.Authenticate(req.Context(), body.Name, body.APIKey)
	if err != nil {
		if errors.Is(err, serr.ErrBadCredentials) {
			return result.Unauthorized(serr.ErrBadCredentials.Error(), "client %q: %s", body.Name, err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	tok, err := token.Generate(api.Secret, client)
	if err != nil {
		return result.InternalServerError("could not generate JWT: " + err.Error())
	}

	resp := LoginResponse{Token: tok, ClientID: client.ID.String()}
	return result.Created(resp, "client %q logged in", client.Name)
}
