package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/slrc/server/dao"
	"github.com/dekarrin/slrc/server/middle"
	"github.com/dekarrin/slrc/server/result"
	"github.com/dekarrin/slrc/server/serr"
)

// CompileRequest is the body of a POST to the artifacts collection.
type CompileRequest struct {
	Source string `json:"source"`
}

// ArtifactResponse is the JSON view of a compiled artifact.
type ArtifactResponse struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	TAC        string `json:"tac,omitempty"`
	SymbolDump string `json:"symbol_dump,omitempty"`
	Error      string `json:"error,omitempty"`
}

func toArtifactResponse(a dao.Artifact) ArtifactResponse {
	return ArtifactResponse{
		ID:         a.ID.String(),
		Status:     string(a.Status),
		TAC:        a.TAC,
		SymbolDump: a.SymbolDump,
		Error:      a.ErrorText,
	}
}

// HTTPCompile returns a HandlerFunc that compiles a submitted source
// string and caches the result as an artifact owned by the calling
// client.
func (api API) HTTPCompile() http.HandlerFunc {
	return api.httpEndpoint(api.epCompile)
}

func (api API) epCompile(req *http.Request) result.Result {
	client := req.Context().Value(middle.AuthClient).(dao.Client)

	var body CompileRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if body.Source == "" {
		return result.BadRequest("source: property is empty or missing from request", "empty source")
	}

	a, err := api.Backend.Compile(req.Context(), client, body.Source)
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	return result.Created(toArtifactResponse(a), "client %q compiled a submission with result %s", client.Name, a.Status)
}

// HTTPGetArtifact returns a HandlerFunc that fetches a previously
// compiled artifact by ID.
func (api API) HTTPGetArtifact() http.HandlerFunc {
	return api.httpEndpoint(api.epGetArtifact)
}

func (api API) epGetArtifact(req *http.Request) result.Result {
	client := req.Context().Value(middle.AuthClient).(dao.Client)
	id := requireIDParam(req)

	a, err := api.Backend.GetArtifact(req.Context(), client, id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		if errors.Is(err, serr.ErrPermissions) {
			return result.Forbidden("client %q requested artifact %s owned by another client", client.Name, id)
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(toArtifactResponse(a), "client %q fetched artifact %s", client.Name, id)
}

// HTTPListArtifacts returns a HandlerFunc that lists every artifact the
// calling client has submitted.
func (api API) HTTPListArtifacts() http.HandlerFunc {
	return api.httpEndpoint(api.epListArtifacts)
}

func (api API) epListArtifacts(req *http.Request) result.Result {
	client := req.Context().Value(middle.AuthClient).(dao.Client)

	all, err := api.Backend.ListArtifacts(req.Context(), client)
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]ArtifactResponse, len(all))
	for i, a := range all {
		resp[i] = toArtifactResponse(a)
	}

	return result.OK(resp, "client %q listed %d artifact(s)", client.Name, len(resp))
}

// HTTPGetArtifactTable returns a HandlerFunc that renders the ACTION/GOTO
// table used to build an artifact as aligned text, for inspection.
func (api API) HTTPGetArtifactTable() http.HandlerFunc {
	return api.httpEndpoint(api.epGetArtifactTable)
}

func (api API) epGetArtifactTable(req *http.Request) result.Result {
	client := req.Context().Value(middle.AuthClient).(dao.Client)
	id := requireIDParam(req)

	rendered, err := api.Backend.RenderTable(req.Context(), client, id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		if errors.Is(err, serr.ErrPermissions) {
			return result.Forbidden("client %q requested table for artifact %s owned by another client", client.Name, id)
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(rendered, "client %q rendered table for artifact %s", client.Name, id)
}
