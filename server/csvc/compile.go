package csvc

import (
	"context"
	"errors"

	"github.com/dekarrin/slrc/internal/compiler"
	"github.com/dekarrin/slrc/internal/grammar"
	"github.com/dekarrin/slrc/internal/render"
	"github.com/dekarrin/slrc/internal/slrerr"
	"github.com/dekarrin/slrc/internal/slrtable"
	"github.com/dekarrin/slrc/server/dao"
	"github.com/dekarrin/slrc/server/serr"
	"github.com/google/uuid"
)

func decodeTable(data []byte) (*slrtable.Table, error) {
	return slrtable.DecBinary(data)
}

func baselineGrammar() (*grammar.GrammarSet, error) {
	return grammar.BaselineGrammar()
}

// Compile runs source through the baseline-grammar compiler on behalf of
// client and caches the result (success or failure) as a dao.Artifact.
//
// A grammar conflict reached during parsing (slrerr.ErrConflict) is not
// a service failure: it is recorded as a StatusConflict artifact and
// returned alongside a nil error, the same way a StatusError artifact
// records a lexical or syntax failure. Only an unexpected problem
// persisting the result surfaces as a non-nil error.
func (svc Service) Compile(ctx context.Context, client dao.Client, source string) (dao.Artifact, error) {
	a := dao.Artifact{
		ClientID: client.ID,
		Source:   source,
	}

	c, err := compiler.NewBaseline()
	if err != nil {
		return dao.Artifact{}, serr.New("could not build baseline compiler", err)
	}

	tbl, tblErr := compiler.BaselineTable()
	if tblErr == nil {
		a.TableBinary = tbl.EncBinary()
	}

	result, compileErr := c.Compile(source)
	switch {
	case compileErr == nil:
		a.Status = dao.StatusOK
		a.TAC = result.Program.Code
		a.SymbolDump = result.Registry.Dump()
	case errors.Is(compileErr, slrerr.ErrConflict):
		a.Status = dao.StatusConflict
		a.ErrorText = compileErr.Error()
	default:
		a.Status = dao.StatusError
		a.ErrorText = compileErr.Error()
	}

	created, err := svc.DB.Artifacts().Create(ctx, a)
	if err != nil {
		return dao.Artifact{}, serr.WrapDB("could not save artifact", err)
	}
	return created, nil
}

// GetArtifact returns the artifact with the given ID, as long as it
// belongs to client.
func (svc Service) GetArtifact(ctx context.Context, client dao.Client, id uuid.UUID) (dao.Artifact, error) {
	a, err := svc.DB.Artifacts().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Artifact{}, serr.ErrNotFound
		}
		return dao.Artifact{}, serr.WrapDB("", err)
	}
	if a.ClientID != client.ID {
		return dao.Artifact{}, serr.ErrPermissions
	}
	return a, nil
}

// ListArtifacts returns every artifact client has submitted.
func (svc Service) ListArtifacts(ctx context.Context, client dao.Client) ([]dao.Artifact, error) {
	all, err := svc.DB.Artifacts().GetAllByClient(ctx, client.ID)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}
	return all, nil
}

// RenderTable renders the parse table used to build the artifact with
// the given ID as aligned text, for diagnostic display.
func (svc Service) RenderTable(ctx context.Context, client dao.Client, id uuid.UUID) (string, error) {
	a, err := svc.GetArtifact(ctx, client, id)
	if err != nil {
		return "", err
	}
	if len(a.TableBinary) == 0 {
		return "", serr.New("no table was recorded for this artifact")
	}

	tbl, err := decodeTable(a.TableBinary)
	if err != nil {
		return "", serr.New("could not decode stored table", err)
	}

	g, err := baselineGrammar()
	if err != nil {
		return "", serr.New("could not load grammar", err)
	}

	return render.Table(tbl, g), nil
}
