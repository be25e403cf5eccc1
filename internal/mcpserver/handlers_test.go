package mcpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/d-sar/poc/pkg/beneficiaireclient"
	"github.com/d-sar/poc/pkg/virementclient"
)

type beneficiaireListerStub struct {
	beneficiaires []beneficiaireclient.Beneficiaire
	err           error
}

func (s *beneficiaireListerStub) ListAll(ctx context.Context) ([]beneficiaireclient.Beneficiaire, error) {
	return s.beneficiaires, s.err
}

type virementListerStub struct {
	virements []virementclient.Virement
	err       error
	askedID   int64
}

func (s *virementListerStub) ListByBeneficiaire(ctx context.Context, beneficiaireID int64) ([]virementclient.Virement, error) {
	s.askedID = beneficiaireID
	return s.virements, s.err
}

func serve(t *testing.T, b *beneficiaireListerStub, v *virementListerStub, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(NewHandler(b, v))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestListBeneficiaries(t *testing.T) {
	b := &beneficiaireListerStub{beneficiaires: []beneficiaireclient.Beneficiaire{
		{ID: 7, Nom: "Martin", Prenom: "Sophie"},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/mcp/beneficiaries", nil)
	rr := serve(t, b, &virementListerStub{}, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Martin") {
		t.Fatalf("expected Martin in the payload, got %s", rr.Body.String())
	}
}

func TestListBeneficiaries_UpstreamDownIs502(t *testing.T) {
	b := &beneficiaireListerStub{err: errors.New("connection refused")}

	req := httptest.NewRequest(http.MethodGet, "/api/mcp/beneficiaries", nil)
	rr := serve(t, b, &virementListerStub{}, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rr.Code)
	}
}

func TestListVirements_ResolvesNameCaseInsensitively(t *testing.T) {
	b := &beneficiaireListerStub{beneficiaires: []beneficiaireclient.Beneficiaire{
		{ID: 7, Nom: "Martin"},
		{ID: 8, Nom: "Durand"},
	}}
	v := &virementListerStub{virements: []virementclient.Virement{
		{ID: 42, BeneficiaireID: 8, Montant: decimal.RequireFromString("250.50")},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/mcp/virements?beneficiary=durand", nil)
	rr := serve(t, b, v, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if v.askedID != 8 {
		t.Fatalf("expected lookup on beneficiaire 8, got %d", v.askedID)
	}
	if !strings.Contains(rr.Body.String(), "250.50") {
		t.Fatalf("expected the montant in the payload, got %s", rr.Body.String())
	}
}

func TestListVirements_UnknownNameIs404(t *testing.T) {
	b := &beneficiaireListerStub{beneficiaires: []beneficiaireclient.Beneficiaire{{ID: 7, Nom: "Martin"}}}

	req := httptest.NewRequest(http.MethodGet, "/api/mcp/virements?beneficiary=Inconnu", nil)
	rr := serve(t, b, &virementListerStub{}, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestListVirements_MissingParamIs400(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/mcp/virements", nil)
	rr := serve(t, &beneficiaireListerStub{}, &virementListerStub{}, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestListVirements_VirementServiceDownIs502(t *testing.T) {
	b := &beneficiaireListerStub{beneficiaires: []beneficiaireclient.Beneficiaire{{ID: 7, Nom: "Martin"}}}
	v := &virementListerStub{err: errors.New("connection refused")}

	req := httptest.NewRequest(http.MethodGet, "/api/mcp/virements?beneficiary=Martin", nil)
	rr := serve(t, b, v, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rr.Code)
	}
}
