package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/d-sar/poc/internal/virement/app"
	"github.com/d-sar/poc/internal/virement/domain"
	"github.com/d-sar/poc/pkg/beneficiaireclient"
)

type serviceStub struct {
	app.Service

	createResp *domain.VirementResponse
	createErr  error

	getResp *domain.VirementResponse
	getErr  error

	updateResp *domain.VirementResponse
	updateErr  error

	annulerErr error

	listResp []domain.VirementResponse

	total decimal.Decimal
	count int64
}

func (s *serviceStub) Create(ctx context.Context, req domain.VirementRequest) (*domain.VirementResponse, error) {
	return s.createResp, s.createErr
}

func (s *serviceStub) GetWithDetails(ctx context.Context, id int64) (*domain.VirementResponse, error) {
	return s.getResp, s.getErr
}

func (s *serviceStub) List(ctx context.Context) ([]domain.VirementResponse, error) {
	return s.listResp, nil
}

func (s *serviceStub) ListByBeneficiaire(ctx context.Context, beneficiaireID int64) ([]domain.VirementResponse, error) {
	return s.listResp, nil
}

func (s *serviceStub) UpdateStatut(ctx context.Context, id int64, statut domain.StatutVirement) (*domain.VirementResponse, error) {
	return s.updateResp, s.updateErr
}

func (s *serviceStub) Annuler(ctx context.Context, id int64) error {
	return s.annulerErr
}

func (s *serviceStub) TotalForPeriod(ctx context.Context, ribSource string, start, end time.Time) (decimal.Decimal, error) {
	return s.total, nil
}

func (s *serviceStub) CountForPeriod(ctx context.Context, ribSource string, start, end time.Time) (int64, error) {
	return s.count, nil
}

func serve(t *testing.T, stub *serviceStub, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(NewHandler(stub))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHandleCreate_Success(t *testing.T) {
	stub := &serviceStub{createResp: &domain.VirementResponse{
		ID:             42,
		BeneficiaireID: 7,
		RibSource:      "FR761234567890",
		Montant:        decimal.RequireFromString("250.50"),
		Statut:         domain.StatutValide,
		Type:           domain.TypeNormal,
	}}

	body := `{"beneficiaireId":7,"ribSource":"FR761234567890","montant":"250.50","type":"NORMAL"}`
	req := httptest.NewRequest(http.MethodPost, "/virements", bytes.NewBufferString(body))
	rr := serve(t, stub, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp domain.VirementResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != 42 || resp.Statut != domain.StatutValide {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHandleCreate_ValidationErrorIs400(t *testing.T) {
	stub := &serviceStub{createErr: domain.ErrPlafondDepasse}

	req := httptest.NewRequest(http.MethodPost, "/virements", bytes.NewBufferString(`{}`))
	rr := serve(t, stub, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHandleCreate_DependencyDownIs503(t *testing.T) {
	stub := &serviceStub{
		createErr: fmt.Errorf("checking beneficiaire 7: %w", beneficiaireclient.ErrServiceUnavailable),
	}

	req := httptest.NewRequest(http.MethodPost, "/virements", bytes.NewBufferString(`{}`))
	rr := serve(t, stub, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}

func TestHandleCreate_MalformedBodyIs400(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/virements", bytes.NewBufferString(`{"montant":`))
	rr := serve(t, &serviceStub{}, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHandleGet_NotFoundIs404(t *testing.T) {
	stub := &serviceStub{getErr: domain.ErrVirementNotFound}

	req := httptest.NewRequest(http.MethodGet, "/virements/99", nil)
	rr := serve(t, stub, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestHandleGet_DetailsAliasesGet(t *testing.T) {
	stub := &serviceStub{getResp: &domain.VirementResponse{
		ID:              5,
		BeneficiaireNom: "Martin",
	}}

	for _, path := range []string{"/virements/5", "/virements/5/details"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := serve(t, stub, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Martin") {
			t.Fatalf("%s: expected enriched payload, got %s", path, rr.Body.String())
		}
	}
}

func TestHandleUpdateStatut_IllegalTransitionIs400(t *testing.T) {
	stub := &serviceStub{updateErr: domain.ErrTransitionInterdite}

	req := httptest.NewRequest(http.MethodPut, "/virements/5/statut?nouveauStatut=VALIDE", nil)
	rr := serve(t, stub, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHandleUpdateStatut_NotFoundIs404(t *testing.T) {
	stub := &serviceStub{updateErr: domain.ErrVirementNotFound}

	req := httptest.NewRequest(http.MethodPut, "/virements/99/statut?nouveauStatut=EXECUTE", nil)
	rr := serve(t, stub, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestHandleUpdateStatut_Success(t *testing.T) {
	stub := &serviceStub{updateResp: &domain.VirementResponse{ID: 5, Statut: domain.StatutExecute}}

	req := httptest.NewRequest(http.MethodPut, "/virements/5/statut?nouveauStatut=execute", nil)
	rr := serve(t, stub, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"EXECUTE"`) {
		t.Fatalf("expected EXECUTE in payload, got %s", rr.Body.String())
	}
}

func TestHandleAnnuler_IllegalIs400(t *testing.T) {
	stub := &serviceStub{annulerErr: domain.ErrTransitionInterdite}

	req := httptest.NewRequest(http.MethodPost, "/virements/5/annuler", nil)
	rr := serve(t, stub, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHandleDelete_AliasesAnnuler(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/virements/5", nil)
	rr := serve(t, &serviceStub{}, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	stub := &serviceStub{annulerErr: domain.ErrVirementNotFound}
	req = httptest.NewRequest(http.MethodDelete, "/virements/99", nil)
	rr = serve(t, stub, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a missing record, got %d", rr.Code)
	}
}

func TestHandleStatsTotal(t *testing.T) {
	stub := &serviceStub{total: decimal.RequireFromString("1250.75")}

	req := httptest.NewRequest(http.MethodGet,
		"/virements/stats/total?ribSource=FR761234567890&startDate=2026-01-01T00:00:00&endDate=2026-02-01T00:00:00", nil)
	rr := serve(t, stub, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if strings.TrimSpace(rr.Body.String()) != `"1250.75"` {
		t.Fatalf("expected quoted decimal total, got %s", rr.Body.String())
	}
}

func TestHandleStatsTotal_MissingRibSourceIs400(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/virements/stats/total?startDate=2026-01-01T00:00:00&endDate=2026-02-01T00:00:00", nil)
	rr := serve(t, &serviceStub{}, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHandleStatsCount(t *testing.T) {
	stub := &serviceStub{count: 3}

	req := httptest.NewRequest(http.MethodGet,
		"/virements/stats/count?ribSource=FR761234567890&startDate=2026-01-01T00:00:00Z&endDate=2026-02-01T00:00:00Z", nil)
	rr := serve(t, stub, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if strings.TrimSpace(rr.Body.String()) != "3" {
		t.Fatalf("expected count 3, got %s", rr.Body.String())
	}
}
