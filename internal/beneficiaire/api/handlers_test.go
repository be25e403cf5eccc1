package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/d-sar/poc/internal/beneficiaire/domain"
	"github.com/d-sar/poc/internal/beneficiaire/store"
)

type repoStub struct {
	store.Repository

	beneficiaires []domain.Beneficiaire

	createErr error
	created   *domain.Beneficiaire

	exists bool
}

func (s *repoStub) ListBeneficiaires(ctx context.Context) ([]domain.Beneficiaire, error) {
	return s.beneficiaires, nil
}

func (s *repoStub) FindBeneficiaireByID(ctx context.Context, id int64) (*domain.Beneficiaire, error) {
	for i := range s.beneficiaires {
		if s.beneficiaires[i].ID == id {
			return &s.beneficiaires[i], nil
		}
	}
	return nil, domain.ErrBeneficiaireNotFound
}

func (s *repoStub) FindBeneficiaireByRib(ctx context.Context, rib string) (*domain.Beneficiaire, error) {
	for i := range s.beneficiaires {
		if s.beneficiaires[i].Rib == rib {
			return &s.beneficiaires[i], nil
		}
	}
	return nil, domain.ErrBeneficiaireNotFound
}

func (s *repoStub) CreateBeneficiaire(ctx context.Context, b *domain.Beneficiaire) (*domain.Beneficiaire, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	b.ID = 1
	s.created = b
	return b, nil
}

func (s *repoStub) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return s.exists, nil
}

func (s *repoStub) DeleteBeneficiaire(ctx context.Context, id int64) error {
	for i := range s.beneficiaires {
		if s.beneficiaires[i].ID == id {
			return nil
		}
	}
	return domain.ErrBeneficiaireNotFound
}

func serve(t *testing.T, stub *repoStub, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(NewHandler(stub))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHandleCreate_Success(t *testing.T) {
	stub := &repoStub{}

	body := `{"nom":"Martin","prenom":"Sophie","rib":"FR769999000011","type":"PHYSIQUE"}`
	req := httptest.NewRequest(http.MethodPost, "/beneficiaires", bytes.NewBufferString(body))
	rr := serve(t, stub, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var created domain.Beneficiaire
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID != 1 || created.Nom != "Martin" || created.Prenom != "Sophie" {
		t.Fatalf("unexpected response: %+v", created)
	}
}

func TestHandleCreate_RibConflictIs409(t *testing.T) {
	stub := &repoStub{createErr: domain.ErrRibConflict}

	body := `{"nom":"Martin","prenom":"Sophie","rib":"FR769999000011","type":"PHYSIQUE"}`
	req := httptest.NewRequest(http.MethodPost, "/beneficiaires", bytes.NewBufferString(body))
	rr := serve(t, stub, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
}

func TestHandleCreate_BadTypeIs400(t *testing.T) {
	body := `{"nom":"Martin","prenom":"Sophie","rib":"FR769999000011","type":"ROBOT"}`
	req := httptest.NewRequest(http.MethodPost, "/beneficiaires", bytes.NewBufferString(body))
	rr := serve(t, &repoStub{}, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHandleGet_NotFoundIs404(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/beneficiaires/99", nil)
	rr := serve(t, &repoStub{}, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestHandleGet_Success(t *testing.T) {
	stub := &repoStub{beneficiaires: []domain.Beneficiaire{
		{ID: 7, Nom: "Martin", Prenom: "Sophie", Rib: "FR769999000011", Type: domain.TypePhysique},
	}}

	req := httptest.NewRequest(http.MethodGet, "/beneficiaires/7", nil)
	rr := serve(t, stub, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"rib":"FR769999000011"`) {
		t.Fatalf("expected the rib in the payload, got %s", rr.Body.String())
	}
}

func TestHandleExists_BareBoolean(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/beneficiaires/7/exists", nil)
	rr := serve(t, &repoStub{exists: true}, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if strings.TrimSpace(rr.Body.String()) != "true" {
		t.Fatalf("expected a bare JSON true, got %q", rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/beneficiaires/8/exists", nil)
	rr = serve(t, &repoStub{exists: false}, req)

	if strings.TrimSpace(rr.Body.String()) != "false" {
		t.Fatalf("expected a bare JSON false, got %q", rr.Body.String())
	}
}

func TestHandleGetByRib(t *testing.T) {
	stub := &repoStub{beneficiaires: []domain.Beneficiaire{
		{ID: 7, Nom: "Martin", Rib: "FR769999000011", Type: domain.TypePhysique},
	}}

	req := httptest.NewRequest(http.MethodGet, "/beneficiaires/rib/FR769999000011", nil)
	rr := serve(t, stub, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/beneficiaires/rib/FR760000000000", nil)
	rr = serve(t, stub, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown rib, got %d", rr.Code)
	}
}

func TestHandleDelete(t *testing.T) {
	stub := &repoStub{beneficiaires: []domain.Beneficiaire{{ID: 7}}}

	req := httptest.NewRequest(http.MethodDelete, "/beneficiaires/7", nil)
	rr := serve(t, stub, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/beneficiaires/99", nil)
	rr = serve(t, stub, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
