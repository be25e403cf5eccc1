/**
 * @description
 * The mcp-server is a read-only relay between the chatbot and the banking
 * services. It exposes two endpoints:
 *   GET /api/mcp/beneficiaries           -> all beneficiaries
 *   GET /api/mcp/virements?beneficiary=  -> a named beneficiary's transfers
 * The virement lookup resolves the beneficiary by name first, then asks the
 * virement-service for that beneficiary's transfers.
 */
package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/d-sar/poc/pkg/beneficiaireclient"
	"github.com/d-sar/poc/pkg/virementclient"
)

// BeneficiaireLister is the slice of the beneficiaire client the relay uses.
type BeneficiaireLister interface {
	ListAll(ctx context.Context) ([]beneficiaireclient.Beneficiaire, error)
}

// VirementLister is the slice of the virement client the relay uses.
type VirementLister interface {
	ListByBeneficiaire(ctx context.Context, beneficiaireID int64) ([]virementclient.Virement, error)
}

// Handler relays MCP queries to the two banking services.
type Handler struct {
	beneficiaires BeneficiaireLister
	virements     VirementLister
}

// NewHandler creates a new Handler over the two service clients.
func NewHandler(beneficiaires BeneficiaireLister, virements VirementLister) *Handler {
	return &Handler{beneficiaires: beneficiaires, virements: virements}
}

// NewRouter registers the MCP relay routes.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("MCP server is healthy"))
	})

	r.Route("/api/mcp", func(r chi.Router) {
		r.Get("/beneficiaries", h.handleListBeneficiaries)
		r.Get("/virements", h.handleListVirements)
	})

	return r
}

func (h *Handler) handleListBeneficiaries(w http.ResponseWriter, r *http.Request) {
	beneficiaires, err := h.beneficiaires.ListAll(r.Context())
	if err != nil {
		http.Error(w, "beneficiaire service unavailable", http.StatusBadGateway)
		return
	}
	respondWithJSON(w, http.StatusOK, beneficiaires)
}

func (h *Handler) handleListVirements(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("beneficiary"))
	if name == "" {
		http.Error(w, "beneficiary query parameter is required", http.StatusBadRequest)
		return
	}

	beneficiaires, err := h.beneficiaires.ListAll(r.Context())
	if err != nil {
		http.Error(w, "beneficiaire service unavailable", http.StatusBadGateway)
		return
	}

	var match *beneficiaireclient.Beneficiaire
	for i := range beneficiaires {
		if strings.EqualFold(beneficiaires[i].Nom, name) {
			match = &beneficiaires[i]
			break
		}
	}
	if match == nil {
		http.Error(w, "no beneficiary with this name", http.StatusNotFound)
		return
	}

	virements, err := h.virements.ListByBeneficiaire(r.Context(), match.ID)
	if err != nil {
		http.Error(w, "virement service unavailable", http.StatusBadGateway)
		return
	}
	respondWithJSON(w, http.StatusOK, virements)
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
