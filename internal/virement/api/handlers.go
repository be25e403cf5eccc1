/**
 * @description
 * HTTP handlers for the virement-service. Handlers parse the request, call
 * the service layer, and map domain errors to HTTP statuses:
 * not found -> 404, validation and illegal transitions -> 400, a failed
 * beneficiaire-service call during create -> 503.
 */
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/d-sar/poc/internal/virement/app"
	"github.com/d-sar/poc/internal/virement/domain"
)

// Handler holds the application service that handlers will interact with.
type Handler struct {
	service app.Service
}

// NewHandler creates a new Handler with the given service.
func NewHandler(service app.Service) *Handler {
	return &Handler{service: service}
}

func idParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// handleCreate creates a new transfer after validating the beneficiary.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req domain.VirementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Create(r.Context(), req)
	if err != nil {
		if app.IsDependencyUnavailable(err) {
			http.Error(w, "beneficiaire service unavailable", http.StatusServiceUnavailable)
			return
		}
		// Remaining create failures are validation errors.
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// handleList returns all transfers.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	responses, err := h.service.List(r.Context())
	h.respondList(w, responses, err)
}

// handleGet returns one transfer, enriched with beneficiary details when the
// lookup succeeds. Both /{id} and /{id}/details serve the same payload.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	resp, err := h.service.GetWithDetails(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrVirementNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to fetch virement", http.StatusInternalServerError)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListByBeneficiaire(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "beneficiaireId")
	if err != nil {
		http.Error(w, "invalid beneficiaire id", http.StatusBadRequest)
		return
	}
	responses, lerr := h.service.ListByBeneficiaire(r.Context(), id)
	h.respondList(w, responses, lerr)
}

func (h *Handler) handleListByRibSource(w http.ResponseWriter, r *http.Request) {
	responses, err := h.service.ListByRibSource(r.Context(), chi.URLParam(r, "ribSource"))
	h.respondList(w, responses, err)
}

func (h *Handler) handleListByStatut(w http.ResponseWriter, r *http.Request) {
	statut := domain.StatutVirement(strings.ToUpper(chi.URLParam(r, "statut")))
	responses, err := h.service.ListByStatut(r.Context(), statut)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondWithJSON(w, http.StatusOK, responses)
}

func (h *Handler) handleListByType(w http.ResponseWriter, r *http.Request) {
	t := domain.TypeVirement(strings.ToUpper(chi.URLParam(r, "type")))
	responses, err := h.service.ListByType(r.Context(), t)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondWithJSON(w, http.StatusOK, responses)
}

// handleUpdateStatut moves a transfer to the status given by the
// nouveauStatut query parameter, subject to the transition table.
func (h *Handler) handleUpdateStatut(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	statut := domain.StatutVirement(strings.ToUpper(r.URL.Query().Get("nouveauStatut")))

	resp, err := h.service.UpdateStatut(r.Context(), id, statut)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVirementNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, domain.ErrStatutInvalide), errors.Is(err, domain.ErrTransitionInterdite):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "failed to update statut", http.StatusInternalServerError)
		}
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// handleAnnuler cancels a transfer when its status allows it.
func (h *Handler) handleAnnuler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.service.Annuler(r.Context(), id); err != nil {
		h.respondAnnulerError(w, err, http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// handleDelete aliases cancellation: the record is kept and moved to ANNULE,
// never removed. Kept for compatibility with the historical DELETE route.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.service.Annuler(r.Context(), id); err != nil {
		h.respondAnnulerError(w, err, http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) respondAnnulerError(w http.ResponseWriter, err error, illegalStatus int) {
	switch {
	case errors.Is(err, domain.ErrVirementNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrTransitionInterdite):
		http.Error(w, err.Error(), illegalStatus)
	default:
		http.Error(w, "failed to cancel virement", http.StatusInternalServerError)
	}
}

// handleStatsTotal sums montant for one source RIB over a period. An empty
// matching set yields 0.
func (h *Handler) handleStatsTotal(w http.ResponseWriter, r *http.Request) {
	ribSource, start, end, err := statsParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	total, err := h.service.TotalForPeriod(r.Context(), ribSource, start, end)
	if err != nil {
		http.Error(w, "failed to total virements", http.StatusInternalServerError)
		return
	}
	respondWithJSON(w, http.StatusOK, total)
}

// handleStatsCount counts transfers for one source RIB over a period.
func (h *Handler) handleStatsCount(w http.ResponseWriter, r *http.Request) {
	ribSource, start, end, err := statsParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	count, err := h.service.CountForPeriod(r.Context(), ribSource, start, end)
	if err != nil {
		http.Error(w, "failed to count virements", http.StatusInternalServerError)
		return
	}
	respondWithJSON(w, http.StatusOK, count)
}

func statsParams(r *http.Request) (ribSource string, start, end time.Time, err error) {
	q := r.URL.Query()
	ribSource = q.Get("ribSource")
	if ribSource == "" {
		return "", time.Time{}, time.Time{}, errors.New("ribSource is required")
	}
	start, err = parseDateTime(q.Get("startDate"))
	if err != nil {
		return "", time.Time{}, time.Time{}, errors.New("invalid startDate")
	}
	end, err = parseDateTime(q.Get("endDate"))
	if err != nil {
		return "", time.Time{}, time.Time{}, errors.New("invalid endDate")
	}
	return ribSource, start, end, nil
}

// parseDateTime accepts RFC 3339 and the zone-less ISO form the historical
// clients send (2006-01-02T15:04:05).
func parseDateTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", value)
}

func (h *Handler) respondList(w http.ResponseWriter, responses []domain.VirementResponse, err error) {
	if err != nil {
		http.Error(w, "failed to list virements", http.StatusInternalServerError)
		return
	}
	respondWithJSON(w, http.StatusOK, responses)
}

// respondWithJSON is a helper function to write JSON responses.
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
