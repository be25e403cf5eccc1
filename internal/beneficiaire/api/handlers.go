/**
 * @description
 * HTTP handlers for the beneficiaire-service. Handlers parse the request,
 * call the repository, and map repository errors to HTTP statuses:
 * not found -> 404, rib conflict -> 409, bad input -> 400.
 */
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/d-sar/poc/internal/beneficiaire/domain"
	"github.com/d-sar/poc/internal/beneficiaire/store"
)

// Handler holds the repository the handlers operate on.
type Handler struct {
	repo store.Repository
}

// NewHandler creates a new Handler with the given repository.
func NewHandler(repo store.Repository) *Handler {
	return &Handler{repo: repo}
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// handleList returns all beneficiaries.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	beneficiaires, err := h.repo.ListBeneficiaires(r.Context())
	if err != nil {
		http.Error(w, "failed to list beneficiaires", http.StatusInternalServerError)
		return
	}
	respondWithJSON(w, http.StatusOK, beneficiaires)
}

// handleGet returns one beneficiary by id.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	b, err := h.repo.FindBeneficiaireByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrBeneficiaireNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to fetch beneficiaire", http.StatusInternalServerError)
		return
	}
	respondWithJSON(w, http.StatusOK, b)
}

// handleCreate inserts a new beneficiary.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var b domain.Beneficiaire
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !b.Type.Valid() {
		http.Error(w, domain.ErrTypeInvalide.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.repo.CreateBeneficiaire(r.Context(), &b)
	if err != nil {
		if errors.Is(err, domain.ErrRibConflict) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "failed to create beneficiaire", http.StatusInternalServerError)
		return
	}
	respondWithJSON(w, http.StatusOK, created)
}

// handleUpdate performs a full replace of the mutable fields.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var b domain.Beneficiaire
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !b.Type.Valid() {
		http.Error(w, domain.ErrTypeInvalide.Error(), http.StatusBadRequest)
		return
	}
	updated, err := h.repo.UpdateBeneficiaire(r.Context(), id, &b)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBeneficiaireNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, domain.ErrRibConflict):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "failed to update beneficiaire", http.StatusInternalServerError)
		}
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// handleDelete removes a beneficiary by id.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.repo.DeleteBeneficiaire(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrBeneficiaireNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete beneficiaire", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// handleExists reports whether the beneficiary exists. The body is a bare
// JSON boolean; the virement-service existence check depends on this shape.
func (h *Handler) handleExists(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	exists, err := h.repo.ExistsByID(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to check existence", http.StatusInternalServerError)
		return
	}
	respondWithJSON(w, http.StatusOK, exists)
}

// handleGetByRib returns the beneficiary owning the given RIB.
func (h *Handler) handleGetByRib(w http.ResponseWriter, r *http.Request) {
	rib := chi.URLParam(r, "rib")
	b, err := h.repo.FindBeneficiaireByRib(r.Context(), rib)
	if err != nil {
		if errors.Is(err, domain.ErrBeneficiaireNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to fetch beneficiaire", http.StatusInternalServerError)
		return
	}
	respondWithJSON(w, http.StatusOK, b)
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
