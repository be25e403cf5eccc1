/**
 * @description
 * This file defines the core domain models for the virement-service: the
 * transfer entity, its type and status enumerations, and the status
 * transition table.
 *
 * @notes
 * - Amounts use shopspring/decimal so montant keeps exact monetary
 *   precision through JSON, SQL numeric, and arithmetic.
 * - Every status change, including cancellation, is checked against one
 *   transition table instead of ad-hoc guards.
 */
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TypeVirement distinguishes standard transfers from instant ones.
type TypeVirement string

const (
	TypeNormal     TypeVirement = "NORMAL"
	TypeInstantane TypeVirement = "INSTANTANE"
)

// Valid reports whether t is one of the declared transfer types.
func (t TypeVirement) Valid() bool {
	return t == TypeNormal || t == TypeInstantane
}

// StatutVirement is the closed set of transfer statuses.
type StatutVirement string

const (
	StatutInitie  StatutVirement = "INITIE"
	StatutValide  StatutVirement = "VALIDE"
	StatutExecute StatutVirement = "EXECUTE"
	StatutRejete  StatutVirement = "REJETE"
	StatutAnnule  StatutVirement = "ANNULE"
)

// Valid reports whether s is one of the declared statuses.
func (s StatutVirement) Valid() bool {
	switch s {
	case StatutInitie, StatutValide, StatutExecute, StatutRejete, StatutAnnule:
		return true
	}
	return false
}

// transitions is the legal status transition table. INITIE is kept as a
// reachable source state so a pending-approval step can be added without an
// API change; EXECUTE, REJETE and ANNULE are terminal.
var transitions = map[StatutVirement][]StatutVirement{
	StatutInitie: {StatutValide, StatutRejete, StatutAnnule},
	StatutValide: {StatutExecute, StatutRejete, StatutAnnule},
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s StatutVirement) CanTransitionTo(next StatutVirement) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsFinal reports whether s admits no further transitions.
func (s StatutVirement) IsFinal() bool {
	return len(transitions[s]) == 0 && s.Valid()
}

// Cancellable reports whether a virement in status s may be cancelled.
func (s StatutVirement) Cancellable() bool {
	return s.CanTransitionTo(StatutAnnule)
}

// PlafondInstantane is the ceiling on instant transfer amounts.
var PlafondInstantane = decimal.NewFromInt(5000)

// RibSourceMinLength is the minimal accepted length for a source RIB.
const RibSourceMinLength = 10

// Virement represents the ledger record for one transfer. This struct maps
// directly to the `virements` table.
type Virement struct {
	ID             int64           `json:"id"`
	BeneficiaireID int64           `json:"beneficiaireId"`
	RibSource      string          `json:"ribSource"`
	Montant        decimal.Decimal `json:"montant"`
	Description    string          `json:"description,omitempty"`
	DateVirement   time.Time       `json:"dateVirement"`
	Type           TypeVirement    `json:"type"`
	Statut         StatutVirement  `json:"statut"`
}

// VirementRequest is the DTO for incoming transfer creation requests.
type VirementRequest struct {
	BeneficiaireID int64           `json:"beneficiaireId"`
	RibSource      string          `json:"ribSource"`
	Montant        decimal.Decimal `json:"montant"`
	Description    string          `json:"description"`
	Type           TypeVirement    `json:"type"`
}

// VirementResponse is the outward representation of a transfer. The three
// beneficiaire* fields are only populated when enrichment against the
// beneficiaire-service succeeded; a lookup miss leaves them empty.
type VirementResponse struct {
	ID                 int64           `json:"id"`
	BeneficiaireID     int64           `json:"beneficiaireId"`
	RibSource          string          `json:"ribSource"`
	Montant            decimal.Decimal `json:"montant"`
	Description        string          `json:"description,omitempty"`
	DateVirement       time.Time       `json:"dateVirement"`
	Type               TypeVirement    `json:"type"`
	Statut             StatutVirement  `json:"statut"`
	BeneficiaireNom    string          `json:"beneficiaireNom,omitempty"`
	BeneficiairePrenom string          `json:"beneficiairePrenom,omitempty"`
	BeneficiaireRib    string          `json:"beneficiaireRib,omitempty"`
}

// ToResponse copies the transfer fields into an un-enriched response.
func (v *Virement) ToResponse() *VirementResponse {
	return &VirementResponse{
		ID:             v.ID,
		BeneficiaireID: v.BeneficiaireID,
		RibSource:      v.RibSource,
		Montant:        v.Montant,
		Description:    v.Description,
		DateVirement:   v.DateVirement,
		Type:           v.Type,
		Statut:         v.Statut,
	}
}
