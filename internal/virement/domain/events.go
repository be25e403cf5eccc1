package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Routing keys for virement lifecycle events on the topic exchange.
const (
	RoutingKeyCreated      = "virement.created"
	RoutingKeyStatutChange = "virement.statut_change"
	RoutingKeyAnnule       = "virement.annule"
)

// VirementEvent is the message payload published when a transfer is created,
// changes status, or is cancelled. Publishing is best effort.
type VirementEvent struct {
	EventID        string          `json:"eventId"`
	VirementID     int64           `json:"virementId"`
	BeneficiaireID int64           `json:"beneficiaireId"`
	RibSource      string          `json:"ribSource"`
	Montant        decimal.Decimal `json:"montant"`
	Type           TypeVirement    `json:"type"`
	Statut         StatutVirement  `json:"statut"`
	OccurredAt     time.Time       `json:"occurredAt"`
}
