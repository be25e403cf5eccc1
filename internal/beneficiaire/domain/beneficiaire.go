/**
 * @description
 * Domain model for the beneficiaire-service. A beneficiary is a payee a
 * customer can send virements to, identified by a unique RIB.
 */
package domain

import "errors"

// TypeBeneficiaire distinguishes individuals from legal entities.
type TypeBeneficiaire string

const (
	TypePhysique TypeBeneficiaire = "PHYSIQUE"
	TypeMorale   TypeBeneficiaire = "MORALE"
)

// Valid reports whether t is one of the declared beneficiary types.
func (t TypeBeneficiaire) Valid() bool {
	return t == TypePhysique || t == TypeMorale
}

// Beneficiaire maps directly to the `beneficiaires` table.
type Beneficiaire struct {
	ID     int64            `json:"id"`
	Nom    string           `json:"nom"`
	Prenom string           `json:"prenom"`
	Rib    string           `json:"rib"`
	Type   TypeBeneficiaire `json:"type"`
}

var (
	ErrBeneficiaireNotFound = errors.New("beneficiaire not found")
	// ErrRibConflict is returned when an insert or update collides with the
	// unique constraint on rib.
	ErrRibConflict  = errors.New("a beneficiaire with this rib already exists")
	ErrTypeInvalide = errors.New("type must be PHYSIQUE or MORALE")
)
