package domain

import "errors"

var (
	ErrVirementNotFound = errors.New("virement not found")

	// Validation failures on create.
	ErrMontantInvalide     = errors.New("montant must be strictly positive")
	ErrPlafondDepasse      = errors.New("instant transfer amount exceeds the 5000 ceiling")
	ErrRibSourceInvalide   = errors.New("ribSource must be at least 10 characters")
	ErrTypeInvalide        = errors.New("type must be NORMAL or INSTANTANE")
	ErrBeneficiaireInconnu = errors.New("beneficiaire does not exist")

	// Status lifecycle failures.
	ErrStatutInvalide      = errors.New("unknown statut")
	ErrTransitionInterdite = errors.New("illegal status transition")
)
