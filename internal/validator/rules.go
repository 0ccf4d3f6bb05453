package validator

import (
	"log"

	"skillswap_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules registers domain enum rules on the validator instance.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-proposition-state", validatePropositionState)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empty values
	}
	switch models.UserRole(value) {
	case models.UserRoleMember, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validatePropositionState(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.PropositionState(value) {
	case models.PropositionStatePending, models.PropositionStateAccepted, models.PropositionStateRejected:
		return true
	default:
		return false
	}
}
