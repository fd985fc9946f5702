package validator

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/models"
)

// registerCustomRules wires the enum rules used by the movie and user DTOs.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Startup-time misconfiguration; do not continue.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-movie-status", validateMovieStatus)
	mustRegister("is-visibility", validateVisibility)
	mustRegister("is-theme", validateTheme)
	mustRegister("is-sort-order", validateSortOrder)
}

func validateMovieStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty is handled by 'required'
	}
	return models.MovieStatus(value).Valid()
}

func validateVisibility(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.Visibility(value).Valid()
}

func validateTheme(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.Theme(value).Valid()
}

func validateSortOrder(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	return value == "" || value == "asc" || value == "desc"
}
