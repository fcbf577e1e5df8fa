// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"daybook/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("mood", validateMood)
		_ = v.RegisterValidation("entry_category", validateEntryCategory)
		_ = v.RegisterValidation("sort_field", validateSortField)
		_ = v.RegisterValidation("sort_order", validateSortOrder)
		_ = v.RegisterValidation("theme", validateTheme)
	}
}

func validateMood(fl validator.FieldLevel) bool {
	return models.Mood(fl.Field().String()).IsValid()
}

func validateEntryCategory(fl validator.FieldLevel) bool {
	return models.EntryCategory(fl.Field().String()).IsValid()
}

func validateSortField(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "entry_date", "created_at", "updated_at", "title", "word_count", "mood", "category":
		return true
	}
	return false
}

func validateSortOrder(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "asc", "desc":
		return true
	}
	return false
}

func validateTheme(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "light", "dark", "system":
		return true
	}
	return false
}
