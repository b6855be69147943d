package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/nbadocs/internal/app/models"
	"github.com/yigit/nbadocs/internal/app/models/dto"
	"github.com/yigit/nbadocs/internal/pkg/apperrors"
)

// RegisterValidators adds the custom binding tags to gin's validator engine
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	return v.RegisterValidation("filetype", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseFileType(fl.Field().String())
		return ok
	})
}

// BindingError converts a gin binding failure into an application error.
// An unknown fileType is reported as a classification error rather than a validation error.
func BindingError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError("Invalid request format: " + err.Error())
	}

	fields := make([]dto.FieldError, 0, len(verrs))
	messages := make([]string, 0, len(verrs))
	classification := false
	for _, fe := range verrs {
		msg := formatValidationError(fe)
		if fe.Tag() == "filetype" {
			classification = true
		}
		fields = append(fields, dto.FieldError{Field: lowerFirst(fe.Field()), Message: msg})
		messages = append(messages, msg)
	}

	base := apperrors.ErrValidationFailed
	if classification {
		base = apperrors.ErrInvalidClassification
	}
	return apperrors.NewCustomError(base, strings.Join(messages, "; ")).
		WithDetails(map[string]interface{}{"fields": fields})
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	field := lowerFirst(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Param()
	case "max":
		return field + " must be at most " + e.Param()
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return field + " must be one of: " + e.Param()
	case "filetype":
		return field + " must be one of the document types"
	default:
		return field + " validation failed: " + e.Tag()
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
