package student

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

var (
	gradeLevelTag  = "gradelevel"
	gradeLevelText = "invalid grade level"

	statusTag  = "studentstatus"
	statusText = "invalid status"
)

// InitValidators registers the student validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(gradeLevelTag, gradeLevelValidation)
	core.RegisterCustomTranslation(validate, translator, gradeLevelTag, gradeLevelText)

	_ = validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(validate, translator, statusTag, statusText)
}

func IsGradeLevel(s string) bool {
	for _, lvl := range GradeLevels {
		if lvl == s {
			return true
		}
	}
	return false
}

func (s Status) IsValid() bool {
	for _, st := range Statuses {
		if st == s {
			return true
		}
	}
	return false
}

func gradeLevelValidation(fl validator.FieldLevel) bool {
	return IsGradeLevel(fl.Field().String())
}

func statusValidation(fl validator.FieldLevel) bool {
	return Status(fl.Field().String()).IsValid()
}
