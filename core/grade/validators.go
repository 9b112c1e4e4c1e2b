package grade

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

var (
	categoryTag  = "category"
	categoryText = "invalid category"

	scoreMaxTag  = "scoremax"
	scoreMaxText = "score cannot exceed max score"
)

// InitValidators registers the grade validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(categoryTag, categoryValidation)
	core.RegisterCustomTranslation(validate, translator, categoryTag, categoryText)

	validate.RegisterStructValidation(newGradeStructValidation, NewGrade{})
	core.RegisterCustomTranslation(validate, translator, scoreMaxTag, scoreMaxText)
}

func categoryValidation(fl validator.FieldLevel) bool {
	return Category(fl.Field().String()).IsValid()
}

func newGradeStructValidation(sl validator.StructLevel) {
	ng := sl.Current().Interface().(NewGrade)
	if ng.Score != nil && ng.MaxScore != nil && *ng.Score > *ng.MaxScore {
		sl.ReportError(ng.Score, "score", "Score", scoreMaxTag, "")
	}
}

// checkScore validates a merged Grade, where score and max_score may come from different sources.
func checkScore(g Grade) error {
	if g.Score > g.MaxScore {
		return core.NewValidationError(ErrScoreExceedsMax, core.FieldError{Field: "score", Error: scoreMaxText})
	}
	return nil
}
