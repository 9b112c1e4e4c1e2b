// Package derive holds the pure computations behind every page:
// percentages, bands, filters, attendance planning and aggregates.
// Nothing in here touches a Repository.
package derive

import (
	"errors"
	"fmt"
	"math"

	"github.com/trezcool/darasa/core"
)

var (
	errInvalidMaxScore = errors.New("max score must be greater than 0")

	// ErrInvalidMaxScore is returned by Percentage when the max score is not positive.
	ErrInvalidMaxScore = core.NewValidationError(
		errInvalidMaxScore,
		core.FieldError{Field: "max_score", Error: errInvalidMaxScore.Error()},
	)
)

// Percentage returns score / maxScore * 100.
func Percentage(score, maxScore float64) (float64, error) {
	if maxScore <= 0 {
		return 0, ErrInvalidMaxScore
	}
	return score / maxScore * 100, nil
}

// Round1 rounds x to one decimal.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// FormatPercentage renders pct with one decimal and a percent sign: "90.0%".
func FormatPercentage(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

type Band string

// Bands, best first
const (
	BandExcellent        Band = "excellent"
	BandGood             Band = "good"
	BandSatisfactory     Band = "satisfactory"
	BandNeedsImprovement Band = "needs-improvement"
)

var Bands = []Band{BandExcellent, BandGood, BandSatisfactory, BandNeedsImprovement}

var bandLabels = map[Band]string{
	BandExcellent:        "Excellent",
	BandGood:             "Good",
	BandSatisfactory:     "Satisfactory",
	BandNeedsImprovement: "Needs Improvement",
}

// BandFor classifies a percentage. Lower bounds are inclusive.
func BandFor(pct float64) Band {
	switch {
	case pct >= 90:
		return BandExcellent
	case pct >= 80:
		return BandGood
	case pct >= 70:
		return BandSatisfactory
	default:
		return BandNeedsImprovement
	}
}

func (b Band) Label() string {
	return bandLabels[b]
}
