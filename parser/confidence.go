package parser

import (
	"math"
	"strings"

	"github.com/polwatch/nec-crawler/models"
)

// ConfidenceWeights controls the completeness score attached to a record.
// The relative weighting carries over from the original scoring model; tune
// only with product input.
type ConfidenceWeights struct {
	Name     float64
	Party    float64
	District float64
	Phone    float64
	Email    float64
	Career   float64
}

// DefaultConfidenceWeights returns the standard weighting.
func DefaultConfidenceWeights() ConfidenceWeights {
	return ConfidenceWeights{
		Name:     0.30,
		Party:    0.20,
		District: 0.20,
		Phone:    0.10,
		Email:    0.10,
		Career:   0.10,
	}
}

// Confidence computes the weighted completeness score for p, clamped to 1.0.
// The email weight only counts when the address passes the syntax check.
func Confidence(p *models.Politician, w ConfidenceWeights) float64 {
	score := 0.0
	if strings.TrimSpace(p.Name) != "" {
		score += w.Name
	}
	if strings.TrimSpace(p.Party) != "" {
		score += w.Party
	}
	if strings.TrimSpace(p.District) != "" {
		score += w.District
	}
	if strings.TrimSpace(p.Contact.Phone) != "" {
		score += w.Phone
	}
	if IsValidEmail(p.Contact.Email) {
		score += w.Email
	}
	if len(p.Career) > 0 {
		score += w.Career
	}

	// Two decimals is the precision consumers display; rounding also keeps
	// summed weights free of float dust.
	score = math.Round(score*100) / 100
	if score > 1.0 {
		score = 1.0
	}
	return score
}
