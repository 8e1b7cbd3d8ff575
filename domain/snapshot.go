// domain/snapshot.go
package domain

import (
	"github.com/dhazzero/ISO-Integrated-System-sub000/models"
)

// BuildSnapshot derives a full assessment snapshot from a raw
// likelihood/impact pair. Pure and deterministic.
func BuildSnapshot(likelihoodScore, impactScore int) models.RiskSnapshot {
	a := Evaluate(likelihoodScore, impactScore)
	return models.RiskSnapshot{
		LikelihoodScore: clampScore(likelihoodScore),
		ImpactScore:     clampScore(impactScore),
		Level:           a.Level,
		Score:           a.Score,
		Likelihood:      a.Likelihood,
		Impact:          a.Impact,
	}
}

// BuildSnapshots builds the inherent and residual snapshot pair for a risk
// record in one call.
func BuildSnapshots(inherentLikelihood, inherentImpact, residualLikelihood, residualImpact int) (inherent, residual models.RiskSnapshot) {
	return BuildSnapshot(inherentLikelihood, inherentImpact),
		BuildSnapshot(residualLikelihood, residualImpact)
}
