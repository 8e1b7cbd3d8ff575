// domain/matrix.go
package domain

// Risk levels, ordered from lowest to highest appetite impact.
const (
	LevelRendah  = "Rendah"
	LevelSedang  = "Sedang"
	LevelTinggi  = "Tinggi"
	LevelEkstrim = "Ekstrim"
)

// riskMatrix encodes the governance risk-appetite policy. Rows are
// likelihood 1..5, columns impact 1..5. Keep it as data so it can be
// audited against the policy document.
var riskMatrix = [5][5]string{
	{LevelRendah, LevelRendah, LevelRendah, LevelSedang, LevelSedang},
	{LevelRendah, LevelRendah, LevelSedang, LevelSedang, LevelTinggi},
	{LevelRendah, LevelSedang, LevelSedang, LevelTinggi, LevelTinggi},
	{LevelSedang, LevelSedang, LevelTinggi, LevelEkstrim, LevelEkstrim},
	{LevelSedang, LevelTinggi, LevelTinggi, LevelEkstrim, LevelEkstrim},
}

var likelihoodLabels = [5]string{
	"Sangat Jarang",
	"Jarang",
	"Kadang-Kadang",
	"Sering",
	"Sangat Sering",
}

var impactLabels = [5]string{
	"Sangat Rendah",
	"Rendah",
	"Sedang",
	"Tinggi",
	"Sangat Tinggi",
}

// Assessment is the derived state of one matrix lookup.
type Assessment struct {
	Level      string
	Score      int
	Likelihood string
	Impact     string
}

// Evaluate maps a likelihood/impact pair onto the matrix. Out-of-range
// scores are clamped into [1,5] rather than rejected, so the function is
// total. The numeric score is informational; the level comes from the
// table, not from a threshold.
func Evaluate(likelihoodScore, impactScore int) Assessment {
	l := clampScore(likelihoodScore)
	i := clampScore(impactScore)

	return Assessment{
		Level:      riskMatrix[l-1][i-1],
		Score:      l * i,
		Likelihood: likelihoodLabels[l-1],
		Impact:     impactLabels[i-1],
	}
}

// LikelihoodLabel returns the display label for an ordinal likelihood
// score, clamped into [1,5].
func LikelihoodLabel(score int) string {
	return likelihoodLabels[clampScore(score)-1]
}

// ImpactLabel returns the display label for an ordinal impact score,
// clamped into [1,5].
func ImpactLabel(score int) string {
	return impactLabels[clampScore(score)-1]
}

func clampScore(n int) int {
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}
