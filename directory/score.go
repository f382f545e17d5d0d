// Package directory rates and enriches startup profiles before they are
// published to the member directory.
package directory

import (
	"strings"

	"startuplink/repositories"
)

// Keyword penalties applied per matching risk entry. French spellings are
// kept alongside English ones, the member base writes in both.
var riskPenalties = map[string]int{
	"regulation": 5,
	"régulation": 5,
	"cac":        5,
	"privacy":    4,
	"rgpd":       4,
}

const maxRiskPenalty = 15

// Score rates a profile on a 0-100 scale. It rewards identified
// opportunities, value propositions and revenue models, and penalises
// crowded markets and known risk classes. The heuristic is intentionally
// simple: it ranks directory listings, it does not evaluate businesses.
func Score(profile repositories.StartupProfile) int {
	score := 50

	score += min(20, len(profile.Opportunities)*3)
	score += min(10, len(profile.ValueProps)*2)
	score += min(10, len(profile.RevenueModels)*2)

	if n := len(profile.Competitors); n > 3 {
		score -= min(15, (n-3)*2)
	}

	penalty := 0
	for _, risk := range profile.Risks {
		lowered := strings.ToLower(risk)
		for keyword, p := range riskPenalties {
			if strings.Contains(lowered, keyword) {
				penalty += p
			}
		}
	}
	score -= min(maxRiskPenalty, penalty)

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
