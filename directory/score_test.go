package directory

import (
	"testing"

	"startuplink/repositories"

	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name    string
		profile repositories.StartupProfile
		want    int
	}{
		{
			name:    "empty profile keeps the base score",
			profile: repositories.StartupProfile{},
			want:    50,
		},
		{
			name: "opportunities and value props add up",
			profile: repositories.StartupProfile{
				Opportunities: []string{"a", "b"},
				ValueProps:    []string{"fast"},
				RevenueModels: []string{"saas", "ads"},
			},
			want: 50 + 6 + 2 + 4,
		},
		{
			name: "opportunity bonus is capped at 20",
			profile: repositories.StartupProfile{
				Opportunities: []string{"a", "b", "c", "d", "e", "f", "g", "h"},
			},
			want: 70,
		},
		{
			name: "crowded market is penalised beyond three competitors",
			profile: repositories.StartupProfile{
				Competitors: []string{"a", "b", "c", "d", "e"},
			},
			want: 50 - 4,
		},
		{
			name: "competitor penalty is capped at 15",
			profile: repositories.StartupProfile{
				Competitors: make([]string, 20),
			},
			want: 35,
		},
		{
			name: "risk keywords are penalised case-insensitively",
			profile: repositories.StartupProfile{
				Risks: []string{"Heavy Regulation in the EU", "RGPD compliance"},
			},
			want: 50 - 9,
		},
		{
			name: "risk penalty is capped at 15",
			profile: repositories.StartupProfile{
				Risks: []string{"regulation", "régulation", "high CAC", "privacy", "rgpd"},
			},
			want: 35,
		},
		{
			name: "combined penalties stay bounded",
			profile: repositories.StartupProfile{
				Competitors: make([]string, 20),
				Risks:       []string{"regulation", "cac", "privacy", "rgpd"},
			},
			want: 20,
		},
		{
			name: "combined bonuses stay bounded",
			profile: repositories.StartupProfile{
				Opportunities: make([]string, 10),
				ValueProps:    make([]string, 10),
				RevenueModels: make([]string, 10),
			},
			want: 90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.want, Score(tt.profile))
		})
	}
}

func TestDetectLanguage(t *testing.T) {
	req := require.New(t)

	req.Equal("en", DetectLanguage("We build infrastructure software for early stage startup teams across Europe"))
	req.Equal("fr", DetectLanguage("Nous construisons des logiciels d'infrastructure pour les jeunes entreprises en France"))
	req.Empty(DetectLanguage("   "))
}
