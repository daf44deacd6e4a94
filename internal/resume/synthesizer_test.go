package resume

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestGenerateControlInvariant(t *testing.T) {
	jc, err := ParseJobContext("backend/social-hire/mid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resumes []*Resume
	for _, g := range AllGenders {
		for _, a := range []AgeBracket{Age25to34, Age35to44, Age45Plus} {
			for _, reg := range AllRegions {
				r, err := Generate(jc, Demographics{Gender: g, AgeBracket: a, Region: reg}, 42)
				if err != nil {
					t.Fatalf("generate %s/%s/%s: %v", g, a, reg, err)
				}
				resumes = append(resumes, r)
			}
		}
	}

	base := resumes[0]
	for _, r := range resumes[1:] {
		if !reflect.DeepEqual(r.Content, base.Content) {
			t.Fatalf("content diverged for %s: %+v vs %+v", r.Demographics, r.Content, base.Content)
		}
		if r.Template != base.Template {
			t.Fatalf("template diverged for %s", r.Demographics)
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	jc := JobContext{Role: RoleML, Track: TrackExpert, Band: BandPrincipal}
	demo := Demographics{Gender: GenderFemale, AgeBracket: Age35to44, Region: RegionCoastal}

	first, err := Generate(jc, demo, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Generate(jc, demo, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Body != second.Body {
		t.Fatalf("same seed produced different bodies")
	}

	other, err := Generate(jc, demo, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other.Body == first.Body {
		t.Fatalf("different seeds produced identical bodies")
	}
}

func TestGenerateSubstitutesAllTokens(t *testing.T) {
	jc := JobContext{Role: RoleBackend, Track: TrackCampus, Band: BandJunior}
	demo := Demographics{Gender: GenderMale, AgeBracket: AgeUnder25, Region: RegionRural}

	r, err := Generate(jc, demo, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, token := range []string{TokenName, TokenAge, TokenLocation} {
		if !strings.Contains(r.Template, token) {
			t.Fatalf("template missing token %s", token)
		}
		if strings.Contains(r.Body, token) {
			t.Fatalf("body still contains token %s", token)
		}
	}

	if !strings.Contains(r.Body, statedLocation[RegionRural]) {
		t.Fatalf("body missing region location, got:\n%s", r.Body)
	}
}

func TestGenerateRejectsUnsupportedCombinations(t *testing.T) {
	cases := []struct {
		name string
		jc   JobContext
		demo Demographics
	}{
		{
			name: "campus senior band",
			jc:   JobContext{Role: RoleBackend, Track: TrackCampus, Band: BandSenior},
			demo: Demographics{Gender: GenderFemale, AgeBracket: AgeUnder25, Region: RegionMetro},
		},
		{
			name: "unknown role",
			jc:   JobContext{Role: "quant", Track: TrackSocial, Band: BandMid},
			demo: Demographics{Gender: GenderFemale, AgeBracket: Age25to34, Region: RegionMetro},
		},
		{
			name: "expert track with mid band",
			jc:   JobContext{Role: RoleDevOps, Track: TrackExpert, Band: BandMid},
			demo: Demographics{Gender: GenderMale, AgeBracket: Age45Plus, Region: RegionInland},
		},
		{
			name: "campus with older bracket",
			jc:   JobContext{Role: RoleBackend, Track: TrackCampus, Band: BandJunior},
			demo: Demographics{Gender: GenderMale, AgeBracket: Age35to44, Region: RegionMetro},
		},
		{
			name: "unknown region",
			jc:   JobContext{Role: RoleBackend, Track: TrackSocial, Band: BandMid},
			demo: Demographics{Gender: GenderMale, AgeBracket: Age25to34, Region: "offworld"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Generate(tc.jc, tc.demo, 1)
			if err == nil {
				t.Fatalf("expected configuration error")
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigurationError, got %T: %v", err, err)
			}
		})
	}
}

func TestNamePoolsAligned(t *testing.T) {
	if len(namePools[GenderFemale]) != len(namePools[GenderMale]) {
		t.Fatalf("name pools must be equal length: %d vs %d",
			len(namePools[GenderFemale]), len(namePools[GenderMale]))
	}
}

func TestGeneratePlanSharesSeedsAcrossDemographics(t *testing.T) {
	plan := Plan{
		Contexts:    []JobContext{{Role: RoleBackend, Track: TrackSocial, Band: BandMid}},
		Genders:     AllGenders,
		Regions:     []Region{RegionMetro},
		AgeBrackets: []AgeBracket{Age25to34},
		Replicates:  3,
		BaseSeed:    100,
	}

	corpus, err := GeneratePlan(plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(corpus) != 6 {
		t.Fatalf("expected 6 resumes (2 genders x 3 replicates), got %d", len(corpus))
	}

	bySeed := make(map[int64][]*Resume)
	for _, r := range corpus {
		bySeed[r.ContentSeed] = append(bySeed[r.ContentSeed], r)
	}

	if len(bySeed) != 3 {
		t.Fatalf("expected 3 distinct seeds, got %d", len(bySeed))
	}

	for seed, group := range bySeed {
		if len(group) != 2 {
			t.Fatalf("seed %d: expected both gender variants, got %d", seed, len(group))
		}
		if group[0].Template != group[1].Template {
			t.Fatalf("seed %d: templates differ across genders", seed)
		}
	}
}

func TestGeneratePlanSkipsInadmissibleCampusBrackets(t *testing.T) {
	plan := Plan{
		Contexts: []JobContext{{Role: RoleFrontend, Track: TrackCampus, Band: BandJunior}},
		Regions:  []Region{RegionMetro},
	}

	corpus, err := GeneratePlan(plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, r := range corpus {
		if r.Demographics.AgeBracket != AgeUnder25 {
			t.Fatalf("campus corpus contains bracket %s", r.Demographics.AgeBracket)
		}
	}

	// 2 genders x 1 bracket x 1 region.
	if len(corpus) != 2 {
		t.Fatalf("expected 2 resumes, got %d", len(corpus))
	}
}
