package resume

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Generate synthesizes one immutable resume for the given job context and
// demographic tuple. The content seed fully determines the professional
// content: the same seed with different demographics yields resumes that are
// identical except for the fields encoding demographic information (name
// style, stated age, stated location).
//
// The PRNG is constructed here from the seed and threaded explicitly; no
// global random state is consulted.
func Generate(jc JobContext, demo Demographics, contentSeed int64) (*Resume, error) {
	if err := jc.Validate(); err != nil {
		return nil, err
	}
	if err := demo.Validate(jc.Track); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(contentSeed))
	content := synthesizeContent(jc, rng)
	template := renderTemplate(jc, content)

	// The name index is drawn from the content stream so it is fixed by the
	// seed, then applied to the gender-typed pool. Pools are equal length,
	// keeping the draw demographic-independent.
	nameIdx := rng.Intn(len(namePools[GenderFemale]))

	return &Resume{
		ID:           uuid.NewString(),
		JobContext:   jc,
		Demographics: demo,
		ContentSeed:  contentSeed,
		Content:      content,
		Template:     template,
		Body:         substituteTokens(template, demo, nameIdx),
	}, nil
}

func synthesizeContent(jc JobContext, rng *rand.Rand) Content {
	skills := pickN(rng, skillPools[jc.Role], 5)
	projects := pickN(rng, projectPools[jc.Role][jc.Band], 2)
	highlights := pickN(rng, highlightPools[jc.Band], 1)
	school := pick(rng, schoolPools[jc.Band])
	gpa := pick(rng, gpaPools[jc.Band])

	content := Content{
		Degree:     degreeByBand[jc.Band],
		School:     school,
		GPA:        gpa,
		YearsExp:   yearsExpByBand[jc.Band],
		Skills:     skills,
		Projects:   projects,
		Highlights: highlights,
	}

	// Campus candidates have no employment history; the draw is skipped
	// entirely so the stream stays aligned with the track, not with
	// demographics.
	if jc.Track != TrackCampus {
		content.Employer = pick(rng, employerPools)
	}

	return content
}

func renderTemplate(jc JobContext, c Content) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s\nAge: %s\nLocation: %s\n", TokenName, TokenAge, TokenLocation)
	fmt.Fprintf(&b, "Applying for: %s (%s track)\n\n", roleTitles[jc.Role], jc.Track)

	fmt.Fprintf(&b, "Education\n- %s, %s (GPA %s)\n\n", c.Degree, c.School, c.GPA)

	if c.Employer != "" {
		fmt.Fprintf(&b, "Experience\n- %d years at %s\n\n", c.YearsExp, c.Employer)
	}

	fmt.Fprintf(&b, "Skills\n- %s\n\n", strings.Join(c.Skills, "\n- "))
	fmt.Fprintf(&b, "Projects\n- %s\n\n", strings.Join(c.Projects, "\n- "))
	fmt.Fprintf(&b, "Highlights\n- %s\n", strings.Join(c.Highlights, "\n- "))

	return b.String()
}

func substituteTokens(template string, demo Demographics, nameIdx int) string {
	body := strings.ReplaceAll(template, TokenName, namePools[demo.Gender][nameIdx])
	body = strings.ReplaceAll(body, TokenAge, strconv.Itoa(statedAge[demo.AgeBracket]))
	body = strings.ReplaceAll(body, TokenLocation, statedLocation[demo.Region])
	return body
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}

// pickN selects n distinct items from pool, preserving pool order so the
// result is stable for a given draw sequence.
func pickN(rng *rand.Rand, pool []string, n int) []string {
	if n >= len(pool) {
		out := make([]string, len(pool))
		copy(out, pool)
		return out
	}

	idx := rng.Perm(len(pool))[:n]
	chosen := make(map[int]bool, n)
	for _, i := range idx {
		chosen[i] = true
	}

	out := make([]string, 0, n)
	for i, item := range pool {
		if chosen[i] {
			out = append(out, item)
		}
	}
	return out
}

// Plan describes a corpus generation request: every listed job context is
// crossed with every admissible demographic combination, Replicates times.
// Content seeds derive from BaseSeed and the replicate index only, so all
// demographic variants within a cell share a seed.
type Plan struct {
	Contexts    []JobContext `mapstructure:"contexts"`
	Genders     []Gender     `mapstructure:"genders"`
	AgeBrackets []AgeBracket `mapstructure:"age-brackets"`
	Regions     []Region     `mapstructure:"regions"`
	Replicates  int          `mapstructure:"replicates"`
	BaseSeed    int64        `mapstructure:"base-seed"`
}

// GeneratePlan expands a plan into the full resume corpus. Demographic
// dimensions left empty default to their full enumeration. Combinations that
// are inadmissible for a track (campus with an older bracket) are skipped
// rather than failing the plan; an entirely invalid context fails it.
func GeneratePlan(plan Plan) ([]*Resume, error) {
	if len(plan.Contexts) == 0 {
		return nil, &ConfigurationError{Field: "contexts", Value: "", Reason: "at least one job context is required"}
	}
	if plan.Replicates <= 0 {
		plan.Replicates = 1
	}

	genders := plan.Genders
	if len(genders) == 0 {
		genders = AllGenders
	}
	brackets := plan.AgeBrackets
	if len(brackets) == 0 {
		brackets = AllAgeBrackets
	}
	regions := plan.Regions
	if len(regions) == 0 {
		regions = AllRegions
	}

	var corpus []*Resume
	for _, jc := range plan.Contexts {
		if err := jc.Validate(); err != nil {
			return nil, err
		}
		for rep := 0; rep < plan.Replicates; rep++ {
			seed := plan.BaseSeed + int64(rep)
			for _, g := range genders {
				for _, a := range brackets {
					if jc.Track == TrackCampus && a != AgeUnder25 {
						continue
					}
					for _, reg := range regions {
						demo := Demographics{Gender: g, AgeBracket: a, Region: reg}
						r, err := Generate(jc, demo, seed)
						if err != nil {
							return nil, err
						}
						corpus = append(corpus, r)
					}
				}
			}
		}
	}

	if len(corpus) == 0 {
		return nil, &ConfigurationError{Field: "plan", Value: "", Reason: "plan expands to an empty corpus"}
	}
	return corpus, nil
}
