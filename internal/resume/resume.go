package resume

import (
	"fmt"
	"strings"
)

// Role is the professional role category a resume applies for.
type Role string

const (
	RoleBackend  Role = "backend"
	RoleFrontend Role = "frontend"
	RoleMobile   Role = "mobile"
	RoleML       Role = "ml"
	RoleDevOps   Role = "devops"
	RoleProduct  Role = "product"
)

// Track is the hiring track the screening scenario runs under.
type Track string

const (
	TrackCampus Track = "campus"
	TrackSocial Track = "social-hire"
	TrackExpert Track = "expert"
)

// Band is the seniority/capability band of the simulated candidate.
type Band string

const (
	BandJunior    Band = "junior"
	BandMid       Band = "mid"
	BandSenior    Band = "senior"
	BandPrincipal Band = "principal"
)

// Gender is a demographic attribute under study.
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
)

// AgeBracket is a demographic attribute under study.
type AgeBracket string

const (
	AgeUnder25 AgeBracket = "under-25"
	Age25to34  AgeBracket = "25-34"
	Age35to44  AgeBracket = "35-44"
	Age45Plus  AgeBracket = "45-plus"
)

// Region is a demographic attribute under study.
type Region string

const (
	RegionMetro   Region = "metro"
	RegionCoastal Region = "coastal"
	RegionInland  Region = "inland"
	RegionRural   Region = "rural"
)

// AllGenders, AllAgeBrackets and AllRegions enumerate the closed demographic
// sets in their canonical order.
var (
	AllGenders     = []Gender{GenderFemale, GenderMale}
	AllAgeBrackets = []AgeBracket{AgeUnder25, Age25to34, Age35to44, Age45Plus}
	AllRegions     = []Region{RegionMetro, RegionCoastal, RegionInland, RegionRural}

	allRoles  = []Role{RoleBackend, RoleFrontend, RoleMobile, RoleML, RoleDevOps, RoleProduct}
	allTracks = []Track{TrackCampus, TrackSocial, TrackExpert}
	allBands  = []Band{BandJunior, BandMid, BandSenior, BandPrincipal}
)

// bandsByTrack is the applicability matrix: which capability bands a hiring
// track screens for. Combinations outside the matrix are rejected.
var bandsByTrack = map[Track][]Band{
	TrackCampus: {BandJunior},
	TrackSocial: {BandMid, BandSenior},
	TrackExpert: {BandPrincipal},
}

// JobContext describes the screening scenario a resume is generated for.
type JobContext struct {
	Role  Role  `json:"role" mapstructure:"role"`
	Track Track `json:"track" mapstructure:"track"`
	Band  Band  `json:"band" mapstructure:"band"`
}

func (c JobContext) String() string {
	return fmt.Sprintf("%s/%s/%s", c.Role, c.Track, c.Band)
}

// Demographics is a fully specified demographic tuple attached to a resume.
type Demographics struct {
	Gender     Gender     `json:"gender"`
	AgeBracket AgeBracket `json:"age_bracket"`
	Region     Region     `json:"region"`
}

func (d Demographics) String() string {
	return fmt.Sprintf("%s/%s/%s", d.Gender, d.AgeBracket, d.Region)
}

// Content is the demographic-free professional body of a resume. Two resumes
// generated from the same content seed and job context carry identical
// Content regardless of their demographics.
type Content struct {
	Degree     string   `json:"degree"`
	School     string   `json:"school"`
	GPA        string   `json:"gpa"`
	Employer   string   `json:"employer,omitempty"`
	YearsExp   int      `json:"years_experience"`
	Skills     []string `json:"skills"`
	Projects   []string `json:"projects"`
	Highlights []string `json:"highlights"`
}

// Resume is the immutable unit of evaluation.
type Resume struct {
	ID           string       `json:"id"`
	JobContext   JobContext   `json:"job_context"`
	Demographics Demographics `json:"demographics"`
	ContentSeed  int64        `json:"content_seed"`
	Content      Content      `json:"content"`

	// Template is the rendered body with demographic placeholder tokens
	// still in place. Body is the same text with the tokens substituted.
	Template string `json:"template"`
	Body     string `json:"body"`
}

// ConfigurationError reports an unsupported job-context or demographics
// combination requested of the synthesizer. It is fatal to that generation
// request only.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unsupported %s %q: %s", e.Field, e.Value, e.Reason)
}

func contains[T comparable](set []T, v T) bool {
	for _, item := range set {
		if item == v {
			return true
		}
	}
	return false
}

// Validate checks the job context against the closed role/track/band sets and
// the track applicability matrix.
func (c JobContext) Validate() error {
	if !contains(allRoles, c.Role) {
		return &ConfigurationError{Field: "role", Value: string(c.Role), Reason: "not a recognized role"}
	}
	if !contains(allTracks, c.Track) {
		return &ConfigurationError{Field: "track", Value: string(c.Track), Reason: "not a recognized hiring track"}
	}
	if !contains(allBands, c.Band) {
		return &ConfigurationError{Field: "band", Value: string(c.Band), Reason: "not a recognized capability band"}
	}
	if !contains(bandsByTrack[c.Track], c.Band) {
		return &ConfigurationError{
			Field:  "band",
			Value:  string(c.Band),
			Reason: fmt.Sprintf("track %q screens for bands %v only", c.Track, bandsByTrack[c.Track]),
		}
	}
	return nil
}

// Validate checks the demographic tuple against the closed enumerations and
// the track plausibility rule: campus hires are under 25 by construction.
func (d Demographics) Validate(track Track) error {
	if !contains(AllGenders, d.Gender) {
		return &ConfigurationError{Field: "gender", Value: string(d.Gender), Reason: "not a recognized gender value"}
	}
	if !contains(AllAgeBrackets, d.AgeBracket) {
		return &ConfigurationError{Field: "age_bracket", Value: string(d.AgeBracket), Reason: "not a recognized age bracket"}
	}
	if !contains(AllRegions, d.Region) {
		return &ConfigurationError{Field: "region", Value: string(d.Region), Reason: "not a recognized region"}
	}
	if track == TrackCampus && d.AgeBracket != AgeUnder25 {
		return &ConfigurationError{
			Field:  "age_bracket",
			Value:  string(d.AgeBracket),
			Reason: "campus track only admits the under-25 bracket",
		}
	}
	return nil
}

// ParseJobContext parses a "role/track/band" string as produced by
// JobContext.String.
func ParseJobContext(s string) (JobContext, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return JobContext{}, &ConfigurationError{Field: "job_context", Value: s, Reason: "want role/track/band"}
	}
	jc := JobContext{Role: Role(parts[0]), Track: Track(parts[1]), Band: Band(parts[2])}
	if err := jc.Validate(); err != nil {
		return JobContext{}, err
	}
	return jc, nil
}
