// Package analysis turns score records into per-demographic bias
// comparisons: group statistics, significance tests, and effect sizes.
package analysis

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/fairhire/biasprobe/internal/resume"
	"github.com/fairhire/biasprobe/internal/scoring"
)

// Dimension is a demographic axis under comparison.
type Dimension string

const (
	DimensionGender Dimension = "gender"
	DimensionAge    Dimension = "age_bracket"
	DimensionRegion Dimension = "region"
)

// AllDimensions enumerates the demographic axes in canonical order.
var AllDimensions = []Dimension{DimensionGender, DimensionAge, DimensionRegion}

// State classifies a comparison outcome. Only StateOK carries test
// statistics; the other states explain why no test was run instead of
// reporting a fabricated result.
type State string

const (
	StateOK                 State = "ok"
	StateNoData             State = "no_data"
	StateInsufficientSample State = "insufficient_sample"
	StateDegenerateVariance State = "degenerate_variance"
)

// DefaultMinSampleSize is the smallest per-group sample a test runs on.
const DefaultMinSampleSize = 5

// Config controls the analysis run.
type Config struct {
	MinSampleSize int `mapstructure:"min-sample-size"`
}

func (c Config) withDefaults() Config {
	if c.MinSampleSize <= 0 {
		c.MinSampleSize = DefaultMinSampleSize
	}
	return c
}

// GroupStat summarizes the scores of one demographic group within a
// comparison.
type GroupStat struct {
	Value  string  `json:"value"`
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Comparison is one statistical test: one demographic dimension within one
// screening scenario, for one protocol/backend/model combination. Results
// are never pooled across protocols or backends.
type Comparison struct {
	Protocol   scoring.ProtocolKind `json:"protocol"`
	Backend    string               `json:"backend"`
	Model      string               `json:"model"`
	JobContext string               `json:"job_context"`
	Dimension  Dimension            `json:"dimension"`

	State  State       `json:"state"`
	Groups []GroupStat `json:"groups"`

	// The numeric fields serialize unconditionally: zero is a legitimate
	// test result (a t-statistic of 0, an underflowed p-value), not absence.
	Method     string  `json:"method,omitempty"`
	Statistic  float64 `json:"statistic"`
	DF1        float64 `json:"df1,omitempty"`
	DF2        float64 `json:"df2,omitempty"`
	PValue     float64 `json:"p_value"`
	AdjustedP  float64 `json:"adjusted_p"`
	EffectKind string  `json:"effect_kind,omitempty"`
	EffectSize float64 `json:"effect_size"`
}

// Report is the full analysis output. Comparisons are sorted, so the same
// records always produce byte-identical serialized reports.
type Report struct {
	Records     int          `json:"records"`
	Used        int          `json:"records_used"`
	Comparisons []Comparison `json:"comparisons"`
}

// family identifies one protocol/backend/model/dimension combination. The
// Bonferroni correction spans the screening scenarios tested within a
// family.
type family struct {
	protocol scoring.ProtocolKind
	backend  string
	model    string
	dim      Dimension
}

type cell struct {
	family
	jobContext string
}

// Analyze groups successful records by scenario and demographic axis and
// runs one test per cell: Welch's t-test for two groups, one-way ANOVA for
// more.
func Analyze(records []scoring.ScoreRecord, cfg Config) Report {
	cfg = cfg.withDefaults()
	report := Report{Records: len(records)}

	scores := make(map[cell]map[string][]float64)
	for _, rec := range records {
		if rec.Failed {
			continue
		}
		report.Used++
		for _, dim := range AllDimensions {
			c := cell{
				family: family{
					protocol: rec.Protocol,
					backend:  rec.Backend,
					model:    rec.Model,
					dim:      dim,
				},
				jobContext: rec.JobContext.String(),
			}
			groups, ok := scores[c]
			if !ok {
				groups = make(map[string][]float64)
				scores[c] = groups
			}
			v := groupValue(rec.Demographics, dim)
			groups[v] = append(groups[v], rec.Score)
		}
	}

	cells := make([]cell, 0, len(scores))
	for c := range scores {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool { return cellLess(cells[i], cells[j]) })

	// The Bonferroni family counts only cells that produced a test: cells
	// degraded to an explanatory state ran no test to correct for.
	familySizes := make(map[family]int)
	for _, c := range cells {
		cmp := compare(c, scores[c], cfg.MinSampleSize)
		if cmp.State == StateOK {
			familySizes[c.family]++
		}
		report.Comparisons = append(report.Comparisons, cmp)
	}

	for i, c := range cells {
		if report.Comparisons[i].State == StateOK {
			report.Comparisons[i].AdjustedP = bonferroni(report.Comparisons[i].PValue, familySizes[c.family])
		}
	}
	return report
}

// compare runs the test for one cell, degrading to an explanatory state
// when the data cannot support one.
func compare(c cell, byValue map[string][]float64, minSample int) Comparison {
	cmp := Comparison{
		Protocol:   c.protocol,
		Backend:    c.backend,
		Model:      c.model,
		JobContext: c.jobContext,
		Dimension:  c.dim,
	}

	var groups [][]float64
	for _, value := range dimensionValues(c.dim) {
		xs := byValue[value]
		if len(xs) == 0 {
			continue
		}
		mean, std := stat.MeanStdDev(xs, nil)
		if len(xs) < 2 {
			std = 0
		}
		cmp.Groups = append(cmp.Groups, GroupStat{
			Value:  value,
			N:      len(xs),
			Mean:   mean,
			StdDev: std,
		})
		groups = append(groups, xs)
	}

	if len(groups) < 2 {
		cmp.State = StateNoData
		return cmp
	}
	for _, g := range cmp.Groups {
		if g.N < minSample {
			cmp.State = StateInsufficientSample
			return cmp
		}
	}
	if degenerate(cmp.Groups) {
		cmp.State = StateDegenerateVariance
		return cmp
	}

	cmp.State = StateOK
	if len(groups) == 2 {
		r := welchT(groups[0], groups[1])
		cmp.Method = "welch_t"
		cmp.Statistic = r.statistic
		cmp.DF1 = r.df
		cmp.PValue = r.pValue
		cmp.EffectKind = "cohens_d"
		cmp.EffectSize = r.effect
		return cmp
	}

	r := oneWayANOVA(groups)
	cmp.Method = "anova"
	cmp.Statistic = r.statistic
	cmp.DF1 = r.df1
	cmp.DF2 = r.df2
	cmp.PValue = r.pValue
	cmp.EffectKind = "eta_squared"
	cmp.EffectSize = r.effect
	return cmp
}

// degenerate reports whether every group has zero score variance, which
// leaves the test statistics undefined.
func degenerate(groups []GroupStat) bool {
	for _, g := range groups {
		if g.StdDev > 0 {
			return false
		}
	}
	return true
}

func bonferroni(p float64, tests int) float64 {
	adjusted := p * float64(tests)
	if adjusted > 1 {
		return 1
	}
	return adjusted
}

func groupValue(d resume.Demographics, dim Dimension) string {
	switch dim {
	case DimensionGender:
		return string(d.Gender)
	case DimensionAge:
		return string(d.AgeBracket)
	case DimensionRegion:
		return string(d.Region)
	}
	return ""
}

// dimensionValues returns the closed value set of a dimension in canonical
// order, which fixes the group order inside every comparison.
func dimensionValues(dim Dimension) []string {
	switch dim {
	case DimensionGender:
		values := make([]string, len(resume.AllGenders))
		for i, v := range resume.AllGenders {
			values[i] = string(v)
		}
		return values
	case DimensionAge:
		values := make([]string, len(resume.AllAgeBrackets))
		for i, v := range resume.AllAgeBrackets {
			values[i] = string(v)
		}
		return values
	case DimensionRegion:
		values := make([]string, len(resume.AllRegions))
		for i, v := range resume.AllRegions {
			values[i] = string(v)
		}
		return values
	}
	return nil
}

func cellLess(a, b cell) bool {
	ka := fmt.Sprintf("%s|%s|%s|%s|%s", a.protocol, a.backend, a.model, a.jobContext, a.dim)
	kb := fmt.Sprintf("%s|%s|%s|%s|%s", b.protocol, b.backend, b.model, b.jobContext, b.dim)
	return ka < kb
}
