package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

type testResult struct {
	statistic float64
	df        float64
	df1       float64
	df2       float64
	pValue    float64
	effect    float64
}

// welchT runs Welch's unequal-variance t-test on two groups and computes
// Cohen's d from the pooled standard deviation.
func welchT(a, b []float64) testResult {
	n1, n2 := float64(len(a)), float64(len(b))
	m1, s1 := stat.MeanStdDev(a, nil)
	m2, s2 := stat.MeanStdDev(b, nil)
	v1, v2 := s1*s1, s2*s2

	se1, se2 := v1/n1, v2/n2
	t := (m1 - m2) / math.Sqrt(se1+se2)

	// Welch-Satterthwaite degrees of freedom.
	df := (se1 + se2) * (se1 + se2) /
		(se1*se1/(n1-1) + se2*se2/(n2-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))

	pooled := math.Sqrt(((n1-1)*v1 + (n2-1)*v2) / (n1 + n2 - 2))
	d := 0.0
	if pooled > 0 {
		d = (m1 - m2) / pooled
	}

	return testResult{statistic: t, df: df, pValue: p, effect: d}
}

// oneWayANOVA runs a one-way analysis of variance across k groups and
// computes eta squared as the effect size.
func oneWayANOVA(groups [][]float64) testResult {
	var total float64
	var n int
	for _, g := range groups {
		for _, x := range g {
			total += x
		}
		n += len(g)
	}
	grand := total / float64(n)

	var ssBetween, ssWithin float64
	for _, g := range groups {
		mean := stat.Mean(g, nil)
		ssBetween += float64(len(g)) * (mean - grand) * (mean - grand)
		for _, x := range g {
			ssWithin += (x - mean) * (x - mean)
		}
	}

	df1 := float64(len(groups) - 1)
	df2 := float64(n - len(groups))
	f := (ssBetween / df1) / (ssWithin / df2)

	dist := distuv.F{D1: df1, D2: df2}
	p := 1 - dist.CDF(f)

	return testResult{
		statistic: f,
		df1:       df1,
		df2:       df2,
		pValue:    p,
		effect:    ssBetween / (ssBetween + ssWithin),
	}
}
