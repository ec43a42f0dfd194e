package statistics

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/eliaswen/goat/core/utils"
)

// Theoretical win probabilities of the two strategies.
const (
	ExpectedStay   = 1.0 / 3
	ExpectedSwitch = 2.0 / 3
)

// DefaultConfidence is the confidence level of reported intervals.
const DefaultConfidence = 0.95

// Proportion describes the observed win rate of one strategy.
type Proportion struct {
	Wins     int64   `json:"wins"`
	Rate     float64 `json:"rate"`
	Expected float64 `json:"expected"`
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
	ZScore   float64 `json:"z_score"`
	PValue   float64 `json:"p_value"`
}

// Result summarises a run against the theoretical probabilities.
type Result struct {
	Trials     int64      `json:"trials"`
	Confidence float64    `json:"confidence"`
	Stay       Proportion `json:"stay"`
	Switch     Proportion `json:"switch"`
}

// Summarize computes Wilson score intervals and two-sided z-tests for both
// strategies. With no trials every rate and statistic is zero.
func Summarize(stayWins, switchWins, trials int64) *Result {
	return SummarizeAt(stayWins, switchWins, trials, DefaultConfidence)
}

func SummarizeAt(stayWins, switchWins, trials int64, confidence float64) *Result {
	z := distuv.UnitNormal.Quantile(1 - (1-confidence)/2)
	return &Result{
		Trials:     trials,
		Confidence: confidence,
		Stay:       proportion(stayWins, trials, ExpectedStay, z),
		Switch:     proportion(switchWins, trials, ExpectedSwitch, z),
	}
}

func proportion(wins, trials int64, expected, z float64) Proportion {
	p := Proportion{Wins: wins, Expected: expected}
	if trials <= 0 {
		return p
	}

	n := float64(trials)
	rate := float64(wins) / n
	z2 := z * z

	denom := 1 + z2/n
	center := (rate + z2/(2*n)) / denom
	half := z * math.Sqrt(rate*(1-rate)/n+z2/(4*n*n)) / denom

	se := math.Sqrt(expected * (1 - expected) / n)
	score := (rate - expected) / se

	p.Rate = utils.Round(rate, 6)
	p.Lower = utils.Round(math.Max(0, center-half), 6)
	p.Upper = utils.Round(math.Min(1, center+half), 6)
	p.ZScore = utils.Round(score, 4)
	p.PValue = utils.Round(2*distuv.UnitNormal.Survival(math.Abs(score)), 6)
	return p
}

// Contains reports whether the interval covers the expected probability.
func (p Proportion) Contains() bool {
	return p.Lower <= p.Expected && p.Expected <= p.Upper
}

// DurationSummary describes a set of run durations in milliseconds.
type DurationSummary struct {
	Runs   int     `json:"runs"`
	Mean   float64 `json:"mean_ms"`
	Median float64 `json:"median_ms"`
	StdDev float64 `json:"stddev_ms"`
	Min    float64 `json:"min_ms"`
	Max    float64 `json:"max_ms"`
}

func SummarizeDurations(durations []time.Duration) (DurationSummary, error) {
	data := make(stats.Float64Data, len(durations))
	for i, d := range durations {
		data[i] = utils.Milliseconds(d)
	}

	var (
		s   = DurationSummary{Runs: len(durations)}
		err error
	)
	if s.Mean, err = data.Mean(); err != nil {
		return s, err
	}
	if s.Median, err = data.Median(); err != nil {
		return s, err
	}
	if s.StdDev, err = data.StandardDeviation(); err != nil {
		return s, err
	}
	if s.Min, err = data.Min(); err != nil {
		return s, err
	}
	if s.Max, err = data.Max(); err != nil {
		return s, err
	}

	s.Mean = utils.Round(s.Mean, 2)
	s.Median = utils.Round(s.Median, 2)
	s.StdDev = utils.Round(s.StdDev, 2)
	s.Min = utils.Round(s.Min, 2)
	s.Max = utils.Round(s.Max, 2)
	return s, nil
}
