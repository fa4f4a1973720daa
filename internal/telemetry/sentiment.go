package telemetry

import (
	"strings"

	"github.com/jonreiter/govader"
)

const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// Sentiment labels.
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// SentimentScorer scores candidate answers on a [-1, 1] polarity scale.
type SentimentScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewSentimentScorer returns a scorer using the VADER lexicon.
func NewSentimentScorer() *SentimentScorer {
	return &SentimentScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Polarity returns the compound score of text, 0 for blank input.
func (s *SentimentScorer) Polarity(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return clamp(s.analyzer.PolarityScores(text).Compound)
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}

// Label maps a polarity to positive, negative or neutral.
func Label(polarity float64) string {
	switch {
	case polarity > positiveThreshold:
		return LabelPositive
	case polarity < negativeThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// Summary aggregates the scores observed during one interview.
type Summary struct {
	Average float64 `json:"average"`
	Label   string  `json:"label"`
	Samples int     `json:"samples"`
}

// Summarize averages scores. An empty slice is neutral.
func Summarize(scores []float64) Summary {
	if len(scores) == 0 {
		return Summary{Label: LabelNeutral}
	}

	var total float64
	for _, s := range scores {
		total += s
	}
	avg := total / float64(len(scores))

	return Summary{Average: avg, Label: Label(avg), Samples: len(scores)}
}
