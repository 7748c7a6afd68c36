package voice

import (
	"fmt"
	"math"
	"strings"
)

const (
	// DefaultThreshold is the minimum similarity a model must exceed.
	DefaultThreshold = 0.85
	// DefaultFeatureSize is the model and feature vector length.
	DefaultFeatureSize = 256
	// DefaultBufferSize is the number of samples per captured frame.
	DefaultBufferSize = 1024
)

// DefaultKeywords are the Sesotho commands: call, send, help.
var DefaultKeywords = []string{"Feta", "Romela", "Thusa"}

// Model is a keyword template.
type Model struct {
	Keyword string
	Weights []float64
}

// BuildModels creates one constant-weight model per keyword; model i uses 0.1*(i+1).
func BuildModels(keywords []string, size int) []Model {
	models := make([]Model, 0, len(keywords))
	for i, kw := range keywords {
		weights := make([]float64, size)
		for j := range weights {
			weights[j] = 0.1 * float64(i+1)
		}
		models = append(models, Model{Keyword: kw, Weights: weights})
	}
	return models
}

// Similarity is the absolute dot product over the shared prefix, divided by its length.
func Similarity(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return math.Abs(sum) / float64(n)
}

// Match is the outcome of scoring features against the models.
type Match struct {
	Detected   bool
	Keyword    string
	Confidence float64
}

// Matcher checks features against keyword models.
type Matcher struct {
	models    []Model
	threshold float64
}

// NewMatcher validates models and threshold.
func NewMatcher(models []Model, threshold float64) (*Matcher, error) {
	if threshold < 0 || math.IsNaN(threshold) {
		return nil, fmt.Errorf("threshold must be non-negative, got %f", threshold)
	}
	for i, m := range models {
		if strings.TrimSpace(m.Keyword) == "" {
			return nil, fmt.Errorf("model %d has no keyword", i)
		}
		if len(m.Weights) == 0 {
			return nil, fmt.Errorf("model %q has no weights", m.Keyword)
		}
	}
	return &Matcher{models: append([]Model(nil), models...), threshold: threshold}, nil
}

// Match returns the first model whose similarity exceeds the threshold.
// Confidence is the best score seen when nothing is detected.
func (m *Matcher) Match(features []float64) Match {
	var best float64
	for _, model := range m.models {
		score := Similarity(features, model.Weights)
		if score > m.threshold {
			return Match{Detected: true, Keyword: model.Keyword, Confidence: score}
		}
		best = max(best, score)
	}
	return Match{Confidence: best}
}

// Keywords returns the model names in match order.
func (m *Matcher) Keywords() []string {
	names := make([]string, 0, len(m.models))
	for _, model := range m.models {
		names = append(names, model.Keyword)
	}
	return names
}

// Threshold returns the detection threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}
