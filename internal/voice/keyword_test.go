package voice

import (
	"math"
	"testing"

	"github.com/MEKXH/workloadsim/internal/sensor"
)

func TestSimilarity_IdenticalPositiveVectors(t *testing.T) {
	a := []float64{1, 2, 3}
	got := Similarity(a, a)
	want := (1.0 + 4.0 + 9.0) / 3.0

	if got < 0 || math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

func TestSimilarity_ZeroAndEmpty(t *testing.T) {
	if got := Similarity([]float64{0, 0}, []float64{0, 0}); got != 0 {
		t.Fatalf("expected 0 for zero vectors, got %f", got)
	}
	if got := Similarity(nil, []float64{1}); got != 0 {
		t.Fatalf("expected 0 for empty vector, got %f", got)
	}
}

func TestSimilarity_SignStrippedAndTruncated(t *testing.T) {
	a := []float64{-1, -1, 100}
	b := []float64{1, 1}
	if got := Similarity(a, b); got != 1 {
		t.Fatalf("expected 1, got %f", got)
	}
}

func TestBuildModels_Weights(t *testing.T) {
	models := BuildModels(DefaultKeywords, DefaultFeatureSize)
	if len(models) != 3 {
		t.Fatalf("expected 3 models, got %d", len(models))
	}
	for i, m := range models {
		if len(m.Weights) != DefaultFeatureSize {
			t.Fatalf("model %d: expected %d weights, got %d", i, DefaultFeatureSize, len(m.Weights))
		}
		want := 0.1 * float64(i+1)
		if m.Weights[0] != want || m.Weights[DefaultFeatureSize-1] != want {
			t.Fatalf("model %d: expected weight %f", i, want)
		}
	}
	if models[1].Keyword != "Romela" {
		t.Fatalf("expected Romela second, got %q", models[1].Keyword)
	}
}

func TestMatcher_FirstModelOverThresholdWins(t *testing.T) {
	models := BuildModels([]string{"Feta", "Romela", "Thusa"}, 4)
	m, err := NewMatcher(models, DefaultThreshold)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}

	// Scores: 0.1*v, 0.2*v, 0.3*v for constant features v.
	got := m.Match([]float64{5, 5, 5, 5})
	if !got.Detected || got.Keyword != "Romela" {
		t.Fatalf("expected Romela detected, got %+v", got)
	}

	got = m.Match([]float64{1, 1, 1, 1})
	if got.Detected {
		t.Fatalf("expected no detection, got %+v", got)
	}
	if math.Abs(got.Confidence-0.3) > 1e-9 {
		t.Fatalf("expected best confidence 0.3, got %f", got.Confidence)
	}
}

func TestMatcher_ThresholdIsStrict(t *testing.T) {
	m, _ := NewMatcher([]Model{{Keyword: "k", Weights: []float64{1}}}, 0.5)
	if m.Match([]float64{0.5}).Detected {
		t.Fatal("score equal to threshold must not detect")
	}
	if !m.Match([]float64{0.51}).Detected {
		t.Fatal("score above threshold must detect")
	}
}

func TestNewMatcher_Validation(t *testing.T) {
	if _, err := NewMatcher(nil, -1); err == nil {
		t.Fatal("expected error for negative threshold")
	}
	if _, err := NewMatcher([]Model{{Keyword: "", Weights: []float64{1}}}, 0.5); err == nil {
		t.Fatal("expected error for empty keyword")
	}
	if _, err := NewMatcher([]Model{{Keyword: "k"}}, 0.5); err == nil {
		t.Fatal("expected error for empty weights")
	}
}

func TestPipeline_CaptureAndExtractSizes(t *testing.T) {
	m, _ := NewMatcher(BuildModels(DefaultKeywords, 8), DefaultThreshold)
	p := NewPipeline(sensor.NewSeeded(3), m, 16, 8)

	buf := p.Capture()
	if len(buf) != 16 {
		t.Fatalf("expected 16 samples, got %d", len(buf))
	}
	for _, s := range buf {
		if s < -1 || s >= 1 {
			t.Fatalf("sample out of range: %f", s)
		}
	}
	if n := len(p.ExtractFeatures()); n != 8 {
		t.Fatalf("expected 8 features, got %d", n)
	}
}

func TestPipeline_ProcessDetectsWithLargeFeatures(t *testing.T) {
	m, _ := NewMatcher(BuildModels(DefaultKeywords, 4), DefaultThreshold)
	p := NewPipeline(sensor.NewSequence(10), m, 2, 4)

	got := p.Process()
	if !got.Detected || got.Keyword != "Feta" {
		t.Fatalf("expected Feta detected, got %+v", got)
	}
}

type countingSource struct {
	uniform, normal int
}

func (c *countingSource) Float64() float64     { c.uniform++; return 0.5 }
func (c *countingSource) NormFloat64() float64 { c.normal++; return 0 }
func (c *countingSource) IntN(int) int         { return 0 }

func TestPipeline_ProcessCapturesFullFrame(t *testing.T) {
	m, _ := NewMatcher(BuildModels(DefaultKeywords, 4), DefaultThreshold)
	src := &countingSource{}
	p := NewPipeline(src, m, 32, 4)

	if got := p.Process(); got.Detected {
		t.Fatalf("expected no detection for zero features, got %+v", got)
	}
	if src.uniform != 32 || src.normal != 4 {
		t.Fatalf("expected 32 capture and 4 feature draws, got %d and %d", src.uniform, src.normal)
	}
}
