package voice

import "github.com/MEKXH/workloadsim/internal/sensor"

// Pipeline is the synthetic capture, feature extraction and matching chain.
type Pipeline struct {
	src         sensor.Source
	matcher     *Matcher
	bufferSize  int
	featureSize int
}

// NewPipeline wires a sensor source to a matcher.
func NewPipeline(src sensor.Source, matcher *Matcher, bufferSize, featureSize int) *Pipeline {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if featureSize <= 0 {
		featureSize = DefaultFeatureSize
	}
	return &Pipeline{src: src, matcher: matcher, bufferSize: bufferSize, featureSize: featureSize}
}

// Capture returns one frame of uniform samples in [-1, 1).
func (p *Pipeline) Capture() []float64 {
	buf := make([]float64, p.bufferSize)
	for i := range buf {
		buf[i] = sensor.Uniform(p.src, -1, 1)
	}
	return buf
}

// ExtractFeatures stands in for MFCC extraction with standard normal draws.
func (p *Pipeline) ExtractFeatures() []float64 {
	features := make([]float64, p.featureSize)
	for i := range features {
		features[i] = p.src.NormFloat64()
	}
	return features
}

// Process runs capture, extraction and matching for one frame.
func (p *Pipeline) Process() Match {
	// The frame is never matched; capturing it is part of the per-frame workload.
	_ = p.Capture()
	return p.matcher.Match(p.ExtractFeatures())
}

// Matcher exposes the underlying matcher.
func (p *Pipeline) Matcher() *Matcher {
	return p.matcher
}
