package auth

import (
	"github.com/MEKXH/workloadsim/internal/sensor"
)

// Method is the factor credited for an attempt.
type Method string

const (
	MethodVoice Method = "Voice"
	MethodPIN   Method = "PIN"
)

// Factors checks the individual authentication factors.
type Factors interface {
	VerifyVoice(voicePrint string) bool
	VerifyPIN(pin string) bool
}

// Rates are pass probabilities for the synthetic factors.
type Rates struct {
	Voice float64
	PIN   float64
	Quick float64
}

// DefaultRates matches the reference device: 70% voice, 80% PIN, 60% quick auth.
func DefaultRates() Rates {
	return Rates{Voice: 0.7, PIN: 0.8, Quick: 0.6}
}

// RandomFactors draws factor outcomes from a sensor source.
type RandomFactors struct {
	src   sensor.Source
	rates Rates
}

// NewRandomFactors builds synthetic factor checks.
func NewRandomFactors(src sensor.Source, rates Rates) *RandomFactors {
	return &RandomFactors{src: src, rates: rates}
}

func (f *RandomFactors) VerifyVoice(string) bool {
	return sensor.Pass(f.src, 1-f.rates.Voice)
}

func (f *RandomFactors) VerifyPIN(string) bool {
	return sensor.Pass(f.src, 1-f.rates.PIN)
}

// Result describes one authentication attempt.
type Result struct {
	User               string
	Success            bool
	Method             Method
	TrustedEnvironment bool
}

// Authenticator runs the voice-then-PIN chain.
type Authenticator struct {
	store   *Store
	factors Factors
}

// NewAuthenticator wires a profile store to factor checks.
func NewAuthenticator(store *Store, factors Factors) *Authenticator {
	return &Authenticator{store: store, factors: factors}
}

// Authenticate decides one attempt for user given the devices currently nearby.
// Voice success is credited to Voice even outside a trusted environment; only a
// failed voice check falls back to PIN.
func (a *Authenticator) Authenticate(user string, nearby []string) (Result, error) {
	profile, err := a.store.Get(user)
	if err != nil {
		return Result{User: user}, err
	}

	voiceOK := a.factors.VerifyVoice(profile.VoicePrint)
	trusted := TrustedEnvironment(profile, nearby)

	switch {
	case voiceOK && trusted:
		return Result{User: user, Success: true, Method: MethodVoice, TrustedEnvironment: true}, nil
	case voiceOK:
		return Result{User: user, Success: true, Method: MethodVoice}, nil
	default:
		return Result{User: user, Success: a.factors.VerifyPIN(profile.PIN), Method: MethodPIN}, nil
	}
}

// TrustedEnvironment reports whether any of the profile's devices is nearby.
func TrustedEnvironment(profile Profile, nearby []string) bool {
	if len(profile.TrustedDevices) == 0 || len(nearby) == 0 {
		return false
	}
	present := make(map[string]struct{}, len(nearby))
	for _, device := range nearby {
		present[device] = struct{}{}
	}
	for _, device := range profile.TrustedDevices {
		if _, ok := present[device]; ok {
			return true
		}
	}
	return false
}

// QuickAuth is the single-draw check used under load.
func QuickAuth(src sensor.Source, rates Rates) bool {
	return sensor.Pass(src, 1-rates.Quick)
}
