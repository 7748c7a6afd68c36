package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MEKXH/workloadsim/internal/auth"
	"github.com/MEKXH/workloadsim/internal/config"
	"github.com/MEKXH/workloadsim/internal/menu"
	"github.com/MEKXH/workloadsim/internal/scan"
)

// authUsers is the authentication test roster. unknown_user is never enrolled.
var authUsers = []string{"thabo", "matseliso", "ntate_john", "unknown_user"}

// contextUser is authenticated in every context-awareness environment.
const contextUser = "thabo"

// Biometric drives the voice-then-PIN authentication chain.
type Biometric struct {
	cfg    config.BiometricConfig
	store  *auth.Store
	authn  *auth.Authenticator
	rates  auth.Rates
	opts   Options
	nearby []string
}

// NewBiometric builds the user store and authenticator from cfg.
func NewBiometric(cfg *config.Config, opts Options) (*Biometric, error) {
	store, err := cfg.UserStore()
	if err != nil {
		return nil, fmt.Errorf("user store: %w", err)
	}
	opts = opts.withDefaults()
	rates := cfg.Rates()
	return &Biometric{
		cfg:   cfg.Biometric,
		store: store,
		authn: auth.NewAuthenticator(store, auth.NewRandomFactors(opts.Source, rates)),
		rates: rates,
		opts:  opts,
	}, nil
}

// Intro prints the user database banner.
func (b *Biometric) Intro(w io.Writer) {
	fmt.Fprintln(w, "Initializing User Database...")
	fmt.Fprintf(w, "  - %d user profiles loaded\n", b.store.Len())
	fmt.Fprintln(w, "  - Multi-factor authentication enabled")
	fmt.Fprintln(w, "Initializing Biometric Security Simulator...")
	fmt.Fprintln(w, "Focus: Multi-factor authentication with context awareness")
}

func (b *Biometric) sweep(w io.Writer) {
	b.nearby = scan.BiometricSweep()
	fmt.Fprintf(w, "Scanning nearby devices... Found: %s\n", joinDevices(b.nearby))
}

// authenticate runs one attempt against the current nearby set and prints it.
func (b *Biometric) authenticate(w io.Writer, user string) {
	log := b.opts.Logger.With("user", user)
	start := b.opts.Now()
	result, err := b.authn.Authenticate(user, b.nearby)
	elapsed := b.opts.Now().Sub(start)

	if errors.Is(err, auth.ErrUserNotFound) {
		fmt.Fprintln(w, failStyle.Render(fmt.Sprintf("User '%s' not found in database!", user)))
		log.Debug("authentication skipped", "error", err)
		return
	}

	over := elapsed > config.Millis(b.cfg.AuthBudgetMS)
	b.opts.Metrics.Record("auth", elapsed, over)
	fmt.Fprintln(w, FormatAuthResult(result, elapsed))
	if over {
		fmt.Fprintln(w, "   "+warnStyle.Render(fmt.Sprintf("Slow authentication (>%ds)", b.cfg.AuthBudgetMS/1000)))
	}
	log.Debug("authentication decided",
		"success", result.Success,
		"method", result.Method,
		"trusted_environment", result.TrustedEnvironment,
		"latency", elapsed,
	)
}

// FormatAuthResult renders one attempt as a status line.
func FormatAuthResult(r auth.Result, elapsed time.Duration) string {
	status := "AUTH_FAILED"
	if r.Success {
		status = "AUTH_SUCCESS"
	}
	suffix := ""
	if r.TrustedEnvironment {
		suffix = " (Trusted Environment)"
	}
	return fmt.Sprintf("%s: %s via %s%s [%dms]", r.User, status, r.Method, suffix, elapsed.Milliseconds())
}

// UserAuthentication sweeps for devices and authenticates the test roster.
func (b *Biometric) UserAuthentication(ctx context.Context, w io.Writer) error {
	section(w, "User Authentication Test")
	b.sweep(w)
	fmt.Fprintln(w)

	for _, user := range authUsers {
		if err := ctx.Err(); err != nil {
			return err
		}
		b.authenticate(w, user)
	}
	return nil
}

// ContextAwareness authenticates the same user under each environment's device set.
func (b *Biometric) ContextAwareness(ctx context.Context, w io.Writer) error {
	section(w, "Context-Aware Security Test")
	fmt.Fprintln(w, "Testing security policy adaptation...")

	for _, env := range scan.Environments {
		if err := ctx.Err(); err != nil {
			return err
		}
		subsection(w, "Testing "+env+" Environment")
		b.nearby = scan.ContextDevices(env)
		fmt.Fprintf(w, "Nearby devices: %s\n", joinDevices(b.nearby))
		b.authenticate(w, contextUser)
	}
	return nil
}

// StressTest fires quick single-draw checks back to back.
func (b *Biometric) StressTest(ctx context.Context, w io.Writer) error {
	log := newRun(b.opts.Logger, "biometric.stress")
	section(w, "Stress Test: Multiple Authentication Attempts")
	fmt.Fprintln(w, "Testing system under load...")
	b.sweep(w)

	attempts := b.cfg.StressAttempts
	successes := 0
	start := b.opts.Now()
	for i := 0; i < attempts; i++ {
		attemptStart := b.opts.Now()
		if auth.QuickAuth(b.opts.Source, b.rates) {
			successes++
		}
		b.opts.Metrics.Record("quick_auth", b.opts.Now().Sub(attemptStart), false)
		if err := b.opts.Sleep(ctx, config.Millis(b.cfg.StressGapMS)); err != nil {
			return err
		}
	}
	total := b.opts.Now().Sub(start)

	avg := int64(0)
	if attempts > 0 {
		avg = total.Milliseconds() / int64(attempts)
	}
	fmt.Fprintln(w, "\nStress Test Results:")
	fmt.Fprintf(w, "  - Attempts: %d\n", attempts)
	fmt.Fprintf(w, "  - Successful: %d\n", successes)
	fmt.Fprintf(w, "  - Total time: %dms\n", total.Milliseconds())
	fmt.Fprintf(w, "  - Average time per auth: %dms\n", avg)

	log.Debug("stress test finished", "attempts", attempts, "successes", successes, "total", total)
	return nil
}

// WorkloadInfo describes the workload profile.
func (b *Biometric) WorkloadInfo(_ context.Context, w io.Writer) error {
	writeMarkdown(w, b.opts.Renderer, "Biometric Security Workload Characteristics", []string{
		"Multi-factor authentication (voice + PIN)",
		"Context-aware security policies",
		fmt.Sprintf("Moderate latency tolerance (1-%d seconds)", b.cfg.AuthBudgetMS/1000),
		"Random memory access patterns",
		"Decision logic intensive",
	})
	return nil
}

// Menu lists the biometric routines.
func (b *Biometric) Menu() menu.Menu {
	return menu.Menu{
		Title: "BIOMETRIC SECURITY WORKLOAD TEST",
		Items: []menu.Item{
			{Label: "Test User Authentication", Run: b.UserAuthentication},
			{Label: "Test Context Awareness", Run: b.ContextAwareness},
			{Label: "Stress Test", Run: b.StressTest},
			{Label: "Show Workload Information", Run: b.WorkloadInfo},
		},
		Goodbye: "Exiting Biometric Security Simulator. Goodbye!",
	}
}
