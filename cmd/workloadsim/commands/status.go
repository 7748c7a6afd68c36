package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/MEKXH/workloadsim/internal/config"
	"github.com/MEKXH/workloadsim/internal/policy"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the effective simulator configuration",
		RunE:  runStatus,
	}
	cmd.Flags().Bool("yaml", false, "Dump the effective tables as YAML")
	return cmd
}

type statusReport struct {
	Config       string         `yaml:"config"`
	ConfigFound  bool           `yaml:"config_found"`
	Voice        voiceStatus    `yaml:"voice"`
	Policies     []policyStatus `yaml:"policies"`
	Trusted      []string       `yaml:"trusted_devices"`
	Users        []userStatus   `yaml:"users"`
	FactorRates  rateStatus     `yaml:"factor_rates"`
	AuthBudgetMS int            `yaml:"auth_budget_ms"`
}

type voiceStatus struct {
	Keywords      []string `yaml:"keywords"`
	Threshold     float64  `yaml:"threshold"`
	FrameBudgetMS int      `yaml:"frame_budget_ms"`
}

type policyStatus struct {
	Tier        string `yaml:"tier"`
	Level       string `yaml:"level"`
	RequirePIN  bool   `yaml:"require_pin"`
	DataLimitMB int    `yaml:"data_limit_mb"`
	Connection  string `yaml:"connection"`
}

type userStatus struct {
	ID             string   `yaml:"id"`
	TrustedDevices []string `yaml:"trusted_devices"`
}

type rateStatus struct {
	Voice float64 `yaml:"voice"`
	PIN   float64 `yaml:"pin"`
	Quick float64 `yaml:"quick"`
}

func buildStatusReport(cfg *config.Config) (statusReport, error) {
	path := strings.TrimSpace(configFile)
	if path == "" {
		path = config.ConfigPath()
	}
	_, statErr := os.Stat(path)

	table, err := cfg.PolicyTable()
	if err != nil {
		return statusReport{}, fmt.Errorf("invalid policies: %w", err)
	}
	store, err := cfg.UserStore()
	if err != nil {
		return statusReport{}, fmt.Errorf("invalid users: %w", err)
	}

	report := statusReport{
		Config:      path,
		ConfigFound: statErr == nil,
		Voice: voiceStatus{
			Keywords:      cfg.Voice.Keywords,
			Threshold:     cfg.Voice.Threshold,
			FrameBudgetMS: cfg.Voice.FrameBudgetMS,
		},
		Trusted:      cfg.Connectivity.TrustedDevices,
		FactorRates:  rateStatus(cfg.Rates()),
		AuthBudgetMS: cfg.Biometric.AuthBudgetMS,
	}

	for _, tier := range policy.Tiers {
		p, err := table.Lookup(tier)
		if err != nil {
			return statusReport{}, err
		}
		report.Policies = append(report.Policies, policyStatus{
			Tier:        string(tier),
			Level:       p.Level.String(),
			RequirePIN:  p.RequirePIN,
			DataLimitMB: p.DataLimitMB,
			Connection:  p.Connection,
		})
	}
	for _, id := range store.Users() {
		profile, err := store.Get(id)
		if err != nil {
			return statusReport{}, err
		}
		report.Users = append(report.Users, userStatus{ID: id, TrustedDevices: profile.TrustedDevices})
	}
	return report, nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	report, err := buildStatusReport(cfg)
	if err != nil {
		return err
	}

	asYAML := false
	if cmd != nil {
		asYAML, _ = cmd.Flags().GetBool("yaml")
	}
	if asYAML {
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to encode status: %w", err)
		}
		fmt.Print(string(data))
		return nil
	}

	printStatus(report)
	return nil
}

func printStatus(r statusReport) {
	var (
		headerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#8E4EC6")). // Purple
				Padding(0, 1).
				MarginBottom(1)
		sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8E4EC6")).Bold(true)
		keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
		okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57")) // SeaGreen
		missStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

		wTier  = 16
		wLevel = 10
		wPIN   = 5
		wCap   = 8
		wConn  = 16

		colHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8E4EC6")).
				Bold(true).
				MarginRight(1)
		cellStyle = lipgloss.NewStyle().MarginRight(1)
		sepStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginRight(1)
	)

	line := func(key, value string) {
		fmt.Printf("  %s %s\n", keyStyle.Render(key+":"), value)
	}

	fmt.Println(headerStyle.Render("Workloadsim Status"))

	fmt.Println(sectionStyle.Render("Config"))
	line("Path", r.Config)
	if r.ConfigFound {
		line("Status", okStyle.Render("OK"))
	} else {
		line("Status", missStyle.Render("Not found, using defaults (run 'workloadsim init')"))
	}

	fmt.Println()
	fmt.Println(sectionStyle.Render("Voice"))
	line("Keywords", strings.Join(r.Voice.Keywords, ", "))
	line("Threshold", fmt.Sprintf("%.2f", r.Voice.Threshold))
	line("Frame budget", fmt.Sprintf("%dms", r.Voice.FrameBudgetMS))

	fmt.Println()
	fmt.Println(sectionStyle.Render("Connectivity Policies"))
	headers := lipgloss.JoinHorizontal(lipgloss.Top,
		colHeaderStyle.Width(wTier).Render("TIER"),
		colHeaderStyle.Width(wLevel).Render("LEVEL"),
		colHeaderStyle.Width(wPIN).Render("PIN"),
		colHeaderStyle.Width(wCap).Render("CAP"),
		colHeaderStyle.Width(wConn).Render("CONNECTION"),
	)
	fmt.Printf("  %s\n", headers)
	separator := lipgloss.JoinHorizontal(lipgloss.Top,
		sepStyle.Render(strings.Repeat("─", wTier)),
		sepStyle.Render(strings.Repeat("─", wLevel)),
		sepStyle.Render(strings.Repeat("─", wPIN)),
		sepStyle.Render(strings.Repeat("─", wCap)),
		sepStyle.Render(strings.Repeat("─", wConn)),
	)
	fmt.Printf("  %s\n", separator)
	for _, p := range r.Policies {
		pin := "no"
		if p.RequirePIN {
			pin = "yes"
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			cellStyle.Width(wTier).Render(p.Tier),
			cellStyle.Width(wLevel).Render(p.Level),
			cellStyle.Width(wPIN).Render(pin),
			cellStyle.Width(wCap).Render(fmt.Sprintf("%dMB", p.DataLimitMB)),
			cellStyle.Width(wConn).Render(p.Connection),
		)
		fmt.Printf("  %s\n", row)
	}
	line("Trusted devices", strings.Join(r.Trusted, ", "))

	fmt.Println()
	fmt.Println(sectionStyle.Render("Biometric Users"))
	for _, u := range r.Users {
		line(u.ID, strings.Join(u.TrustedDevices, ", "))
	}
	line("Factor rates", fmt.Sprintf("voice=%.2f pin=%.2f quick=%.2f", r.FactorRates.Voice, r.FactorRates.PIN, r.FactorRates.Quick))
	line("Auth budget", fmt.Sprintf("%dms", r.AuthBudgetMS))
}
