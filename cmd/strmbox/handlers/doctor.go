package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/strmbox/strmbox/internal/config"
	"github.com/strmbox/strmbox/internal/platform/dockerapi"
	"github.com/strmbox/strmbox/internal/ui"
)

// DoctorReport is the read-only pre-flight diagnosis.
type DoctorReport struct {
	Root  bool         `json:"root"`
	Tools []ToolStatus `json:"tools"`

	// DNS section, empty when no configuration is available.
	Domain      string   `json:"domain,omitempty"`
	ResolvedIPs []string `json:"resolvedIPs,omitempty"`
	PublicIP    string   `json:"publicIP,omitempty"`
	DNSMatch    string   `json:"dnsMatch,omitempty"` // "ok", "mismatch", "unresolvable", "unknown"

	ContainerState string `json:"containerState,omitempty"`
	FirewallActive bool   `json:"firewallActive"`
}

// ToolStatus reports one PATH check.
type ToolStatus struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Found    bool   `json:"found"`
	Path     string `json:"path,omitempty"`
	Version  string `json:"version,omitempty"`
}

// Doctor diagnoses host readiness without changing anything. The command
// exits non-zero only when a required tool is missing; everything else is
// informational.
func Doctor(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, err := loadOptionalConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	report := buildDoctorReport(ctx, cfg)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printDoctorReport(report, cfg)
	}

	return checkHostTools().Error()
}

// buildDoctorReport gathers every probe result. Probes that need a
// collaborator that is not there yet (Docker daemon, configuration) are
// skipped, not failed.
func buildDoctorReport(ctx context.Context, cfg *config.Config) DoctorReport {
	report := DoctorReport{Root: geteuid() == 0}

	for _, r := range checkHostTools().Results {
		report.Tools = append(report.Tools, ToolStatus{
			Name:     r.Tool.Name,
			Required: r.Tool.Required,
			Found:    r.Found,
			Path:     r.Path,
			Version:  r.Version,
		})
	}

	if cfg != nil {
		report.Domain = cfg.Domain
		report.DNSMatch = probeDNS(ctx, cfg.Domain, &report)
	}

	if cli, err := newDockerClient(); err == nil {
		if state, err := dockerapi.ContainerState(ctx, cli, config.ServiceName); err == nil {
			if state == "" {
				state = "absent"
			}
			report.ContainerState = state
		}
	}

	report.FirewallActive = firewallActive(ctx)
	return report
}

func probeDNS(ctx context.Context, domain string, report *DoctorReport) string {
	ips, err := resolveDomain(ctx, domain)
	if err != nil || len(ips) == 0 {
		return "unresolvable"
	}
	report.ResolvedIPs = ips

	publicIP, err := fetchPublicIP(ctx)
	if err != nil {
		return "unknown"
	}
	report.PublicIP = publicIP

	for _, ip := range ips {
		if ip == publicIP {
			return "ok"
		}
	}
	return "mismatch"
}

func firewallActive(ctx context.Context) bool {
	runner := newRunner(newLogger())
	out, err := runner.Output(ctx, "ufw", "status")
	return err == nil && strings.Contains(string(out), "Status: active")
}

func printDoctorReport(report DoctorReport, cfg *config.Config) {
	fmt.Println("Host readiness")
	fmt.Println("--------------")
	fmt.Printf("  %s root privileges\n", mark(report.Root))

	fmt.Println()
	fmt.Println("Tools")
	for _, tool := range report.Tools {
		note := ""
		if !tool.Found && !tool.Required {
			note = " (installed by provision)"
		}
		fmt.Printf("  %s %s%s\n", mark(tool.Found), tool.Name, note)
	}

	fmt.Println()
	if cfg == nil {
		fmt.Println("DNS: no configuration found, skipping (run 'strmbox init')")
	} else {
		fmt.Printf("DNS for %s\n", report.Domain)
		switch report.DNSMatch {
		case "ok":
			fmt.Printf("  %s resolves to this host (%s)\n", ui.CheckMark, report.PublicIP)
		case "mismatch":
			fmt.Printf("  %s resolves to %s, this host is %s\n",
				ui.WarnMark, strings.Join(report.ResolvedIPs, ", "), report.PublicIP)
		case "unresolvable":
			fmt.Printf("  %s domain does not resolve\n", ui.CrossMark)
		default:
			fmt.Printf("  %s could not determine this host's public IP\n", ui.WarnMark)
		}
	}

	fmt.Println()
	if report.ContainerState != "" {
		fmt.Printf("Container: %s\n", report.ContainerState)
	} else {
		fmt.Println("Container: Docker daemon not reachable")
	}
	fmt.Printf("Firewall:  active=%t\n", report.FirewallActive)
}

func mark(ok bool) string {
	if ok {
		return ui.CheckMark
	}
	return ui.CrossMark
}
