package ui

import (
	"fmt"
	"strings"
)

// Summary carries the facts the final report prints. The handler fills it
// from the run state; this package only does layout.
type Summary struct {
	Domain     string
	InstallDir string
	CertIssued bool

	// Warnings are the non-fatal stage outcomes, one line each.
	Warnings []string

	// FirewallStatus is the raw `ufw status` listing, empty if unavailable.
	FirewallStatus string
}

// URL returns the address the service is reachable on. Plain HTTP when
// certificate issuance did not succeed.
func (s Summary) URL() string {
	scheme := "http"
	if s.CertIssued {
		scheme = "https"
	}
	return scheme + "://" + s.Domain
}

// RenderSummary lays out the final report shown after a successful run.
func RenderSummary(s Summary, styled bool) string {
	var b strings.Builder

	section := func(title string) {
		b.WriteString("\n")
		if styled {
			b.WriteString(SectionStyle.Render(title))
		} else {
			b.WriteString(title)
		}
		b.WriteString("\n")
	}
	line := func(format string, v ...any) {
		b.WriteString(fmt.Sprintf(format, v...))
		b.WriteString("\n")
	}

	if styled {
		b.WriteString(TitleStyle.Render("Streaming server provisioned"))
	} else {
		b.WriteString("Streaming server provisioned")
	}
	b.WriteString("\n")

	section("Service")
	line("  URL:         %s", s.URL())
	line("  Install dir: %s", s.InstallDir)
	if !s.CertIssued {
		line("  TLS:         not issued, serving plain HTTP")
	}

	if len(s.Warnings) > 0 {
		section("Warnings")
		for _, w := range s.Warnings {
			warn := WarnMark + " " + w
			if styled {
				warn = WarningStyle.Render(warn)
			}
			line("  %s", warn)
		}
	}

	section("Useful commands")
	line("  docker compose -f %s/docker-compose.yml logs -f", s.InstallDir)
	line("  docker compose -f %s/docker-compose.yml restart", s.InstallDir)
	if !s.CertIssued {
		line("  certbot --nginx -d %s", s.Domain)
	} else {
		line("  certbot renew --dry-run")
	}

	if s.FirewallStatus != "" {
		section("Firewall")
		for _, l := range strings.Split(strings.TrimRight(s.FirewallStatus, "\n"), "\n") {
			line("  %s", l)
		}
	}

	return b.String()
}
