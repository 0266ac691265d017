// Package prerequisites checks which of the tools the provisioner drives
// are present on the host. Used by the doctor command for a read-only
// pre-flight report.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// LookPathFunc resolves a binary on PATH. Tests substitute a canned table.
type LookPathFunc func(name string) (string, error)

// Tool is a host binary the provisioner depends on or installs.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required marks tools the provisioner cannot install itself; a run
	// on a host missing one of these cannot succeed.
	Required bool

	// Description explains what the tool is used for.
	Description string
}

// HostTools returns the tools the doctor command reports on. apt-get and
// systemctl must already exist; everything else is installed by a
// provisioning run when absent.
func HostTools() []Tool {
	return []Tool{
		{
			Name:        "apt-get",
			Required:    true,
			Description: "Installs the runtime, proxy, firewall, and certificate packages",
		},
		{
			Name:        "systemctl",
			Required:    true,
			Description: "Enables and reloads the docker and nginx services",
		},
		{
			Name:        "docker",
			Description: "Container runtime (installed by provision when missing)",
		},
		{
			Name:        "nginx",
			Description: "Reverse proxy (installed by provision when missing)",
		},
		{
			Name:        "certbot",
			Description: "Certificate issuance (installed by provision when missing)",
		},
		{
			Name:        "ufw",
			Description: "Host firewall (installed by provision when missing)",
		},
	}
}

// CheckResult is the outcome for a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults aggregates the per-tool outcomes.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// Error returns a non-nil error when any required tool is missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, tool.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check resolves each tool through lookPath. A nil lookPath uses the real
// PATH; version probing only happens against the real PATH.
func Check(lookPath LookPathFunc, tools []Tool) *CheckResults {
	probeVersion := lookPath == nil
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	results := &CheckResults{}
	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := lookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			if probeVersion {
				result.Version = toolVersion(tool.Name)
			}
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}
	return results
}

// CheckHost checks the default tool set against the real PATH.
func CheckHost() *CheckResults {
	return Check(nil, HostTools())
}

// toolVersion asks the tool for its version, best effort.
func toolVersion(name string) string {
	for _, flag := range []string{"--version", "version", "-v"} {
		out, err := exec.Command(name, flag).Output()
		if err != nil {
			continue
		}
		if line, _, _ := strings.Cut(string(out), "\n"); line != "" {
			return strings.TrimSpace(line)
		}
	}
	return ""
}
