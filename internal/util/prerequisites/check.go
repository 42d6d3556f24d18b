// Package prerequisites provides utilities for checking required host tools.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents a host tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// DefaultTools returns the default set of tools to check.
// The install phases drive the python toolchain directly.
func DefaultTools() []Tool {
	return []Tool{
		{
			Name:        "python3",
			Required:    true,
			Description: "Interpreter hosting the provisioned environment",
			InstallURL:  "https://www.python.org/downloads/",
		},
		{
			Name:        "pip",
			Required:    true,
			Description: "Package manager driven by the install phases",
			InstallURL:  "https://pip.pypa.io/en/stable/installation/",
		},
	}
}

// TPUTools returns additional tools needed for TPU node management.
func TPUTools() []Tool {
	return []Tool{
		{
			Name:        "gcloud",
			Required:    true,
			Description: "Required for TPU API authentication",
			InstallURL:  "https://cloud.google.com/sdk/docs/install",
		},
	}
}

// DoctorTools returns the tools the doctor command reports on. gcloud only
// matters for TPU node management, so it is reported but not required here.
func DoctorTools() []Tool {
	tools := DefaultTools()
	for _, tool := range TPUTools() {
		tool.Required = false
		tools = append(tools, tool)
	}
	return tools
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			// Try to get version (best effort)
			result.Version = getToolVersion(tool.Name)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckDefault checks the default required tools.
func CheckDefault() *CheckResults {
	return Check(DefaultTools())
}

// CheckForDoctor checks the tool set the doctor command reports on.
func CheckForDoctor() *CheckResults {
	return Check(DoctorTools())
}

// CheckForTPU checks tools needed for TPU node management.
func CheckForTPU() *CheckResults {
	defaults := DefaultTools()
	tpu := TPUTools()
	all := make([]Tool, 0, len(defaults)+len(tpu))
	all = append(all, defaults...)
	all = append(all, tpu...)
	return Check(all)
}

// getToolVersion attempts to get the version of a tool.
// Returns empty string if version cannot be determined.
func getToolVersion(name string) string {
	// Common version flags to try
	versionFlags := []string{"--version", "version", "-v"}

	for _, flag := range versionFlags {
		// #nosec G204 - name comes from trusted Tool definitions, not user input
		cmd := exec.Command(name, flag)
		output, err := cmd.Output()
		if err == nil {
			// Return first line of output, trimmed
			lines := strings.Split(string(output), "\n")
			if len(lines) > 0 {
				return strings.TrimSpace(lines[0])
			}
		}
	}

	return ""
}
