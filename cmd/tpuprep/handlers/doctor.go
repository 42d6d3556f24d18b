package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/tpuprep/internal/config"
)

// DoctorStatus represents the host diagnostic status.
type DoctorStatus struct {
	ConfigValid bool            `json:"configValid"`
	ConfigError string          `json:"configError,omitempty"`
	Tools       []ToolHealth    `json:"tools"`
	Endpoints   []EndpointCheck `json:"endpoints"`
	DataDir     DataDirHealth   `json:"dataDir"`
}

// ToolHealth represents one host tool check.
type ToolHealth struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Found    bool   `json:"found"`
	Version  string `json:"version,omitempty"`
}

// EndpointCheck represents external endpoint reachability.
type EndpointCheck struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Reachable bool   `json:"reachable"`
	Message   string `json:"message,omitempty"`
}

// DataDirHealth represents the state of the data directory.
type DataDirHealth struct {
	Path     string   `json:"path"`
	Exists   bool     `json:"exists"`
	Archives []string `json:"archives,omitempty"`
}

// Healthy reports whether every required check passed.
func (s *DoctorStatus) Healthy() bool {
	if !s.ConfigValid {
		return false
	}
	for _, tool := range s.Tools {
		if tool.Required && !tool.Found {
			return false
		}
	}
	for _, ep := range s.Endpoints {
		if !ep.Reachable {
			return false
		}
	}
	return true
}

// probeClient issues the reachability probes. Short timeout: doctor should
// answer quickly even when a host is down.
var probeClient = &http.Client{Timeout: 10 * time.Second}

// Doctor diagnoses the host environment before provisioning.
//
// Checks the configuration, the required host tools, reachability of the
// dataset host and accelerator index, and the data directory state.
// Exits non-zero when a required check fails.
func Doctor(ctx context.Context, configPath string, jsonOutput bool) error {
	status := &DoctorStatus{ConfigValid: true}

	cfg, err := loadConfig(configPath)
	if err != nil {
		status.ConfigValid = false
		status.ConfigError = err.Error()
		cfg = config.DefaultConfig()
	}

	collectToolHealth(status)
	collectEndpointHealth(ctx, status, cfg)
	collectDataDirHealth(status, cfg)

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(status); err != nil {
			return err
		}
	} else if isInteractiveTTY() {
		fmt.Print(renderDoctorStyled(status))
	} else {
		fmt.Print(renderDoctorPlain(status))
	}

	if !status.Healthy() {
		return fmt.Errorf("doctor found problems")
	}
	return nil
}

func collectToolHealth(status *DoctorStatus) {
	results := checkDoctorPrereqs()
	for _, r := range results.Results {
		status.Tools = append(status.Tools, ToolHealth{
			Name:     r.Tool.Name,
			Required: r.Tool.Required,
			Found:    r.Found,
			Version:  r.Version,
		})
	}
}

func collectEndpointHealth(ctx context.Context, status *DoctorStatus, cfg *config.Config) {
	if cfg.Datasets.Mirror.Enabled() {
		// Mirror reachability needs credentials; doctor only checks the
		// index URL in that case.
		status.Endpoints = append(status.Endpoints,
			probeEndpoint(ctx, "accelerator index", cfg.Accelerator.IndexURL))
		return
	}

	datasetURL := strings.TrimRight(cfg.Datasets.BaseURL, "/") + "/" + cfg.Datasets.Archives[0]
	status.Endpoints = append(status.Endpoints,
		probeEndpoint(ctx, "dataset host", datasetURL),
		probeEndpoint(ctx, "accelerator index", cfg.Accelerator.IndexURL),
	)
}

func probeEndpoint(ctx context.Context, name, url string) EndpointCheck {
	check := EndpointCheck{Name: name, URL: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		check.Message = err.Error()
		return check
	}

	resp, err := probeClient.Do(req)
	if err != nil {
		check.Message = err.Error()
		return check
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		check.Message = resp.Status
		return check
	}

	check.Reachable = true
	return check
}

func collectDataDirHealth(status *DoctorStatus, cfg *config.Config) {
	status.DataDir.Path = cfg.Datasets.Dir

	if _, err := os.Stat(cfg.Datasets.Dir); err != nil {
		return
	}
	status.DataDir.Exists = true

	for _, archive := range cfg.Datasets.Archives {
		path := cfg.Datasets.Dir + string(os.PathSeparator) + archive
		if _, err := os.Stat(path); err == nil {
			status.DataDir.Archives = append(status.DataDir.Archives, archive)
		}
	}
}

// Colors matching the plan output palette.
var (
	doctorColorGreen = lipgloss.Color("#22c55e")
	doctorColorRed   = lipgloss.Color("#ef4444")
	doctorColorBlue  = lipgloss.Color("#3b82f6")
	doctorColorDim   = lipgloss.Color("#6b7280")
)

var (
	doctorSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(doctorColorBlue)

	doctorOKStyle = lipgloss.NewStyle().
			Foreground(doctorColorGreen)

	doctorFailStyle = lipgloss.NewStyle().
			Foreground(doctorColorRed)

	doctorDimStyle = lipgloss.NewStyle().
			Foreground(doctorColorDim)
)

const (
	checkMark = "[OK]"
	crossMark = "[!!]"
)

// renderDoctorStyled produces the lipgloss-styled doctor report.
func renderDoctorStyled(status *DoctorStatus) string {
	mark := func(ok bool) string {
		if ok {
			return doctorOKStyle.Render(checkMark)
		}
		return doctorFailStyle.Render(crossMark)
	}

	var b strings.Builder

	b.WriteString(doctorSectionStyle.Render("Configuration"))
	b.WriteString("\n")
	if status.ConfigValid {
		b.WriteString(fmt.Sprintf("  %s config valid\n", mark(true)))
	} else {
		b.WriteString(fmt.Sprintf("  %s %s\n", mark(false), status.ConfigError))
	}

	b.WriteString(doctorSectionStyle.Render("Tools"))
	b.WriteString("\n")
	for _, tool := range status.Tools {
		extra := tool.Version
		if extra == "" {
			extra = "not found"
		}
		b.WriteString(fmt.Sprintf("  %s %-10s %s\n", mark(tool.Found), tool.Name, doctorDimStyle.Render(extra)))
	}

	b.WriteString(doctorSectionStyle.Render("Endpoints"))
	b.WriteString("\n")
	for _, ep := range status.Endpoints {
		detail := ep.URL
		if ep.Message != "" {
			detail = ep.Message
		}
		b.WriteString(fmt.Sprintf("  %s %-18s %s\n", mark(ep.Reachable), ep.Name, doctorDimStyle.Render(detail)))
	}

	b.WriteString(doctorSectionStyle.Render("Data"))
	b.WriteString("\n")
	if status.DataDir.Exists {
		b.WriteString(fmt.Sprintf("  %s %s (%d archive(s) present)\n",
			mark(true), status.DataDir.Path, len(status.DataDir.Archives)))
	} else {
		b.WriteString(fmt.Sprintf("  %s %s\n", doctorDimStyle.Render("[--]"),
			doctorDimStyle.Render(status.DataDir.Path+" does not exist yet")))
	}

	return b.String()
}

// renderDoctorPlain produces the unstyled doctor report for non-TTY output.
func renderDoctorPlain(status *DoctorStatus) string {
	mark := func(ok bool) string {
		if ok {
			return checkMark
		}
		return crossMark
	}

	var b strings.Builder

	if status.ConfigValid {
		b.WriteString(fmt.Sprintf("%s config valid\n", mark(true)))
	} else {
		b.WriteString(fmt.Sprintf("%s config: %s\n", mark(false), status.ConfigError))
	}

	for _, tool := range status.Tools {
		b.WriteString(fmt.Sprintf("%s tool %s %s\n", mark(tool.Found), tool.Name, tool.Version))
	}
	for _, ep := range status.Endpoints {
		b.WriteString(fmt.Sprintf("%s endpoint %s %s %s\n", mark(ep.Reachable), ep.Name, ep.URL, ep.Message))
	}
	b.WriteString(fmt.Sprintf("data dir %s exists=%t archives=%d\n",
		status.DataDir.Path, status.DataDir.Exists, len(status.DataDir.Archives)))

	return b.String()
}
