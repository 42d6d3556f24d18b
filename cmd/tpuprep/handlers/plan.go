package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/tpuprep/internal/provision"
	"github.com/imamik/tpuprep/internal/runner"
)

// Colors matching the doctor output palette.
var (
	planColorBlue = lipgloss.Color("#3b82f6")
	planColorDim  = lipgloss.Color("#6b7280")
)

var (
	planSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(planColorBlue)

	planDimStyle = lipgloss.NewStyle().
			Foreground(planColorDim)
)

// Plan previews a provisioning run.
//
// The full pipeline executes against a recording no-op runner and
// dry-run dataset phases: nothing on the host changes, and every command
// apply would execute is printed in order.
func Plan(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	pipeline, err := buildPipeline(cfg, pipelineOptions{dryRun: true})
	if err != nil {
		return err
	}

	dry := runner.NewDryRunner()
	pctx := provision.NewContext(ctx, cfg, dry)

	if err := pipeline.Run(pctx); err != nil {
		return err
	}

	fmt.Print(renderPlan(dry.Commands, pctx))
	return nil
}

// renderPlan produces the plan summary. Styled headings degrade to plain
// text on non-TTY output automatically via lipgloss.
func renderPlan(commands []runner.Command, pctx *provision.Context) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(planSectionStyle.Render("Commands apply would run:"))
	b.WriteString("\n")
	for _, cmd := range commands {
		b.WriteString(fmt.Sprintf("  %s\n", cmd.String()))
	}

	b.WriteString("\n")
	b.WriteString(planSectionStyle.Render("Artifacts apply would produce:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s/\n", pctx.State.DataDir))
	for _, path := range pctx.State.Downloaded {
		b.WriteString(fmt.Sprintf("  %s\n", path))
	}

	b.WriteString("\n")
	b.WriteString(planDimStyle.Render("No changes were made. Run 'tpuprep apply' to provision."))
	b.WriteString("\n")

	return b.String()
}
