package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/imamik/tpuprep/internal/config"
)

// Function variable for dependency injection in tests.
var confirmOverwrite = defaultConfirmOverwrite

// WriteConfig writes the config to a YAML file with a descriptive header.
// An existing file is only replaced after interactive confirmation.
func WriteConfig(cfg *config.Config, outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		ok, err := confirmOverwrite(outputPath)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("refusing to overwrite %s", outputPath)
		}
	}

	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(generateHeader())
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// generateHeader produces the comment block at the top of the config file.
func generateHeader() string {
	var sb strings.Builder
	sb.WriteString("# tpuprep configuration\n")
	sb.WriteString(fmt.Sprintf("# Generated by tpuprep init on %s\n", time.Now().Format("2006-01-02")))
	sb.WriteString("#\n")
	sb.WriteString("# Run 'tpuprep plan' to preview what apply will do with this file.\n")
	return sb.String()
}

func defaultConfirmOverwrite(path string) (bool, error) {
	var overwrite bool
	confirm := huh.NewConfirm().
		Title(fmt.Sprintf("%s already exists. Overwrite?", path)).
		Value(&overwrite)

	if err := confirm.Run(); err != nil {
		return false, fmt.Errorf("confirmation canceled: %w", err)
	}
	return overwrite, nil
}
