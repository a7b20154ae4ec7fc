package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/weave/pkg/config"
)

// presetsCommand lists the built-in presets.
func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List built-in presets and their key parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(out, presetTable())
			printNextStep("Use one", "weave render --preset "+config.PresetNames()[0])
			return nil
		},
	}
}

// presetTable renders every preset as one row.
func presetTable() string {
	var headers []string
	var rows [][]string
	for _, name := range config.PresetNames() {
		cfg, _ := config.FromPreset(name)
		summary := cfg.Summary()
		if headers == nil {
			headers = append(headers, "preset")
			for _, kv := range summary {
				headers = append(headers, kv[0])
			}
		}
		label := name
		if name == config.DefaultPreset {
			label += " *"
		}
		row := []string{label}
		for _, kv := range summary {
			row = append(row, kv[1])
		}
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
}
