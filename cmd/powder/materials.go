package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"powder/internal/sims/powder"
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "List the material table",
	Long: `List the loaded material table with a color swatch per material.
Pass --materials to inspect a custom table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reg, err := powder.DefaultRegistry()
		if cfg.Materials != "" {
			reg, err = powder.LoadRegistryFile(cfg.Materials)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderMaterials(reg))
		return nil
	},
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var materialColumns = []struct {
	title string
	width int
}{
	{"ID", 4}, {"", 4}, {"Name", 11}, {"State", 7}, {"Mass", 6}, {"Temp K", 8}, {"Endur", 6}, {"Transitions", 34}, {"Properties", 0},
}

func renderMaterials(reg *powder.Registry) string {
	cell := func(i int, s string) string {
		if w := materialColumns[i].width; w > 0 {
			return lipgloss.NewStyle().Width(w).Render(s)
		}
		return s
	}
	var rows []string
	header := make([]string, len(materialColumns))
	for i, c := range materialColumns {
		header[i] = cell(i, c.title)
	}
	rows = append(rows, headerStyle.Render(strings.Join(header, " ")))

	for _, m := range reg.Materials() {
		swatch := "  "
		if len(m.Colors) > 0 {
			c := m.Colors[0]
			swatch = lipgloss.NewStyle().
				Background(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))).
				Render("  ")
		}
		cols := []string{
			cell(0, fmt.Sprint(m.ID)),
			cell(1, swatch),
			cell(2, m.Name),
			cell(3, m.State.String()),
			cell(4, fmt.Sprintf("%.2g", m.Mass)),
			cell(5, fmt.Sprintf("%.0f", m.Temperature)),
			cell(6, fmt.Sprint(m.Endurance)),
			cell(7, transitionSummary(reg, m)),
			dimStyle.Render(m.Props.String()),
		}
		rows = append(rows, strings.Join(cols, " "))
	}
	return strings.Join(rows, "\n")
}

func transitionSummary(reg *powder.Registry, m *powder.Material) string {
	var parts []string
	add := func(label string, t powder.Transition) {
		if t.To == powder.NoTransition {
			return
		}
		name := "destroy"
		if target, ok := reg.Get(t.To); ok {
			name = target.Name
		}
		parts = append(parts, fmt.Sprintf("%s%.0f>%s", label, t.At, name))
	}
	add("T<", m.Transitions.LowTemperature)
	add("T>", m.Transitions.HighTemperature)
	add("P<", m.Transitions.LowPressure)
	add("P>", m.Transitions.HighPressure)
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
