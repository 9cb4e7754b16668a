package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pvidovic/estima/internal/config"
	"github.com/pvidovic/estima/internal/domain"
)

// provenance renders the scope marker shown next to resolved items.
func provenance(overridden, projectSpecific bool) string {
	switch {
	case overridden:
		return StyleYellow.Render("overridden")
	case projectSpecific:
		return StyleBlue.Render("project")
	default:
		return Dim("global")
	}
}

// FormatResources renders a resolved resource collection.
func FormatResources(entries []domain.ResourceEntry) string {
	headers := []string{"ID", "Name", "Role", "Dept", "Real", "Official", "Scope"}
	var rows [][]string
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID,
			e.Name,
			string(e.Role),
			e.Department,
			fmt.Sprintf("%.0f", e.RealRate),
			fmt.Sprintf("%.0f", e.OfficialRate),
			provenance(e.IsOverridden, e.IsProjectSpecific),
		})
	}
	return RenderTable(headers, rows)
}

// FormatCategories renders the resolved categories with their feature
// types indented underneath.
func FormatCategories(categories []domain.Category) string {
	var b strings.Builder
	for _, c := range categories {
		b.WriteString(fmt.Sprintf("%s  %s  %s\n",
			Bold(c.Name), Dim(c.ID), provenance(c.IsOverridden, c.IsProjectSpecific)))
		if c.Description != "" {
			b.WriteString("  " + Dim(c.Description) + "\n")
		}
		for _, ft := range c.FeatureTypes {
			b.WriteString(fmt.Sprintf("  - %s (%.1f MDs avg)\n", ft.Name, ft.AverageMDs))
		}
	}
	return b.String()
}

// FormatParams renders calculation parameters sorted by key.
func FormatParams(params domain.CalculationParams) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var rows [][]string
	for _, k := range keys {
		rows = append(rows, []string{k, fmt.Sprintf("%v", params[k])})
	}
	return RenderTable([]string{"Parameter", "Value"}, rows)
}

// FormatStats renders the per-collection provenance counts.
func FormatStats(stats config.ConfigStats) string {
	row := func(name string, s config.CollectionStats) []string {
		return []string{
			name,
			fmt.Sprintf("%d", s.Global),
			fmt.Sprintf("%d", s.ProjectSpecific),
			fmt.Sprintf("%d", s.Overridden),
			fmt.Sprintf("%d", s.Total()),
		}
	}
	return RenderTable(
		[]string{"Collection", "Global", "Project", "Overridden", "Total"},
		[][]string{
			row("Suppliers", stats.Suppliers),
			row("Internal resources", stats.InternalResources),
			row("Categories", stats.Categories),
		})
}
