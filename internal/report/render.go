// Package report renders analysis reports for terminals and writes them to
// disk as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/exp/maps"

	"github.com/sperciky/variable-monitoring/internal/models"
)

// formatValueLabels names the formatValue settings shown next to duplicates.
var formatValueLabels = map[string]string{
	"convertNullToValue":      "Convert NULL to",
	"convertUndefinedToValue": "Convert undefined to",
	"convertTrueToValue":      "Convert true to",
	"convertFalseToValue":     "Convert false to",
	"caseConversionType":      "Case conversion",
	"convertNaNToValue":       "Convert NaN to",
	"convertEmptyToValue":     "Convert empty to",
}

var categoryTitles = map[string]string{
	models.DuplicateDataLayer:      "Data Layer Variables",
	models.DuplicateEventData:      "Event Data Variables",
	models.DuplicateCookie:         "Cookie Variables",
	models.DuplicateJSVariable:     "JavaScript Variables",
	models.DuplicateURL:            "URL Variables",
	models.DuplicateCustomTemplate: "Custom Template Variables",
}

// Render writes a human readable version of r to w.
func Render(w io.Writer, r *models.Report) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("GTM Container Analysis") + "\n")
	renderSummary(&b, r.Summary)
	renderUnusedVariables(&b, r.UnusedVariables)
	renderDuplicates(&b, r.DuplicateVariables)
	renderUnusedTemplates(&b, r.UnusedCustomTemplates)
	if r.UnknownTypes != nil {
		renderUnknownTypes(&b, *r.UnknownTypes)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderSummary(b *strings.Builder, s models.Summary) {
	b.WriteString(sectionStyle.Render("Summary") + "\n")

	paused := fmt.Sprintf("%d", s.PausedTags)
	if s.PausedTags > 0 && !s.IncludePausedTags {
		paused += " (excluded from analysis)"
	}

	rows := [][2]string{
		{"Container type", s.ContainerType},
		{"Variables", fmt.Sprintf("%d", s.TotalVariables)},
		{"Tags", fmt.Sprintf("%d", s.TotalTags)},
		{"Paused tags", paused},
		{"Triggers", fmt.Sprintf("%d", s.TotalTriggers)},
		{"Custom templates", fmt.Sprintf("%d", s.TotalCustomTemplates)},
		{"Built-in variables", fmt.Sprintf("%d", s.TotalBuiltInVariables)},
	}
	if s.ContainerType == "Server-side" {
		rows = append(rows,
			[2]string{"Transformations", fmt.Sprintf("%d", s.TotalTransformations)},
			[2]string{"Clients", fmt.Sprintf("%d", s.TotalClients)},
		)
	}
	rows = append(rows,
		[2]string{"Unused variables", countStyle(s.UnusedVariables).Render(fmt.Sprintf("%d", s.UnusedVariables))},
		[2]string{"Duplicate groups", countStyle(s.DuplicateGroups).Render(fmt.Sprintf("%d (%d variables)", s.DuplicateGroups, s.DuplicateVariables))},
		[2]string{"Unused custom templates", countStyle(s.UnusedCustomTemplates).Render(fmt.Sprintf("%d", s.UnusedCustomTemplates))},
	)

	for _, row := range rows {
		fmt.Fprintf(b, "  %-24s %s\n", row[0]+":", row[1])
	}
}

func countStyle(n int) lipgloss.Style {
	if n == 0 {
		return successStyle
	}
	return warningStyle
}

func renderUnusedVariables(b *strings.Builder, unused []models.UnusedVariable) {
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Unused variables (%d)", len(unused))) + "\n")
	if len(unused) == 0 {
		b.WriteString("  " + successStyle.Render("No unused variables found") + "\n")
		return
	}
	for _, v := range unused {
		fmt.Fprintf(b, "  - %s %s\n", v.Name, mutedStyle.Render(fmt.Sprintf("(%s, ID: %s)", v.TypeName, v.VariableID)))
	}
}

func renderDuplicates(b *strings.Builder, duplicates map[string][][]models.DuplicateVariable) {
	total := 0
	for _, groups := range duplicates {
		total += len(groups)
	}
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Duplicate variables (%d groups)", total)) + "\n")
	if total == 0 {
		b.WriteString("  " + successStyle.Render("No duplicate variables found") + "\n")
		return
	}

	for _, category := range models.DuplicateCategories {
		groups := duplicates[category]
		if len(groups) == 0 {
			continue
		}
		fmt.Fprintf(b, "  %s\n", categoryTitles[category])
		for i, group := range groups {
			fmt.Fprintf(b, "    Group %d: %s\n", i+1, mutedStyle.Render(groupSource(category, group[0])))
			for _, member := range group {
				fmt.Fprintf(b, "      - %s %s\n", member.Name, mutedStyle.Render("(ID: "+member.VariableID+")"))
				renderFormatValue(b, member.FormatValue)
			}
		}
	}
}

func groupSource(category string, member models.DuplicateVariable) string {
	switch category {
	case models.DuplicateDataLayer:
		return fmt.Sprintf("%s (v%s)", member.Path, member.Version)
	case models.DuplicateEventData:
		return member.KeyPath
	case models.DuplicateCookie:
		return member.CookieName
	case models.DuplicateJSVariable:
		return member.JSVarName
	case models.DuplicateURL:
		if member.QueryKey != "" {
			return member.Component + " " + member.QueryKey
		}
		return member.Component
	default:
		return member.Type
	}
}

func renderFormatValue(b *strings.Builder, info map[string]any) {
	keys := maps.Keys(info)
	slices.Sort(keys)
	for _, key := range keys {
		label, ok := formatValueLabels[key]
		if !ok {
			label = key
		}
		fmt.Fprintf(b, "          %s\n", mutedStyle.Render(fmt.Sprintf("%s: %v", label, info[key])))
	}
}

func renderUnusedTemplates(b *strings.Builder, unused []models.UnusedCustomTemplate) {
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Unused custom templates (%d)", len(unused))) + "\n")
	if len(unused) == 0 {
		b.WriteString("  " + successStyle.Render("No unused custom templates found") + "\n")
		return
	}
	for _, t := range unused {
		source := "custom"
		if t.IsGallery {
			source = "gallery " + t.GalleryID
		}
		fmt.Fprintf(b, "  - %s %s\n", t.Name, mutedStyle.Render(fmt.Sprintf("(%s, %s, %s)", t.Category, t.Type, source)))
	}
}

func renderUnknownTypes(b *strings.Builder, u models.UnknownTypes) {
	if u.Empty() {
		return
	}
	b.WriteString(sectionStyle.Render("Unknown component types") + "\n")
	sections := []struct {
		title string
		codes []string
	}{
		{"Tag types", u.TagTypes},
		{"Variable types", u.VariableTypes},
		{"Trigger types", u.TriggerTypes},
		{"Client types", u.ClientTypes},
		{"Built-in types", u.BuiltInTypes},
	}
	for _, s := range sections {
		if len(s.codes) == 0 {
			continue
		}
		fmt.Fprintf(b, "  %s: %s\n", s.title, errorStyle.Render(strings.Join(s.codes, ", ")))
	}
}

// OutputPath returns the default report path for an export file:
// container.json -> container_analysis_report.json.
func OutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + "_analysis_report.json"
}

// WriteJSON saves r as indented JSON at path.
func WriteJSON(path string, r *models.Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
