package analyzer

import "github.com/sperciky/variable-monitoring/internal/models"

// AnalyzeBuiltInVariables counts the enabled built-in variables by label.
func AnalyzeBuiltInVariables(c *models.ContainerVersion) models.BuiltInAnalysis {
	analysis := models.BuiltInAnalysis{
		Total:   len(c.BuiltInVariable),
		ByType:  make(map[string]int),
		Details: make([]models.BuiltInDetail, 0, len(c.BuiltInVariable)),
	}
	for _, b := range c.BuiltInVariable {
		label := BuiltInTypeName(b.Type)
		analysis.ByType[label]++
		analysis.Details = append(analysis.Details, models.BuiltInDetail{
			Type:     b.Type,
			TypeName: label,
			Enabled:  b.Enabled != nil && *b.Enabled,
		})
	}
	return analysis
}
