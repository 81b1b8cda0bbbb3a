package analyzer

import "github.com/sperciky/variable-monitoring/internal/models"

// Options tunes a single analysis run.
type Options struct {
	// IncludePausedTags counts references made by paused tags.
	IncludePausedTags bool
}

func DefaultOptions() Options {
	return Options{IncludePausedTags: true}
}

// Analyze runs the unused variable, duplicate variable and unused custom
// template detectors over c and summarizes the findings. A nil container is
// analyzed as an empty one.
func Analyze(c *models.ContainerVersion, opts Options) *models.Report {
	if c == nil {
		c = &models.ContainerVersion{}
	}

	unused := FindUnusedVariables(c, opts.IncludePausedTags)
	duplicates := FindDuplicateVariables(c)
	templates := FindUnusedCustomTemplates(c)
	builtIns := AnalyzeBuiltInVariables(c)

	groups, members := 0, 0
	for _, category := range duplicates {
		groups += len(category)
		for _, group := range category {
			members += len(group)
		}
	}

	paused := 0
	for _, t := range c.Tag {
		if t.Paused {
			paused++
		}
	}

	containerType := "Web"
	if len(c.Transformation) > 0 || len(c.Client) > 0 {
		containerType = "Server-side"
	}

	return &models.Report{
		Summary: models.Summary{
			ContainerType:         containerType,
			TotalVariables:        len(c.Variable),
			TotalTags:             len(c.Tag),
			PausedTags:            paused,
			IncludePausedTags:     opts.IncludePausedTags,
			TotalTriggers:         len(c.Trigger),
			TotalTransformations:  len(c.Transformation),
			TotalClients:          len(c.Client),
			TotalCustomTemplates:  len(c.CustomTemplate),
			TotalBuiltInVariables: builtIns.Total,
			UnusedVariables:       len(unused),
			DuplicateGroups:       groups,
			DuplicateVariables:    members,
			UnusedCustomTemplates: len(templates),
		},
		UnusedVariables:       unused,
		DuplicateVariables:    duplicates,
		UnusedCustomTemplates: templates,
		BuiltInVariables:      builtIns,
	}
}

// AnalyzeDetailed extends Analyze with per-variable usage, unknown type codes
// and the tag and trigger evaluation impact.
func AnalyzeDetailed(c *models.ContainerVersion, opts Options) *models.Report {
	if c == nil {
		c = &models.ContainerVersion{}
	}

	report := Analyze(c, opts)
	usage := VariableUsage(c, opts.IncludePausedTags)
	for i := range report.UnusedVariables {
		if detail, ok := usage[report.UnusedVariables[i].Name]; ok {
			report.UnusedVariables[i].Usage = &detail
		}
	}

	unknown := UnknownTypes(c)
	report.VariableUsage = usage
	report.UnknownTypes = &unknown
	report.TagEvaluationImpact = TagEvaluationImpact(c)
	report.TriggerEvaluationImpact = TriggerEvaluationImpact(c)
	return report
}
