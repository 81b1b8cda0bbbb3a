package analyzer

import "github.com/sperciky/variable-monitoring/internal/models"

func newUsageDetail() models.UsageDetail {
	return models.UsageDetail{
		Tags:            []string{},
		Triggers:        []string{},
		Variables:       []string{},
		Transformations: []string{},
		Clients:         []string{},
		CustomTemplates: []string{},
	}
}

func (comp component) displayName() string {
	name := comp.name
	if name == "" {
		name = "Unnamed " + comp.kind
	}
	if comp.kind == models.KindTag && comp.paused {
		name += " (PAUSED)"
	}
	return name
}

// VariableUsage lists, for every variable of c, the components that reference
// it. Paused tags are skipped unless includePausedTags is set.
func VariableUsage(c *models.ContainerVersion, includePausedTags bool) map[string]models.UsageDetail {
	usage := make(map[string]models.UsageDetail, len(c.Variable))
	for _, v := range c.Variable {
		usage[v.Name] = newUsageDetail()
	}

	for _, comp := range referencingComponents(c) {
		if comp.skipped(includePausedTags) {
			continue
		}
		for name := range comp.references() {
			detail, ok := usage[name]
			if !ok {
				continue
			}
			label := comp.displayName()
			switch comp.kind {
			case models.KindTag:
				detail.Tags = append(detail.Tags, label)
			case models.KindTrigger:
				detail.Triggers = append(detail.Triggers, label)
			case models.KindVariable:
				detail.Variables = append(detail.Variables, label)
			case models.KindTransformation:
				detail.Transformations = append(detail.Transformations, label)
			case models.KindClient:
				detail.Clients = append(detail.Clients, label)
			case models.KindCustomTemplate:
				detail.CustomTemplates = append(detail.CustomTemplates, label)
			}
			detail.TotalUsage++
			detail.TotalReferences += CountReferences(comp.raw, name)
			usage[name] = detail
		}
	}
	return usage
}
