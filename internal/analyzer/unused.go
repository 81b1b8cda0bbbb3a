package analyzer

import "github.com/sperciky/variable-monitoring/internal/models"

// ReferencedVariables returns every variable name referenced by a component of
// c. Paused tags only contribute when includePausedTags is set.
func ReferencedVariables(c *models.ContainerVersion, includePausedTags bool) map[string]struct{} {
	referenced := make(map[string]struct{})
	for _, comp := range referencingComponents(c) {
		if comp.skipped(includePausedTags) {
			continue
		}
		for name := range comp.references() {
			referenced[name] = struct{}{}
		}
	}
	return referenced
}

// FindUnusedVariables reports, in container order, the variables no other
// component references.
func FindUnusedVariables(c *models.ContainerVersion, includePausedTags bool) []models.UnusedVariable {
	referenced := ReferencedVariables(c, includePausedTags)

	unused := []models.UnusedVariable{}
	for _, v := range c.Variable {
		if _, ok := referenced[v.Name]; ok {
			continue
		}
		unused = append(unused, models.UnusedVariable{
			Name:       v.Name,
			VariableID: v.VariableID,
			Type:       v.Type,
			TypeName:   VariableTypeName(v.Type),
		})
	}
	return unused
}
