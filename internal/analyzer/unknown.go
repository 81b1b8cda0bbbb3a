package analyzer

import "github.com/sperciky/variable-monitoring/internal/models"

// UnknownTypes lists the type codes in c that have no display label yet.
func UnknownTypes(c *models.ContainerVersion) models.UnknownTypes {
	tags := make(map[string]struct{})
	for _, t := range c.Tag {
		if !tagTypes.known(t.Type) {
			tags[t.Type] = struct{}{}
		}
	}
	variables := make(map[string]struct{})
	for _, v := range c.Variable {
		if !variableTypes.known(v.Type) {
			variables[v.Type] = struct{}{}
		}
	}
	triggers := make(map[string]struct{})
	for _, t := range c.Trigger {
		if !triggerTypes.known(t.Type) {
			triggers[t.Type] = struct{}{}
		}
	}
	clients := make(map[string]struct{})
	for _, cl := range c.Client {
		if !clientTypes.known(cl.Type) {
			clients[cl.Type] = struct{}{}
		}
	}
	builtIns := make(map[string]struct{})
	for _, b := range c.BuiltInVariable {
		if !builtInTypes.known(b.Type) {
			builtIns[b.Type] = struct{}{}
		}
	}

	return models.UnknownTypes{
		TagTypes:      sortedNames(tags),
		VariableTypes: sortedNames(variables),
		TriggerTypes:  sortedNames(triggers),
		ClientTypes:   sortedNames(clients),
		BuiltInTypes:  sortedNames(builtIns),
	}
}
