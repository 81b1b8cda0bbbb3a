package analyzer

import "github.com/sperciky/variable-monitoring/internal/models"

// component is the uniform view of any container entry that can embed
// variable references.
type component struct {
	kind   string
	name   string
	typ    string
	paused bool
	raw    any
}

// referencingComponents lists every component that may reference a variable,
// in scan order: tags, triggers, variables, transformations, clients and
// custom templates.
func referencingComponents(c *models.ContainerVersion) []component {
	out := make([]component, 0, len(c.Tag)+len(c.Trigger)+len(c.Variable)+
		len(c.Transformation)+len(c.Client)+len(c.CustomTemplate))

	for _, t := range c.Tag {
		out = append(out, component{kind: models.KindTag, name: t.Name, typ: t.Type, paused: t.Paused, raw: t.Raw})
	}
	for _, t := range c.Trigger {
		out = append(out, component{kind: models.KindTrigger, name: t.Name, typ: t.Type, raw: t.Raw})
	}
	for _, v := range c.Variable {
		out = append(out, component{kind: models.KindVariable, name: v.Name, typ: v.Type, raw: v.Raw})
	}
	for _, t := range c.Transformation {
		out = append(out, component{kind: models.KindTransformation, name: t.Name, typ: t.Type, raw: t.Raw})
	}
	for _, cl := range c.Client {
		out = append(out, component{kind: models.KindClient, name: cl.Name, typ: cl.Type, raw: cl.Raw})
	}
	for _, t := range c.CustomTemplate {
		out = append(out, component{kind: models.KindCustomTemplate, name: t.Name, raw: t.Raw})
	}

	return out
}

// references returns the variables referenced by comp. A variable never
// counts as referencing itself.
func (comp component) references() map[string]struct{} {
	refs := ExtractReferences(comp.raw)
	if comp.kind == models.KindVariable {
		delete(refs, comp.name)
	}
	return refs
}

// skipped reports whether comp is ignored because it is a paused tag and
// paused tags are excluded.
func (comp component) skipped(includePausedTags bool) bool {
	return comp.kind == models.KindTag && comp.paused && !includePausedTags
}
