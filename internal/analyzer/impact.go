package analyzer

import (
	"strings"

	"github.com/sperciky/variable-monitoring/internal/models"
)

// builtInVariableNames are the display names GTM uses for built-in variables
// inside {{...}} references.
var builtInVariableNames = map[string]struct{}{
	"Event": {}, "Event Name": {}, "Page URL": {}, "Page Hostname": {}, "Page Path": {},
	"Referrer": {}, "Click Element": {}, "Click Classes": {}, "Click ID": {},
	"Click Target": {}, "Click URL": {}, "Click Text": {}, "Container ID": {},
	"Container Version": {}, "Debug Mode": {}, "Random Number": {}, "HTML ID": {},
	"Environment Name": {}, "Client Name": {}, "Client ID": {}, "IP Address": {},
	"User Agent": {}, "Error Message": {}, "Error Line": {}, "Error URL": {},
	"Form Element": {}, "Form Classes": {}, "Form ID": {}, "Form Target": {},
	"Form URL": {}, "Form Text": {}, "History Source": {}, "New History Fragment": {},
	"New History State": {}, "New History URL": {}, "Old History Fragment": {},
	"Old History State": {}, "Old History URL": {}, "Video Current Time": {},
	"Video Duration": {}, "Video Percent": {}, "Video Provider": {}, "Video Status": {},
	"Video Title": {}, "Video URL": {}, "Video Visible": {}, "Scroll Depth Threshold": {},
	"Scroll Depth Units": {}, "Scroll Direction": {}, "Percent Visible": {},
	"On Screen Duration": {},
}

// referenceGraph holds the direct references of every variable, without
// self references. The first variable of a given name wins.
type referenceGraph struct {
	refs  map[string]map[string]struct{}
	types map[string]string
}

func newReferenceGraph(c *models.ContainerVersion) referenceGraph {
	g := referenceGraph{
		refs:  make(map[string]map[string]struct{}, len(c.Variable)),
		types: make(map[string]string, len(c.Variable)),
	}
	for _, v := range c.Variable {
		if _, dup := g.refs[v.Name]; dup {
			continue
		}
		refs := ExtractReferences(v.Raw)
		delete(refs, v.Name)
		g.refs[v.Name] = refs
		g.types[v.Name] = v.Type
	}
	return g
}

// expand adds name and everything reachable from it to counts, once per
// path. A variable already on the current path is counted but not expanded.
func (g referenceGraph) expand(name string, counts map[string]int) {
	counts[name]++
	g.walk(name, map[string]bool{}, counts)
}

func (g referenceGraph) walk(name string, path map[string]bool, counts map[string]int) {
	refs, ok := g.refs[name]
	if !ok || path[name] {
		return
	}
	path[name] = true
	for ref := range refs {
		counts[ref]++
		g.walk(ref, path, counts)
	}
	delete(path, name)
}

// typeLabel labels a referenced name by its variable type, falling back to
// GTM internal and built-in variables.
func (g referenceGraph) typeLabel(name string) string {
	if typ, ok := g.types[name]; ok {
		return VariableTypeName(typ)
	}
	if strings.HasPrefix(name, "_") {
		return "GTM Internal Variable"
	}
	if _, ok := builtInVariableNames[name]; ok {
		return "Built-in Variable"
	}
	return "Unknown"
}

func newEvaluationImpact() *models.EvaluationImpact {
	return &models.EvaluationImpact{
		EvaluationsByVariable: make(map[string]int),
		EvaluationsByType:     make(map[string]int),
		TagTypeBreakdown:      make(map[string]int),
		Details:               []models.EvaluationDetail{},
	}
}

func (g referenceGraph) record(impact *models.EvaluationImpact, detail models.EvaluationDetail, direct map[string]struct{}) {
	detail.DirectVariables = sortedNames(direct)
	detail.AllVariables = make(map[string]int)
	for name := range direct {
		g.expand(name, detail.AllVariables)
	}
	for name, count := range detail.AllVariables {
		impact.TotalEvaluations += count
		impact.EvaluationsByVariable[name] += count
		impact.EvaluationsByType[g.typeLabel(name)] += count
	}
	impact.Analyzed++
	impact.Details = append(impact.Details, detail)
}

// TagEvaluationImpact estimates the variable evaluations caused by every
// active tag, including references made by the custom template a tag
// instantiates and references nested inside variables.
func TagEvaluationImpact(c *models.ContainerVersion) *models.EvaluationImpact {
	g := newReferenceGraph(c)
	templates := NewTemplateIndex(c)
	impact := newEvaluationImpact()

	for _, t := range c.Tag {
		if t.Paused {
			continue
		}
		direct := ExtractReferences(t.Raw)
		if id, ok := templates.Resolve(t.Type); ok {
			for name := range ExtractReferences(id.Template.TemplateData) {
				direct[name] = struct{}{}
			}
		}

		label := TagTypeName(t.Type)
		impact.TagTypeBreakdown[label]++
		g.record(impact, models.EvaluationDetail{Name: t.Name, Type: label}, direct)
	}
	return impact
}

// TriggerEvaluationImpact estimates the variable evaluations caused by every
// trigger that fires at least one active tag.
func TriggerEvaluationImpact(c *models.ContainerVersion) *models.EvaluationImpact {
	g := newReferenceGraph(c)
	impact := newEvaluationImpact()

	firedBy := make(map[string][]models.Tag)
	for _, t := range c.Tag {
		if t.Paused {
			continue
		}
		for _, id := range t.FiringTriggerID {
			firedBy[id] = append(firedBy[id], t)
		}
	}

	for _, tr := range c.Trigger {
		tags, ok := firedBy[tr.TriggerID]
		if !ok {
			continue
		}
		detail := models.EvaluationDetail{Name: tr.Name, Type: TriggerTypeName(tr.Type)}
		for _, t := range tags {
			detail.AttachedTags = append(detail.AttachedTags, t.Name)
			impact.TagTypeBreakdown[TagTypeName(t.Type)]++
		}
		g.record(impact, detail, ExtractReferences(tr.Raw))
	}
	return impact
}
