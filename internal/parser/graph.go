// Package parser provides utilities for parsing and transforming input data.
// It unwraps GTM container exports and derives the component dependency graph.
package parser

import (
	"slices"

	"golang.org/x/exp/maps"

	"github.com/sperciky/variable-monitoring/internal/analyzer"
	"github.com/sperciky/variable-monitoring/internal/models"
)

// BuildGraph derives the dependency graph of a container: which components
// reference which variables, which components instantiate which custom
// templates, and which tags fire on which triggers.
func BuildGraph(c *models.ContainerVersion) *models.Graph {
	graph := &models.Graph{
		Nodes: []models.Node{},
		Edges: []models.Edge{},
	}
	if c == nil {
		graph.Stats = buildStats(graph)
		return graph
	}

	nodeMap := make(map[string]bool)
	addNode := func(node models.Node) {
		if nodeMap[node.ID] {
			return
		}
		graph.Nodes = append(graph.Nodes, node)
		nodeMap[node.ID] = true
	}
	addEdge := func(source, target, edgeType string) {
		graph.Edges = append(graph.Edges, models.Edge{Source: source, Target: target, Type: edgeType})
	}

	templates := analyzer.NewTemplateIndex(c)
	for _, id := range templates.Identities() {
		addNode(models.Node{
			ID:       buildNodeID(models.KindCustomTemplate, id.Canonical),
			Kind:     models.KindCustomTemplate,
			Name:     id.Template.Name,
			Type:     id.Canonical,
			TypeName: id.Category,
			Metadata: templateMetadata(id),
		})
	}

	variables := make(map[string]bool, len(c.Variable))
	for _, v := range c.Variable {
		variables[v.Name] = true
		addNode(models.Node{
			ID:       buildNodeID(models.KindVariable, v.Name),
			Kind:     models.KindVariable,
			Name:     v.Name,
			Type:     v.Type,
			TypeName: analyzer.VariableTypeName(v.Type),
			Metadata: map[string]any{"variableId": v.VariableID},
		})
	}

	triggerNodes := make(map[string]string, len(c.Trigger))
	for _, tr := range c.Trigger {
		id := buildNodeID(models.KindTrigger, tr.Name)
		triggerNodes[tr.TriggerID] = id
		addNode(models.Node{
			ID:       id,
			Kind:     models.KindTrigger,
			Name:     tr.Name,
			Type:     tr.Type,
			TypeName: analyzer.TriggerTypeName(tr.Type),
			Metadata: map[string]any{"triggerId": tr.TriggerID},
		})
	}

	for _, t := range c.Tag {
		addNode(models.Node{
			ID:       buildNodeID(models.KindTag, t.Name),
			Kind:     models.KindTag,
			Name:     t.Name,
			Type:     t.Type,
			TypeName: analyzer.TagTypeName(t.Type),
			Metadata: map[string]any{"tagId": t.TagID, "paused": t.Paused},
		})
	}

	for _, t := range c.Transformation {
		addNode(models.Node{
			ID:       buildNodeID(models.KindTransformation, t.Name),
			Kind:     models.KindTransformation,
			Name:     t.Name,
			Type:     t.Type,
			Metadata: map[string]any{"transformationId": t.TransformationID},
		})
	}

	for _, cl := range c.Client {
		addNode(models.Node{
			ID:       buildNodeID(models.KindClient, cl.Name),
			Kind:     models.KindClient,
			Name:     cl.Name,
			Type:     cl.Type,
			TypeName: analyzer.ClientTypeName(cl.Type),
			Metadata: map[string]any{"clientId": cl.ClientID},
		})
	}

	addReferences := func(source, self string, raw any) {
		refs := analyzer.ExtractReferences(raw)
		delete(refs, self)
		names := maps.Keys(refs)
		slices.Sort(names)
		for _, name := range names {
			target := buildNodeID(models.KindVariable, name)
			if !variables[name] {
				target = buildNodeID(models.KindBuiltIn, name)
				addNode(models.Node{ID: target, Kind: models.KindBuiltIn, Name: name})
			}
			addEdge(source, target, models.EdgeReference)
		}
	}
	addInstance := func(source, typeCode string) {
		if id, ok := templates.Resolve(typeCode); ok {
			addEdge(source, buildNodeID(models.KindCustomTemplate, id.Canonical), models.EdgeInstance)
		}
	}

	for _, t := range c.Tag {
		source := buildNodeID(models.KindTag, t.Name)
		addReferences(source, "", t.Raw)
		addInstance(source, t.Type)
		for _, triggerID := range t.FiringTriggerID {
			if target, ok := triggerNodes[triggerID]; ok {
				addEdge(source, target, models.EdgeFires)
			}
		}
	}
	for _, tr := range c.Trigger {
		addReferences(buildNodeID(models.KindTrigger, tr.Name), "", tr.Raw)
	}
	for _, v := range c.Variable {
		source := buildNodeID(models.KindVariable, v.Name)
		addReferences(source, v.Name, v.Raw)
		addInstance(source, v.Type)
	}
	for _, t := range c.Transformation {
		addReferences(buildNodeID(models.KindTransformation, t.Name), "", t.Raw)
	}
	for _, cl := range c.Client {
		source := buildNodeID(models.KindClient, cl.Name)
		addReferences(source, "", cl.Raw)
		addInstance(source, cl.Type)
	}
	for _, t := range c.CustomTemplate {
		addReferences(buildNodeID(models.KindCustomTemplate, t.Name), "", t.Raw)
	}

	graph.Stats = buildStats(graph)
	return graph
}

func buildNodeID(kind, name string) string {
	return kind + ":" + name
}

func templateMetadata(id analyzer.TemplateIdentity) map[string]any {
	metadata := map[string]any{
		"templateId": id.Template.TemplateID,
		"isGallery":  id.IsGallery(),
	}

	if id.GalleryID != "" {
		metadata["galleryId"] = id.GalleryID
	}

	if id.Template.Fingerprint != "" {
		metadata["fingerprint"] = id.Template.Fingerprint
	}

	return metadata
}

func buildStats(graph *models.Graph) *models.Stats {
	stats := &models.Stats{
		TotalNodes:  len(graph.Nodes),
		TotalEdges:  len(graph.Edges),
		NodesByKind: make(map[string]int),
		EdgesByType: make(map[string]int),
	}

	for _, node := range graph.Nodes {
		stats.NodesByKind[node.Kind]++
	}

	for _, edge := range graph.Edges {
		stats.EdgesByType[edge.Type]++
	}

	return stats
}
