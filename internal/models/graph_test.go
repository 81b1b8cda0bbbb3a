// Package models defines the core data structures shared by the parser, the
// analyzer and the HTTP layer. Container types mirror a GTM container export.
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphUnmarshal(t *testing.T) {
	t.Run("empty graph", func(t *testing.T) {
		jsonData := `{
			"nodes": [],
			"edges": []
		}`

		var graph Graph
		err := json.Unmarshal([]byte(jsonData), &graph)

		require.NoError(t, err)
		assert.Empty(t, graph.Nodes)
		assert.Empty(t, graph.Edges)
		assert.Nil(t, graph.Stats)
	})

	t.Run("graph with nodes, edges and stats", func(t *testing.T) {
		jsonData := `{
			"nodes": [
				{"id": "tag:GA4", "kind": "tag", "name": "GA4", "type": "gaawe", "typeName": "GA4 Event"},
				{"id": "variable:DLV - page", "kind": "variable", "name": "DLV - page", "type": "v",
				 "metadata": {"variableId": "3"}}
			],
			"edges": [
				{"source": "tag:GA4", "target": "variable:DLV - page", "type": "reference"}
			],
			"stats": {
				"total_nodes": 2,
				"total_edges": 1,
				"nodes_by_kind": {"tag": 1, "variable": 1},
				"edges_by_type": {"reference": 1}
			}
		}`

		var graph Graph
		err := json.Unmarshal([]byte(jsonData), &graph)

		require.NoError(t, err)
		require.Len(t, graph.Nodes, 2)
		assert.Equal(t, KindTag, graph.Nodes[0].Kind)
		assert.Equal(t, "GA4 Event", graph.Nodes[0].TypeName)
		assert.Equal(t, "3", graph.Nodes[1].Metadata["variableId"])
		require.Len(t, graph.Edges, 1)
		assert.Equal(t, EdgeReference, graph.Edges[0].Type)
		require.NotNil(t, graph.Stats)
		assert.Equal(t, 1, graph.Stats.NodesByKind[KindVariable])
	})
}

func TestGraphMarshal(t *testing.T) {
	t.Run("omits empty optional fields", func(t *testing.T) {
		graph := Graph{
			Nodes: []Node{{ID: "builtin:Page URL", Kind: KindBuiltIn, Name: "Page URL"}},
			Edges: []Edge{},
		}

		data, err := json.Marshal(graph)

		require.NoError(t, err)
		assert.JSONEq(t, `{
			"nodes": [{"id": "builtin:Page URL", "kind": "builtin", "name": "Page URL"}],
			"edges": []
		}`, string(data))
	})

	t.Run("uses snake case stats keys", func(t *testing.T) {
		data, err := json.Marshal(Stats{TotalNodes: 1, TotalEdges: 0})

		require.NoError(t, err)
		assert.JSONEq(t, `{"total_nodes": 1, "total_edges": 0}`, string(data))
	})
}

func TestReportMarshal(t *testing.T) {
	t.Run("detailed sections are omitted when absent", func(t *testing.T) {
		report := Report{
			UnusedVariables:       []UnusedVariable{},
			DuplicateVariables:    map[string][][]DuplicateVariable{},
			UnusedCustomTemplates: []UnusedCustomTemplate{},
		}

		data, err := json.Marshal(report)

		require.NoError(t, err)
		assert.NotContains(t, string(data), "variableUsage")
		assert.NotContains(t, string(data), "tagEvaluationImpact")
		assert.Contains(t, string(data), `"unusedVariables":[]`)
	})

	t.Run("duplicate members only carry their category fields", func(t *testing.T) {
		data, err := json.Marshal(DuplicateVariable{Name: "c", VariableID: "1", Type: "k", TypeName: "Cookie", CookieName: "_ga"})

		require.NoError(t, err)
		assert.JSONEq(t, `{"name": "c", "variableId": "1", "type": "k", "typeName": "Cookie", "cookieName": "_ga"}`, string(data))
	})
}

func TestUnknownTypesEmpty(t *testing.T) {
	assert.True(t, UnknownTypes{}.Empty())
	assert.True(t, UnknownTypes{TagTypes: []string{}}.Empty())
	assert.False(t, UnknownTypes{ClientTypes: []string{"x"}}.Empty())
}
