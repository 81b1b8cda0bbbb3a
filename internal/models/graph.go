package models

// Node kinds.
const (
	KindVariable       = "variable"
	KindTag            = "tag"
	KindTrigger        = "trigger"
	KindTransformation = "transformation"
	KindClient         = "client"
	KindCustomTemplate = "custom_template"
	KindBuiltIn        = "builtin"
)

// Edge types.
const (
	EdgeReference = "reference"
	EdgeInstance  = "instance"
	EdgeFires     = "fires"
)

type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
	Stats *Stats `json:"stats,omitempty"`
}

type Node struct {
	ID       string         `json:"id"`
	Kind     string         `json:"kind"`
	Name     string         `json:"name"`
	Type     string         `json:"type,omitempty"`
	TypeName string         `json:"typeName,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

type Stats struct {
	TotalNodes  int            `json:"total_nodes"`
	TotalEdges  int            `json:"total_edges"`
	NodesByKind map[string]int `json:"nodes_by_kind,omitempty"`
	EdgesByType map[string]int `json:"edges_by_type,omitempty"`
}
