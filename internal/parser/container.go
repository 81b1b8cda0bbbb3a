// Package parser provides utilities for parsing and transforming input data.
// It unwraps GTM container exports and derives the component dependency graph.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sperciky/variable-monitoring/internal/models"
)

// containerKeys are the top-level keys that identify a bare container version.
var containerKeys = []string{
	"containerId", "variable", "tag", "trigger", "transformation",
	"client", "customTemplate", "builtInVariable",
}

// ParseContainer decodes a GTM container export. Both the export envelope
// ({"containerVersion": {...}}) and a bare container version are accepted.
func ParseContainer(data []byte) (*models.ContainerVersion, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty container data")
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal container: %w", err)
	}
	if root == nil {
		return nil, fmt.Errorf("invalid container: expected a JSON object")
	}

	body, ok := root["containerVersion"]
	if !ok {
		if !hasAnyKey(root, containerKeys) {
			return nil, fmt.Errorf("invalid container: missing containerVersion field")
		}
		body = data
	}

	var container models.ContainerVersion
	if err := json.Unmarshal(body, &container); err != nil {
		return nil, fmt.Errorf("failed to unmarshal containerVersion: %w", err)
	}

	return &container, nil
}

func hasAnyKey(m map[string]json.RawMessage, keys []string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}
