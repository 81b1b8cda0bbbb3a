package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sperciky/variable-monitoring/internal/models"
)

// containerFrom decodes a bare container version so that every component
// carries its raw JSON.
func containerFrom(t *testing.T, input string) *models.ContainerVersion {
	t.Helper()

	var c models.ContainerVersion
	require.NoError(t, json.Unmarshal([]byte(input), &c))
	return &c
}

func unusedNames(unused []models.UnusedVariable) []string {
	names := make([]string, 0, len(unused))
	for _, v := range unused {
		names = append(names, v.Name)
	}
	return names
}
