package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sperciky/variable-monitoring/internal/models"
)

func TestFindDuplicateVariables(t *testing.T) {
	t.Run("data layer variables default to version 2", func(t *testing.T) {
		c := containerFrom(t, `{"variable": [
			{"name": "DLV - foo", "variableId": "1", "type": "v",
			 "parameter": [{"key": "name", "value": "foo"}, {"key": "defaultValue", "value": "{{x}}"}]},
			{"name": "DLV - foo copy", "variableId": "2", "type": "v",
			 "parameter": [{"key": "name", "value": "foo"}]}
		]}`)

		duplicates := FindDuplicateVariables(c)

		groups := duplicates[models.DuplicateDataLayer]
		require.Len(t, groups, 1)
		require.Len(t, groups[0], 2)
		assert.Equal(t, "foo", groups[0][0].Path)
		assert.Equal(t, "2", groups[0][0].Version)
		assert.Equal(t, "{{x}}", groups[0][0].DefaultValue)
		assert.Equal(t, "DLV - foo copy", groups[0][1].Name)
	})

	t.Run("data layer versions are kept apart", func(t *testing.T) {
		c := containerFrom(t, `{"variable": [
			{"name": "v1", "variableId": "1", "type": "v",
			 "parameter": [{"key": "name", "value": "foo"}, {"key": "dataLayerVersion", "value": 1}]},
			{"name": "v2", "variableId": "2", "type": "v",
			 "parameter": [{"key": "name", "value": "foo"}, {"key": "dataLayerVersion", "value": "2"}]},
			{"name": "v2 implicit", "variableId": "3", "type": "v",
			 "parameter": [{"key": "name", "value": "foo"}]}
		]}`)

		groups := FindDuplicateVariables(c)[models.DuplicateDataLayer]

		require.Len(t, groups, 1)
		assert.Equal(t, "v2", groups[0][0].Name)
		assert.Equal(t, "v2 implicit", groups[0][1].Name)
	})

	t.Run("groups every supported category", func(t *testing.T) {
		c := containerFrom(t, `{"variable": [
			{"name": "ed1", "variableId": "1", "type": "ed", "parameter": [{"key": "keyPath", "value": "page_location"}]},
			{"name": "ed2", "variableId": "2", "type": "ed", "parameter": [{"key": "keyPath", "value": "page_location"}]},
			{"name": "k1", "variableId": "3", "type": "k", "parameter": [{"key": "name", "value": "_ga"}]},
			{"name": "k2", "variableId": "4", "type": "k", "parameter": [{"key": "name", "value": "_ga"}]},
			{"name": "j1", "variableId": "5", "type": "j", "parameter": [{"key": "name", "value": "document.title"}]},
			{"name": "j2", "variableId": "6", "type": "j", "parameter": [{"key": "name", "value": "document.title"}]}
		]}`)

		duplicates := FindDuplicateVariables(c)

		require.Len(t, duplicates[models.DuplicateEventData], 1)
		assert.Equal(t, "page_location", duplicates[models.DuplicateEventData][0][0].KeyPath)
		require.Len(t, duplicates[models.DuplicateCookie], 1)
		assert.Equal(t, "_ga", duplicates[models.DuplicateCookie][0][1].CookieName)
		require.Len(t, duplicates[models.DuplicateJSVariable], 1)
		assert.Equal(t, "document.title", duplicates[models.DuplicateJSVariable][0][0].JSVarName)
	})

	t.Run("url variables are keyed by component and query key", func(t *testing.T) {
		c := containerFrom(t, `{"variable": [
			{"name": "gclid", "variableId": "1", "type": "u",
			 "parameter": [{"key": "component", "value": "QUERY"}, {"key": "queryKey", "value": "gclid"}]},
			{"name": "fbclid", "variableId": "2", "type": "u",
			 "parameter": [{"key": "component", "value": "QUERY"}, {"key": "queryKey", "value": "fbclid"}]},
			{"name": "gclid again", "variableId": "3", "type": "u",
			 "parameter": [{"key": "component", "value": "QUERY"}, {"key": "queryKey", "value": "gclid"}]},
			{"name": "full url", "variableId": "4", "type": "u"},
			{"name": "full url 2", "variableId": "5", "type": "u"}
		]}`)

		groups := FindDuplicateVariables(c)[models.DuplicateURL]

		require.Len(t, groups, 2)
		assert.Equal(t, []string{"gclid", "gclid again"}, []string{groups[0][0].Name, groups[0][1].Name})
		assert.Equal(t, "gclid", groups[0][0].QueryKey)
		assert.Equal(t, "UNSPECIFIED", groups[1][0].Component)
	})

	t.Run("url variables with different custom sources differ", func(t *testing.T) {
		c := containerFrom(t, `{"variable": [
			{"name": "a", "variableId": "1", "type": "u",
			 "parameter": [{"key": "component", "value": "HOST"}, {"key": "customUrlSource", "value": "{{Click URL}}"}]},
			{"name": "b", "variableId": "2", "type": "u",
			 "parameter": [{"key": "component", "value": "HOST"}, {"key": "customUrlSource", "value": "{{Referrer}}"}]}
		]}`)

		assert.Empty(t, FindDuplicateVariables(c)[models.DuplicateURL])
	})

	t.Run("custom template variables use sorted key parameters", func(t *testing.T) {
		c := containerFrom(t, `{"variable": [
			{"name": "t1", "variableId": "1", "type": "cvt_1_5",
			 "parameter": [{"key": "name", "value": "uid"}, {"key": "keyPath", "value": "user"}]},
			{"name": "t2", "variableId": "2", "type": "cvt_1_5",
			 "parameter": [{"key": "keyPath", "value": "user"}, {"key": "name", "value": "uid"}, {"key": "other", "value": "x"}]},
			{"name": "t3", "variableId": "3", "type": "cvt_1_6",
			 "parameter": [{"key": "name", "value": "uid"}, {"key": "keyPath", "value": "user"}]},
			{"name": "no keys", "variableId": "4", "type": "cvt_1_5",
			 "parameter": [{"key": "other", "value": "x"}]}
		]}`)

		groups := FindDuplicateVariables(c)[models.DuplicateCustomTemplate]

		require.Len(t, groups, 1)
		require.Len(t, groups[0], 2)
		assert.Equal(t, "uid", groups[0][1].Parameters["name"])
		assert.Equal(t, "Custom Template Variable", groups[0][0].TypeName)
	})

	t.Run("variables without fingerprint parameters are ignored", func(t *testing.T) {
		c := containerFrom(t, `{"variable": [
			{"name": "c1", "variableId": "1", "type": "c", "parameter": [{"key": "value", "value": "x"}]},
			{"name": "c2", "variableId": "2", "type": "c", "parameter": [{"key": "value", "value": "x"}]},
			{"name": "v1", "variableId": "3", "type": "v"},
			{"name": "v2", "variableId": "4", "type": "v"}
		]}`)

		for _, category := range models.DuplicateCategories {
			assert.Empty(t, FindDuplicateVariables(c)[category], category)
		}
	})

	t.Run("equal fingerprints in different categories do not collide", func(t *testing.T) {
		c := containerFrom(t, `{"variable": [
			{"name": "cookie", "variableId": "1", "type": "k", "parameter": [{"key": "name", "value": "uid"}]},
			{"name": "js", "variableId": "2", "type": "j", "parameter": [{"key": "name", "value": "uid"}]}
		]}`)

		duplicates := FindDuplicateVariables(c)

		assert.Empty(t, duplicates[models.DuplicateCookie])
		assert.Empty(t, duplicates[models.DuplicateJSVariable])
	})

	t.Run("last parameter wins on repeated keys", func(t *testing.T) {
		c := containerFrom(t, `{"variable": [
			{"name": "a", "variableId": "1", "type": "k",
			 "parameter": [{"key": "name", "value": "first"}, {"key": "name", "value": "second"}]},
			{"name": "b", "variableId": "2", "type": "k", "parameter": [{"key": "name", "value": "second"}]}
		]}`)

		assert.Len(t, FindDuplicateVariables(c)[models.DuplicateCookie], 1)
	})

	t.Run("includes format value settings", func(t *testing.T) {
		c := containerFrom(t, `{"variable": [
			{"name": "a", "variableId": "1", "type": "k", "parameter": [{"key": "name", "value": "x"}],
			 "formatValue": {"caseConversionType": "LOWERCASE", "convertNullToValue": {"type": "TEMPLATE", "value": "n/a"}}},
			{"name": "b", "variableId": "2", "type": "k", "parameter": [{"key": "name", "value": "x"}]}
		]}`)

		group := FindDuplicateVariables(c)[models.DuplicateCookie][0]

		assert.Equal(t, map[string]any{"caseConversionType": "LOWERCASE", "convertNullToValue": "n/a"}, group[0].FormatValue)
		assert.Nil(t, group[1].FormatValue)
	})

	t.Run("every category is present and groups are disjoint", func(t *testing.T) {
		c := containerFrom(t, `{"variable": [
			{"name": "a", "variableId": "1", "type": "k", "parameter": [{"key": "name", "value": "x"}]},
			{"name": "b", "variableId": "2", "type": "k", "parameter": [{"key": "name", "value": "x"}]},
			{"name": "c", "variableId": "3", "type": "k", "parameter": [{"key": "name", "value": "y"}]},
			{"name": "d", "variableId": "4", "type": "k", "parameter": [{"key": "name", "value": "y"}]}
		]}`)

		duplicates := FindDuplicateVariables(c)

		assert.Len(t, duplicates, len(models.DuplicateCategories))
		seen := make(map[string]bool)
		for _, group := range duplicates[models.DuplicateCookie] {
			assert.GreaterOrEqual(t, len(group), 2)
			for _, member := range group {
				assert.False(t, seen[member.VariableID], member.VariableID)
				seen[member.VariableID] = true
			}
		}
		assert.Len(t, seen, 4)
	})
}

func TestFormatValueInfo(t *testing.T) {
	t.Run("nil when nothing is set", func(t *testing.T) {
		assert.Nil(t, FormatValueInfo(nil))
		assert.Nil(t, FormatValueInfo(map[string]any{"unrelated": true}))
	})

	t.Run("keeps unwrapped scalars", func(t *testing.T) {
		info := FormatValueInfo(map[string]any{"convertTrueToValue": "yes"})

		assert.Equal(t, map[string]any{"convertTrueToValue": "yes"}, info)
	})

	t.Run("keeps maps without a value key", func(t *testing.T) {
		wrapped := map[string]any{"type": "TEMPLATE"}
		info := FormatValueInfo(map[string]any{"convertEmptyToValue": wrapped})

		assert.Equal(t, wrapped, info["convertEmptyToValue"])
	})
}
