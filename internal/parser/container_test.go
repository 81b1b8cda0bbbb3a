// Package parser provides utilities for parsing and transforming input data.
// It unwraps GTM container exports and derives the component dependency graph.
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sperciky/variable-monitoring/internal/analyzer"
)

func TestParseContainer_Export(t *testing.T) {
	input := []byte(`{
		"exportFormatVersion": 2,
		"exportTime": "2024-01-15 10:00:00",
		"containerVersion": {
			"accountId": "600",
			"containerId": "1234",
			"variable": [
				{
					"name": "DLV - page",
					"variableId": "3",
					"type": "v",
					"parameter": [
						{"type": "INTEGER", "key": "dataLayerVersion", "value": "2"},
						{"type": "TEMPLATE", "key": "name", "value": "page.type"}
					],
					"formatValue": {"caseConversionType": "LOWERCASE"}
				}
			],
			"tag": [
				{
					"name": "GA4 Config",
					"tagId": "7",
					"type": "gaawc",
					"paused": true,
					"firingTriggerId": ["2147479553"],
					"parameter": [{"type": "TEMPLATE", "key": "page", "value": "{{DLV - page}}"}]
				}
			],
			"customTemplate": [
				{
					"name": "Consent Mode",
					"templateId": "9",
					"containerId": "1234",
					"fingerprint": "abc",
					"galleryReference": {"owner": "gtm-templates", "galleryTemplateId": "XYZ"}
				}
			]
		}
	}`)

	container, err := ParseContainer(input)

	require.NoError(t, err)
	assert.Equal(t, "1234", container.ContainerID)
	require.Len(t, container.Variable, 1)
	assert.Equal(t, "DLV - page", container.Variable[0].Name)
	assert.Equal(t, "v", container.Variable[0].Type)
	assert.Len(t, container.Variable[0].Parameter, 2)
	assert.Equal(t, "LOWERCASE", container.Variable[0].FormatValue["caseConversionType"])
	assert.NotNil(t, container.Variable[0].Raw)

	require.Len(t, container.Tag, 1)
	assert.True(t, container.Tag[0].Paused)
	assert.Equal(t, []string{"2147479553"}, container.Tag[0].FiringTriggerID)

	require.Len(t, container.CustomTemplate, 1)
	assert.Equal(t, "XYZ", container.CustomTemplate[0].GalleryTemplateID())
}

func TestParseContainer_BareContainerVersion(t *testing.T) {
	input := []byte(`{
		"containerId": "55",
		"trigger": [{"name": "All Pages", "triggerId": "1", "type": "pageview"}]
	}`)

	container, err := ParseContainer(input)

	require.NoError(t, err)
	assert.Equal(t, "55", container.ContainerID)
	assert.Len(t, container.Trigger, 1)
}

func TestParseContainer_EmptyContainerVersion(t *testing.T) {
	container, err := ParseContainer([]byte(`{"containerVersion": {}}`))

	require.NoError(t, err)
	assert.Empty(t, container.Variable)
	assert.Empty(t, container.Tag)
}

func TestParseContainer_Empty(t *testing.T) {
	_, err := ParseContainer([]byte{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty container data")

	_, err = ParseContainer([]byte("  \n\t"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty container data")
}

func TestParseContainer_InvalidJSON(t *testing.T) {
	_, err := ParseContainer([]byte(`{invalid json`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal")
}

func TestParseContainer_NotAnObject(t *testing.T) {
	_, err := ParseContainer([]byte(`null`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected a JSON object")

	_, err = ParseContainer([]byte(`[1, 2, 3]`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal")
}

func TestParseContainer_MissingContainerVersion(t *testing.T) {
	_, err := ParseContainer([]byte(`{"exportFormatVersion": 2}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing containerVersion")
}

func TestParseContainer_WrongFieldType(t *testing.T) {
	_, err := ParseContainer([]byte(`{"containerVersion": {"variable": "not-a-list"}}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal containerVersion")
}

func TestParseContainer_NonStringParameterValue(t *testing.T) {
	input := []byte(`{"containerVersion": {"variable": [
		{"name": "Const", "variableId": "1", "type": "c",
		 "parameter": [{"type": "BOOLEAN", "key": "value", "value": true}]}
	]}}`)

	container, err := ParseContainer(input)

	require.NoError(t, err)
	require.Len(t, container.Variable[0].Parameter, 1)
	assert.Equal(t, "true", container.Variable[0].Parameter[0].StringValue())
}

func TestParseContainer_NonStringTemplateData(t *testing.T) {
	input := []byte(`{"containerVersion": {
		"customTemplate": [
			{"name": "Odd", "templateId": "3", "containerId": "9", "fingerprint": "fp", "templateData": {"x": 1}},
			{"name": "Listed", "templateId": "4", "containerId": "9", "templateData": ["a"]}
		],
		"variable": [{"name": "Uses Odd", "variableId": "1", "type": "cvt_9_3"}]
	}}`)

	container, err := ParseContainer(input)

	require.NoError(t, err)
	require.Len(t, container.CustomTemplate, 2)
	assert.Empty(t, container.CustomTemplate[0].TemplateData)
	assert.NotNil(t, container.CustomTemplate[0].Raw)

	t.Run("template is still resolved through its constructed id", func(t *testing.T) {
		id, ok := analyzer.NewTemplateIndex(container).Resolve("cvt_9_3")
		require.True(t, ok)
		assert.Equal(t, "Odd", id.Template.Name)
	})

	t.Run("unused detection works with partial information", func(t *testing.T) {
		unused := analyzer.FindUnusedCustomTemplates(container)
		require.Len(t, unused, 2)
		assert.Equal(t, "cvt_9_3", unused[0].Type)
		assert.Equal(t, "UNKNOWN", unused[0].Category)
		assert.Equal(t, "cvt_9_4", unused[1].Type)
		assert.Equal(t, "UNKNOWN", unused[1].Category)
	})
}

func TestParseContainer_NonObjectFormatValue(t *testing.T) {
	input := []byte(`{"containerVersion": {"variable": [
		{"name": "List", "variableId": "1", "type": "v", "formatValue": []},
		{"name": "Text", "variableId": "2", "type": "v", "formatValue": "none"},
		{"name": "Object", "variableId": "3", "type": "v", "formatValue": {"caseConversionType": "LOWERCASE"}}
	]}}`)

	container, err := ParseContainer(input)

	require.NoError(t, err)
	require.Len(t, container.Variable, 3)
	assert.Nil(t, container.Variable[0].FormatValue)
	assert.Nil(t, container.Variable[1].FormatValue)
	assert.Equal(t, map[string]any{"caseConversionType": "LOWERCASE"}, container.Variable[2].FormatValue)
}
