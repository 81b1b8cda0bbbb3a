package analyzer

import (
	"slices"
	"strings"

	"github.com/sperciky/variable-monitoring/internal/models"
)

// parameterSet is the flattened key -> value view of a variable's top-level
// parameters. Later keys overwrite earlier ones.
type parameterSet map[string]string

func newParameterSet(params []models.Parameter) parameterSet {
	set := make(parameterSet, len(params))
	for _, p := range params {
		set[p.Key] = p.StringValue()
	}
	return set
}

func (s parameterSet) has(key string) bool {
	_, ok := s[key]
	return ok
}

func (s parameterSet) get(key, fallback string) string {
	if v, ok := s[key]; ok {
		return v
	}
	return fallback
}

// duplicateKey groups variables reading the same data source. The category is
// kept apart from the fingerprint so that equal fingerprints of different
// categories never collide.
type duplicateKey struct {
	category    string
	fingerprint string
}

// fingerprinter derives the duplicate key of a variable and fills in the
// category specific fields of its report entry. ok is false when the variable
// lacks the parameters its category needs.
type fingerprinter func(v models.Variable, params parameterSet, member *models.DuplicateVariable) (key duplicateKey, ok bool)

var fingerprinters = map[string]fingerprinter{
	"v":  dataLayerFingerprint,
	"ed": eventDataFingerprint,
	"k":  cookieFingerprint,
	"j":  jsVariableFingerprint,
	"u":  urlFingerprint,
}

// customTemplateKeyParams are the parameters that identify the data source of
// a custom template variable.
var customTemplateKeyParams = []string{"queryParamName", "pageLocation", "keyPath", "name", "key"}

func dataLayerFingerprint(_ models.Variable, params parameterSet, member *models.DuplicateVariable) (duplicateKey, bool) {
	if !params.has("name") {
		return duplicateKey{}, false
	}
	member.Path = params["name"]
	member.Version = params.get("dataLayerVersion", "2")
	member.DefaultValue = params.get("defaultValue", "")
	return duplicateKey{models.DuplicateDataLayer, member.Path + "|v" + member.Version}, true
}

func eventDataFingerprint(_ models.Variable, params parameterSet, member *models.DuplicateVariable) (duplicateKey, bool) {
	if !params.has("keyPath") {
		return duplicateKey{}, false
	}
	member.KeyPath = params["keyPath"]
	member.DefaultValue = params.get("defaultValue", "")
	return duplicateKey{models.DuplicateEventData, member.KeyPath}, true
}

func cookieFingerprint(_ models.Variable, params parameterSet, member *models.DuplicateVariable) (duplicateKey, bool) {
	if !params.has("name") {
		return duplicateKey{}, false
	}
	member.CookieName = params["name"]
	return duplicateKey{models.DuplicateCookie, member.CookieName}, true
}

func jsVariableFingerprint(_ models.Variable, params parameterSet, member *models.DuplicateVariable) (duplicateKey, bool) {
	if !params.has("name") {
		return duplicateKey{}, false
	}
	member.JSVarName = params["name"]
	return duplicateKey{models.DuplicateJSVariable, member.JSVarName}, true
}

// urlFingerprint keeps variables that read different query parameters (gclid,
// fbclid, ...) or different custom URL sources apart.
func urlFingerprint(_ models.Variable, params parameterSet, member *models.DuplicateVariable) (duplicateKey, bool) {
	member.Component = params.get("component", "UNSPECIFIED")
	member.QueryKey = params.get("queryKey", "")

	fingerprint := member.Component
	if member.QueryKey != "" {
		fingerprint += "|" + member.QueryKey
	} else if source := params.get("customUrlSource", ""); source != "" {
		fingerprint += "|" + source
	}
	return duplicateKey{models.DuplicateURL, fingerprint}, true
}

func customTemplateFingerprint(v models.Variable, params parameterSet, member *models.DuplicateVariable) (duplicateKey, bool) {
	var fields []string
	for _, key := range customTemplateKeyParams {
		if value, ok := params[key]; ok {
			fields = append(fields, key+":"+value)
		}
	}
	if len(fields) == 0 {
		return duplicateKey{}, false
	}
	slices.Sort(fields)
	member.Parameters = params
	return duplicateKey{models.DuplicateCustomTemplate, v.Type + "|" + strings.Join(fields, "|")}, true
}

func fingerprinterFor(variableType string) (fingerprinter, bool) {
	if fp, ok := fingerprinters[variableType]; ok {
		return fp, true
	}
	if strings.HasPrefix(variableType, models.CustomTemplatePrefix) {
		return customTemplateFingerprint, true
	}
	return nil, false
}

// formatValueKeys are the formatValue settings carried into duplicate reports.
var formatValueKeys = []string{
	"convertNullToValue",
	"convertUndefinedToValue",
	"convertTrueToValue",
	"convertFalseToValue",
	"caseConversionType",
	"convertNaNToValue",
	"convertEmptyToValue",
}

// FormatValueInfo extracts the value conversion settings of a formatValue
// block, unwrapping {"value": X} wrappers. It returns nil when none are set.
func FormatValueInfo(formatValue map[string]any) map[string]any {
	info := make(map[string]any)
	for _, key := range formatValueKeys {
		value, ok := formatValue[key]
		if !ok {
			continue
		}
		if wrapped, ok := value.(map[string]any); ok {
			if inner, ok := wrapped["value"]; ok {
				value = inner
			}
		}
		info[key] = value
	}
	if len(info) == 0 {
		return nil
	}
	return info
}

// FindDuplicateVariables groups variables that read the same data source.
// Every category is present in the result; only groups with two or more
// members are kept, in first-seen order.
func FindDuplicateVariables(c *models.ContainerVersion) map[string][][]models.DuplicateVariable {
	groups := make(map[duplicateKey][]models.DuplicateVariable)
	var order []duplicateKey

	for _, v := range c.Variable {
		fp, ok := fingerprinterFor(v.Type)
		if !ok {
			continue
		}

		member := models.DuplicateVariable{
			Name:        v.Name,
			VariableID:  v.VariableID,
			Type:        v.Type,
			TypeName:    VariableTypeName(v.Type),
			FormatValue: FormatValueInfo(v.FormatValue),
		}
		key, ok := fp(v, newParameterSet(v.Parameter), &member)
		if !ok {
			continue
		}

		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], member)
	}

	duplicates := make(map[string][][]models.DuplicateVariable, len(models.DuplicateCategories))
	for _, category := range models.DuplicateCategories {
		duplicates[category] = [][]models.DuplicateVariable{}
	}
	for _, key := range order {
		if members := groups[key]; len(members) > 1 {
			duplicates[key.category] = append(duplicates[key.category], members)
		}
	}
	return duplicates
}
