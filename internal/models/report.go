package models

// Duplicate categories, in report order.
const (
	DuplicateDataLayer      = "data-layer"
	DuplicateEventData      = "event-data"
	DuplicateCookie         = "cookie"
	DuplicateJSVariable     = "js-variable"
	DuplicateURL            = "url"
	DuplicateCustomTemplate = "custom-template"
)

// DuplicateCategories lists every duplicate category in report order.
var DuplicateCategories = []string{
	DuplicateDataLayer,
	DuplicateEventData,
	DuplicateCookie,
	DuplicateJSVariable,
	DuplicateURL,
	DuplicateCustomTemplate,
}

// Custom template categories parsed from templateData.
const (
	TemplateCategoryTag     = "TAG"
	TemplateCategoryMacro   = "MACRO"
	TemplateCategoryClient  = "CLIENT"
	TemplateCategoryUnknown = "UNKNOWN"
)

type Report struct {
	Summary               Summary                          `json:"summary"`
	UnusedVariables       []UnusedVariable                 `json:"unusedVariables"`
	DuplicateVariables    map[string][][]DuplicateVariable `json:"duplicateVariables"`
	UnusedCustomTemplates []UnusedCustomTemplate           `json:"unusedCustomTemplates"`
	BuiltInVariables      BuiltInAnalysis                  `json:"builtInVariables"`

	// Populated by the detailed analysis only.
	VariableUsage           map[string]UsageDetail `json:"variableUsage,omitempty"`
	UnknownTypes            *UnknownTypes          `json:"unknownTypes,omitempty"`
	TagEvaluationImpact     *EvaluationImpact      `json:"tagEvaluationImpact,omitempty"`
	TriggerEvaluationImpact *EvaluationImpact      `json:"triggerEvaluationImpact,omitempty"`
}

type Summary struct {
	ContainerType         string `json:"containerType"`
	TotalVariables        int    `json:"totalVariables"`
	TotalTags             int    `json:"totalTags"`
	PausedTags            int    `json:"pausedTags"`
	IncludePausedTags     bool   `json:"includePausedTags"`
	TotalTriggers         int    `json:"totalTriggers"`
	TotalTransformations  int    `json:"totalTransformations"`
	TotalClients          int    `json:"totalClients"`
	TotalCustomTemplates  int    `json:"totalCustomTemplates"`
	TotalBuiltInVariables int    `json:"totalBuiltInVariables"`
	UnusedVariables       int    `json:"unusedVariables"`
	DuplicateGroups       int    `json:"duplicateGroups"`
	DuplicateVariables    int    `json:"duplicateVariables"`
	UnusedCustomTemplates int    `json:"unusedCustomTemplates"`
}

type UnusedVariable struct {
	Name       string       `json:"name"`
	VariableID string       `json:"variableId"`
	Type       string       `json:"type"`
	TypeName   string       `json:"typeName"`
	Usage      *UsageDetail `json:"usage,omitempty"`
}

// DuplicateVariable is one member of a duplicate group. Only the fields of the
// group's category are set.
type DuplicateVariable struct {
	Name         string            `json:"name"`
	VariableID   string            `json:"variableId"`
	Type         string            `json:"type"`
	TypeName     string            `json:"typeName"`
	FormatValue  map[string]any    `json:"formatValue,omitempty"`
	Path         string            `json:"path,omitempty"`
	Version      string            `json:"version,omitempty"`
	DefaultValue string            `json:"defaultValue,omitempty"`
	KeyPath      string            `json:"keyPath,omitempty"`
	CookieName   string            `json:"cookieName,omitempty"`
	JSVarName    string            `json:"jsVarName,omitempty"`
	Component    string            `json:"component,omitempty"`
	QueryKey     string            `json:"queryKey,omitempty"`
	Parameters   map[string]string `json:"parameters,omitempty"`
}

type UnusedCustomTemplate struct {
	Name        string `json:"name"`
	TemplateID  string `json:"templateId"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	IsGallery   bool   `json:"isGallery"`
	GalleryID   string `json:"galleryId,omitempty"`
	Fingerprint string `json:"fingerprint"`
}

type BuiltInAnalysis struct {
	Total   int             `json:"total"`
	ByType  map[string]int  `json:"byType"`
	Details []BuiltInDetail `json:"details"`
}

type BuiltInDetail struct {
	Type     string `json:"type"`
	TypeName string `json:"typeName"`
	Enabled  bool   `json:"enabled"`
}

// UsageDetail lists, per component kind, the names of the components that
// reference a variable.
type UsageDetail struct {
	Tags            []string `json:"tags"`
	Triggers        []string `json:"triggers"`
	Variables       []string `json:"variables"`
	Transformations []string `json:"transformations"`
	Clients         []string `json:"clients"`
	CustomTemplates []string `json:"customTemplates"`
	TotalUsage      int      `json:"totalUsage"`
	TotalReferences int      `json:"totalReferences"`
}

type UnknownTypes struct {
	TagTypes      []string `json:"tagTypes"`
	VariableTypes []string `json:"variableTypes"`
	TriggerTypes  []string `json:"triggerTypes"`
	ClientTypes   []string `json:"clientTypes"`
	BuiltInTypes  []string `json:"builtInTypes"`
}

// Empty reports whether every component type has a label.
func (u UnknownTypes) Empty() bool {
	return len(u.TagTypes)+len(u.VariableTypes)+len(u.TriggerTypes)+len(u.ClientTypes)+len(u.BuiltInTypes) == 0
}

// EvaluationImpact estimates how many variable evaluations a set of tags or
// triggers causes, following variable-to-variable references.
type EvaluationImpact struct {
	Analyzed              int                `json:"analyzed"`
	TotalEvaluations      int                `json:"totalEvaluations"`
	EvaluationsByVariable map[string]int     `json:"evaluationsByVariable"`
	EvaluationsByType     map[string]int     `json:"evaluationsByType"`
	TagTypeBreakdown      map[string]int     `json:"tagTypeBreakdown"`
	Details               []EvaluationDetail `json:"details"`
}

type EvaluationDetail struct {
	Name            string         `json:"name"`
	Type            string         `json:"type"`
	DirectVariables []string       `json:"directVariables"`
	AllVariables    map[string]int `json:"allVariables"`
	AttachedTags    []string       `json:"attachedTags,omitempty"`
}
