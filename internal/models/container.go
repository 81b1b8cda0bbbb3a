// Package models defines the core data structures shared by the parser, the
// analyzer and the HTTP layer. Container types mirror a GTM container export.
package models

import (
	"encoding/json"
	"fmt"
)

// CustomTemplatePrefix marks type codes that are implemented by a custom template.
const CustomTemplatePrefix = "cvt_"

// Export is the envelope produced by the GTM "Export container" action.
type Export struct {
	ExportFormatVersion int              `json:"exportFormatVersion,omitempty"`
	ExportTime          string           `json:"exportTime,omitempty"`
	ContainerVersion    ContainerVersion `json:"containerVersion"`
}

type ContainerVersion struct {
	Path               string            `json:"path,omitempty"`
	AccountID          string            `json:"accountId,omitempty"`
	ContainerID        string            `json:"containerId,omitempty"`
	ContainerVersionID string            `json:"containerVersionId,omitempty"`
	Name               string            `json:"name,omitempty"`
	Variable           []Variable        `json:"variable,omitempty"`
	Tag                []Tag             `json:"tag,omitempty"`
	Trigger            []Trigger         `json:"trigger,omitempty"`
	Transformation     []Transformation  `json:"transformation,omitempty"`
	Client             []Client          `json:"client,omitempty"`
	CustomTemplate     []CustomTemplate  `json:"customTemplate,omitempty"`
	BuiltInVariable    []BuiltInVariable `json:"builtInVariable,omitempty"`
	Folder             []Folder          `json:"folder,omitempty"`
}

// Parameter is a GTM configuration parameter. Template parameters carry a
// scalar Value; list and map parameters nest further parameters.
type Parameter struct {
	Type  string      `json:"type,omitempty"`
	Key   string      `json:"key,omitempty"`
	Value any         `json:"value,omitempty"`
	List  []Parameter `json:"list,omitempty"`
	Map   []Parameter `json:"map,omitempty"`
}

// StringValue renders the scalar value of a parameter. Missing values yield "".
func (p Parameter) StringValue() string {
	switch v := p.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

type Variable struct {
	Name        string         `json:"name"`
	VariableID  string         `json:"variableId"`
	Type        string         `json:"type"`
	Parameter   []Parameter    `json:"parameter,omitempty"`
	FormatValue map[string]any `json:"formatValue,omitempty"`
	Raw         any            `json:"-"`
}

func (v *Variable) UnmarshalJSON(data []byte) error {
	type plain Variable
	var p struct {
		plain
		FormatValue any `json:"formatValue,omitempty"`
	}
	if err := decodeWithRaw(data, &p, &p.Raw); err != nil {
		return err
	}
	*v = Variable(p.plain)
	// A formatValue that is not an object carries no settings.
	if m, ok := p.FormatValue.(map[string]any); ok {
		v.FormatValue = m
	}
	return nil
}

type Tag struct {
	Name              string   `json:"name"`
	TagID             string   `json:"tagId"`
	Type              string   `json:"type"`
	Paused            bool     `json:"paused,omitempty"`
	FiringTriggerID   []string `json:"firingTriggerId,omitempty"`
	BlockingTriggerID []string `json:"blockingTriggerId,omitempty"`
	Raw               any      `json:"-"`
}

func (t *Tag) UnmarshalJSON(data []byte) error {
	type plain Tag
	var p plain
	if err := decodeWithRaw(data, &p, &p.Raw); err != nil {
		return err
	}
	*t = Tag(p)
	return nil
}

type Trigger struct {
	Name      string `json:"name"`
	TriggerID string `json:"triggerId"`
	Type      string `json:"type"`
	Raw       any    `json:"-"`
}

func (t *Trigger) UnmarshalJSON(data []byte) error {
	type plain Trigger
	var p plain
	if err := decodeWithRaw(data, &p, &p.Raw); err != nil {
		return err
	}
	*t = Trigger(p)
	return nil
}

type Transformation struct {
	Name             string `json:"name"`
	TransformationID string `json:"transformationId"`
	Type             string `json:"type"`
	Raw              any    `json:"-"`
}

func (t *Transformation) UnmarshalJSON(data []byte) error {
	type plain Transformation
	var p plain
	if err := decodeWithRaw(data, &p, &p.Raw); err != nil {
		return err
	}
	*t = Transformation(p)
	return nil
}

type Client struct {
	Name     string `json:"name"`
	ClientID string `json:"clientId"`
	Type     string `json:"type"`
	Raw      any    `json:"-"`
}

func (c *Client) UnmarshalJSON(data []byte) error {
	type plain Client
	var p plain
	if err := decodeWithRaw(data, &p, &p.Raw); err != nil {
		return err
	}
	*c = Client(p)
	return nil
}

type GalleryReference struct {
	Host              string `json:"host,omitempty"`
	Owner             string `json:"owner,omitempty"`
	Repository        string `json:"repository,omitempty"`
	Version           string `json:"version,omitempty"`
	GalleryTemplateID string `json:"galleryTemplateId,omitempty"`
}

type CustomTemplate struct {
	Name             string            `json:"name"`
	TemplateID       string            `json:"templateId"`
	ContainerID      string            `json:"containerId"`
	Fingerprint      string            `json:"fingerprint,omitempty"`
	TemplateData     string            `json:"templateData,omitempty"`
	GalleryReference *GalleryReference `json:"galleryReference,omitempty"`
	Raw              any               `json:"-"`
}

func (t *CustomTemplate) UnmarshalJSON(data []byte) error {
	type plain CustomTemplate
	var p struct {
		plain
		TemplateData any `json:"templateData,omitempty"`
	}
	if err := decodeWithRaw(data, &p, &p.Raw); err != nil {
		return err
	}
	*t = CustomTemplate(p.plain)
	// Only textual template code can be scanned; anything else is treated as empty.
	if code, ok := p.TemplateData.(string); ok {
		t.TemplateData = code
	}
	return nil
}

// GalleryTemplateID returns the gallery id of a template imported from the
// Community Template Gallery, or "" for templates authored in the container.
func (t CustomTemplate) GalleryTemplateID() string {
	if t.GalleryReference == nil {
		return ""
	}
	return t.GalleryReference.GalleryTemplateID
}

type BuiltInVariable struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Enabled *bool  `json:"enabled,omitempty"`
}

type Folder struct {
	Name     string `json:"name"`
	FolderID string `json:"folderId"`
}

// decodeWithRaw decodes data into the typed view and keeps the generic JSON
// tree in raw so that every string field can be scanned for references.
func decodeWithRaw(data []byte, typed any, raw *any) error {
	if err := json.Unmarshal(data, typed); err != nil {
		return err
	}
	return json.Unmarshal(data, raw)
}
