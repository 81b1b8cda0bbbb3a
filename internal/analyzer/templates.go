package analyzer

import (
	"regexp"

	"github.com/sperciky/variable-monitoring/internal/models"
)

var (
	templateCategoryPattern = regexp.MustCompile(`"type"\s*:\s*"(TAG|MACRO|CLIENT)"`)
	templateIDPattern       = regexp.MustCompile(`"id"\s*:\s*"([^"]+)"`)
)

// TemplateIdentity is a custom template together with every type code that
// components may use to instantiate it.
type TemplateIdentity struct {
	Template models.CustomTemplate
	// Canonical is the constructed type code cvt_<containerId>_<templateId>.
	Canonical string
	Category  string
	GalleryID string
	// DataID is the id embedded in templateData, if any.
	DataID string
}

func newTemplateIdentity(t models.CustomTemplate) TemplateIdentity {
	id := TemplateIdentity{
		Template:  t,
		Canonical: models.CustomTemplatePrefix + t.ContainerID + "_" + t.TemplateID,
		Category:  models.TemplateCategoryUnknown,
		GalleryID: t.GalleryTemplateID(),
	}
	if m := templateCategoryPattern.FindStringSubmatch(t.TemplateData); m != nil {
		id.Category = m[1]
	}
	if m := templateIDPattern.FindStringSubmatch(t.TemplateData); m != nil {
		id.DataID = m[1]
	}
	return id
}

// IsGallery reports whether the template was imported from the gallery.
func (id TemplateIdentity) IsGallery() bool {
	return id.GalleryID != ""
}

// Aliases lists the type codes resolving to this template, canonical first.
func (id TemplateIdentity) Aliases() []string {
	aliases := []string{id.Canonical}
	if id.GalleryID != "" {
		if gallery := models.CustomTemplatePrefix + id.GalleryID; gallery != id.Canonical {
			aliases = append(aliases, gallery)
		}
	}
	if id.DataID != "" && id.DataID != id.Canonical {
		aliases = append(aliases, id.DataID)
	}
	return aliases
}

// TemplateIndex resolves component type codes to custom templates.
type TemplateIndex struct {
	identities []TemplateIdentity
	byAlias    map[string]int
}

// NewTemplateIndex indexes the custom templates of c. When two templates claim
// the same alias the later template wins.
func NewTemplateIndex(c *models.ContainerVersion) *TemplateIndex {
	ix := &TemplateIndex{
		identities: make([]TemplateIdentity, 0, len(c.CustomTemplate)),
		byAlias:    make(map[string]int),
	}
	for _, t := range c.CustomTemplate {
		id := newTemplateIdentity(t)
		ix.identities = append(ix.identities, id)
		for _, alias := range id.Aliases() {
			ix.byAlias[alias] = len(ix.identities) - 1
		}
	}
	return ix
}

// Resolve returns the template a type code instantiates.
func (ix *TemplateIndex) Resolve(typeCode string) (TemplateIdentity, bool) {
	i, ok := ix.byAlias[typeCode]
	if !ok {
		return TemplateIdentity{}, false
	}
	return ix.identities[i], true
}

func (ix *TemplateIndex) Identities() []TemplateIdentity {
	return ix.identities
}

// FindUnusedCustomTemplates reports custom templates that no component of the
// matching kind instantiates: MACRO templates by variables, TAG templates by
// tags and CLIENT templates by clients. Templates sharing a fingerprint are
// reported once.
func FindUnusedCustomTemplates(c *models.ContainerVersion) []models.UnusedCustomTemplate {
	ix := NewTemplateIndex(c)
	used := make(map[string]bool, len(ix.identities))

	mark := func(typeCode, category string) {
		if id, ok := ix.Resolve(typeCode); ok && id.Category == category {
			used[id.Canonical] = true
		}
	}
	for _, v := range c.Variable {
		mark(v.Type, models.TemplateCategoryMacro)
	}
	for _, t := range c.Tag {
		mark(t.Type, models.TemplateCategoryTag)
	}
	for _, cl := range c.Client {
		mark(cl.Type, models.TemplateCategoryClient)
	}

	unused := []models.UnusedCustomTemplate{}
	seen := make(map[string]bool)
	for _, id := range ix.identities {
		if used[id.Canonical] {
			continue
		}
		dedupe := id.Template.Fingerprint
		// Templates without a fingerprint are distinct; report each one.
		if dedupe == "" {
			dedupe = id.Canonical
		}
		if seen[dedupe] {
			continue
		}
		seen[dedupe] = true

		unused = append(unused, models.UnusedCustomTemplate{
			Name:        templateName(id.Template),
			TemplateID:  id.Template.TemplateID,
			Type:        id.Canonical,
			Category:    id.Category,
			IsGallery:   id.IsGallery(),
			GalleryID:   id.GalleryID,
			Fingerprint: id.Template.Fingerprint,
		})
	}
	return unused
}

func templateName(t models.CustomTemplate) string {
	if t.Name == "" {
		return "Unnamed Template"
	}
	return t.Name
}
