package types

import (
	"errors"
	"fmt"
)

// Template is a named visual style applied at render time. It never alters section data.
type Template string

// Supported templates.
const (
	TemplateModern       Template = "modern"
	TemplateProfessional Template = "professional"
	TemplateCreative     Template = "creative"
	TemplateSimple       Template = "simple"
)

// AllTemplates lists the supported templates.
var AllTemplates = []Template{TemplateModern, TemplateProfessional, TemplateCreative, TemplateSimple}

// ErrUnknownTemplate is returned when a template name is not one of AllTemplates.
var ErrUnknownTemplate = errors.New("unknown template")

// Valid reports whether t is a supported template.
func (t Template) Valid() bool {
	for _, known := range AllTemplates {
		if t == known {
			return true
		}
	}
	return false
}

// ParseTemplate converts a string to a Template.
func ParseTemplate(s string) (Template, error) {
	t := Template(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, s)
	}
	return t, nil
}
