package form

import (
	"errors"
	"fmt"
)

type FieldType string

const (
	FieldText        FieldType = "text"
	FieldEmail       FieldType = "email"
	FieldNumber      FieldType = "number"
	FieldTextarea    FieldType = "textarea"
	FieldSelect      FieldType = "select"
	FieldMultiSelect FieldType = "multiselect"
	FieldDisclosure  FieldType = "disclosure"
	FieldLinks       FieldType = "links"
	FieldEmails      FieldType = "emails"
	FieldCheckbox    FieldType = "checkbox"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldEmail, FieldNumber, FieldTextarea, FieldSelect,
		FieldMultiSelect, FieldDisclosure, FieldLinks, FieldEmails, FieldCheckbox:
		return true
	}
	return false
}

// IsList reports whether values of this type are string lists.
func (t FieldType) IsList() bool {
	return t == FieldMultiSelect || t == FieldLinks || t == FieldEmails
}

type Variant string

const (
	VariantInfo    Variant = "info"
	VariantWarning Variant = "warning"
	VariantSuccess Variant = "success"
)

// NotSureOption is offered by multiselect fields with IncludeNotSure.
const NotSureOption = "I'm not sure"

// Field describes one input of a form. Rules is a validator tag expression
// applied to non-empty values; Message replaces the generated error text.
type Field struct {
	Name           string    `json:"name" yaml:"name"`
	Label          string    `json:"label" yaml:"label"`
	Type           FieldType `json:"type" yaml:"type"`
	Placeholder    string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options        []string  `json:"options,omitempty" yaml:"options,omitempty"`
	Required       bool      `json:"required,omitempty" yaml:"required,omitempty"`
	AllowCustom    bool      `json:"allowCustom,omitempty" yaml:"allowCustom,omitempty"`
	IncludeNotSure bool      `json:"includeNotSure,omitempty" yaml:"includeNotSure,omitempty"`
	Help           []string  `json:"help,omitempty" yaml:"help,omitempty"`
	Examples       []string  `json:"examples,omitempty" yaml:"examples,omitempty"`
	AIAssistance   bool      `json:"aiAssistance,omitempty" yaml:"aiAssistance,omitempty"`
	Content        []string  `json:"content,omitempty" yaml:"content,omitempty"`
	Variant        Variant   `json:"variant,omitempty" yaml:"variant,omitempty"`
	Rules          string    `json:"rules,omitempty" yaml:"rules,omitempty"`
	Message        string    `json:"message,omitempty" yaml:"message,omitempty"`
}

// AllowedOptions returns the options a user may pick without AllowCustom.
func (f Field) AllowedOptions() []string {
	if !f.IncludeNotSure {
		return f.Options
	}
	out := make([]string, 0, len(f.Options)+1)
	out = append(out, f.Options...)
	return append(out, NotSureOption)
}

type Definition struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Fields      []Field `json:"fields" yaml:"fields"`
}

var ErrInvalidDefinition = errors.New("invalid form definition")

// Field returns the named field.
func (d *Definition) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldNames returns the names of the input fields in form order.
func (d *Definition) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		if f.Type != FieldDisclosure {
			names = append(names, f.Name)
		}
	}
	return names
}

// ValueFieldCount counts the fields that carry user input.
func (d *Definition) ValueFieldCount() int {
	n := 0
	for _, f := range d.Fields {
		if f.Type != FieldDisclosure {
			n++
		}
	}
	return n
}

// Check validates the structure of the definition itself.
func (d *Definition) Check() error {
	if d.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidDefinition)
	}
	if d.Title == "" {
		return fmt.Errorf("%w: form %q has no title", ErrInvalidDefinition, d.ID)
	}
	if len(d.Fields) == 0 {
		return fmt.Errorf("%w: form %q has no fields", ErrInvalidDefinition, d.ID)
	}
	seen := make(map[string]struct{}, len(d.Fields))
	for i, f := range d.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: form %q field #%d has no name", ErrInvalidDefinition, d.ID, i)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: form %q has duplicate field %q", ErrInvalidDefinition, d.ID, f.Name)
		}
		seen[f.Name] = struct{}{}

		if !f.Type.Valid() {
			return fmt.Errorf("%w: field %q has unknown type %q", ErrInvalidDefinition, f.Name, f.Type)
		}
		switch f.Type {
		case FieldSelect, FieldMultiSelect:
			if len(f.Options) == 0 && !f.AllowCustom {
				return fmt.Errorf("%w: field %q needs options", ErrInvalidDefinition, f.Name)
			}
		case FieldDisclosure:
			if len(f.Content) == 0 {
				return fmt.Errorf("%w: disclosure %q has no content", ErrInvalidDefinition, f.Name)
			}
		}
		if f.Rules != "" {
			if err := checkRules(f.Rules); err != nil {
				return fmt.Errorf("%w: field %q: %v", ErrInvalidDefinition, f.Name, err)
			}
		}
	}
	return nil
}
