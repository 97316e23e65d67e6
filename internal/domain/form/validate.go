package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Normalized holds the cleaned values of a submission keyed by field name.
type Normalized map[string]any

// FieldErrors maps a field name to its error messages.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	for _, m := range e[field] {
		if m == msg {
			return
		}
	}
	e[field] = append(e[field], msg)
}

// Err returns nil when there are no errors.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return &ValidationError{Fields: e}
}

type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

// AsValidationError unwraps a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsEmail reports whether s passes the email rule.
func IsEmail(s string) bool {
	return getValidator().Var(s, "email") == nil
}

func checkRules(rules string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("bad rules %q: %v", rules, r)
		}
	}()
	// Var panics on unknown tags; the value itself is irrelevant here.
	_ = getValidator().Var("", rules)
	return nil
}

// Validate checks values against every input field of the definition.
// Unknown keys are dropped and disclosures are skipped.
func (d *Definition) Validate(values map[string]any) (Normalized, FieldErrors) {
	out := make(Normalized, len(d.Fields))
	errs := make(FieldErrors)
	for _, f := range d.Fields {
		raw, present := values[f.Name]
		if !present {
			raw = nil
		}
		switch {
		case f.Type == FieldDisclosure:
			continue
		case f.Type == FieldCheckbox:
			validateCheckbox(f, raw, out, errs)
		case f.Type.IsList():
			validateList(f, raw, out, errs)
		default:
			validateScalar(f, raw, out, errs)
		}
	}
	return out, errs
}

func validateScalar(f Field, raw any, out Normalized, errs FieldErrors) {
	s, ok := scalarString(f, raw)
	if !ok {
		errs.Add(f.Name, f.messageFor("type", ""))
		return
	}
	s = strings.TrimSpace(s)
	out[f.Name] = s
	if s == "" {
		if f.Required {
			errs.Add(f.Name, f.messageFor("required", ""))
		}
		return
	}

	switch f.Type {
	case FieldEmail:
		applyRule(f, s, "email", errs)
	case FieldNumber:
		applyRule(f, s, "numeric", errs)
	case FieldSelect:
		if !f.AllowCustom && len(f.Options) > 0 && !contains(f.AllowedOptions(), s) {
			errs.Add(f.Name, f.messageFor("oneof", ""))
		}
	}
	if f.Rules != "" {
		applyRule(f, s, f.Rules, errs)
	}
}

func scalarString(f Field, raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case json.Number:
		return v.String(), f.Type == FieldNumber
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), f.Type == FieldNumber
	case int:
		return strconv.Itoa(v), f.Type == FieldNumber
	}
	return "", false
}

func validateList(f Field, raw any, out Normalized, errs FieldErrors) {
	items, ok := stringList(raw)
	if !ok {
		errs.Add(f.Name, f.messageFor("type", ""))
		return
	}
	if f.Type == FieldLinks {
		for i, item := range items {
			items[i] = withScheme(item)
		}
		items = dedupe(items)
	}
	out[f.Name] = items
	if len(items) == 0 {
		if f.Required {
			errs.Add(f.Name, f.messageFor("required", ""))
		}
		return
	}

	for _, item := range items {
		switch f.Type {
		case FieldEmails:
			if getValidator().Var(item, "email") != nil {
				errs.Add(f.Name, f.messageFor("email", item))
			}
		case FieldLinks:
			if getValidator().Var(item, "url") != nil {
				errs.Add(f.Name, f.messageFor("url", item))
			}
		case FieldMultiSelect:
			if !f.AllowCustom && !contains(f.AllowedOptions(), item) {
				errs.Add(f.Name, f.messageFor("oneof", item))
			}
		}
	}
}

// stringList accepts a JSON array of strings or a single string.
func stringList(raw any) ([]string, bool) {
	var in []string
	switch v := raw.(type) {
	case nil:
	case string:
		in = []string{v}
	case []string:
		in = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			in = append(in, s)
		}
	default:
		return nil, false
	}
	trimmed := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			trimmed = append(trimmed, s)
		}
	}
	return dedupe(trimmed), true
}

func validateCheckbox(f Field, raw any, out Normalized, errs FieldErrors) {
	var checked bool
	switch v := raw.(type) {
	case nil:
	case bool:
		checked = v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs.Add(f.Name, f.messageFor("type", ""))
			return
		}
		checked = b
	default:
		errs.Add(f.Name, f.messageFor("type", ""))
		return
	}
	out[f.Name] = checked
	if f.Required && !checked {
		errs.Add(f.Name, f.messageFor("required", ""))
	}
}

func applyRule(f Field, value, rules string, errs FieldErrors) {
	err := getValidator().Var(value, rules)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			errs.Add(f.Name, f.messageFor(fe.Tag(), fe.Param()))
		}
		return
	}
	errs.Add(f.Name, f.messageFor("", ""))
}

// messageFor builds the error text for a failed tag. A field Message wins,
// except for list items where the offending entry is named.
func (f Field) messageFor(tag, param string) string {
	lbl := f.Label
	if lbl == "" {
		lbl = f.Name
	}
	if f.Type.IsList() && param != "" && (tag == "email" || tag == "url" || tag == "oneof") {
		switch tag {
		case "email":
			return fmt.Sprintf("%q is not a valid email address", param)
		case "url":
			return fmt.Sprintf("%q is not a valid URL", param)
		default:
			return fmt.Sprintf("%q is not an allowed option for %s", param, lbl)
		}
	}
	if f.Message != "" {
		return f.Message
	}
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", lbl)
	case "min":
		if f.Type.IsList() {
			return fmt.Sprintf("%s needs at least %s entries", lbl, param)
		}
		return fmt.Sprintf("%s must be at least %s characters", lbl, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", lbl, param)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", lbl)
	case "numeric", "number":
		return fmt.Sprintf("%s must be a number", lbl)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", lbl)
	case "oneof":
		return fmt.Sprintf("%s must be one of the listed options", lbl)
	case "type":
		return fmt.Sprintf("%s has an invalid value", lbl)
	default:
		return fmt.Sprintf("%s is invalid", lbl)
	}
}

func withScheme(link string) string {
	if link == "" || strings.Contains(link, "://") {
		return link
	}
	return "https://" + link
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
