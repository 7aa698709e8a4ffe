package jsonschema

import (
	"fmt"
	"strings"

	i18n "github.com/kaptinlin/go-i18n"
)

// TypedError is the runtime (validation-time) error shape, §3/§4.1. Codes
// are stable and form the library's compatibility contract; title/detail
// are human-readable and may be localized.
type TypedError struct {
	Code   string
	Title  string
	Path   string
	Detail string
	Params map[string]any
	// States carries per-branch ValidationStates for composition keywords
	// (anyOf, oneOf, not) so callers can explain every failed branch.
	States []*ValidationState
}

func newTypedError(code, path, title string, params map[string]any) *TypedError {
	return &TypedError{Code: code, Path: path, Title: title, Params: params}
}

func (e *TypedError) Error() string {
	return fmt.Sprintf("%s at %q: %s", e.Code, e.Path, replace(e.Title, e.Params))
}

// Localize renders the error's title through an i18n bundle, falling back to
// the untranslated template when no localizer is given.
func (e *TypedError) Localize(localizer *i18n.Localizer) string {
	if localizer == nil {
		return replace(e.Title, e.Params)
	}
	return localizer.Get(e.Code, i18n.Vars(e.Params))
}

// replace substitutes "{key}" placeholders in a template with parameter
// values, following the teacher's utils.go idiom.
func replace(template string, params map[string]any) string {
	for key, value := range params {
		template = strings.ReplaceAll(template, "{"+key+"}", fmt.Sprint(value))
	}
	return template
}

// ValidationState is the aggregated result of one validate() call: the
// errors produced, any schema URIs referenced but not found, an optional
// replacement instance (defaults applied), and the set of instance paths
// visited by sibling validators (consulted only by unevaluatedItems /
// unevaluatedProperties).
type ValidationState struct {
	Errors         []*TypedError
	Missing        map[string]struct{}
	Replacement    any
	HasReplacement bool
	Evaluated      map[string]struct{}
}

// NewValidationState returns an empty, ready-to-use state.
func NewValidationState() *ValidationState {
	return &ValidationState{
		Missing:   make(map[string]struct{}),
		Evaluated: make(map[string]struct{}),
	}
}

// IsValid reports whether no errors were recorded.
func (s *ValidationState) IsValid() bool {
	return len(s.Errors) == 0
}

// IsStrictlyValid additionally requires that no reference went unresolved.
func (s *ValidationState) IsStrictlyValid() bool {
	return s.IsValid() && len(s.Missing) == 0
}

// AddError records one typed error.
func (s *ValidationState) AddError(e *TypedError) {
	s.Errors = append(s.Errors, e)
}

// AddMissing records a referenced but unresolved URI.
func (s *ValidationState) AddMissing(uri string) {
	s.Missing[uri] = struct{}{}
}

// MarkEvaluated records that the sibling validator currently running
// examined the instance at path (used for the unevaluatedItems/Properties
// ledger, §4.4 in SPEC_FULL).
func (s *ValidationState) MarkEvaluated(path string) {
	s.Evaluated[path] = struct{}{}
}

// IsEvaluated reports whether some earlier sibling validator already marked
// path as evaluated.
func (s *ValidationState) IsEvaluated(path string) bool {
	_, ok := s.Evaluated[path]
	return ok
}

// SetReplacement installs or overwrites the pending replacement instance.
func (s *ValidationState) SetReplacement(v any) {
	s.Replacement = v
	s.HasReplacement = true
}

// Append merges other into s: concatenates errors, unions missing
// references and evaluated paths, and, if other carries a replacement,
// overwrites s.Replacement — matching §4.1's append() contract.
func (s *ValidationState) Append(other *ValidationState) {
	if other == nil {
		return
	}
	s.Errors = append(s.Errors, other.Errors...)
	for uri := range other.Missing {
		s.Missing[uri] = struct{}{}
	}
	for path := range other.Evaluated {
		s.Evaluated[path] = struct{}{}
	}
	if other.HasReplacement {
		s.Replacement = other.Replacement
		s.HasReplacement = true
	}
}

// mergeEvaluated unions other's evaluated-path set into s without touching
// errors, missing, or replacement — used by composition keywords (allOf,
// anyOf, oneOf) to let a passing branch's evaluated properties/items count
// toward unevaluatedProperties/unevaluatedItems even though the branch's
// own errors and replacement are handled separately.
func (s *ValidationState) mergeEvaluated(other *ValidationState) {
	if other == nil {
		return
	}
	for path := range other.Evaluated {
		s.Evaluated[path] = struct{}{}
	}
}

// ToWire renders the canonical on-wire shape described in §6.
func (s *ValidationState) ToWire() map[string]any {
	errs := make([]map[string]any, 0, len(s.Errors))
	for _, e := range s.Errors {
		entry := map[string]any{
			"code":  e.Code,
			"title": replace(e.Title, e.Params),
			"path":  e.Path,
		}
		if e.Detail != "" {
			entry["detail"] = e.Detail
		}
		if len(e.States) > 0 {
			states := make([]map[string]any, 0, len(e.States))
			for _, st := range e.States {
				states = append(states, st.ToWire())
			}
			entry["states"] = states
		}
		errs = append(errs, entry)
	}
	missing := make([]string, 0, len(s.Missing))
	for uri := range s.Missing {
		missing = append(missing, uri)
	}
	return map[string]any{"errors": errs, "missing": missing}
}
