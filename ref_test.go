package jsonschema

import "testing"

func TestRefSiblingsIgnoredInDraft04(t *testing.T) {
	schema := `{
		"$schema": "http://json-schema.org/draft-04/schema#",
		"$defs": {"str": {"type": "string"}},
		"$ref": "#/$defs/str",
		"minLength": 100
	}`
	state := mustValidate(t, schema, `"short"`)
	if !state.IsValid() {
		t.Errorf("expected valid: in draft-04 $ref is exclusive and minLength must be ignored, got errors=%v", state.Errors)
	}
}

func TestRefSiblingsEvaluatedInLatestDialect(t *testing.T) {
	schema := `{
		"$defs": {"str": {"type": "string"}},
		"$ref": "#/$defs/str",
		"minLength": 100
	}`
	state := mustValidate(t, schema, `"short"`)
	if state.IsValid() {
		t.Errorf("expected invalid: in 2019-09+ dialects $ref siblings are evaluated alongside it")
	}
}

func TestRefToExternalDocument(t *testing.T) {
	scope := NewScope()
	if _, err := scope.Compile([]byte(`{"$id": "https://example.com/positive.json", "minimum": 0}`)); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	ss := mustCompile(t, scope, `{"$ref": "https://example.com/positive.json"}`)

	state := ss.Validate(mustDecode(t, `5`))
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = ss.Validate(mustDecode(t, `-5`))
	if state.IsValid() {
		t.Errorf("expected invalid: referenced schema requires minimum 0")
	}
}

func TestRefToUnresolvableURIIsReportedAsMissing(t *testing.T) {
	scope := NewScope()
	ss := mustCompile(t, scope, `{"$ref": "https://example.com/does-not-exist.json"}`)
	state := ss.Validate(mustDecode(t, `5`))
	if len(state.Missing) == 0 {
		t.Errorf("expected the unresolved $ref to be recorded as missing")
	}
}

func TestDynamicRefOutermostWins(t *testing.T) {
	scope := NewScope()
	if _, err := scope.Compile([]byte(`{
		"$id": "https://example.com/base.json",
		"$defs": {
			"itemType": {"$dynamicAnchor": "itemType", "type": "string"}
		},
		"items": {"$dynamicRef": "#itemType"}
	}`)); err != nil {
		t.Fatalf("compile base schema: %v", err)
	}
	extended := mustCompile(t, scope, `{
		"$id": "https://example.com/extended.json",
		"$ref": "https://example.com/base.json",
		"$defs": {
			"itemType": {"$dynamicAnchor": "itemType", "type": "integer"}
		}
	}`)

	// Validating through extended.json pushes extended then base onto the
	// dynamic scope stack; base's $dynamicRef must resolve to extended's
	// redefinition (outermost wins), not base's own lexical anchor.
	state := extended.Validate(mustDecode(t, `[1, 2, 3]`))
	if !state.IsValid() {
		t.Errorf("expected valid: outermost itemType is integer, got errors=%v", state.Errors)
	}
	state = extended.Validate(mustDecode(t, `["a", "b"]`))
	if state.IsValid() {
		t.Errorf("expected invalid: outermost itemType (integer) should win over base's own string anchor")
	}

	// Validating base.json directly, with no outer redefinition, falls back
	// to its own anchor.
	base, ok := scope.Resolve("https://example.com/base.json")
	if !ok {
		t.Fatalf("expected base.json to be resolvable")
	}
	state = base.Validate(mustDecode(t, `["a", "b"]`))
	if !state.IsValid() {
		t.Errorf("expected valid: base's own itemType is string when validated standalone, got errors=%v", state.Errors)
	}
}
