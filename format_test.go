package jsonschema

import "testing"

func TestFormatEmail(t *testing.T) {
	schema := `{"type": "string", "format": "email"}`
	state := mustValidate(t, schema, `"user@example.com"`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `"not-an-email"`)
	if state.IsValid() {
		t.Errorf("expected invalid")
	}
}

func TestFormatUUID(t *testing.T) {
	schema := `{"format": "uuid"}`
	state := mustValidate(t, schema, `"550e8400-e29b-41d4-a716-446655440000"`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `"not-a-uuid"`)
	if state.IsValid() {
		t.Errorf("expected invalid")
	}
}

func TestUnknownFormatNeverErrors(t *testing.T) {
	schema := `{"format": "x-no-such-format-registered"}`
	state := mustValidate(t, schema, `"anything at all"`)
	if !state.IsValid() {
		t.Errorf("unregistered format names must never fail validation, got errors=%v", state.Errors)
	}
}

func TestCustomRegisteredFormat(t *testing.T) {
	scope := NewScope()
	scope.RegisterFormat("even-digits", func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return true
		}
		return len(s)%2 == 0
	})
	ss := mustCompile(t, scope, `{"format": "even-digits"}`)

	state := ss.Validate("ab")
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = ss.Validate("abc")
	if state.IsValid() {
		t.Errorf("expected invalid: odd length")
	}
}
