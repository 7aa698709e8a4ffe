package jsonschema

import "testing"

func TestMultipleOf(t *testing.T) {
	schema := `{"multipleOf": 0.1}`
	state := mustValidate(t, schema, `3`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `3.14`)
	if state.IsValid() {
		t.Errorf("expected invalid: 3.14 is not a multiple of 0.1 under exact rational arithmetic")
	}
}

func TestMinimumMaximum(t *testing.T) {
	schema := `{"minimum": 0, "maximum": 10}`
	state := mustValidate(t, schema, `5`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `-1`)
	if state.IsValid() {
		t.Errorf("expected invalid: below minimum")
	}
	state = mustValidate(t, schema, `11`)
	if state.IsValid() {
		t.Errorf("expected invalid: above maximum")
	}
	state = mustValidate(t, schema, `0`)
	if !state.IsValid() {
		t.Errorf("expected valid: minimum is inclusive")
	}
	state = mustValidate(t, schema, `10`)
	if !state.IsValid() {
		t.Errorf("expected valid: maximum is inclusive")
	}
}

func TestExclusiveMinimumMaximumNumericForm(t *testing.T) {
	schema := `{"exclusiveMinimum": 0, "exclusiveMaximum": 10}`
	state := mustValidate(t, schema, `0`)
	if state.IsValid() {
		t.Errorf("expected invalid: exclusiveMinimum excludes the boundary")
	}
	state = mustValidate(t, schema, `10`)
	if state.IsValid() {
		t.Errorf("expected invalid: exclusiveMaximum excludes the boundary")
	}
	state = mustValidate(t, schema, `5`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
}

func TestExclusiveMinimumMaximumDraft04BooleanForm(t *testing.T) {
	schema := `{"minimum": 0, "exclusiveMinimum": true, "maximum": 10, "exclusiveMaximum": true}`
	state := mustValidate(t, schema, `0`)
	if state.IsValid() {
		t.Errorf("expected invalid: draft-04 boolean exclusiveMinimum excludes the boundary")
	}
	state = mustValidate(t, schema, `5`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
}

func TestConst(t *testing.T) {
	schema := `{"const": 42}`
	state := mustValidate(t, schema, `42`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `42.0`)
	if !state.IsValid() {
		t.Errorf("expected valid: 42 and 42.0 are deep-equal")
	}
	state = mustValidate(t, schema, `43`)
	if state.IsValid() {
		t.Errorf("expected invalid")
	}
}

func TestEnum(t *testing.T) {
	schema := `{"enum": ["red", "green", "blue"]}`
	state := mustValidate(t, schema, `"green"`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `"purple"`)
	if state.IsValid() {
		t.Errorf("expected invalid")
	}
}

func TestStringKeywords(t *testing.T) {
	schema := `{"minLength": 2, "maxLength": 5, "pattern": "^[a-z]+$"}`
	state := mustValidate(t, schema, `"abc"`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `"a"`)
	if state.IsValid() {
		t.Errorf("expected invalid: below minLength")
	}
	state = mustValidate(t, schema, `"abcdefgh"`)
	if state.IsValid() {
		t.Errorf("expected invalid: above maxLength")
	}
	state = mustValidate(t, schema, `"ABC"`)
	if state.IsValid() {
		t.Errorf("expected invalid: pattern requires lowercase")
	}
}

func TestObjectCounts(t *testing.T) {
	schema := `{"minProperties": 1, "maxProperties": 2}`
	state := mustValidate(t, schema, `{"a": 1}`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `{}`)
	if state.IsValid() {
		t.Errorf("expected invalid: below minProperties")
	}
	state = mustValidate(t, schema, `{"a": 1, "b": 2, "c": 3}`)
	if state.IsValid() {
		t.Errorf("expected invalid: above maxProperties")
	}
}
