package jsonschema

import "testing"

func TestItemsSingleSchema(t *testing.T) {
	schema := `{"items": {"type": "integer"}}`
	state := mustValidate(t, schema, `[1, 2, 3]`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `[1, "two", 3]`)
	if state.IsValid() {
		t.Errorf("expected invalid: second element is not an integer")
	}
}

func TestItemsTupleWithAdditionalItems(t *testing.T) {
	schema := `{
		"items": [{"type": "string"}, {"type": "integer"}],
		"additionalItems": false
	}`
	state := mustValidate(t, schema, `["ada", 30]`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `["ada", 30, "extra"]`)
	if state.IsValid() {
		t.Errorf("expected invalid: additionalItems:false rejects the trailing element")
	}
}

func TestPrefixItemsWithItemsTail(t *testing.T) {
	schema := `{
		"prefixItems": [{"type": "string"}, {"type": "integer"}],
		"items": {"type": "boolean"}
	}`
	state := mustValidate(t, schema, `["ada", 30, true, false]`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `["ada", 30, "not a bool"]`)
	if state.IsValid() {
		t.Errorf("expected invalid: tail element fails the items schema")
	}
}

func TestContains(t *testing.T) {
	schema := `{"contains": {"const": 5}}`
	state := mustValidate(t, schema, `[1, 5, 9]`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `[1, 2, 9]`)
	if state.IsValid() {
		t.Errorf("expected invalid: no element equals 5")
	}
}

func TestMinMaxContains(t *testing.T) {
	schema := `{"contains": {"type": "integer"}, "minContains": 2, "maxContains": 3}`
	state := mustValidate(t, schema, `[1, 2, "x"]`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `[1, "x", "y"]`)
	if state.IsValid() {
		t.Errorf("expected invalid: only one integer, below minContains")
	}
	state = mustValidate(t, schema, `[1, 2, 3, 4]`)
	if state.IsValid() {
		t.Errorf("expected invalid: four integers exceeds maxContains")
	}
}

func TestArrayCounts(t *testing.T) {
	schema := `{"minItems": 2, "maxItems": 3, "uniqueItems": true}`
	state := mustValidate(t, schema, `[1, 2]`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `[1]`)
	if state.IsValid() {
		t.Errorf("expected invalid: below minItems")
	}
	state = mustValidate(t, schema, `[1, 2, 3, 4]`)
	if state.IsValid() {
		t.Errorf("expected invalid: above maxItems")
	}
	state = mustValidate(t, schema, `[1, 1]`)
	if state.IsValid() {
		t.Errorf("expected invalid: duplicate items")
	}
	state = mustValidate(t, schema, `[1, 1.0]`)
	if state.IsValid() {
		t.Errorf("expected invalid: 1 and 1.0 compare equal under deep-equality, violating uniqueItems")
	}
}

func TestUnevaluatedItems(t *testing.T) {
	schema := `{
		"prefixItems": [{"type": "string"}],
		"unevaluatedItems": false
	}`
	state := mustValidate(t, schema, `["ada"]`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `["ada", "extra"]`)
	if state.IsValid() {
		t.Errorf("expected invalid: trailing element was never evaluated")
	}
}
