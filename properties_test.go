package jsonschema

import "testing"

func TestPropertiesAndAdditionalProperties(t *testing.T) {
	schema := `{
		"properties": {
			"name": {"type": "string"},
			"age": {"type": "integer"}
		},
		"additionalProperties": false
	}`

	tests := []struct {
		name  string
		data  string
		valid bool
	}{
		{"matches declared properties", `{"name": "ada", "age": 30}`, true},
		{"wrong type for declared property", `{"name": "ada", "age": "old"}`, false},
		{"extra property rejected", `{"name": "ada", "extra": 1}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := mustValidate(t, schema, tt.data)
			if state.IsValid() != tt.valid {
				t.Errorf("expected valid=%v, got valid=%v (errors=%v)", tt.valid, state.IsValid(), state.Errors)
			}
		})
	}
}

func TestPatternProperties(t *testing.T) {
	schema := `{
		"patternProperties": {
			"^S_": {"type": "string"},
			"^I_": {"type": "integer"}
		},
		"additionalProperties": false
	}`
	state := mustValidate(t, schema, `{"S_name": "ada", "I_age": 30}`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `{"S_name": 5}`)
	if state.IsValid() {
		t.Errorf("expected invalid: S_name must be a string")
	}
	state = mustValidate(t, schema, `{"unmatched": 1}`)
	if state.IsValid() {
		t.Errorf("expected invalid: unmatched property blocked by additionalProperties:false")
	}
}

func TestPropertiesDefaultSupplyDoesNotMutateOriginal(t *testing.T) {
	scope := NewScope(WithSupplyDefaults())
	ss := mustCompile(t, scope, `{
		"properties": {
			"role": {"default": "guest"}
		}
	}`)

	original, err := DecodeInstance([]byte(`{"name": "ada"}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	state := ss.Validate(original)
	if !state.HasReplacement {
		t.Fatalf("expected a replacement instance carrying the supplied default")
	}
	replaced, ok := state.Replacement.(*object)
	if !ok {
		t.Fatalf("expected replacement to be an object")
	}
	if !replaced.Has("role") {
		t.Errorf("expected replacement to carry the defaulted 'role' property")
	}

	originalObj := original.(*object)
	if originalObj.Has("role") {
		t.Errorf("original instance must not be mutated by default supply (copy-on-write)")
	}
}

func TestRequired(t *testing.T) {
	schema := `{"required": ["name", "age"]}`
	state := mustValidate(t, schema, `{"name": "ada", "age": 30}`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `{"name": "ada"}`)
	if state.IsValid() {
		t.Errorf("expected invalid: missing required 'age'")
	}
}

func TestPropertyNames(t *testing.T) {
	schema := `{"propertyNames": {"pattern": "^[a-z]+$"}}`
	state := mustValidate(t, schema, `{"abc": 1}`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `{"ABC": 1}`)
	if state.IsValid() {
		t.Errorf("expected invalid: uppercase property name does not match pattern")
	}
}

func TestDependentRequiredAndSchemas(t *testing.T) {
	schema := `{
		"dependentRequired": {"creditCard": ["billingAddress"]},
		"dependentSchemas": {
			"creditCard": {"properties": {"billingAddress": {"type": "string"}}}
		}
	}`
	state := mustValidate(t, schema, `{"creditCard": "1234", "billingAddress": "somewhere"}`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `{"creditCard": "1234"}`)
	if state.IsValid() {
		t.Errorf("expected invalid: missing dependent required billingAddress")
	}
}

func TestLegacyDependenciesKeyword(t *testing.T) {
	schema := `{
		"dependencies": {
			"creditCard": ["billingAddress"],
			"newsletter": {"properties": {"email": {"type": "string"}}}
		}
	}`
	state := mustValidate(t, schema, `{"creditCard": "1234", "billingAddress": "somewhere"}`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `{"newsletter": true, "email": 5}`)
	if state.IsValid() {
		t.Errorf("expected invalid: email dependent schema violated")
	}
}
