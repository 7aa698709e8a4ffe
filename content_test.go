package jsonschema

import "testing"

func TestContentEncodingAndMediaType(t *testing.T) {
	schema := `{
		"type": "string",
		"contentEncoding": "base64",
		"contentMediaType": "application/json"
	}`
	encoded := `"eyJhIjoxfQ=="` // base64("{\"a\":1}")
	state := mustValidate(t, schema, encoded)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}

	badEncoding := `"not valid base64!!"`
	state = mustValidate(t, schema, badEncoding)
	if state.IsValid() {
		t.Errorf("expected invalid: not valid base64")
	}
}

func TestContentSchema(t *testing.T) {
	schema := `{
		"type": "string",
		"contentMediaType": "application/json",
		"contentSchema": {"type": "object", "required": ["a"]}
	}`
	state := mustValidate(t, schema, `"{\"a\": 1}"`)
	if !state.IsValid() {
		t.Errorf("expected valid, got errors=%v", state.Errors)
	}
	state = mustValidate(t, schema, `"{\"b\": 1}"`)
	if state.IsValid() {
		t.Errorf("expected invalid: decoded content is missing required 'a'")
	}
}

func TestUnsupportedEncodingIsAnError(t *testing.T) {
	schema := `{"type": "string", "contentEncoding": "quoted-nonsense"}`
	state := mustValidate(t, schema, `"anything"`)
	if state.IsValid() {
		t.Errorf("expected invalid: unregistered contentEncoding")
	}
}
