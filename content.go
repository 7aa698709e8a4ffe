package jsonschema

import (
	"encoding/base64"
	"encoding/xml"

	"github.com/goccy/go-yaml"
)

// seedContentRegistries installs the default contentEncoding decoders and
// contentMediaType parsers a fresh Scope starts with (§4.8).
func seedContentRegistries(s *Scope) {
	s.decoders["base64"] = func(v string) ([]byte, error) {
		return base64.StdEncoding.DecodeString(v)
	}
	s.mediaTypes["application/json"] = func(b []byte) (any, error) {
		return decodeJSON(b)
	}
	s.mediaTypes["application/xml"] = func(b []byte) (any, error) {
		var v any
		if err := xml.Unmarshal(b, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
	s.mediaTypes["application/yaml"] = func(b []byte) (any, error) {
		var v any
		if err := yaml.Unmarshal(b, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// contentConsumer compiles contentEncoding/contentMediaType/contentSchema
// (§4.8). A string instance is decoded, parsed by media type, and — if
// contentSchema is present — validated through the normal driver, with
// failures reported at the /contentSchema evaluation path.
func contentConsumer() *KeywordConsumer {
	return &KeywordConsumer{
		Name: "content",
		Keys: []string{"contentEncoding", "contentMediaType", "contentSchema"},
		Compile: func(def *object, ctx *compileContext) (Validator, *SchemaError) {
			encoding, _ := stringField(def, "contentEncoding")
			mediaType, _ := stringField(def, "contentMediaType")

			var schema *Schema
			if ctx.children != nil {
				schema, _ = ctx.children.Get(encodeToken("contentSchema"))
			}

			if encoding == "" && mediaType == "" && schema == nil {
				return nil, nil
			}

			return ValidatorFunc(func(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
				str, ok := instance.(string)
				if !ok {
					return
				}

				content := []byte(str)
				if encoding != "" {
					decoder, exists := scope.decoders[encoding]
					if !exists {
						state.AddError(newTypedError("unsupported_encoding", path, "Unsupported encoding", map[string]any{"encoding": encoding}))
						return
					}
					decoded, err := decoder(str)
					if err != nil {
						state.AddError(newTypedError("content_mismatch", path, "Value does not match its content schema", map[string]any{"error": err.Error()}))
						return
					}
					content = decoded
				}

				var parsed any = string(content)
				if mediaType != "" {
					parser, exists := scope.mediaTypes[mediaType]
					if !exists {
						state.AddError(newTypedError("unsupported_media_type", path, "Unsupported media type", map[string]any{"mediaType": mediaType}))
						return
					}
					value, err := parser(content)
					if err != nil {
						state.AddError(newTypedError("content_mismatch", path, "Value does not match its content schema", map[string]any{"error": err.Error()}))
						return
					}
					parsed = value
				}

				if schema != nil {
					sub := runValidators(schema, parsed, appendPath(path, "contentSchema"), scope, ds)
					if !sub.IsValid() {
						state.AddError(&TypedError{
							Code:   "content_mismatch",
							Path:   path,
							Title:  "Value does not match its content schema",
							States: []*ValidationState{sub},
						})
					}
				}
			}), nil
		},
	}
}

// stringField reads a string-valued key, returning ("", false) when absent
// or not a string.
func stringField(def *object, key string) (string, bool) {
	v, ok := def.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
