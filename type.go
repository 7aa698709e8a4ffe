package jsonschema

import "strings"

// typeConsumer compiles the "type" keyword: a string or array of strings
// naming the JSON types the instance may take. "integer" matches any
// number with a zero fractional part; "number" accepts integers too.
func typeConsumer() *KeywordConsumer {
	return &KeywordConsumer{
		Name: "type",
		Keys: []string{"type"},
		Compile: func(def *object, ctx *compileContext) (Validator, *SchemaError) {
			raw, ok := def.Get("type")
			if !ok {
				return nil, nil
			}
			var types []string
			switch v := raw.(type) {
			case string:
				types = []string{v}
			case []any:
				for _, elem := range v {
					if s, ok := elem.(string); ok {
						types = append(types, s)
					}
				}
			default:
				return nil, newSchemaError(ErrMalformed, "malformed_schema", ctx.fragmentPath(), "type must be a string or array of strings")
			}
			if len(types) == 0 {
				return nil, nil
			}

			return ValidatorFunc(func(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
				instanceType := getDataType(instance)
				for _, t := range types {
					if t == instanceType || (t == "number" && instanceType == "integer") {
						return
					}
				}
				state.AddError(newTypedError("wrong_type", path, "Value must be of type {type}", map[string]any{
					"type":     strings.Join(types, ", "),
					"received": instanceType,
				}))
			}), nil
		},
	}
}
