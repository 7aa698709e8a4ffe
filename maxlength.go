package jsonschema

import (
	"regexp"
	"unicode/utf8"
)

// stringConsumer compiles maxLength, minLength, and pattern: all three only
// apply to string instances and share the rune-counting convention RFC
// 8259 implies ("length" is the number of Unicode characters, not bytes).
func stringConsumer() *KeywordConsumer {
	return &KeywordConsumer{
		Name: "string",
		Keys: []string{"maxLength", "minLength", "pattern"},
		Compile: func(def *object, ctx *compileContext) (Validator, *SchemaError) {
			maxLength, hasMax, err := intField(def, "maxLength", ctx)
			if err != nil {
				return nil, err
			}
			minLength, hasMin, err := intField(def, "minLength", ctx)
			if err != nil {
				return nil, err
			}

			var pattern *regexp.Regexp
			var patternSrc string
			if raw, ok := def.Get("pattern"); ok {
				str, ok := raw.(string)
				if !ok {
					return nil, newSchemaError(ErrMalformed, "malformed_schema", ctx.fragmentPath(), "pattern must be a string")
				}
				re, err := regexp.Compile(str)
				if err != nil {
					return nil, newSchemaError(ErrMalformed, "invalid_pattern", ctx.fragmentPath(), err.Error())
				}
				pattern = re
				patternSrc = str
			}

			if !hasMax && !hasMin && pattern == nil {
				return nil, nil
			}

			return ValidatorFunc(func(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
				str, ok := instance.(string)
				if !ok {
					return
				}
				length := utf8.RuneCountInString(str)
				if hasMax && length > maxLength {
					state.AddError(newTypedError("max_length", path, "String length must be less than or equal to {maxLength}", map[string]any{"maxLength": maxLength, "length": length}))
				}
				if hasMin && length < minLength {
					state.AddError(newTypedError("min_length", path, "String length must be greater than or equal to {minLength}", map[string]any{"minLength": minLength, "length": length}))
				}
				if pattern != nil && !pattern.MatchString(str) {
					state.AddError(newTypedError("pattern", path, "String must match pattern {pattern}", map[string]any{"pattern": patternSrc, "value": str}))
				}
			}), nil
		},
	}
}

// intField reads an integer-valued field; a negative value is not rejected.
func intField(def *object, key string, ctx *compileContext) (int, bool, *SchemaError) {
	raw, ok := def.Get(key)
	if !ok {
		return 0, false, nil
	}
	r, ok := NewRat(raw)
	if !ok || !r.IsInt() {
		return 0, false, newSchemaError(ErrMalformed, "malformed_schema", ctx.fragmentPath(), key+" must be an integer")
	}
	return int(r.Num().Int64() / r.Denom().Int64()), true, nil
}
