package jsonschema

// numericConsumer compiles multipleOf, maximum, minimum, exclusiveMaximum,
// and exclusiveMinimum together: all five only apply to numeric instances
// and share the same exact-rational comparison machinery (rat.go).
func numericConsumer() *KeywordConsumer {
	return &KeywordConsumer{
		Name: "numeric",
		Keys: []string{"multipleOf", "maximum", "minimum", "exclusiveMaximum", "exclusiveMinimum"},
		Compile: func(def *object, ctx *compileContext) (Validator, *SchemaError) {
			multipleOf, hasMultipleOf, err := ratField(def, "multipleOf", ctx)
			if err != nil {
				return nil, err
			}
			maximum, hasMaximum, err := ratField(def, "maximum", ctx)
			if err != nil {
				return nil, err
			}
			minimum, hasMinimum, err := ratField(def, "minimum", ctx)
			if err != nil {
				return nil, err
			}

			// exclusiveMaximum/exclusiveMinimum are numeric in drafts 6+
			// but boolean modifiers on maximum/minimum in draft-04; accept
			// both shapes.
			var exclusiveMaximum *Rat
			exclusiveMaxIsBool := false
			if raw, ok := def.Get("exclusiveMaximum"); ok {
				if b, ok := raw.(bool); ok {
					exclusiveMaxIsBool = b
				} else if r, ok := NewRat(raw); ok {
					exclusiveMaximum = r
				}
			}
			var exclusiveMinimum *Rat
			exclusiveMinIsBool := false
			if raw, ok := def.Get("exclusiveMinimum"); ok {
				if b, ok := raw.(bool); ok {
					exclusiveMinIsBool = b
				} else if r, ok := NewRat(raw); ok {
					exclusiveMinimum = r
				}
			}

			if !hasMultipleOf && !hasMaximum && !hasMinimum && exclusiveMaximum == nil && exclusiveMinimum == nil && !exclusiveMaxIsBool && !exclusiveMinIsBool {
				return nil, nil
			}

			return ValidatorFunc(func(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
				value, ok := NewRat(instance)
				if !ok {
					return
				}

				if hasMultipleOf {
					if multipleOf.Sign() <= 0 {
						state.AddError(newTypedError("invalid_numeric", path, "Value is not a valid number", map[string]any{"multipleOf": FormatRat(multipleOf)}))
					} else if !value.IsMultipleOf(multipleOf) {
						state.AddError(newTypedError("multiple_of", path, "Value must be a multiple of {multipleOf}", map[string]any{"multipleOf": FormatRat(multipleOf)}))
					}
				}

				if hasMaximum {
					if exclusiveMaxIsBool && value.Cmp(maximum.Rat) >= 0 {
						state.AddError(newTypedError("exclusive_maximum", path, "Value must be less than {maximum}", map[string]any{"maximum": FormatRat(maximum)}))
					} else if !exclusiveMaxIsBool && value.Cmp(maximum.Rat) > 0 {
						state.AddError(newTypedError("maximum", path, "Value must be less than or equal to {maximum}", map[string]any{"maximum": FormatRat(maximum)}))
					}
				}
				if hasMinimum {
					if exclusiveMinIsBool && value.Cmp(minimum.Rat) <= 0 {
						state.AddError(newTypedError("exclusive_minimum", path, "Value must be greater than {minimum}", map[string]any{"minimum": FormatRat(minimum)}))
					} else if !exclusiveMinIsBool && value.Cmp(minimum.Rat) < 0 {
						state.AddError(newTypedError("minimum", path, "Value must be greater than or equal to {minimum}", map[string]any{"minimum": FormatRat(minimum)}))
					}
				}

				if exclusiveMaximum != nil && value.Cmp(exclusiveMaximum.Rat) >= 0 {
					state.AddError(newTypedError("exclusive_maximum", path, "Value must be less than {maximum}", map[string]any{"maximum": FormatRat(exclusiveMaximum)}))
				}
				if exclusiveMinimum != nil && value.Cmp(exclusiveMinimum.Rat) <= 0 {
					state.AddError(newTypedError("exclusive_minimum", path, "Value must be greater than {minimum}", map[string]any{"minimum": FormatRat(exclusiveMinimum)}))
				}
			}), nil
		},
	}
}

// ratField reads a numeric-literal field as a *Rat.
func ratField(def *object, key string, ctx *compileContext) (*Rat, bool, *SchemaError) {
	raw, ok := def.Get(key)
	if !ok {
		return nil, false, nil
	}
	r, ok := NewRat(raw)
	if !ok {
		return nil, false, newSchemaError(ErrMalformed, "malformed_schema", ctx.fragmentPath(), key+" must be a number")
	}
	return r, true, nil
}
