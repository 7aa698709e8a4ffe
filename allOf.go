package jsonschema

import "strconv"

// compositionConsumer compiles allOf, anyOf, oneOf, and not together. Each
// draws its sub-schemas from the already-compiled array-form children
// (§4.5's boolean-schema-array keys); instance-evaluated paths from
// passing branches propagate into the running state so unevaluatedItems
// and unevaluatedProperties see through composition.
func compositionConsumer() *KeywordConsumer {
	return &KeywordConsumer{
		Name: "composition",
		Keys: []string{"allOf", "anyOf", "oneOf", "not"},
		Compile: func(def *object, ctx *compileContext) (Validator, *SchemaError) {
			if ctx.children == nil {
				return nil, nil
			}

			allOf := arraySchemas(ctx.children, def, "allOf")
			anyOf := arraySchemas(ctx.children, def, "anyOf")
			oneOf := arraySchemas(ctx.children, def, "oneOf")

			var not *Schema
			if def.Has("not") {
				not, _ = ctx.children.Get(encodeToken("not"))
			}

			if len(allOf) == 0 && len(anyOf) == 0 && len(oneOf) == 0 && not == nil {
				return nil, nil
			}

			return ValidatorFunc(func(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
				if len(allOf) > 0 {
					var bad []string
					var branches []*ValidationState
					for i, s := range allOf {
						sub := runValidators(s, instance, path, scope, ds)
						if !sub.IsValid() {
							bad = append(bad, strconv.Itoa(i))
							branches = append(branches, sub)
						} else {
							state.mergeEvaluated(sub)
						}
					}
					if len(bad) > 0 {
						state.AddError(&TypedError{Code: "all_of", Path: path, Title: "Value does not match all of the required schemas", Params: map[string]any{"failed": bad}, States: branches})
					}
				}

				if len(anyOf) > 0 {
					matched := false
					var branches []*ValidationState
					for _, s := range anyOf {
						sub := runValidators(s, instance, path, scope, ds)
						branches = append(branches, sub)
						if sub.IsValid() {
							matched = true
							state.mergeEvaluated(sub)
						}
					}
					if !matched {
						state.AddError(&TypedError{Code: "any_of", Path: path, Title: "Value does not match any of the allowed schemas", States: branches})
					}
				}

				if len(oneOf) > 0 {
					var matchedIdx []int
					var branches []*ValidationState
					for i, s := range oneOf {
						sub := runValidators(s, instance, path, scope, ds)
						branches = append(branches, sub)
						if sub.IsValid() {
							matchedIdx = append(matchedIdx, i)
						}
					}
					if len(matchedIdx) == 1 {
						state.mergeEvaluated(branches[matchedIdx[0]])
					} else {
						state.AddError(&TypedError{Code: "one_of", Path: path, Title: "Value must match exactly one of the given schemas", States: branches})
					}
				}

				if not != nil {
					sub := runValidators(not, instance, path, scope, ds)
					if sub.IsValid() {
						state.AddError(&TypedError{Code: "not", Path: path, Title: "Value must not match the given schema", States: []*ValidationState{sub}})
					}
				}
			}), nil
		},
	}
}

// arraySchemas fetches the compiled sub-schemas for an array-form keyword
// (e.g. "allOf": [...]), stored by buildChildren as flat "key/index" keys.
func arraySchemas(children *childMap, def *object, key string) []*Schema {
	raw, ok := def.Get(key)
	if !ok {
		return nil
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil
	}
	schemas := make([]*Schema, 0, len(arr))
	for i := range arr {
		if child, ok := children.Get(encodeToken(key) + "/" + strconv.Itoa(i)); ok {
			schemas = append(schemas, child)
		}
	}
	return schemas
}
