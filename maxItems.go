package jsonschema

// arrayCountsConsumer compiles maxItems, minItems, and uniqueItems
// together: all three apply only to array instances.
func arrayCountsConsumer() *KeywordConsumer {
	return &KeywordConsumer{
		Name: "arrayCounts",
		Keys: []string{"maxItems", "minItems", "uniqueItems"},
		Compile: func(def *object, ctx *compileContext) (Validator, *SchemaError) {
			maxItems, hasMax, err := intField(def, "maxItems", ctx)
			if err != nil {
				return nil, err
			}
			minItems, hasMin, err := intField(def, "minItems", ctx)
			if err != nil {
				return nil, err
			}
			unique := false
			if raw, ok := def.Get("uniqueItems"); ok {
				if b, ok := raw.(bool); ok {
					unique = b
				}
			}

			if !hasMax && !hasMin && !unique {
				return nil, nil
			}

			return ValidatorFunc(func(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
				array, ok := instance.([]any)
				if !ok {
					return
				}
				if hasMax && len(array) > maxItems {
					state.AddError(newTypedError("max_items", path, "Array must have at most {maxItems} items", map[string]any{"maxItems": maxItems, "count": len(array)}))
				}
				if hasMin && len(array) < minItems {
					state.AddError(newTypedError("min_items", path, "Array must have at least {minItems} items", map[string]any{"minItems": minItems, "count": len(array)}))
				}
				if unique {
					for i := 0; i < len(array); i++ {
						for j := i + 1; j < len(array); j++ {
							if deepEqual(array[i], array[j]) {
								state.AddError(newTypedError("unique_items", path, "Array items must be unique", map[string]any{"first": i, "second": j}))
								return
							}
						}
					}
				}
			}), nil
		},
	}
}
