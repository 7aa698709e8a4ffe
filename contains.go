package jsonschema

import "strconv"

// containsConsumer compiles contains, minContains, and maxContains
// together: the array must hold at least minContains (default 1, or 0 if
// minContains is explicitly 0) and at most maxContains elements matching
// the contains schema. Matching elements are marked evaluated for
// unevaluatedItems.
func containsConsumer() *KeywordConsumer {
	return &KeywordConsumer{
		Name: "contains",
		Keys: []string{"contains", "minContains", "maxContains"},
		Compile: func(def *object, ctx *compileContext) (Validator, *SchemaError) {
			if !def.Has("contains") || ctx.children == nil {
				return nil, nil
			}
			schema, ok := ctx.children.Get(encodeToken("contains"))
			if !ok {
				return nil, nil
			}

			minContains := 1
			hasMin := false
			if v, present, err := intField(def, "minContains", ctx); err == nil && present {
				minContains = v
				hasMin = true
			} else if err != nil {
				return nil, err
			}
			_ = hasMin

			maxContains := -1
			if v, present, err := intField(def, "maxContains", ctx); err == nil && present {
				maxContains = v
			} else if err != nil {
				return nil, err
			}

			return ValidatorFunc(func(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
				array, ok := instance.([]any)
				if !ok {
					return
				}
				count := 0
				for i, elem := range array {
					itemPath := appendPath(path, strconv.Itoa(i))
					sub := runValidators(schema, elem, itemPath, scope, ds)
					if sub.IsValid() {
						count++
						state.MarkEvaluated(itemPath)
					}
				}
				if count < minContains {
					state.AddError(newTypedError("contains", path, "Array must contain at least {minContains} items matching the schema", map[string]any{"minContains": minContains, "count": count}))
				}
				if maxContains >= 0 && count > maxContains {
					state.AddError(newTypedError("max_contains", path, "Array must contain at most {maxContains} items matching the schema", map[string]any{"maxContains": maxContains, "count": count}))
				}
			}), nil
		},
	}
}
