package jsonschema

import "strconv"

// unevaluatedItemsConsumer compiles "unevaluatedItems". Placed last in the
// validator list (PlaceLast) so state.IsEvaluated reflects every sibling
// keyword — items, prefixItems, contains, composition branches — that ran
// before it (§4.3's "place_last" ordering hint, mirrored from the
// original implementation's UnevaluatedItems keyword).
func unevaluatedItemsConsumer() *KeywordConsumer {
	return &KeywordConsumer{
		Name:      "unevaluatedItems",
		Keys:      []string{"unevaluatedItems"},
		PlaceLast: true,
		Compile: func(def *object, ctx *compileContext) (Validator, *SchemaError) {
			if !def.Has("unevaluatedItems") || ctx.children == nil {
				return nil, nil
			}
			schema, ok := ctx.children.Get(encodeToken("unevaluatedItems"))
			if !ok {
				return nil, nil
			}

			return ValidatorFunc(func(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
				array, ok := instance.([]any)
				if !ok {
					return
				}
				if schema.Boolean != nil {
					if *schema.Boolean {
						for i := range array {
							state.MarkEvaluated(appendPath(path, strconv.Itoa(i)))
						}
						return
					}
					var bad []string
					for i := range array {
						itemPath := appendPath(path, strconv.Itoa(i))
						if !state.IsEvaluated(itemPath) {
							bad = append(bad, strconv.Itoa(i))
						}
					}
					if len(bad) > 0 {
						state.AddError(newTypedError("unevaluated_items", path, "Unevaluated array items are not allowed", map[string]any{"indexes": bad}))
					}
					return
				}

				var bad []string
				for i, elem := range array {
					itemPath := appendPath(path, strconv.Itoa(i))
					if state.IsEvaluated(itemPath) {
						continue
					}
					sub := runValidators(schema, elem, itemPath, scope, ds)
					if sub.IsValid() {
						state.MarkEvaluated(itemPath)
					} else {
						bad = append(bad, strconv.Itoa(i))
					}
				}
				if len(bad) > 0 {
					state.AddError(newTypedError("unevaluated_item_mismatch", path, "Unevaluated array item does not match the schema", map[string]any{"indexes": bad}))
				}
			}), nil
		},
	}
}
