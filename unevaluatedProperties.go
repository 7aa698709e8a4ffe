package jsonschema

import "sort"

// unevaluatedPropertiesConsumer compiles "unevaluatedProperties", placed
// last for the same reason as unevaluatedItemsConsumer.
func unevaluatedPropertiesConsumer() *KeywordConsumer {
	return &KeywordConsumer{
		Name:      "unevaluatedProperties",
		Keys:      []string{"unevaluatedProperties"},
		PlaceLast: true,
		Compile: func(def *object, ctx *compileContext) (Validator, *SchemaError) {
			if !def.Has("unevaluatedProperties") || ctx.children == nil {
				return nil, nil
			}
			schema, ok := ctx.children.Get(encodeToken("unevaluatedProperties"))
			if !ok {
				return nil, nil
			}

			return ValidatorFunc(func(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
				obj, ok := instance.(*object)
				if !ok {
					return
				}
				if schema.Boolean != nil {
					if *schema.Boolean {
						for _, name := range obj.Keys() {
							state.MarkEvaluated(appendPath(path, name))
						}
						return
					}
					var bad []string
					for _, name := range obj.Keys() {
						if !state.IsEvaluated(appendPath(path, name)) {
							bad = append(bad, name)
						}
					}
					if len(bad) > 0 {
						sort.Strings(bad)
						state.AddError(newTypedError("unevaluated_properties", path, "Unevaluated properties are not allowed", map[string]any{"properties": bad}))
					}
					return
				}

				var bad []string
				for _, name := range obj.Keys() {
					propPath := appendPath(path, name)
					if state.IsEvaluated(propPath) {
						continue
					}
					value, _ := obj.Get(name)
					sub := runValidators(schema, value, propPath, scope, ds)
					if sub.IsValid() {
						state.MarkEvaluated(propPath)
					} else {
						bad = append(bad, name)
					}
				}
				if len(bad) > 0 {
					sort.Strings(bad)
					state.AddError(newTypedError("unevaluated_property_mismatch", path, "Unevaluated property does not match the schema", map[string]any{"properties": bad}))
				}
			}), nil
		},
	}
}
