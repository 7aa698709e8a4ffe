package jsonschema

import "sort"

// propertyNamesConsumer compiles "propertyNames": every property name of an
// object instance, treated as a string value, must validate against the
// given schema.
func propertyNamesConsumer() *KeywordConsumer {
	return &KeywordConsumer{
		Name: "propertyNames",
		Keys: []string{"propertyNames"},
		Compile: func(def *object, ctx *compileContext) (Validator, *SchemaError) {
			if !def.Has("propertyNames") || ctx.children == nil {
				return nil, nil
			}
			schema, ok := ctx.children.Get(encodeToken("propertyNames"))
			if !ok {
				return nil, nil
			}

			return ValidatorFunc(func(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
				obj, ok := instance.(*object)
				if !ok {
					return
				}
				var invalid []string
				for _, name := range obj.Keys() {
					sub := runValidators(schema, name, appendPath(path, "propertyNames"), scope, ds)
					if !sub.IsValid() {
						invalid = append(invalid, name)
					}
				}
				if len(invalid) > 0 {
					sort.Strings(invalid)
					state.AddError(newTypedError("property_names", path, "Property name {name} does not match the propertyNames schema", map[string]any{"name": invalid}))
				}
			}), nil
		},
	}
}
