package jsonschema

// dependenciesConsumer compiles dependentRequired, dependentSchemas, and
// the legacy draft-04/06 "dependencies" keyword (whose per-key value is
// either an array of required property names or a schema) together.
func dependenciesConsumer() *KeywordConsumer {
	return &KeywordConsumer{
		Name: "dependencies",
		Keys: []string{"dependentRequired", "dependentSchemas", "dependencies"},
		Compile: func(def *object, ctx *compileContext) (Validator, *SchemaError) {
			required := map[string][]string{}
			schemas := map[string]*Schema{}

			if raw, ok := def.Get("dependentRequired"); ok {
				dict, ok := raw.(*object)
				if !ok {
					return nil, newSchemaError(ErrMalformed, "malformed_schema", ctx.fragmentPath(), "dependentRequired must be an object")
				}
				for _, key := range dict.Keys() {
					v, _ := dict.Get(key)
					arr, ok := v.([]any)
					if !ok {
						return nil, newSchemaError(ErrMalformed, "malformed_schema", ctx.fragmentPath(), "dependentRequired values must be arrays of strings")
					}
					for _, elem := range arr {
						if s, ok := elem.(string); ok {
							required[key] = append(required[key], s)
						}
					}
				}
			}

			if raw, ok := def.Get("dependentSchemas"); ok {
				dict, ok := raw.(*object)
				if !ok {
					return nil, newSchemaError(ErrMalformed, "malformed_schema", ctx.fragmentPath(), "dependentSchemas must be an object")
				}
				for _, key := range dict.Keys() {
					if child, ok := lookupNamed(ctx.children, "dependentSchemas", key); ok {
						schemas[key] = child
					}
				}
			}

			if raw, ok := def.Get("dependencies"); ok {
				dict, ok := raw.(*object)
				if !ok {
					return nil, newSchemaError(ErrMalformed, "malformed_schema", ctx.fragmentPath(), "dependencies must be an object")
				}
				for _, key := range dict.Keys() {
					v, _ := dict.Get(key)
					switch val := v.(type) {
					case []any:
						for _, elem := range val {
							if s, ok := elem.(string); ok {
								required[key] = append(required[key], s)
							}
						}
					case *object, bool:
						_ = val
						if child, ok := lookupNamed(ctx.children, "dependencies", key); ok {
							schemas[key] = child
						}
					}
				}
			}

			if len(required) == 0 && len(schemas) == 0 {
				return nil, nil
			}

			return ValidatorFunc(func(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
				obj, ok := instance.(*object)
				if !ok {
					return
				}
				for key, deps := range required {
					if !obj.Has(key) {
						continue
					}
					for _, dep := range deps {
						if !obj.Has(dep) {
							state.AddError(newTypedError("dependent_required", path, "Property {property} requires {dependency} to also be present", map[string]any{"property": key, "dependency": dep}))
						}
					}
				}
				for key, schema := range schemas {
					if !obj.Has(key) {
						continue
					}
					sub := runValidators(schema, obj, path, scope, ds)
					state.Append(sub)
					if !sub.IsValid() {
						state.AddError(newTypedError("dependent_schemas", path, "Property {property} requires the object to also match an additional schema", map[string]any{"property": key}))
					}
				}
			}), nil
		},
	}
}
