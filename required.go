package jsonschema

// objectCountsConsumer compiles maxProperties, minProperties, and required
// together: all three apply only to object instances and need no compiled
// sub-schemas, just the raw keyword values.
func objectCountsConsumer() *KeywordConsumer {
	return &KeywordConsumer{
		Name: "objectCounts",
		Keys: []string{"maxProperties", "minProperties", "required"},
		Compile: func(def *object, ctx *compileContext) (Validator, *SchemaError) {
			maxProperties, hasMax, err := intField(def, "maxProperties", ctx)
			if err != nil {
				return nil, err
			}
			minProperties, hasMin, err := intField(def, "minProperties", ctx)
			if err != nil {
				return nil, err
			}

			var required []string
			if raw, ok := def.Get("required"); ok {
				arr, ok := raw.([]any)
				if !ok {
					return nil, newSchemaError(ErrMalformed, "malformed_schema", ctx.fragmentPath(), "required must be an array of strings")
				}
				for _, elem := range arr {
					if s, ok := elem.(string); ok {
						required = append(required, s)
					}
				}
			}

			if !hasMax && !hasMin && len(required) == 0 {
				return nil, nil
			}

			return ValidatorFunc(func(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
				obj, ok := instance.(*object)
				if !ok {
					return
				}
				if hasMax && obj.Len() > maxProperties {
					state.AddError(newTypedError("max_properties", path, "Object must have at most {maxProperties} properties", map[string]any{"maxProperties": maxProperties, "count": obj.Len()}))
				}
				if hasMin && obj.Len() < minProperties {
					state.AddError(newTypedError("min_properties", path, "Object must have at least {minProperties} properties", map[string]any{"minProperties": minProperties, "count": obj.Len()}))
				}
				for _, name := range required {
					if !obj.Has(name) {
						state.AddError(newTypedError("required", path, "Missing required property {property}", map[string]any{"property": name}))
					}
				}
			}), nil
		},
	}
}
