package jsonschema

// enumConsumer compiles the "enum" keyword: the instance must equal one of
// a fixed array of allowed values.
func enumConsumer() *KeywordConsumer {
	return &KeywordConsumer{
		Name: "enum",
		Keys: []string{"enum"},
		Compile: func(def *object, ctx *compileContext) (Validator, *SchemaError) {
			raw, ok := def.Get("enum")
			if !ok {
				return nil, nil
			}
			values, ok := raw.([]any)
			if !ok {
				return nil, newSchemaError(ErrMalformed, "malformed_schema", ctx.fragmentPath(), "enum must be an array")
			}

			return ValidatorFunc(func(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
				for _, v := range values {
					if deepEqual(instance, v) {
						return
					}
				}
				state.AddError(newTypedError("enum", path, "Value must be one of the allowed values", nil))
			}), nil
		},
	}
}
