package jsonschema

// constConsumer compiles the "const" keyword: the instance must equal one
// fixed value exactly.
func constConsumer() *KeywordConsumer {
	return &KeywordConsumer{
		Name: "const",
		Keys: []string{"const"},
		Compile: func(def *object, ctx *compileContext) (Validator, *SchemaError) {
			value, ok := def.Get("const")
			if !ok {
				return nil, nil
			}

			return ValidatorFunc(func(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
				if !deepEqual(instance, value) {
					state.AddError(newTypedError("const", path, "Value must equal the constant value", nil))
				}
			}), nil
		},
	}
}
