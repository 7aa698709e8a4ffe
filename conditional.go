package jsonschema

// conditionalConsumer compiles if/then/else. then/else are ignored unless
// if is present; evaluated paths from whichever branch ran propagate into
// the outer state (§4.4).
func conditionalConsumer() *KeywordConsumer {
	return &KeywordConsumer{
		Name: "conditional",
		Keys: []string{"if", "then", "else"},
		Compile: func(def *object, ctx *compileContext) (Validator, *SchemaError) {
			if !def.Has("if") || ctx.children == nil {
				return nil, nil
			}
			ifSchema, ok := ctx.children.Get(encodeToken("if"))
			if !ok {
				return nil, nil
			}
			thenSchema, _ := ctx.children.Get(encodeToken("then"))
			elseSchema, _ := ctx.children.Get(encodeToken("else"))

			return ValidatorFunc(func(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
				ifState := runValidators(ifSchema, instance, path, scope, ds)
				if ifState.IsValid() {
					state.mergeEvaluated(ifState)
					if thenSchema != nil {
						sub := runValidators(thenSchema, instance, path, scope, ds)
						state.mergeEvaluated(sub)
						if !sub.IsValid() {
							state.AddError(&TypedError{Code: "if_then", Path: path, Title: "Value did not satisfy the 'then' schema", States: []*ValidationState{sub}})
						}
					}
				} else if elseSchema != nil {
					sub := runValidators(elseSchema, instance, path, scope, ds)
					state.mergeEvaluated(sub)
					if !sub.IsValid() {
						state.AddError(&TypedError{Code: "if_else", Path: path, Title: "Value did not satisfy the 'else' schema", States: []*ValidationState{sub}})
					}
				}
			}), nil
		},
	}
}
