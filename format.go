package jsonschema

// formatConsumer compiles "format" against the owning Scope's format
// registry (seeded from Formats, extensible via Scope.RegisterFormat). A
// format name the registry doesn't carry causes no error — formats are
// pluggable leaves, not a closed set (§2.8).
func formatConsumer() *KeywordConsumer {
	return &KeywordConsumer{
		Name: "format",
		Keys: []string{"format"},
		Compile: func(def *object, ctx *compileContext) (Validator, *SchemaError) {
			raw, ok := def.Get("format")
			if !ok {
				return nil, nil
			}
			name, ok := raw.(string)
			if !ok {
				return nil, newSchemaError(ErrMalformed, "malformed_schema", ctx.fragmentPath(), "format must be a string")
			}

			return ValidatorFunc(func(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
				fn, ok := scope.formats[name]
				if !ok {
					return
				}
				if !fn(instance) {
					state.AddError(newTypedError("format", path, "Value does not match format '{format}'", map[string]any{"format": name}))
				}
			}), nil
		},
	}
}
