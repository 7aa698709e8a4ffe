package jsonschema

import (
	"regexp"
	"sort"
)

// propertiesConsumer compiles properties, patternProperties, and
// additionalProperties as one KeywordConsumer (§4.3): the three must be
// compiled together because additionalProperties needs the full set of
// names the other two already claimed. Matched properties are marked
// evaluated for unevaluatedProperties.
func propertiesConsumer() *KeywordConsumer {
	return &KeywordConsumer{
		Name: "properties",
		Keys: []string{"properties", "patternProperties", "additionalProperties"},
		Compile: func(def *object, ctx *compileContext) (Validator, *SchemaError) {
			if ctx.children == nil {
				return nil, nil
			}

			named := map[string]*Schema{}
			if raw, ok := def.Get("properties"); ok {
				if dict, ok := raw.(*object); ok {
					for _, name := range dict.Keys() {
						if child, ok := lookupNamed(ctx.children, "properties", name); ok {
							named[name] = child
						}
					}
				}
			}

			type patternEntry struct {
				regex  *regexp.Regexp
				schema *Schema
			}
			var patterns []patternEntry
			if raw, ok := def.Get("patternProperties"); ok {
				if dict, ok := raw.(*object); ok {
					for _, pattern := range dict.Keys() {
						re, err := regexp.Compile(pattern)
						if err != nil {
							return nil, newSchemaError(ErrMalformed, "invalid_pattern", ctx.fragmentPath(), err.Error())
						}
						if child, ok := lookupNamed(ctx.children, "patternProperties", pattern); ok {
							patterns = append(patterns, patternEntry{re, child})
						}
					}
				}
			}

			var additional *Schema
			haveAdditional := def.Has("additionalProperties")
			if haveAdditional {
				additional, _ = ctx.children.Get(encodeToken("additionalProperties"))
			}

			if len(named) == 0 && len(patterns) == 0 && !haveAdditional {
				return nil, nil
			}

			return ValidatorFunc(func(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
				obj, ok := instance.(*object)
				if !ok {
					return
				}

				claimed := map[string]bool{}

				for _, name := range obj.Keys() {
					value, _ := obj.Get(name)
					propPath := appendPath(path, name)
					if schema, ok := named[name]; ok {
						claimed[name] = true
						sub := runValidators(schema, value, propPath, scope, ds)
						state.Append(sub)
						if sub.IsValid() {
							state.MarkEvaluated(propPath)
						}
					}
					for _, p := range patterns {
						if p.regex.MatchString(name) {
							claimed[name] = true
							sub := runValidators(p.schema, value, propPath, scope, ds)
							state.Append(sub)
							if sub.IsValid() {
								state.MarkEvaluated(propPath)
							}
						}
					}
				}

				// Missing named properties whose schema declares a default
				// pick up that default value. The instance is cloned on
				// first write so the caller's original object is never mutated
				// (copy-on-write, §4.7).
				if scope.supplyDefaults {
					for name, schema := range named {
						if obj.Has(name) || !schema.HasDefault {
							continue
						}
						if !state.HasReplacement {
							obj = obj.Clone()
						}
						obj.Set(name, schema.Default)
						state.SetReplacement(obj)
						claimed[name] = true
					}
				}

				if haveAdditional {
					var disallowed []string
					for _, name := range obj.Keys() {
						if claimed[name] {
							continue
						}
						value, _ := obj.Get(name)
						propPath := appendPath(path, name)
						if additional == nil {
							disallowed = append(disallowed, name)
							continue
						}
						if additional.Boolean != nil && !*additional.Boolean {
							disallowed = append(disallowed, name)
							continue
						}
						sub := runValidators(additional, value, propPath, scope, ds)
						state.Append(sub)
						if sub.IsValid() {
							state.MarkEvaluated(propPath)
						}
					}
					if len(disallowed) > 0 {
						sort.Strings(disallowed)
						state.AddError(newTypedError("properties", path, "Additional properties are not allowed", map[string]any{"properties": disallowed}))
					}
				}
			}), nil
		},
	}
}
