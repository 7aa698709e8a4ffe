package jsonschema

import "strconv"

// itemsConsumer compiles prefixItems/items/additionalItems together.
// Modern dialects (2020-12) use prefixItems for positional validation and
// items as the trailing-elements schema; pre-2020-12 dialects instead use
// items as a tuple (array of schemas) with additionalItems for the
// trailing elements. Both shapes are supported: whichever is present
// drives the positional schedule, and the correct trailing schema is
// applied to whatever elements remain.
func itemsConsumer() *KeywordConsumer {
	return &KeywordConsumer{
		Name: "items",
		Keys: []string{"prefixItems", "items", "additionalItems"},
		Compile: func(def *object, ctx *compileContext) (Validator, *SchemaError) {
			if ctx.children == nil {
				return nil, nil
			}

			var positional []*Schema
			var trailing *Schema
			haveTrailing := false

			if prefixRaw, ok := def.Get("prefixItems"); ok {
				if arr, ok := prefixRaw.([]any); ok {
					for i := range arr {
						if child, ok := ctx.children.Get(encodeToken("prefixItems") + "/" + strconv.Itoa(i)); ok {
							positional = append(positional, child)
						}
					}
				}
				if itemsRaw, ok := def.Get("items"); ok {
					if _, isArr := itemsRaw.([]any); !isArr {
						if child, ok := ctx.children.Get(encodeToken("items")); ok {
							trailing = child
							haveTrailing = true
						}
					}
				}
			} else if itemsRaw, ok := def.Get("items"); ok {
				if arr, isArr := itemsRaw.([]any); isArr {
					for i := range arr {
						if child, ok := ctx.children.Get(encodeToken("items") + "/" + strconv.Itoa(i)); ok {
							positional = append(positional, child)
						}
					}
					if child, ok := ctx.children.Get(encodeToken("additionalItems")); ok {
						trailing = child
						haveTrailing = true
					}
				} else {
					if child, ok := ctx.children.Get(encodeToken("items")); ok {
						trailing = child
						haveTrailing = true
					}
				}
			}

			if len(positional) == 0 && !haveTrailing {
				return nil, nil
			}

			return ValidatorFunc(func(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
				array, ok := instance.([]any)
				if !ok {
					return
				}
				for i, elem := range array {
					var schema *Schema
					if i < len(positional) {
						schema = positional[i]
					} else if haveTrailing {
						schema = trailing
					} else {
						break
					}
					itemPath := appendPath(path, strconv.Itoa(i))
					sub := runValidators(schema, elem, itemPath, scope, ds)
					state.Append(sub)
					if sub.IsValid() {
						state.MarkEvaluated(itemPath)
					}
				}
			}), nil
		},
	}
}
