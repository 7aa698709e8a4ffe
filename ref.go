package jsonschema

import "strings"

// refConsumer compiles $ref and $dynamicRef. In pre-2019 dialects a $ref
// replaces every sibling validator (the consumer's exclusivity is decided
// per occurrence, since it depends on the schema's own dialect, not on the
// consumer globally — see exclusiveValidator in schema.go). $dynamicRef
// resolves through the dynamic scope stack, falling back to its own lexical
// target when nothing on the stack declares a matching $dynamicAnchor.
func refConsumer() *KeywordConsumer {
	return &KeywordConsumer{
		Name: "ref",
		Keys: []string{"$ref", "$dynamicRef"},
		Compile: func(def *object, ctx *compileContext) (Validator, *SchemaError) {
			refRaw, hasRef := def.Get("$ref")
			dynRaw, hasDynRef := def.Get("$dynamicRef")
			if !hasRef && !hasDynRef {
				return nil, nil
			}

			v := refValidator{}

			if hasRef {
				str, ok := refRaw.(string)
				if !ok {
					return nil, newSchemaError(ErrMalformed, "malformed_schema", ctx.fragmentPath(), "$ref must be a string")
				}
				resolved, err := resolveURI(ctx.baseURI, str)
				if err != nil {
					return nil, newSchemaError(ErrURLParse, "url_parse_error", ctx.fragmentPath(), err.Error())
				}
				v.hasRef = true
				v.refURI = resolved
			}

			if hasDynRef {
				str, ok := dynRaw.(string)
				if !ok {
					return nil, newSchemaError(ErrMalformed, "malformed_schema", ctx.fragmentPath(), "$dynamicRef must be a string")
				}
				resolved, err := resolveURI(ctx.baseURI, str)
				if err != nil {
					return nil, newSchemaError(ErrURLParse, "url_parse_error", ctx.fragmentPath(), err.Error())
				}
				_, anchor := splitRef(str)
				v.hasDynRef = true
				v.dynRefURI = resolved
				v.dynAnchor = anchor
			}

			if hasRef && !hasDynRef && isPre2019Dialect(ctx.dialect) {
				return exclusiveValidator{v}, nil
			}
			return v, nil
		},
	}
}

// refValidator resolves $ref and/or $dynamicRef against the owning Scope
// (and, for $dynamicRef, the dynamic scope stack) and folds the target
// schema's ValidationState into the caller's.
type refValidator struct {
	hasRef bool
	refURI string

	hasDynRef bool
	dynRefURI string
	dynAnchor string
}

func (v refValidator) Validate(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
	if v.hasRef {
		resolveAndRun(v.refURI, instance, path, scope, ds, state)
	}
	if v.hasDynRef {
		target, ok := resolveDynamicRef(v.dynRefURI, v.dynAnchor, scope, ds)
		if !ok {
			state.AddMissing(v.dynRefURI)
			return
		}
		sub := runValidators(target.Schema, instance, path, target.Scope, ds)
		state.Append(sub)
	}
}

// resolveAndRun resolves uri against scope (trying a registered loader on
// first miss) and, on success, validates instance against the target,
// merging the result; on failure it records uri as missing rather than
// producing a local error, leaving IsStrictlyValid to the caller (§4.7).
func resolveAndRun(uri string, instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
	target, ok := scope.Resolve(uri)
	if !ok {
		target, ok = scope.loadAndCompile(uri)
	}
	if !ok {
		state.AddMissing(uri)
		return
	}
	sub := runValidators(target.Schema, instance, path, target.Scope, ds)
	state.Append(sub)
}

// resolveDynamicRef implements the "outermost wins" rule of §4.9: the
// anchor named by $dynamicRef is looked up on the dynamic scope stack
// first; only when nothing on the stack declares it does resolution fall
// back to the $dynamicRef's own lexical target.
func resolveDynamicRef(uri, anchor string, scope *Scope, ds *dynamicScope) (*ScopedSchema, bool) {
	if anchor != "" {
		if target, ok := ds.lookupDynamicAnchor(anchor); ok {
			return &ScopedSchema{Schema: target, Scope: scope}, true
		}
	}
	return scope.Resolve(uri)
}

// isPre2019Dialect reports whether dialect names a draft predating
// 2019-09's relaxed $ref-with-siblings semantics. An empty dialect (no
// $schema declared) is treated as the latest supported draft, matching
// DialectOverride's own "trust the document" default.
func isPre2019Dialect(dialect string) bool {
	return strings.Contains(dialect, "draft-04") ||
		strings.Contains(dialect, "draft-06") ||
		strings.Contains(dialect, "draft-07")
}
