package jsonschema

// Validator is the capability every compiled keyword produces: given the
// current instance value, its JSON-Pointer path, the owning Scope, and the
// dynamic scope stack entered so far during this validate call, it
// contributes to a running ValidationState (§3). Every validator is handed
// ds so that one crossing into a nested schema (items, properties, allOf,
// ...) keeps the same stack alive for $dynamicRef resolution further down,
// rather than starting a fresh one at each keyword boundary (§4.9).
type Validator interface {
	Validate(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState)
}

// ValidatorFunc adapts a plain function to Validator, the "callable variant"
// §3 calls out for user-registered keywords.
type ValidatorFunc func(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState)

func (f ValidatorFunc) Validate(instance any, path string, scope *Scope, ds *dynamicScope, state *ValidationState) {
	f(instance, path, scope, ds, state)
}

// compileContext carries the walk state threaded through compileNode: the
// current base URI, the JSON-Pointer path from the schema root, the active
// dialect, and the shared sub-scope index that nested $id's register into.
type compileContext struct {
	baseURI   string
	fragment  []string
	dialect   string
	subScopes map[string]string
	registry  *KeywordRegistry
	settings  CompileSettings
	// children holds the already-compiled local child schemas for the
	// node currently being compiled, populated just before the keyword
	// registry runs so that keyword compilers can fetch precompiled
	// sub-schemas (e.g. "properties/foo") without a second walk.
	children *childMap
	// containerMode is set while compiling a dict-valued keyword's own
	// value (properties, patternProperties, dependentSchemas,
	// dependencies, $defs/definitions): every key there is an arbitrary
	// name (or pattern) mapping directly to a sub-schema, never a
	// keyword, so buildChildren must compile every entry — including
	// boolean ones — regardless of its name, and compileValidators must
	// not run the keyword registry against it at all.
	containerMode bool
}

func (c *compileContext) fragmentPath() string {
	return connectPath(c.fragment...)
}

func (c *compileContext) child(key string) *compileContext {
	next := *c
	next.fragment = append(append([]string{}, c.fragment...), key)
	return &next
}

// KeywordFunc compiles one schema object into an optional Validator. It
// returns (nil, nil) when none of its keys are present.
type KeywordFunc func(def *object, ctx *compileContext) (Validator, *SchemaError)

// KeywordConsumer groups keywords that must be compiled together (§4.3),
// e.g. {items, additionalItems, prefixItems}.
type KeywordConsumer struct {
	Name        string
	Keys        []string
	Compile     KeywordFunc
	PlaceFirst  bool
	PlaceLast   bool
	IsExclusive bool
}

// KeywordRegistry maps consumers in registration order; compilation walks
// them in this fixed order to produce a deterministic validator list.
type KeywordRegistry struct {
	consumers []*KeywordConsumer
}

// NewKeywordRegistry returns an empty registry.
func NewKeywordRegistry() *KeywordRegistry {
	return &KeywordRegistry{}
}

// Register appends (or, if a consumer of the same Name exists, replaces) a
// KeywordConsumer. Extensions call this only before compile (§5, §9).
func (r *KeywordRegistry) Register(c *KeywordConsumer) {
	for i, existing := range r.consumers {
		if existing.Name == c.Name {
			r.consumers[i] = c
			return
		}
	}
	r.consumers = append(r.consumers, c)
}

// Consumers returns the registry's consumers in registration order.
func (r *KeywordRegistry) Consumers() []*KeywordConsumer {
	return r.consumers
}

// DefaultKeywordRegistry returns a registry carrying every keyword this
// library implements, in the order the compiler consumes them (§4.3/§4.5).
func DefaultKeywordRegistry() *KeywordRegistry {
	r := NewKeywordRegistry()
	for _, c := range []*KeywordConsumer{
		refConsumer(),
		typeConsumer(),
		enumConsumer(),
		constConsumer(),
		numericConsumer(),
		stringConsumer(),
		formatConsumer(),
		itemsConsumer(),
		containsConsumer(),
		arrayCountsConsumer(),
		propertiesConsumer(),
		propertyNamesConsumer(),
		objectCountsConsumer(),
		dependenciesConsumer(),
		compositionConsumer(),
		conditionalConsumer(),
		contentConsumer(),
		unevaluatedItemsConsumer(),
		unevaluatedPropertiesConsumer(),
	} {
		r.Register(c)
	}
	return r
}
