package jsonschema

import (
	"strings"
	"sync"
)

// Scope owns every compiled Schema reachable from it, keyed by canonical
// URL, and is the sole resolver for $ref/$dynamicRef lookups (§3, §4.6). A
// Scope is created empty; schemas accumulate but are never removed.
type Scope struct {
	mu      sync.RWMutex
	schemas map[string]*Schema

	registry           *KeywordRegistry
	formats            map[string]func(any) bool
	decoders           map[string]func(string) ([]byte, error)
	mediaTypes         map[string]func([]byte) (any, error)
	loaders            map[string]func(uri string) ([]byte, error)
	banUnknownKeywords bool
	supplyDefaults     bool
	dialectOverride    string

	jsonDecoder func([]byte) (any, error)
}

// ScopeOption configures a Scope at construction time.
type ScopeOption func(*Scope)

// WithBanUnknownKeywords rejects schemas carrying keywords no registered
// KeywordConsumer recognizes.
func WithBanUnknownKeywords() ScopeOption {
	return func(s *Scope) { s.banUnknownKeywords = true }
}

// WithSupplyDefaults enables the copy-on-write default-value replacement
// pass during validation.
func WithSupplyDefaults() ScopeOption {
	return func(s *Scope) { s.supplyDefaults = true }
}

// WithDialectOverride forces every compiled document onto dialect,
// regardless of its own $schema.
func WithDialectOverride(dialect string) ScopeOption {
	return func(s *Scope) { s.dialectOverride = dialect }
}

// WithKeywordRegistry installs a custom registry instead of
// DefaultKeywordRegistry(); extensions typically start from the default
// and call Register before passing it in.
func WithKeywordRegistry(r *KeywordRegistry) ScopeOption {
	return func(s *Scope) { s.registry = r }
}

// NewScope constructs an empty Scope ready for compile calls.
func NewScope(opts ...ScopeOption) *Scope {
	s := &Scope{
		schemas:    make(map[string]*Schema),
		formats:    make(map[string]func(any) bool),
		decoders:   make(map[string]func(string) ([]byte, error)),
		mediaTypes: make(map[string]func([]byte) (any, error)),
		loaders:    make(map[string]func(uri string) ([]byte, error)),
	}
	for name, fn := range Formats {
		s.formats[name] = fn
	}
	seedContentRegistries(s)
	s.registry = DefaultKeywordRegistry()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scope) register(id string, schema *Schema) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schemas[id] = schema
}

func (s *Scope) settings() CompileSettings {
	return CompileSettings{
		BanUnknownKeywords: s.banUnknownKeywords,
		SupplyDefaults:     s.supplyDefaults,
		DialectOverride:    s.dialectOverride,
	}
}

// Compile parses and compiles a JSON document, returning its (possibly
// synthesized) canonical ID.
func (s *Scope) Compile(doc []byte) (string, *SchemaError) {
	return s.CompileWithID("", doc)
}

// CompileWithID compiles doc under a caller-supplied base id. id must not
// carry a fragment.
func (s *Scope) CompileWithID(id string, doc []byte) (string, *SchemaError) {
	if strings.Contains(id, "#") {
		return "", newSchemaError(ErrWrongID, "wrong_id", "", "id must not carry a fragment")
	}
	decoded, err := decodeJSON(doc)
	if err != nil {
		return "", newSchemaError(ErrMalformed, "malformed_schema", "", err.Error())
	}
	ctx := &compileContext{
		dialect:   s.dialectOverride,
		subScopes: make(map[string]string),
		registry:  s.registry,
		settings:  s.settings(),
	}
	schema, serr := compileNode(decoded, ctx, s, id)
	if serr != nil {
		return "", serr
	}
	return schema.ID, nil
}

// CompileBatch compiles every document in docs in one pass, deferring
// $ref/$dynamicRef resolution until all of them are registered, so
// documents may reference each other regardless of input order (§4.10).
func (s *Scope) CompileBatch(docs map[string][]byte) (map[string]*Schema, *SchemaError) {
	result := make(map[string]*Schema, len(docs))
	for id, doc := range docs {
		decoded, err := decodeJSON(doc)
		if err != nil {
			return nil, newSchemaError(ErrMalformed, "malformed_schema", id, err.Error())
		}
		ctx := &compileContext{
			dialect:   s.dialectOverride,
			subScopes: make(map[string]string),
			registry:  s.registry,
			settings:  s.settings(),
		}
		schema, serr := compileNode(decoded, ctx, s, id)
		if serr != nil {
			return nil, serr
		}
		result[schema.ID] = schema
	}
	// $ref validators resolve lazily through Scope.Resolve at validate
	// time, so no second pass over the validators themselves is needed:
	// every document is already registered by the time any reference is
	// followed.
	return result, nil
}

// ScopedSchema pairs a compiled Schema with the Scope that owns it, the
// handle returned by Resolve and the one validate is called against (§6).
type ScopedSchema struct {
	Schema *Schema
	Scope  *Scope
}

// Resolve looks up uri: first as a top-level compiled document, then by
// scanning each top-level Schema's recorded sub-scopes, then (if uri
// carries a JSON-Pointer fragment) by walking the target's children tree.
func (s *Scope) Resolve(uri string) (*ScopedSchema, bool) {
	base, fragment := serializeSchemaPath(uri)

	s.mu.RLock()
	schema, ok := s.schemas[base]
	s.mu.RUnlock()

	if !ok {
		s.mu.RLock()
		for _, top := range s.schemas {
			if top.SubScopes != nil {
				if _, has := top.SubScopes[base]; has {
					schema = top
					ok = true
					break
				}
			}
		}
		s.mu.RUnlock()
	}
	if !ok {
		if anchored, anchorOK := s.resolveAnchor(uri); anchorOK {
			return anchored, true
		}
		return nil, false
	}
	if fragment == "" {
		return &ScopedSchema{Schema: schema, Scope: s}, true
	}
	if !strings.HasPrefix(fragment, "/") {
		if anchored, ok := schema.anchors[fragment]; ok {
			return &ScopedSchema{Schema: anchored, Scope: s}, true
		}
		return nil, false
	}
	target, ok := s.resolveFragment(schema, fragment)
	if !ok {
		return nil, false
	}
	return &ScopedSchema{Schema: target, Scope: s}, true
}

func (s *Scope) resolveAnchor(uri string) (*ScopedSchema, bool) {
	base, fragment := splitRef(uri)
	if fragment == "" || isJSONPointer("/"+fragment) && strings.HasPrefix(fragment, "/") {
		return nil, false
	}
	s.mu.RLock()
	schema, ok := s.schemas[base]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if anchored, ok := schema.anchors[fragment]; ok {
		return &ScopedSchema{Schema: anchored, Scope: s}, true
	}
	return nil, false
}

// resolveFragment walks a slash-separated JSON-Pointer through schema's
// children tree; tokens are percent-decoded then ~1/~0-decoded (§4.6).
func (s *Scope) resolveFragment(schema *Schema, pointer string) (*Schema, bool) {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return schema, true
	}
	cur := schema
	for _, raw := range strings.Split(pointer, "/") {
		if cur == nil || cur.Children == nil {
			return nil, false
		}
		token := url_QueryEscapeRoundtrip(raw)
		next, ok := cur.Children.Get(token)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// url_QueryEscapeRoundtrip re-encodes a raw (already ~1/~0-decoded) pointer
// token the same way encodeToken does, so it matches children map keys,
// which are stored percent-encoded.
func url_QueryEscapeRoundtrip(rawToken string) string {
	return encodeToken(decodeToken(rawToken))
}

// RegisterKeyword installs or replaces a KeywordConsumer. Must be called
// before any Compile (§5, §9).
func (s *Scope) RegisterKeyword(c *KeywordConsumer) {
	s.registry.Register(c)
}

// RegisterFormat installs a custom "format" keyword validator.
func (s *Scope) RegisterFormat(name string, fn func(any) bool) {
	s.formats[name] = fn
}

// RegisterLoader installs a loader for scheme. No scheme is registered by
// default; http/https resolution must be opted into explicitly (§4.11).
func (s *Scope) RegisterLoader(scheme string, fn func(uri string) ([]byte, error)) {
	s.loaders[scheme] = fn
}

// RegisterDecoder installs a contentEncoding decoder (§4.8).
func (s *Scope) RegisterDecoder(name string, fn func(string) ([]byte, error)) {
	s.decoders[name] = fn
}

// RegisterMediaType installs a contentMediaType parser (§4.8).
func (s *Scope) RegisterMediaType(name string, fn func([]byte) (any, error)) {
	s.mediaTypes[name] = fn
}

// loadAndCompile consults a registered Loader for ref's scheme, compiling
// and registering the fetched document if found. Used as a last resort by
// the $ref validator when Resolve initially misses.
func (s *Scope) loadAndCompile(uri string) (*ScopedSchema, bool) {
	scheme := getURLScheme(uri)
	loader, ok := s.loaders[scheme]
	if !ok {
		return nil, false
	}
	doc, err := loader(uri)
	if err != nil {
		return nil, false
	}
	base, _ := serializeSchemaPath(uri)
	if _, serr := s.CompileWithID(base, doc); serr != nil {
		return nil, false
	}
	return s.Resolve(uri)
}

// Validate validates instance against schema, starting at the JSON
// root ("") (§4.7, §6).
func (ss *ScopedSchema) Validate(instance any) *ValidationState {
	return ss.ValidateIn(instance, "")
}

// ValidateIn validates instance, reporting paths relative to pathPrefix.
func (ss *ScopedSchema) ValidateIn(instance any, pathPrefix string) *ValidationState {
	ds := newDynamicScope()
	return runValidators(ss.Schema, instance, pathPrefix, ss.Scope, ds)
}

// runValidators implements the validation driver (§4.7): it threads a
// copy-on-write instance through schema.Validators in order, merging each
// validator's ValidationState and applying any replacement before the next
// validator runs.
func runValidators(schema *Schema, instance any, path string, scope *Scope, ds *dynamicScope) *ValidationState {
	state := NewValidationState()
	if schema == nil {
		return state
	}
	if schema.Boolean != nil {
		if !*schema.Boolean {
			state.AddError(newTypedError("false_schema", path, "Schema is the boolean false", nil))
		}
		return state
	}

	ds.push(schema)
	defer ds.pop()

	data := instance
	wrote := false
	for _, v := range schema.Validators {
		sub := NewValidationState()
		v.Validate(data, path, scope, ds, sub)
		state.Append(sub)
		if sub.HasReplacement {
			data = sub.Replacement
			wrote = true
		}
	}
	if wrote {
		state.SetReplacement(data)
	}
	return state
}

// dynamicScope is the stack of schemas entered so far during one validate
// call, used to resolve $dynamicRef against the outermost matching
// $dynamicAnchor rather than the lexically nearest one (§4.9).
type dynamicScope struct {
	stack []*Schema
}

func newDynamicScope() *dynamicScope {
	return &dynamicScope{}
}

func (ds *dynamicScope) push(s *Schema) {
	ds.stack = append(ds.stack, s)
}

func (ds *dynamicScope) pop() {
	if len(ds.stack) > 0 {
		ds.stack = ds.stack[:len(ds.stack)-1]
	}
}

// lookupDynamicAnchor scans the stack from the outermost (root) frame
// inward and returns the first schema declaring anchor as a
// $dynamicAnchor, implementing the "outermost wins" rule of §4.9.
func (ds *dynamicScope) lookupDynamicAnchor(anchor string) (*Schema, bool) {
	for i := 0; i < len(ds.stack); i++ {
		if s := ds.stack[i]; s.dynamicAnchors != nil {
			if target, ok := s.dynamicAnchors[anchor]; ok {
				return target, true
			}
		}
	}
	return nil, false
}
