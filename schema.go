package jsonschema

import "strconv"

// Schema is a compiled JSON Schema node (§3). A node is either a boolean
// shorthand (Boolean != nil) or an object schema carrying its own ordered
// children, the validators compiled from its keywords, and the sub-scopes
// any nested $id introduced.
type Schema struct {
	ID       string
	Dialect  string
	Original any

	Children   *childMap
	Validators []Validator
	SubScopes  map[string]string

	Default    any
	HasDefault bool

	Boolean *bool

	anchors        map[string]*Schema
	dynamicAnchors map[string]*Schema
}

// childMap is an insertion-ordered string-to-*Schema map, mirroring object
// (jsonvalue.go) but specialized to Schema values so compileNode doesn't pay
// an interface-assertion tax on every lookup.
type childMap struct {
	keys []string
	vals map[string]*Schema
}

func newChildMap() *childMap {
	return &childMap{vals: make(map[string]*Schema)}
}

func (c *childMap) Set(key string, s *Schema) {
	if _, exists := c.vals[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.vals[key] = s
}

func (c *childMap) Get(key string) (*Schema, bool) {
	s, ok := c.vals[key]
	return s, ok
}

func (c *childMap) Keys() []string {
	return c.keys
}

// lookupNamed fetches the schema compiled for name under a dict-valued
// keyword (e.g. "properties", "dependentSchemas"): buildChildren compiles
// the whole dict as one intermediate Schema node, so the real per-name
// schema lives one level down, in that node's own Children.
func lookupNamed(children *childMap, containerKey, name string) (*Schema, bool) {
	if children == nil {
		return nil, false
	}
	container, ok := children.Get(encodeToken(containerKey))
	if !ok || container.Children == nil {
		return nil, false
	}
	return container.Children.Get(encodeToken(name))
}

// CompileSettings configures one compilation pass (§6 new_scope options).
type CompileSettings struct {
	// BanUnknownKeywords rejects schemas using keywords no registered
	// KeywordConsumer recognizes, instead of silently ignoring them.
	BanUnknownKeywords bool
	// SupplyDefaults enables the copy-on-write default-value replacement
	// pass during validation (§4.7, §9).
	SupplyDefaults bool
	// DialectOverride forces a $schema dialect regardless of what the
	// document declares; empty means "trust the document, fall back to
	// the latest supported dialect".
	DialectOverride string
}

// finalKeys are never descended into when building the children tree: their
// values are arrays of scalars (or a scalar/string), never nested schemas.
var finalKeys = map[string]bool{
	"enum":     true,
	"required": true,
	"type":     true,
}

// booleanSchemaArrayKeys name keywords whose array-valued elements are
// themselves schemas (as opposed to plain value arrays).
var booleanSchemaArrayKeys = map[string]bool{
	"allOf":       true,
	"anyOf":       true,
	"oneOf":       true,
	"items":       true, // draft-04 tuple form
	"prefixItems": true,
}

// compileNode compiles raw (a decoded JSON value: bool, *object, or
// anything else which is an error) into a Schema, threading ctx for base
// URI / fragment-path / dialect state (§4.5).
func compileNode(raw any, ctx *compileContext, scope *Scope, externalID string) (*Schema, *SchemaError) {
	if b, ok := raw.(bool); ok {
		v := b
		s := &Schema{Boolean: &v, Original: raw}
		s.ID = externalID
		if s.ID == "" {
			s.ID = freshSyntheticURI()
		}
		scope.register(s.ID, s)
		return s, nil
	}

	def, ok := raw.(*object)
	if !ok {
		return nil, newSchemaError(ErrNotAnObject, "not_an_object", ctx.fragmentPath(), "")
	}

	// A container node's own keys are arbitrary names (or patterns), never
	// $id/$schema/$anchor, however they happen to be spelled.
	id := externalID
	if id == "" && !ctx.containerMode {
		if resolved, present, err := parseURLKey("$id", def, ctx.baseURI); err != nil {
			return nil, err
		} else if present {
			id = resolved
		} else if resolved, present, err := parseURLKey("id", def, ctx.baseURI); err != nil {
			return nil, err
		} else if present {
			id = resolved // draft-04 compatibility
		}
	}
	if id == "" {
		id = ctx.baseURI // a nested node without its own $id shares its parent's base
	}
	if id == "" {
		id = freshSyntheticURI()
	}

	childCtx := *ctx
	childCtx.baseURI = id
	childCtx.children = nil

	if !ctx.containerMode && ctx.settings.DialectOverride == "" {
		if dialect, present, _ := parseURLKey("$schema", def, ""); present {
			childCtx.dialect = dialect
		}
	}

	s := &Schema{
		ID:             id,
		Dialect:        childCtx.dialect,
		Original:       raw,
		SubScopes:      make(map[string]string),
		anchors:        make(map[string]*Schema),
		dynamicAnchors: make(map[string]*Schema),
	}

	if !ctx.containerMode {
		if anchor, ok := def.Get("$anchor"); ok {
			if name, ok := anchor.(string); ok {
				s.anchors[name] = s
			}
		}
		if anchor, ok := def.Get("$dynamicAnchor"); ok {
			if name, ok := anchor.(string); ok {
				s.dynamicAnchors[name] = s
			}
		}
	}

	children, err := buildChildren(def, &childCtx, scope)
	if err != nil {
		return nil, err
	}
	s.Children = children
	childCtx.children = children

	if def.Has("default") {
		if v, ok := def.Get("default"); ok {
			s.Default = v
			s.HasDefault = true
		}
	}

	validators, err := compileValidators(def, &childCtx, scope)
	if err != nil {
		return nil, err
	}
	s.Validators = validators

	if id != ctx.baseURI {
		ctx.subScopes[id] = id
		s.SubScopes[id] = id
	}

	scope.register(id, s)
	collectAnchors(s, children)
	return s, nil
}

// collectAnchors surfaces a child's $anchor/$dynamicAnchor table up to its
// parent so Scope.Resolve can find an anchor declared anywhere
// within the same base-URI scope, matching how $anchor is scoped to the
// nearest enclosing $id rather than to its immediate parent object.
func collectAnchors(parent *Schema, children *childMap) {
	if children == nil {
		return
	}
	for _, key := range children.Keys() {
		child, _ := children.Get(key)
		if child == nil || child.Boolean != nil {
			continue
		}
		if child.ID == parent.ID || isDefaultID(child.ID) {
			for name, anchored := range child.anchors {
				if _, exists := parent.anchors[name]; !exists {
					parent.anchors[name] = anchored
				}
			}
			for name, anchored := range child.dynamicAnchors {
				if _, exists := parent.dynamicAnchors[name]; !exists {
					parent.dynamicAnchors[name] = anchored
				}
			}
		}
	}
}

// containerKeys name keywords whose value is a dict mapping arbitrary
// names (or regex patterns) directly to sub-schemas, rather than a
// keyword-to-value mapping: every entry is a schema, boolean or object
// alike, regardless of what its key happens to be spelled.
var containerKeys = map[string]bool{
	"properties":        true,
	"patternProperties":  true,
	"dependentSchemas":   true,
	"dependencies":       true,
	"$defs":              true,
	"definitions":        true,
}

// buildChildren compiles every object-valued (or schema-array-valued) key
// of def into a child Schema, stored under its percent-encoded token. This
// mirrors the source compiler's unconditional recursion: container
// keywords like "properties" become an (otherwise validator-less)
// intermediate Schema node whose own children are the real per-property
// schemas, so the tree stays a uniform one-token-per-level structure. When
// ctx.containerMode is set, def IS one of those intermediate nodes, and
// every one of its own keys is itself an arbitrary name pointing at a
// sub-schema, not a JSON Schema keyword.
func buildChildren(def *object, ctx *compileContext, scope *Scope) (*childMap, *SchemaError) {
	cm := newChildMap()
	for _, key := range def.Keys() {
		if !ctx.containerMode && finalKeys[key] {
			continue
		}
		val, _ := def.Get(key)
		switch v := val.(type) {
		case *object:
			childCtx := ctx.child(key)
			if ctx.containerMode {
				childCtx.containerMode = false
			} else {
				childCtx.containerMode = containerKeys[key]
			}
			child, err := compileNode(v, childCtx, scope, "")
			if err != nil {
				return nil, err
			}
			cm.Set(encodeToken(key), child)
		case bool:
			if ctx.containerMode || booleanSchemaArrayKeys[key] || key == "additionalProperties" || key == "additionalItems" ||
				key == "contains" || key == "propertyNames" || key == "not" ||
				key == "if" || key == "then" || key == "else" ||
				key == "unevaluatedItems" || key == "unevaluatedProperties" || key == "contentSchema" {
				child, err := compileNode(v, ctx.child(key), scope, "")
				if err != nil {
					return nil, err
				}
				cm.Set(encodeToken(key), child)
			}
		case []any:
			if !ctx.containerMode && booleanSchemaArrayKeys[key] {
				for i, elem := range v {
					switch elem.(type) {
					case *object, bool:
					default:
						continue
					}
					child, err := compileNode(elem, ctx.child(key).child(strconv.Itoa(i)), scope, "")
					if err != nil {
						return nil, err
					}
					cm.Set(encodeToken(key)+"/"+strconv.Itoa(i), child)
				}
			}
		}
	}
	return cm, nil
}

// compileValidators runs every registered KeywordConsumer against def in
// registration order, honoring PlaceFirst/PlaceLast/IsExclusive (§4.3). A
// container node (ctx.containerMode) never carries keyword validators of
// its own — its keys are arbitrary names, not keywords — so it is skipped
// entirely; callers reach its per-name sub-schemas through Children.
func compileValidators(def *object, ctx *compileContext, scope *Scope) ([]Validator, *SchemaError) {
	if ctx.containerMode {
		return nil, nil
	}

	var first, middle, last []Validator
	var exclusive Validator
	matchedAny := false

	consumed := map[string]bool{}
	for _, consumer := range ctx.registry.Consumers() {
		present := false
		for _, k := range consumer.Keys {
			if def.Has(k) {
				present = true
				break
			}
		}
		if !present {
			continue
		}
		v, err := consumer.Compile(def, ctx)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		matchedAny = true
		for _, k := range consumer.Keys {
			if def.Has(k) {
				consumed[k] = true
			}
		}
		switch {
		case consumer.IsExclusive, isExclusiveValidator(v):
			exclusive = v
		case consumer.PlaceFirst:
			first = append(first, v)
		case consumer.PlaceLast:
			last = append(last, v)
		default:
			middle = append(middle, v)
		}
	}

	if ctx.settings.BanUnknownKeywords {
		for _, key := range def.Keys() {
			if finalKeys[key] || consumed[key] || metadataKeys[key] {
				continue
			}
			if !consumed[key] {
				return nil, newSchemaError(ErrUnknownKey, "unknown_keyword", ctx.fragmentPath(), key)
			}
		}
	}
	_ = matchedAny

	if exclusive != nil {
		return []Validator{exclusive}, nil
	}

	validators := make([]Validator, 0, len(first)+len(middle)+len(last))
	validators = append(validators, first...)
	validators = append(validators, middle...)
	validators = append(validators, last...)
	return validators, nil
}

// exclusiveValidator marks a validator as replacing every sibling validator
// on its schema, the dynamic (dialect-dependent) counterpart to a
// KeywordConsumer's static IsExclusive flag — used by $ref in pre-2019
// dialects, where whether a given occurrence is exclusive depends on the
// schema's own $schema, not on the consumer as a whole. Its Validate method
// is promoted straight from the embedded Validator: no forwarding needed.
type exclusiveValidator struct{ Validator }

func isExclusiveValidator(v Validator) bool {
	_, ok := v.(exclusiveValidator)
	return ok
}

// metadataKeys never produce a validator and are never reported as unknown.
var metadataKeys = map[string]bool{
	"title": true, "description": true, "examples": true, "default": true,
	"$schema": true, "$id": true, "id": true, "$anchor": true, "$dynamicAnchor": true,
	"$defs": true, "definitions": true, "$comment": true, "$vocabulary": true,
	"deprecated": true, "readOnly": true, "writeOnly": true,
}
