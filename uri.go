package jsonschema

import (
	"net/url"
	"strconv"
	"strings"
)

// defaultSchemaScheme is the synthetic base scheme reserved for documents
// lacking an $id, grounded in original_source/helpers.rs's DEFAULT_SCHEMA_ID.
const defaultSchemaScheme = "json-schema"

var syntheticCounter int

// freshSyntheticURI synthesizes a json-schema:// URI unique within this
// process, used when a compiled document has no $id of its own.
func freshSyntheticURI() string {
	syntheticCounter++
	return "json-schema://schema-" + strconv.Itoa(syntheticCounter)
}

// isDefaultID reports whether uri uses the synthetic json-schema:// scheme
// with no (or empty) fragment, mirroring helpers.rs's is_default_id.
func isDefaultID(uri string) bool {
	u, err := url.Parse(uri)
	if err != nil {
		return false
	}
	return u.Scheme == defaultSchemaScheme && u.Fragment == ""
}

// encodeToken percent-encodes a single JSON object key as an RFC 6901
// JSON-Pointer token: tilde and slash are escaped first, then the result is
// application/x-www-form-urlencoded percent-encoded, in that exact order
// (§4.2).
func encodeToken(token string) string {
	escaped := strings.NewReplacer("~", "~0", "/", "~1").Replace(token)
	return url.QueryEscape(escaped)
}

// decodeToken reverses encodeToken.
func decodeToken(token string) string {
	unescaped, err := url.QueryUnescape(token)
	if err != nil {
		unescaped = token
	}
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(unescaped)
}

// connectPath encodes every token and joins them with "/", the path-builder
// helper used throughout the compiler (helpers.rs's connect).
func connectPath(tokens ...string) string {
	encoded := make([]string, len(tokens))
	for i, t := range tokens {
		encoded[i] = encodeToken(t)
	}
	return strings.Join(encoded, "/")
}

// appendPath extends an already-built JSON-Pointer instance path with one
// more raw (unencoded) segment, used by validators descending into a
// child instance value.
func appendPath(path, segment string) string {
	if path == "" {
		return encodeToken(segment)
	}
	return path + "/" + encodeToken(segment)
}

// parseURLKey reads a string-valued JSON field as a URI, optionally resolved
// against base. Returns ("", false, nil) when the field is absent or not a
// string.
func parseURLKey(key string, obj *object, base string) (string, bool, *SchemaError) {
	raw, ok := obj.Get(key)
	if !ok {
		return "", false, nil
	}
	str, ok := raw.(string)
	if !ok {
		return "", false, nil
	}
	resolved, err := resolveURI(base, str)
	if err != nil {
		return "", false, newSchemaError(ErrURLParse, "url_parse_error", key, err.Error())
	}
	return resolved, true, nil
}

// resolveURI resolves ref against base (base may be empty, in which case ref
// must already be absolute).
func resolveURI(base, ref string) (string, error) {
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	if base == "" {
		return refURL.String(), nil
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return refURL.String(), nil
	}
	return baseURL.ResolveReference(refURL).String(), nil
}

// alterFragmentPath rewrites uri's fragment to the JSON-Pointer path
// newFragment, preserving any existing named-anchor prefix the way
// helpers.rs's alter_fragment_path does.
func alterFragmentPath(uri, newFragment string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	normalized := strings.TrimPrefix(newFragment, "/")
	existing := u.Fragment

	u2 := *u
	if existing == "" || strings.HasPrefix(existing, "/") {
		u2.Fragment = "/" + normalized
		return u2.String()
	}
	// existing fragment is a named anchor: keep it as the first path
	// segment ahead of the new pointer content.
	anchor := strings.SplitN(existing, "/", 2)[0]
	u2.Fragment = anchor + "/" + normalized
	return u2.String()
}

// serializeSchemaPath splits uri into (uri-without-fragment, fragment?),
// applying the same anchor-vs-pointer distinction as alterFragmentPath.
func serializeSchemaPath(uri string) (string, string) {
	u, err := url.Parse(uri)
	if err != nil {
		return uri, ""
	}
	fragment := u.Fragment
	u2 := *u
	u2.Fragment = ""
	base := u2.String()
	if fragment == "" {
		return base, ""
	}
	if strings.HasPrefix(fragment, "/") {
		return base, fragment
	}
	parts := strings.SplitN(fragment, "/", 2)
	base = base + "#" + parts[0]
	if len(parts) > 1 {
		return base, "/" + parts[1]
	}
	return base, ""
}

// getBaseURI strips the last path segment from id, leaving a directory URI
// suitable for resolving relative $refs, following utils.go's getBaseURI.
func getBaseURI(id string) string {
	if id == "" {
		return ""
	}
	u, err := url.Parse(id)
	if err != nil || u.Scheme == "" {
		return ""
	}
	if strings.HasSuffix(u.Path, "/") {
		u.Fragment = ""
		return u.String()
	}
	idx := strings.LastIndex(u.Path, "/")
	if idx < 0 {
		u.Path = "/"
	} else {
		u.Path = u.Path[:idx+1]
	}
	u.Fragment = ""
	return u.String()
}

// splitRef separates a reference into its base URI and fragment.
func splitRef(ref string) (string, string) {
	parts := strings.SplitN(ref, "#", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return ref, ""
}

// isJSONPointer reports whether s has JSON-Pointer shape (starts with "/").
func isJSONPointer(s string) bool {
	return strings.HasPrefix(s, "/")
}
