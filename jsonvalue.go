package jsonschema

import (
	"bytes"
	"math/big"
	"reflect"

	gojson "github.com/goccy/go-json"
)

// object is an ordered JSON object: it preserves the insertion order of its
// keys, which the compiler relies on when it stores a Schema's children
// under their encoded JSON-Pointer tokens.
type object struct {
	keys []string
	vals map[string]any
}

func newObject() *object {
	return &object{vals: make(map[string]any)}
}

func (o *object) Set(key string, val any) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = val
}

func (o *object) Get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

func (o *object) Has(key string) bool {
	_, ok := o.vals[key]
	return ok
}

func (o *object) Keys() []string {
	return o.keys
}

func (o *object) Len() int {
	return len(o.keys)
}

// Clone returns a shallow copy of o: a new key slice and value map, but the
// same child values. Used to give default-value supply copy-on-write
// semantics — the caller's original instance is never mutated in place.
func (o *object) Clone() *object {
	clone := &object{
		keys: append([]string{}, o.keys...),
		vals: make(map[string]any, len(o.vals)),
	}
	for k, v := range o.vals {
		clone.vals[k] = v
	}
	return clone
}

// DecodeInstance parses a JSON document into the value tree ValidateIn
// expects as its instance argument: objects become *object (so that
// properties/patternProperties/etc. see an ordered key list) and numbers
// decode as json.Number, never float64, preserving exactness for
// multipleOf and enum/const comparisons.
func DecodeInstance(data []byte) (any, error) {
	return decodeJSON(data)
}

// decodeJSON parses a JSON document into the object/any tree used throughout
// the compiler and validator runtime. Objects decode to *object so that key
// order survives into Schema.children; numbers decode to json.Number so that
// integer/float classification can be done exactly (see getDataType).
func decodeJSON(data []byte) (any, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return decodeNext(dec)
}

func decodeNext(dec *gojson.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeValue(dec, tok)
}

func decodeValue(dec *gojson.Decoder, tok gojson.Token) (any, error) {
	switch t := tok.(type) {
	case gojson.Delim:
		switch t {
		case '{':
			o := newObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := keyTok.(string)
				val, err := decodeNext(dec)
				if err != nil {
					return nil, err
				}
				o.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return o, nil
		case '[':
			arr := []any{}
			for dec.More() {
				val, err := decodeNext(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		}
		return nil, nil
	default:
		return t, nil
	}
}

// encodeJSON renders the object/any tree back to JSON, preserving object key
// order.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case *object:
		buf.WriteByte('{')
		for i, k := range t.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := gojson.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			val, _ := t.Get(k)
			if err := writeValue(buf, val); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		b, err := gojson.Marshal(t)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}
}

// getDataType identifies the JSON Schema primitive type name for a decoded
// Go value, distinguishing integers from floats by exactness rather than by
// Go type, following the teacher's utils.go.
func getDataType(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case gojson.Number:
		if _, ok := new(big.Int).SetString(string(t), 10); ok {
			return "integer"
		}
		if bf, ok := new(big.Float).SetString(string(t)); ok {
			if _, acc := bf.Int(nil); acc == big.Exact {
				return "integer"
			}
			return "number"
		}
		return "number"
	case float32, float64:
		bf := new(big.Float).SetFloat64(reflect.ValueOf(t).Float())
		if _, acc := bf.Int(nil); acc == big.Exact {
			return "integer"
		}
		return "number"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case string:
		return "string"
	case []any:
		return "array"
	case *object:
		return "object"
	default:
		return "unknown"
	}
}

// deepEqual implements JSON deep-equality with number-type agnosticism: 1
// and 1.0 compare equal, matching the uniqueItems/enum/const contract.
func deepEqual(a, b any) bool {
	if isNumber(a) && isNumber(b) {
		ra, oka := NewRat(a)
		rb, okb := NewRat(b)
		if oka && okb {
			return ra.Cmp(rb.Rat) == 0
		}
		return false
	}
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *object:
		bv, ok := b.(*object)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			bval, ok := bv.Get(k)
			if !ok {
				return false
			}
			aval, _ := av.Get(k)
			if !deepEqual(aval, bval) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isNumber(v any) bool {
	switch v.(type) {
	case gojson.Number, float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}
