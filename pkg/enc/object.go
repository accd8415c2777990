package enc

import (
	"bytes"
	"encoding/json"
	"strconv"

	ojson "github.com/nspcc-dev/go-ordered-json"
)

// Object is a JSON object that keeps its keys in insertion order.
type Object = ojson.OrderedObject

// Get returns the value stored under key.
func Get(o Object, key string) (any, bool) {
	for i := range o {
		if o[i].Key == key {
			return o[i].Value, true
		}
	}
	return nil, false
}

// Has reports whether o contains key.
func Has(o Object, key string) bool {
	_, ok := Get(o, key)
	return ok
}

// Set replaces the value under key in place or appends a new member.
func Set(o Object, key string, value any) Object {
	for i := range o {
		if o[i].Key == key {
			o[i].Value = value
			return o
		}
	}
	return append(o, Object{{Key: key, Value: value}}...)
}

// Clone returns a shallow copy of o.
func Clone(o Object) Object {
	out := make(Object, len(o))
	copy(out, o)
	return out
}

// Int64 reads an integral number stored in v by the codec, the JSON decoder
// or a caller.
func Int64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), true
	case float64:
		if x != float64(int64(x)) {
			return 0, false
		}
		return int64(x), true
	case json.Number:
		n, err := x.Int64()
		return n, err == nil
	case ojson.Number:
		n, err := strconv.ParseInt(string(x), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// Decode parses JSON keeping object key order and number literals intact.
// Objects decode to Object, numbers to json.Number of the ordered decoder.
func Decode(data []byte) (any, error) {
	d := ojson.NewDecoder(bytes.NewReader(data))
	d.UseOrderedObject()
	d.UseNumber()
	var v any
	if err := d.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
