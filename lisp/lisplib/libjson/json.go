// Package libjson provides the json host module.
//
// JSON arrays load as lists and JSON objects load as association lists, lists
// of (KEY VALUE) pairs sorted by key.  Numbers without a fraction or exponent
// load as ints.  When dumping, lists become arrays and symbols become strings.
package libjson

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/kaa-lang/kaa/lisp"
)

// DefaultModuleName is the module name used by LoadModule.
const DefaultModuleName = "json"

// DefaultSerializer is the Serializer used by exported functions Load and
// Dump.
var DefaultSerializer = &Serializer{}

// LoadModule registers the json module with s, using DefaultSerializer.
func LoadModule(s *lisp.Session) error {
	s.RegisterModule(Module(DefaultSerializer))
	return nil
}

// Module returns a json module whose functions use s.
func Module(s *Serializer) *lisp.Module {
	return lisp.NewModule(DefaultModuleName).
		Set("dump-string", &lisp.HostFunc{Name: "json/dump-string", Fn: s.dumpString}).
		Set("load-string", &lisp.HostFunc{Name: "json/load-string", Fn: s.loadString}).
		Func("Get", Get)
}

// Dump serializes the structure of v as a JSON formatted byte slice.
func Dump(v lisp.Value) ([]byte, error) {
	return DefaultSerializer.Dump(v)
}

// Load parses b as JSON and returns an equivalent value.
func Load(b []byte) (lisp.Value, error) {
	return DefaultSerializer.Load(b)
}

// Serializer defines JSON serialization rules for lisp values.
type Serializer struct {
	// Null is the value loaded for a JSON null.  It defaults to nil.
	Null lisp.Value
}

// Load parses b and returns a value representing its structure.
func (s *Serializer) Load(b []byte) (lisp.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var x interface{}
	err := dec.Decode(&x)
	if err != nil {
		return nil, lisp.ValueErrorType.Errorf("invalid json: %v", err)
	}
	return s.loadInterface(x)
}

func (s *Serializer) loadInterface(x interface{}) (lisp.Value, error) {
	switch x := x.(type) {
	case nil:
		return s.Null, nil
	case bool, string:
		return x, nil
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n), nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, lisp.ValueErrorType.Errorf("invalid json number: %v", x)
		}
		return f, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		items := make([]lisp.Value, len(keys))
		for i, k := range keys {
			v, err := s.loadInterface(x[k])
			if err != nil {
				return nil, err
			}
			items[i] = lisp.ListOf(k, v)
		}
		return lisp.ListOf(items...), nil
	case []interface{}:
		items := make([]lisp.Value, len(x))
		for i, v := range x {
			var err error
			items[i], err = s.loadInterface(v)
			if err != nil {
				return nil, err
			}
		}
		return lisp.ListOf(items...), nil
	default:
		return nil, lisp.TypeErrorType.Errorf("unable to load json type: %T", x)
	}
}

// Dump serializes v as JSON.
func (s *Serializer) Dump(v lisp.Value) ([]byte, error) {
	x, err := s.GoValue(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(x)
}

// GoValue converts v into a value that encoding/json can marshal.
func (s *Serializer) GoValue(v lisp.Value) (interface{}, error) {
	switch v := v.(type) {
	case nil, bool, int, float64, string:
		return v, nil
	case *lisp.Symbol:
		return v.String(), nil
	case *lisp.List:
		items := make([]interface{}, v.Len())
		for i, x := range v.Items {
			var err error
			items[i], err = s.GoValue(x)
			if err != nil {
				return nil, err
			}
		}
		return items, nil
	}
	return nil, lisp.TypeErrorType.Errorf("unable to dump %s as json", lisp.TypeName(v))
}

func (s *Serializer) dumpString(args []lisp.Value) (lisp.Value, error) {
	if len(args) != 1 {
		return nil, &lisp.WrongArityError{Name: "json/dump-string", Expected: "1", Got: len(args)}
	}
	b, err := s.Dump(args[0])
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *Serializer) loadString(args []lisp.Value) (lisp.Value, error) {
	if len(args) != 1 {
		return nil, &lisp.WrongArityError{Name: "json/load-string", Expected: "1", Got: len(args)}
	}
	str, ok := args[0].(string)
	if !ok {
		return nil, lisp.TypeErrorType.Errorf("json/load-string: argument is not a string: %s", lisp.TypeName(args[0]))
	}
	return s.Load([]byte(str))
}

// Get returns the value paired with key in the association list obj, or nil
// if key is not present.
func Get(obj []lisp.Value, key string) lisp.Value {
	for _, pair := range obj {
		lis, ok := pair.(*lisp.List)
		if ok && lis.Len() == 2 && lis.Items[0] == key {
			return lis.Items[1]
		}
	}
	return nil
}
