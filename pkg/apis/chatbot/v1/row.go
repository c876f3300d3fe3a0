package v1

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ValueKind tags the content of a Value.
type ValueKind int

const (
	KindUndefined ValueKind = iota
	KindNumber
	KindString
)

// Value is a single cell of a Row: a number, a string, or undefined.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
}

// Number returns a numeric Value.
func Number(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

// String returns a string Value.
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Float64 returns the numeric content of the value. Strings, undefined values and
// non-finite numbers report false.
func (v Value) Float64() (float64, bool) {
	if v.Kind != KindNumber || math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
		return 0, false
	}
	return v.Num, true
}

// Text returns the value as display text. Numbers are formatted in their shortest form.
func (v Value) Text() (string, bool) {
	switch v.Kind {
	case KindString:
		return v.Str, true
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64), true
	default:
		return "", false
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		if _, ok := v.Float64(); !ok {
			return []byte("null"), nil
		}
		return json.Marshal(v.Num)
	case KindString:
		return json.Marshal(v.Str)
	default:
		return []byte("null"), nil
	}
}

// Row is one record of a chart payload. The backend sends arbitrary objects so no
// schema is assumed; only number and string fields are kept.
type Row map[string]Value

// Get returns the value stored under key, if any.
func (r Row) Get(key string) (Value, bool) {
	v, ok := r[key]
	if !ok || v.Kind == KindUndefined {
		return Value{}, false
	}
	return v, true
}

func (r *Row) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid row JSON")
	}
	res := gjson.ParseBytes(data)
	if res.Type == gjson.Null {
		*r = nil
		return nil
	}
	if !res.IsObject() {
		return fmt.Errorf("row must be a JSON object, got %s", res.Type)
	}

	row := Row{}
	res.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.Number:
			row[key.String()] = Number(value.Float())
		case gjson.String:
			row[key.String()] = String(value.String())
		}
		return true
	})
	*r = row
	return nil
}

func (r *Row) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("row must be a mapping, line %d", node.Line)
	}

	row := Row{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			continue
		}
		switch value.Tag {
		case "!!int", "!!float":
			var f float64
			if err := value.Decode(&f); err != nil {
				return fmt.Errorf("row field %q: %w", key.Value, err)
			}
			row[key.Value] = Number(f)
		case "!!str":
			row[key.Value] = String(value.Value)
		}
	}
	*r = row
	return nil
}
